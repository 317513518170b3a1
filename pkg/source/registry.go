package source

import (
	"context"

	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	"github.com/matzehuels/depwalk/pkg/integrations/nuget"
)

// Registry resolves packages against a NuGet feed, always reading the
// latest published version.
type Registry struct {
	client  *nuget.Client
	refresh bool
}

// NewRegistry creates a Registry backed by client. If refresh is true,
// cached responses are ignored.
func NewRegistry(client *nuget.Client, refresh bool) *Registry {
	return &Registry{client: client, refresh: refresh}
}

// Resolve returns the distinct dependency ids declared by the latest version
// of name. Failures are reported as fetch errors. Names read from a manifest
// are untrusted; ones that are not valid package ids are rejected before any
// request is made.
func (r *Registry) Resolve(ctx context.Context, name string) ([]string, error) {
	if !PackageIDPattern.MatchString(name) {
		return nil, errs.New(errs.ErrCodeFetch, "invalid package id %q", name)
	}
	info, err := r.client.FetchPackage(ctx, name, r.refresh)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errs.Wrap(errs.ErrCodeFetch, err, "fetch %s", name)
	}
	return info.DependencyIDs(), nil
}

var _ deps.Source = (*Registry)(nil)
