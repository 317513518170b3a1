package nuget

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/integrations"
)

// DefaultIndexURL is the nuget.org service index.
const DefaultIndexURL = "https://api.nuget.org/v3/index.json"

// packageBaseAddress is the service index resource type that serves
// version lists and .nuspec manifests.
const packageBaseAddress = "PackageBaseAddress/3.0.0"

// Dependency is one <dependency> element of a .nuspec manifest.
type Dependency struct {
	ID              string `json:"id"`
	Version         string `json:"version,omitempty"`          // Declared range, "" when absent
	TargetFramework string `json:"target_framework,omitempty"` // Enclosing group's framework, "" when ungrouped
}

// PackageInfo holds the manifest data of one package version.
type PackageInfo struct {
	ID           string       `json:"id"`
	Version      string       `json:"version"`
	Description  string       `json:"description,omitempty"`
	Dependencies []Dependency `json:"dependencies"`
}

// DependencyIDs returns the distinct dependency ids in manifest order:
// grouped dependencies first, then ungrouped ones. Version ranges are
// ignored.
func (p *PackageInfo) DependencyIDs() []string {
	seen := make(map[string]bool, len(p.Dependencies))
	ids := make([]string, 0, len(p.Dependencies))
	for _, d := range p.Dependencies {
		if d.ID == "" || seen[d.ID] {
			continue
		}
		seen[d.ID] = true
		ids = append(ids, d.ID)
	}
	return ids
}

// Client provides access to a NuGet v3 feed.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	indexURL string

	mu      sync.Mutex
	baseURL string
}

// NewClient creates a client for the feed whose service index is at
// indexURL. Responses are cached in backend for ttl.
func NewClient(backend cache.Cache, indexURL string, ttl time.Duration, opts ...integrations.Option) *Client {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Client{
		Client:   integrations.NewClient(backend, "nuget:"+indexURL, ttl, nil, opts...),
		indexURL: indexURL,
	}
}

// IndexURL returns the service index URL of the feed.
func (c *Client) IndexURL() string { return c.indexURL }

// BaseURL returns the PackageBaseAddress of the feed, reading the service
// index on first use. The result is kept for the lifetime of the client;
// refresh only bypasses the response cache for that first read.
func (c *Client) BaseURL(ctx context.Context, refresh bool) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.baseURL != "" {
		return c.baseURL, nil
	}

	var base string
	err := c.Cached(ctx, "index", refresh, &base, func() error {
		var idx serviceIndex
		if err := c.Get(ctx, c.indexURL, &idx); err != nil {
			return err
		}
		for _, r := range idx.Resources {
			if r.Type == packageBaseAddress && r.ID != "" {
				base = strings.TrimRight(r.ID, "/")
				return nil
			}
		}
		return fmt.Errorf("%w: no %s resource in %s", integrations.ErrInvalidResponse, packageBaseAddress, c.indexURL)
	})
	if err != nil {
		return "", fmt.Errorf("service index: %w", err)
	}
	c.baseURL = base
	return base, nil
}

// Versions returns every published version of id as listed by the feed.
func (c *Client) Versions(ctx context.Context, id string, refresh bool) ([]string, error) {
	base, err := c.BaseURL(ctx, refresh)
	if err != nil {
		return nil, err
	}
	lower := pathID(id)

	var versions []string
	err = c.Cached(ctx, "versions:"+lower, refresh, &versions, func() error {
		var data versionsResponse
		if err := c.Get(ctx, base+"/"+lower+"/index.json", &data); err != nil {
			return err
		}
		versions = data.Versions
		return nil
	})
	if err != nil {
		return nil, notFound(err, id)
	}
	return versions, nil
}

// LatestVersion returns the highest published version of id.
// See [Latest] for the ordering used.
func (c *Client) LatestVersion(ctx context.Context, id string, refresh bool) (string, error) {
	versions, err := c.Versions(ctx, id, refresh)
	if err != nil {
		return "", err
	}
	v, ok := Latest(versions)
	if !ok {
		return "", fmt.Errorf("%w: nuget package %s has no versions", integrations.ErrNotFound, id)
	}
	return v, nil
}

// FetchPackage retrieves the manifest of the latest version of id.
//
// If refresh is true, the cache is bypassed and fresh API calls are made.
//
// Returns:
//   - PackageInfo populated from the .nuspec on success
//   - [integrations.ErrNotFound] if the package or its manifest doesn't exist
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//   - [integrations.ErrInvalidResponse] for undecodable responses
func (c *Client) FetchPackage(ctx context.Context, id string, refresh bool) (*PackageInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: empty package id", integrations.ErrNotFound)
	}
	version, err := c.LatestVersion(ctx, id, refresh)
	if err != nil {
		return nil, err
	}
	base, err := c.BaseURL(ctx, false)
	if err != nil {
		return nil, err
	}

	lower := pathID(id)
	lowerVer := strings.ToLower(version)
	if lowerVer == "." || lowerVer == ".." {
		return nil, fmt.Errorf("%w: nuget package %s: version %q", integrations.ErrInvalidResponse, id, version)
	}

	var info PackageInfo
	err = c.Cached(ctx, "nuspec:"+lower+"@"+lowerVer, refresh, &info, func() error {
		var doc nuspec
		u := fmt.Sprintf("%s/%s/%s/%s.nuspec", base, lower, url.PathEscape(lowerVer), lower)
		if err := c.GetXML(ctx, u, &doc); err != nil {
			return err
		}
		info = doc.packageInfo(id, version)
		return nil
	})
	if err != nil {
		return nil, notFound(err, id)
	}
	return &info, nil
}

// pathID is the lower-cased, escaped form of id used in flat-container URLs.
func pathID(id string) string {
	return url.PathEscape(strings.ToLower(strings.TrimSpace(id)))
}

func notFound(err error, id string) error {
	if errors.Is(err, integrations.ErrNotFound) {
		return fmt.Errorf("%w: nuget package %s", err, id)
	}
	return err
}

type serviceIndex struct {
	Version   string     `json:"version"`
	Resources []resource `json:"resources"`
}

type resource struct {
	ID   string `json:"@id"`
	Type string `json:"@type"`
}

type versionsResponse struct {
	Versions []string `json:"versions"`
}
