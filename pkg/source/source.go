// Package source provides the dependency sources depwalk can walk.
//
// # Modes
//
//   - online: a NuGet v3 feed, addressed by its service index URL
//   - offline: a static file of real package ids, for air-gapped runs
//   - test: a static file of synthetic packages named with uppercase
//     letters only (A, B, LIB, ...)
//
// [New] picks the source once from a [Config]; everything downstream only
// sees the [deps.Source] interface.
package source

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	"github.com/matzehuels/depwalk/pkg/integrations"
	"github.com/matzehuels/depwalk/pkg/integrations/nuget"
)

// Mode selects the kind of dependency source.
type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
	ModeTest    Mode = "test"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModeOnline, ModeOffline, ModeTest}

// ParseMode converts s to a Mode, ignoring case and surrounding space.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case ModeOnline, ModeOffline, ModeTest:
		return m, nil
	}
	return "", errs.New(errs.ErrCodeInvalidMode, "invalid mode %q (expected online, offline or test)", s)
}

// Static repository naming rules.
var (
	// TestNamePattern allows uppercase ASCII letters only.
	TestNamePattern = regexp.MustCompile(`^[A-Z]+$`)

	// PackageIDPattern allows NuGet package ids.
	PackageIDPattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]*$`)
)

// NamePattern returns the naming rule static files must satisfy in mode m.
func (m Mode) NamePattern() *regexp.Regexp {
	if m == ModeTest {
		return TestNamePattern
	}
	return PackageIDPattern
}

// Config describes the source to build.
type Config struct {
	Mode     Mode
	Repo     string        // Service index URL (online) or file path (offline, test)
	Cache    cache.Cache   // HTTP response cache for online mode (nil: none)
	CacheTTL time.Duration // How long responses are cached
	Refresh  bool          // Bypass cached responses

	// ClientOptions customize the online HTTP client.
	ClientOptions []integrations.Option
}

// Validate checks that Repo suits Mode: an http(s) URL online, an existing
// file otherwise.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeOnline:
		return errs.ValidateURL(c.Repo)
	case ModeOffline, ModeTest:
		return errs.ValidateFile(c.Repo)
	default:
		_, err := ParseMode(string(c.Mode))
		return err
	}
}

// New validates cfg and returns the matching source. Static files are loaded
// eagerly, so configuration errors surface here rather than mid-walk.
func New(ctx context.Context, cfg Config) (deps.Source, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Mode == ModeOnline {
		client := nuget.NewClient(cfg.Cache, cfg.Repo, cfg.CacheTTL, cfg.ClientOptions...)
		return NewRegistry(client, cfg.Refresh), nil
	}
	return LoadStatic(cfg.Repo, cfg.Mode.NamePattern())
}
