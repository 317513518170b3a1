// Package pipeline runs a complete dependency walk: validate options, select
// the dependency source, build the graph and assemble the report.
//
// This is the logic behind "depwalk walk"; keeping it here lets other entry
// points share the same defaults and validation.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{
//	    Package:  "Serilog",
//	    Mode:     "online",
//	    MaxDepth: 2,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	d2, err := pipeline.Render(res, pipeline.FormatD2)
package pipeline

import (
	"slices"
	"strings"
	"time"

	"github.com/matzehuels/depwalk/pkg/deps"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	"github.com/matzehuels/depwalk/pkg/integrations"
	"github.com/matzehuels/depwalk/pkg/integrations/nuget"
	"github.com/matzehuels/depwalk/pkg/source"
)

// =============================================================================
// Formats
// =============================================================================

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatD2   = "d2"
)

// Formats lists every output format in display order.
var Formats = []string{FormatText, FormatJSON, FormatDOT, FormatD2}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (expected %s)", format, strings.Join(Formats, ", "))
	}
	return nil
}

// =============================================================================
// Options
// =============================================================================

// Options configures one walk.
type Options struct {
	Package  string        // Root package; surrounding space is ignored
	Mode     string        // online, offline or test (any case; default online)
	Repo     string        // Service index URL or repository file (default nuget.org online)
	MaxDepth int           // Deepest level expanded; zero expands only the root
	Filter   string        // Skip packages whose name contains this
	Refresh  bool          // Bypass cached registry responses
	CacheTTL time.Duration // Registry response lifetime (default deps.DefaultCacheTTL)

	// ClientOptions customize the online HTTP client.
	ClientOptions []integrations.Option
}

// ValidateAndSetDefaults normalizes the options in place and reports the
// first validation error. It checks everything that does not need the
// source itself; repository checks happen when the source is built.
func (o *Options) ValidateAndSetDefaults() error {
	o.Package = strings.TrimSpace(o.Package)
	if err := errs.ValidatePackageName(o.Package); err != nil {
		return err
	}

	if o.Mode == "" {
		o.Mode = string(source.ModeOnline)
	}
	mode, err := source.ParseMode(o.Mode)
	if err != nil {
		return err
	}
	o.Mode = string(mode)

	if err := errs.ValidateDepth(o.MaxDepth); err != nil {
		return err
	}
	if o.Repo == "" && mode == source.ModeOnline {
		o.Repo = nuget.DefaultIndexURL
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = deps.DefaultCacheTTL
	}
	return nil
}

// Online reports whether the options select the NuGet feed.
func (o Options) Online() bool {
	return source.Mode(strings.ToLower(strings.TrimSpace(o.Mode))) == source.ModeOnline
}
