package deps

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depwalk/pkg/depgraph"
	errs "github.com/matzehuels/depwalk/pkg/errors"
)

const (
	DefaultMaxDepth = 3              // Default depth bound used by the CLI
	DefaultCacheTTL = 24 * time.Hour // Default HTTP cache duration
)

// Source answers "what does this package directly depend on?".
type Source interface {
	// Resolve returns the direct dependency names of name in declaration
	// order. A failure is reported as an error; the builder records it and
	// keeps walking the rest of the graph.
	Resolve(ctx context.Context, name string) ([]string, error)
}

// SourceFunc adapts a plain function to [Source].
type SourceFunc func(ctx context.Context, name string) ([]string, error)

// Resolve calls f.
func (f SourceFunc) Resolve(ctx context.Context, name string) ([]string, error) {
	return f(ctx, name)
}

// Options configures a graph walk.
type Options struct {
	MaxDepth int         // Deepest level that is expanded; the root is level 0
	Filter   string      // Packages whose name contains this are skipped (empty: none)
	Logger   *log.Logger // Diagnostics sink (default: discard)
}

// Validate reports a validation error for a negative depth bound.
func (o Options) Validate() error {
	return errs.ValidateDepth(o.MaxDepth)
}

// WithDefaults returns a copy of Options with a nil Logger replaced by one
// that discards output. MaxDepth is kept as given: zero is a valid bound.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return opts
}

// Unresolved records a package whose dependencies could not be fetched.
type Unresolved struct {
	Name  string // Package that failed
	Depth int    // Level at which it was reached
	Err   error  // FetchError describing the failure
}

// Result is the outcome of [Builder.Build].
type Result struct {
	Root       string          // Package the walk started from
	Graph      *depgraph.Graph // Expanded packages and their filtered dependencies
	Depths     map[string]int  // Level at which each graph key was expanded
	Unresolved []Unresolved    // Packages whose resolution failed, in walk order
	Fetches    int             // Number of Source.Resolve calls made
	Duration   time.Duration   // Wall time of the walk
}
