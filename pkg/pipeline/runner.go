package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/deps"
	pkgio "github.com/matzehuels/depwalk/pkg/io"
	"github.com/matzehuels/depwalk/pkg/render"
	"github.com/matzehuels/depwalk/pkg/source"
)

// Runner executes walks against a shared response cache.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching and a nil logger
// means log.Default().
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Result is the outcome of [Runner.Execute].
type Result struct {
	Walk   *deps.Result
	Report *pkgio.Report
}

// Execute validates opts, builds the source, walks the graph from
// opts.Package and assembles the report. Unresolved packages do not fail
// the run; they are listed in the result.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	src, err := source.New(ctx, source.Config{
		Mode:          source.Mode(opts.Mode),
		Repo:          opts.Repo,
		Cache:         r.Cache,
		CacheTTL:      opts.CacheTTL,
		Refresh:       opts.Refresh,
		ClientOptions: opts.ClientOptions,
	})
	if err != nil {
		return nil, err
	}
	if st, ok := src.(*source.Static); ok {
		r.Logger.Debug("Loaded repository", "path", opts.Repo, "packages", st.Len())
	}

	r.Logger.Info("Walking dependencies", "package", opts.Package, "mode", opts.Mode, "max_depth", opts.MaxDepth)
	walk, err := deps.NewBuilder(src, deps.Options{
		MaxDepth: opts.MaxDepth,
		Filter:   opts.Filter,
		Logger:   r.Logger,
	}).Build(ctx, opts.Package)
	if err != nil {
		return nil, err
	}
	if n := len(walk.Unresolved); n > 0 {
		r.Logger.Warnf("%d packages could not be resolved", n)
	}

	report, err := pkgio.NewReport(walk, pkgio.Options{
		Mode:     opts.Mode,
		Repo:     opts.Repo,
		MaxDepth: opts.MaxDepth,
		Filter:   opts.Filter,
	})
	if err != nil {
		return nil, fmt.Errorf("report: %w", err)
	}
	return &Result{Walk: walk, Report: report}, nil
}

// Render encodes res in one of the machine formats: json, dot or d2. Text
// output is left to the caller.
func Render(res *Result, format string) ([]byte, error) {
	opts := render.Options{Depths: res.Walk.Depths, Excluded: res.Report.Excluded}
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := pkgio.WriteJSON(res.Report, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(render.ToDOT(res.Walk.Graph, opts)), nil
	case FormatD2:
		return []byte(render.ToD2(res.Walk.Graph, opts)), nil
	}
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("format %q is rendered by the caller", format)
}
