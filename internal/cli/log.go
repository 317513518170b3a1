// Package cli implements the depwalk command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - walk: Resolve the dependency graph of a package and its install order
//   - order: Compute an install order from a saved graph
//   - cache: Manage the HTTP response cache
//   - completion: Generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which shows
// every package expansion. Loggers are passed through context.Context so the
// graph builder and progress tracking share one sink.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depwalk/pkg/deps"
)

// newLogger creates the CLI logger. Timestamps read "15:04:05.00".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// walkProgress times one walk. Every line it logs carries the root package
// and the depth bound so interleaved runs in CI logs stay attributable.
type walkProgress struct {
	logger *log.Logger
	start  time.Time
	last   time.Time
}

func newWalkProgress(l *log.Logger, pkg string, maxDepth int) *walkProgress {
	now := time.Now()
	return &walkProgress{
		logger: l.With("package", pkg, "max_depth", maxDepth),
		start:  now,
		last:   now,
	}
}

// step logs the time spent since the previous step at debug level.
func (p *walkProgress) step(name string) {
	now := time.Now()
	p.logger.Debug("Step finished", "step", name, "elapsed", now.Sub(p.last).Round(time.Millisecond))
	p.last = now
}

// done logs the walk summary with the total elapsed time.
func (p *walkProgress) done(res *deps.Result) {
	p.logger.Info("Walk finished",
		"packages", res.Graph.Len(),
		"fetches", res.Fetches,
		"unresolved", len(res.Unresolved),
		"elapsed", time.Since(p.start).Round(time.Millisecond),
	)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
