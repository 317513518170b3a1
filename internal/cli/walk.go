package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depwalk/pkg/cache"
	"github.com/matzehuels/depwalk/pkg/deps"
	"github.com/matzehuels/depwalk/pkg/integrations/nuget"
	"github.com/matzehuels/depwalk/pkg/observability"
	"github.com/matzehuels/depwalk/pkg/pipeline"
	"github.com/matzehuels/depwalk/pkg/source"
)

// walkOpts holds the command-line flags for the walk command.
type walkOpts struct {
	repo        string // service index URL or repository file
	mode        string // online, offline or test
	maxDepth    int    // deepest level expanded
	filter      string // skip packages whose name contains this
	format      string // output format
	output      string // output file path (stdout if empty)
	noCache     bool   // disable the HTTP cache
	refresh     bool   // bypass cached responses
	metricsFile string // Prometheus textfile to write after the walk
}

// walkCommand creates the walk command.
func (c *CLI) walkCommand() *cobra.Command {
	opts := walkOpts{
		repo:     nuget.DefaultIndexURL,
		mode:     string(source.ModeOnline),
		maxDepth: deps.DefaultMaxDepth,
		format:   pipeline.FormatText,
	}

	cmd := &cobra.Command{
		Use:   "walk <package>",
		Short: "Resolve a package's dependency graph and install order",
		Long: `Resolve the transitive dependencies of a package and compute an install order.

In online mode --repo is a NuGet v3 service index URL and the latest version of
every package is used. In offline and test modes --repo is a JSON, YAML or TOML
file mapping each package to its direct dependencies.

Examples:
  depwalk walk Serilog                                   # nuget.org, depth 3
  depwalk walk Serilog --max-depth 1 --format d2 -o serilog.d2
  depwalk walk A --mode test --repo repo.json --filter Test
  depwalk walk Newtonsoft.Json --format json --metrics-file depwalk.prom`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c.applyConfig(cmd, &opts)
			return c.runWalk(cmd.Context(), args[0], opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.repo, "repo", opts.repo, "NuGet service index URL (online) or repository file (offline, test)")
	cmd.Flags().StringVar(&opts.mode, "mode", opts.mode, "source mode: online, offline or test")
	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", opts.maxDepth, "maximum dependency depth (0 expands only the root)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "skip packages whose name contains this substring")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: "+strings.Join(pipeline.Formats, ", "))
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the HTTP response cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached responses")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file after the walk")

	_ = cmd.RegisterFlagCompletionFunc("mode", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		modes := make([]string, len(source.Modes))
		for i, m := range source.Modes {
			modes[i] = string(m)
		}
		return modes, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(pipeline.Formats, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyConfig fills options the user did not set on the command line from
// the config file.
func (c *CLI) applyConfig(cmd *cobra.Command, opts *walkOpts) {
	f := cmd.Flags()
	cfg := c.config
	if !f.Changed("repo") && cfg.Repo != "" {
		opts.repo = cfg.Repo
	}
	if !f.Changed("mode") && cfg.Mode != "" {
		opts.mode = cfg.Mode
	}
	if !f.Changed("max-depth") && cfg.MaxDepth != nil {
		opts.maxDepth = *cfg.MaxDepth
	}
	if !f.Changed("filter") && cfg.Filter != "" {
		opts.filter = cfg.Filter
	}
}

func (c *CLI) runWalk(ctx context.Context, arg string, opts walkOpts, stdout io.Writer) error {
	logger := loggerFromContext(ctx)

	popts := pipeline.Options{
		Package:  arg,
		Mode:     opts.mode,
		Repo:     opts.repo,
		MaxDepth: opts.maxDepth,
		Filter:   opts.filter,
		Refresh:  opts.refresh,
		CacheTTL: c.config.TTL(),
	}
	if err := popts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := pipeline.ValidateFormat(opts.format); err != nil {
		return err
	}

	backend := cache.NewNullCache()
	if popts.Online() {
		var err error
		backend, popts.ClientOptions, err = c.newCache(ctx, opts.noCache)
		if err != nil {
			return err
		}
	}
	defer backend.Close()

	var metrics *observability.Prometheus
	if opts.metricsFile != "" {
		metrics = observability.NewPrometheus()
		observability.SetWalkHooks(metrics)
		observability.SetCacheHooks(metrics)
		observability.SetHTTPHooks(metrics)
		defer observability.Reset()
	}

	prog := newWalkProgress(logger, popts.Package, popts.MaxDepth)
	res, err := pipeline.NewRunner(backend, logger).Execute(ctx, popts)
	if err != nil {
		return err
	}
	prog.step("walk")

	write := func(w io.Writer) error {
		if opts.format == pipeline.FormatText {
			writeText(w, res.Report, popts.Online())
			return nil
		}
		data, err := pipeline.Render(res, opts.format)
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	}
	if err := writeOutput(stdout, opts.output, write); err != nil {
		return err
	}
	prog.step("output")

	if metrics != nil {
		if err := metrics.WriteTextfile(opts.metricsFile); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		logger.Debug("Wrote metrics", "path", opts.metricsFile)
	}
	prog.done(res.Walk)
	return nil
}

// writeOutput runs write against path, or against stdout if path is empty.
func writeOutput(stdout io.Writer, path string, write func(io.Writer) error) error {
	if path == "" {
		return write(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	printSuccess(stdout, "Wrote output")
	printFile(stdout, path)
	return nil
}
