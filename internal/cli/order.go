package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depwalk/pkg/depgraph"
	errs "github.com/matzehuels/depwalk/pkg/errors"
	pkgio "github.com/matzehuels/depwalk/pkg/io"
	"github.com/matzehuels/depwalk/pkg/pipeline"
)

// orderCommand creates the order command.
func (c *CLI) orderCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "order <graph.json>",
		Short: "Compute an install order from a saved graph",
		Long: `Compute an install order from a JSON report written by "walk --format json"
or from a JSON object mapping each package to its direct dependencies:

  {"A": ["B", "C"], "B": ["D"], "C": ["D"], "D": []}`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOrder(cmd, args[0], format)
		},
	}

	cmd.Flags().StringVar(&format, "format", pipeline.FormatText, "output format: text or json")
	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions([]string{pipeline.FormatText, pipeline.FormatJSON}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

type orderOutput struct {
	InstallOrder []string `json:"install_order"`
	Excluded     []string `json:"excluded"`
}

func runOrder(cmd *cobra.Command, path, format string) error {
	if !slices.Contains([]string{pipeline.FormatText, pipeline.FormatJSON}, format) {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format %q (expected text or json)", format)
	}
	if err := errs.ValidateFile(path); err != nil {
		return err
	}

	g, err := pkgio.ImportJSON(path)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "load graph")
	}
	order := depgraph.Sort(g)
	loggerFromContext(cmd.Context()).Debug("Sorted graph", "packages", g.Len(), "excluded", len(order.Excluded))

	return printOrder(cmd.OutOrStdout(), order, format)
}

func printOrder(w io.Writer, order depgraph.InstallOrder, format string) error {
	if format == pipeline.FormatJSON {
		out := orderOutput{InstallOrder: order.Packages, Excluded: order.Excluded}
		if out.Excluded == nil {
			out.Excluded = []string{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	}
	writeOrder(w, order.Packages, order.Excluded)
	return nil
}
