package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	pkgio "github.com/matzehuels/depwalk/pkg/io"
)

const noOrder = "(no safe order: all packages in cycles or empty)"

// writeText prints a walk report for humans.
func writeText(w io.Writer, r *pkgio.Report, online bool) {
	printTitle(w, "Configuration")
	printKeyValue(w, "package", r.Root)
	printKeyValue(w, "mode", r.Options.Mode)
	printKeyValue(w, "repository", r.Options.Repo)
	printKeyValue(w, "max depth", strconv.Itoa(r.Options.MaxDepth))
	filter := r.Options.Filter
	if filter == "" {
		filter = "(none)"
	}
	printKeyValue(w, "filter", filter)
	printNewline(w)

	printTitle(w, fmt.Sprintf("Dependency graph (%d packages, %d edges)", r.Stats.Packages, r.Stats.Edges))
	if len(r.Graph) == 0 {
		printDetail(w, "(empty)")
	}
	for _, e := range r.Graph {
		fmt.Fprintf(w, "  %s -> [%s]\n", e.Name, strings.Join(e.Dependencies, ", "))
	}
	printNewline(w)

	if len(r.Unresolved) > 0 {
		printTitle(w, "Unresolved packages")
		for _, u := range r.Unresolved {
			printWarning(w, "%s (depth %d): %s", u.Name, u.Depth, u.Error)
		}
		printNewline(w)
	}

	if len(r.Cycles) > 0 {
		printTitle(w, "Cycles")
		for _, c := range r.Cycles {
			printDetail(w, "%s", strings.Join(c, ", "))
		}
		printNewline(w)
	}

	writeOrder(w, r.InstallOrder, r.Excluded)

	if online {
		printNewline(w)
		printInfo(w, "Versions are the latest published for each package; version constraints")
		printDetail(w, "and target frameworks are ignored, so package managers may resolve a different set.")
	}
}

// writeOrder prints a numbered install order and the packages left out of it.
func writeOrder(w io.Writer, order, excluded []string) {
	printTitle(w, "Installation order")
	if len(order) == 0 {
		printDetail(w, noOrder)
	}
	for i, p := range order {
		printNumbered(w, i+1, p)
	}
	if len(excluded) > 0 {
		printNewline(w)
		printWarning(w, "Excluded (cyclic dependencies): %s", strings.Join(excluded, ", "))
	}
}
