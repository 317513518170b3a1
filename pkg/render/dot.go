package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/depwalk/pkg/depgraph"
)

// Options configures diagram output.
type Options struct {
	// Depths, when set, adds the expansion depth of each package to its label.
	Depths map[string]int
	// Excluded lists packages to mark as left out of the install order.
	Excluded []string
}

type nodeKind uint8

const (
	kindExpanded nodeKind = iota
	kindDangling
	kindExcluded
)

func (o Options) kind(g *depgraph.Graph, name string) nodeKind {
	for _, e := range o.Excluded {
		if e == name {
			return kindExcluded
		}
	}
	if !g.Has(name) {
		return kindDangling
	}
	return kindExpanded
}

func (o Options) label(name string) string {
	d, ok := o.Depths[name]
	if !ok {
		return name
	}
	return fmt.Sprintf("%s\ndepth: %d", name, d)
}

// ToDOT converts a dependency graph to Graphviz DOT format. Edges point from
// a package to the packages it depends on.
func ToDOT(g *depgraph.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("\n")

	for _, n := range g.Names() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n, strings.Join(fmtAttrs(opts.kind(g, n), opts.label(n)), ", "))
	}

	buf.WriteString("\n")
	for k, ds := range g.All() {
		for _, d := range ds {
			fmt.Fprintf(&buf, "  %q -> %q;\n", k, d)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(kind nodeKind, label string) []string {
	attrs := []string{fmt.Sprintf("label=%q", label)}
	switch kind {
	case kindDangling:
		attrs = append(attrs, "style=\"rounded,dotted\"")
	case kindExcluded:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	}
	return attrs
}
