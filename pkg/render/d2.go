package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/depwalk/pkg/depgraph"
)

// ToD2 converts a dependency graph to D2 diagram source. An empty graph
// yields a single comment line.
func ToD2(g *depgraph.Graph, opts Options) string {
	if g.Len() == 0 {
		return "# Empty dependency graph\n"
	}

	var buf bytes.Buffer
	buf.WriteString("# Dependency graph\n")
	buf.WriteString("direction: right\n")

	for _, n := range g.Names() {
		buf.WriteString(d2Quote(n))
		label := opts.label(n)
		kind := opts.kind(g, n)
		if label == n && kind == kindExpanded {
			buf.WriteString("\n")
			continue
		}
		buf.WriteString(": {\n")
		if label != n {
			fmt.Fprintf(&buf, "  label: %s\n", d2Quote(label))
		}
		switch kind {
		case kindDangling:
			buf.WriteString("  style.stroke-dash: 2\n")
		case kindExcluded:
			buf.WriteString("  style.stroke-dash: 5\n")
			buf.WriteString("  style.fill: \"#d3d3d3\"\n")
		}
		buf.WriteString("}\n")
	}

	for k, ds := range g.All() {
		for _, d := range ds {
			fmt.Fprintf(&buf, "%s -> %s\n", d2Quote(k), d2Quote(d))
		}
	}
	return buf.String()
}

var d2Escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func d2Quote(s string) string {
	return `"` + d2Escaper.Replace(s) + `"`
}
