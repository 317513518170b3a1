package depgraph

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/dominikbraun/graph"
)

// Cycles returns the groups of packages that form dependency cycles in g:
// every strongly connected component with more than one member, plus every
// package that lists itself as a dependency.
//
// Members of a group, and the groups themselves, are ordered by first
// mention in g so the result is stable across runs. Cycles only explains
// what [Sort] excluded; it is not used to compute the order.
func Cycles(g *Graph) ([][]string, error) {
	pos := make(map[string]int)
	for i, n := range g.Names() {
		pos[n] = i
	}

	dg := graph.New(graph.StringHash, graph.Directed())
	for n := range pos {
		if err := dg.AddVertex(n); err != nil {
			return nil, fmt.Errorf("add vertex %s: %w", n, err)
		}
	}

	var groups [][]string
	for k, deps := range g.All() {
		for _, d := range deps {
			if d == k {
				groups = append(groups, []string{k})
				continue
			}
			err := dg.AddEdge(k, d)
			if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
				return nil, fmt.Errorf("add edge %s->%s: %w", k, d, err)
			}
		}
	}

	sccs, err := graph.StronglyConnectedComponents(dg)
	if err != nil {
		return nil, fmt.Errorf("strongly connected components: %w", err)
	}
	for _, c := range sccs {
		if len(c) > 1 {
			groups = append(groups, c)
		}
	}

	byPos := func(a, b string) int { return cmp.Compare(pos[a], pos[b]) }
	for _, c := range groups {
		slices.SortFunc(c, byPos)
	}
	slices.SortFunc(groups, func(a, b []string) int {
		if c := byPos(a[0], b[0]); c != 0 {
			return c
		}
		return cmp.Compare(len(a), len(b))
	})
	return groups, nil
}
