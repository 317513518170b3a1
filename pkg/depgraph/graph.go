package depgraph

import (
	"iter"
	"slices"
)

// Graph maps each expanded package to the ordered list of packages it
// directly depends on.
//
// A name is a key only if it was expanded: visited and resolved, possibly to
// an empty list. A name that appears only inside dependency lists is a
// dangling reference; it was referenced but never expanded, either because
// it lies beyond the depth bound or because resolution failed.
//
// Keys iterate in insertion order, so everything derived from a Graph (in
// particular [Sort]) is deterministic for a given construction sequence.
//
// The zero value is not usable; use [New]. Graph is not safe for concurrent
// mutation.
type Graph struct {
	keys []string
	deps map[string][]string
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{deps: make(map[string][]string)}
}

// Set records deps as the dependency list of name, replacing any previous
// entry. Duplicate names in deps are dropped, keeping the first occurrence.
// A new key is appended to the iteration order; replacing an existing key
// keeps its position.
func (g *Graph) Set(name string, deps []string) {
	if _, ok := g.deps[name]; !ok {
		g.keys = append(g.keys, name)
	}
	g.deps[name] = dedupe(deps)
}

// Has reports whether name is a key of the graph.
func (g *Graph) Has(name string) bool {
	_, ok := g.deps[name]
	return ok
}

// Deps returns a copy of the dependency list of name and whether name is a
// key. Dangling names report ok=false.
func (g *Graph) Deps(name string) ([]string, bool) {
	d, ok := g.deps[name]
	if !ok {
		return nil, false
	}
	return slices.Clone(d), true
}

// Keys returns the graph keys in insertion order.
func (g *Graph) Keys() []string {
	return slices.Clone(g.keys)
}

// All iterates over keys and their dependency lists in insertion order.
// The yielded slices must not be modified.
func (g *Graph) All() iter.Seq2[string, []string] {
	return func(yield func(string, []string) bool) {
		for _, k := range g.keys {
			if !yield(k, g.deps[k]) {
				return
			}
		}
	}
}

// Len returns the number of keys.
func (g *Graph) Len() int { return len(g.keys) }

// EdgeCount returns the total number of dependency edges, dangling ones
// included.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, d := range g.deps {
		n += len(d)
	}
	return n
}

// Names returns every name mentioned by the graph, keys and dangling targets
// alike, in first-mention order (a key, then its dependencies, then the next
// key).
func (g *Graph) Names() []string {
	seen := make(map[string]bool, len(g.keys))
	var out []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	for _, k := range g.keys {
		add(k)
		for _, d := range g.deps[k] {
			add(d)
		}
	}
	return out
}

// Dangling returns names that appear as dependencies but are not keys, in
// first-mention order.
func (g *Graph) Dangling() []string {
	var out []string
	for _, n := range g.Names() {
		if !g.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

func dedupe(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
