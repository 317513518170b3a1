// Package depgraph holds the dependency graph model and the algorithms that
// run on a finished graph.
//
// # Graph
//
// [Graph] maps a package name to the ordered list of its direct
// dependencies. Only expanded packages are keys; a name that appears only as
// a dependency is dangling (beyond the depth bound, or unresolved). Keys keep
// insertion order.
//
// # Install order
//
// [Sort] produces an [InstallOrder] where dependencies come before their
// dependents. Packages that are on a cycle, or that can reach one, are
// excluded rather than ordered:
//
//	g := depgraph.New()
//	g.Set("A", []string{"B"})
//	g.Set("B", []string{"C"})
//	g.Set("C", []string{"B"})
//	order := depgraph.Sort(g)
//	// order.Packages == []  (A leads into the B<->C cycle)
//	// order.Excluded == [B C A]
//
// Dangling names are ignored by Sort: they are neither ordered nor treated
// as errors.
//
// # Cycle report
//
// [Cycles] lists the strongly connected components of the graph so callers
// can explain why packages were excluded.
package depgraph
