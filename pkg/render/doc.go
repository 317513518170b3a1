// Package render turns dependency graphs into diagram source text.
//
// Two formats are supported: Graphviz DOT ([ToDOT]) and D2 ([ToD2]). Both
// produce plain text for external tools such as dot(1) or d2(1); no image
// rendering happens here.
//
//	dot := render.ToDOT(res.Graph, render.Options{Depths: res.Depths})
//	os.WriteFile("deps.dot", []byte(dot), 0o644)
//
// Nodes appear in first-mention order and edges follow the declaration order
// of each dependency list, so the output is stable for a given graph.
// Packages that were referenced but never expanded are drawn dotted, and
// packages named in [Options.Excluded] are drawn dashed and grey.
package render
