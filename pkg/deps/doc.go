// Package deps builds dependency graphs by walking a dependency source.
//
// # Overview
//
// A [Source] answers one question: what does package X directly depend on?
// The [Builder] asks that question repeatedly, starting from a root package,
// and records the answers in a [depgraph.Graph]:
//
//	b := deps.NewBuilder(src, deps.Options{MaxDepth: 3, Filter: "Test"})
//	res, err := b.Build(ctx, "Newtonsoft.Json")
//	order := depgraph.Sort(res.Graph)
//
// Sources live in [github.com/matzehuels/depwalk/pkg/source]: a NuGet v3
// registry client for online use and a static file for offline runs and
// tests. Any function with the right signature works too, via [SourceFunc].
//
// # Traversal
//
// The walk is a depth-first search with three bounds:
//
//   - Depth: the root is level 0; packages deeper than Options.MaxDepth are
//     not expanded and remain as dangling dependency names.
//   - Filter: any name containing Options.Filter is dropped, both as a node
//     and as a dependency. See [ShouldSkip].
//   - Memoization: each package is resolved at most once per walk, however
//     many parents reach it. A dependency back onto the current ancestor
//     chain is recorded as an edge but not followed.
//
// # Failures
//
// A package whose resolution fails is logged at warn level and listed in
// [Result].Unresolved. It gets no graph entry, so its parents simply point at
// a dangling name and the rest of the graph is still ordered. Only invalid
// options, an empty root or a cancelled context make [Builder.Build] fail.
package deps
