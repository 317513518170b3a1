// Package pkg provides the libraries behind depwalk.
//
// # Overview
//
// depwalk resolves the transitive dependencies of a package and computes an
// order in which they can be installed. The packages are organized as:
//
//  1. [deps] - Bounded, memoized graph walk over a dependency source
//  2. [depgraph] - Graph model, install order and cycle report
//  3. [source] - Dependency sources: NuGet feed or static repository file
//  4. [integrations] - HTTP client shared by registry clients, and the NuGet v3 client
//  5. [cache] - Response caches (file, Redis, none) and retry helpers
//  6. [pipeline] - Orchestration (validate → walk → report)
//  7. [io], [render] - JSON reports, DOT and D2 output
//
// # Architecture
//
// The typical data flow through depwalk:
//
//	NuGet feed / repository file
//	         ↓
//	    [source] package (one deps.Source per run)
//	         ↓
//	    [deps] package (depth-bounded walk, fetch at most once)
//	         ↓
//	    [depgraph] package (install order, cycles)
//	         ↓
//	    text / JSON / DOT / D2 output
//
// # Quick Start
//
//	src, err := source.New(ctx, source.Config{Mode: source.ModeTest, Repo: "repo.json"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	res, err := deps.NewBuilder(src, deps.Options{MaxDepth: 3}).Build(ctx, "A")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(depgraph.Sort(res.Graph).Packages)
//
// [deps]: github.com/matzehuels/depwalk/pkg/deps
// [depgraph]: github.com/matzehuels/depwalk/pkg/depgraph
// [source]: github.com/matzehuels/depwalk/pkg/source
// [integrations]: github.com/matzehuels/depwalk/pkg/integrations
// [cache]: github.com/matzehuels/depwalk/pkg/cache
// [pipeline]: github.com/matzehuels/depwalk/pkg/pipeline
// [io]: github.com/matzehuels/depwalk/pkg/io
// [render]: github.com/matzehuels/depwalk/pkg/render
package pkg
