// Package io provides JSON import and export for dependency walk results.
//
// # Report Format
//
// [NewReport] turns a [deps.Result] into a self-describing document that
// [WriteJSON] and [ExportJSON] encode:
//
//	{
//	  "run_id": "0b7c...",
//	  "tool": {"version": "v1.0.0", "commit": "...", "date": "..."},
//	  "root": "App",
//	  "options": {"mode": "test", "repo": "repo.json", "max_depth": 3},
//	  "graph": [
//	    {"name": "App", "depth": 0, "dependencies": ["Http", "Json"]},
//	    {"name": "Http", "depth": 1, "dependencies": ["Json"]},
//	    {"name": "Json", "depth": 1, "dependencies": []}
//	  ],
//	  "install_order": ["Json", "Http", "App"],
//	  "excluded": [],
//	  "unresolved": [],
//	  "cycles": [],
//	  "stats": {"packages": 3, "edges": 3, "fetches": 3, "duration_ms": 12}
//	}
//
// The graph array keeps the order in which packages were expanded, which is
// the order [depgraph.Sort] depends on.
//
// # Import
//
// [ReadJSON] and [ImportJSON] accept either a full report or a bare mapping
// of package name to direct dependencies:
//
//	{"A": ["B", "C"], "B": ["D"], "C": ["D"], "D": []}
//
// A bare mapping has no inherent order, so its keys are added sorted by name.
//
// [deps.Result]: github.com/matzehuels/depwalk/pkg/deps.Result
// [depgraph.Sort]: github.com/matzehuels/depwalk/pkg/depgraph.Sort
package io
