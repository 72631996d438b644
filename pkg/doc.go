// Package pkg provides the core libraries for amas import-graph exploration.
//
// # Overview
//
// amas scans a JavaScript/TypeScript source tree, extracts the imports of
// every file, resolves the relative ones to other files in the tree and lays
// the resulting graph out with a force simulation. The pkg directory is
// organized into three areas:
//
//  1. Core - [source], [imports], [workspace], [layout], [viewport]
//  2. Output - [render], [graph]
//  3. Infrastructure - [pipeline], [cache], [observability], [errors], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Project root
//	     ↓
//	[source] package (discover .ts/.tsx/.js/.jsx/.mjs/.cjs files)
//	     ↓
//	[imports] package (extract specifiers, resolve, assemble)
//	     ↓
//	[workspace] package (undirected multigraph of files)
//	     ↓
//	[layout] package (force-directed placement)
//	     ↓
//	[viewport] package (zoom, pan, hover, selection)
//	     ↓
//	[render] package (SVG/PNG/DOT output, terminal viewer)
//
// # Quick Start
//
// Build the import graph of a project and render it:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/amas/pkg/imports"
//	    "github.com/matzehuels/amas/pkg/layout"
//	    "github.com/matzehuels/amas/pkg/render"
//	    "github.com/matzehuels/amas/pkg/render/sink"
//	)
//
//	// 1. Build the graph
//	res, _ := imports.NewBuilder().Build(context.Background(), "./web")
//
//	// 2. Compute layout
//	l := layout.Run(res.Graph, layout.Options{})
//
//	// 3. Render to SVG
//	svg := sink.RenderSVG(render.StaticScene(l))
//
// # Main Packages
//
// [source] - File discovery. Skips node_modules, .git, dist, build and
// coverage anywhere below the root, optionally honoring .gitignore.
//
// [imports] - Import extraction with tree-sitter (static imports, re-exports,
// dynamic import() and require() with literal arguments), relative path
// resolution with extension and index probing, and the two-pass graph
// builder. Extracted specifiers can be cached per file content.
//
// [workspace] - The import graph: one node per canonical path, undirected
// weighted edges, duplicates and self-loops preserved.
//
// [layout] - Fruchterman-Reingold style simulation with seeded initial
// positions, cooling temperature and an optional pull toward the center.
//
// [viewport] - Zoom, pan, hit-testing, hover and selection for an
// interactive host. Opening files is delegated to an [viewport.Opener].
//
// [render] - Scenes (what is drawn) and sinks: SVG, PNG and DOT, plus
// Graphviz SVG with pinned positions via [render/nodelink].
//
// [graph] - JSON serialization for graphs and layouts.
//
// [pipeline] - The build → layout → render pipeline shared by every command
// and the HTTP server, with amas.toml configuration.
//
// [cache] - File, Redis, in-memory LRU and null caches with content-addressed
// keys, plus a two-tier cache for long-running hosts.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example                 # Examples only
//	CGO_ENABLED=0 go test ./pkg/...      # Without the tree-sitter grammars
//
// [source]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/source
// [imports]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/imports
// [workspace]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/workspace
// [layout]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/layout
// [viewport]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/viewport
// [viewport.Opener]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/viewport#Opener
// [render]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/render/nodelink
// [graph]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/graph
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/amas/pkg/buildinfo
package pkg
