// Package imports builds a [workspace.Graph] from the import relationships
// of a JavaScript or TypeScript source tree.
//
// Building has three parts:
//
//   - [Extractor] walks a file's syntax tree (tree-sitter) and returns the
//     raw specifiers of static imports, re-exports, dynamic import() calls
//     with a string literal argument, and require() calls.
//   - [Resolve] maps a relative specifier to a canonical file path by
//     probing .ts, .tsx, .js, .jsx and then index files. Bare specifiers
//     ("react", "@scope/pkg") are never resolved.
//   - [Builder] runs a two-pass build: every discovered file becomes a node
//     first, then each resolved specifier that lands on a node adds an edge.
//
// Parse failures do not stop a build. The file contributes no edges and a
// [Diagnostic] is returned on the [Result].
//
// The tree-sitter extractor requires cgo. Without it, [NewExtractor]
// returns an extractor that fails every file with [ErrUnsupported].
package imports
