// Package source discovers candidate JavaScript and TypeScript files under a
// project root.
//
// [Walk] yields paths lazily in lexical order, so two walks over an unchanged
// tree produce the same sequence and therefore the same node IDs downstream.
// A file is a candidate when its extension is one of [DefaultExtensions] and
// no directory between the root and the file is named in [DefaultExcludes].
// Excluded directories are pruned, not descended into.
//
// Unreadable directories and files are skipped silently; the walk never
// fails once the root itself has been validated.
//
// With Options.RespectGitignore set, patterns from the root's .gitignore
// (github.com/sabhiram/go-gitignore) prune matching paths as well.
package source
