package source

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ErrNotDirectory is returned when the walk root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DefaultExtensions are the source extensions considered for analysis.
var DefaultExtensions = []string{".ts", ".tsx", ".js", ".jsx", ".mjs", ".cjs"}

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{"node_modules", ".git", "dist", "build", "coverage"}

// Options configures a walk. The zero value uses the defaults.
type Options struct {
	// Extensions overrides DefaultExtensions. Entries may omit the dot.
	Extensions []string
	// Exclude overrides DefaultExcludes.
	Exclude []string
	// RespectGitignore prunes paths matched by <root>/.gitignore.
	RespectGitignore bool
}

func (o Options) extensions() map[string]bool {
	exts := o.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		set[ext] = true
	}
	return set
}

func (o Options) excludes() []string {
	if len(o.Exclude) == 0 {
		return DefaultExcludes
	}
	return o.Exclude
}

// Check verifies that root exists and is a directory, returning its
// absolute form.
func Check(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", abs, ErrNotDirectory)
	}
	return abs, nil
}

// Walk yields the candidate files under root as absolute paths. The
// sequence is empty if root cannot be read; call [Check] first to tell a
// bad root apart from an empty project.
func Walk(root string, opts Options) iter.Seq[string] {
	return func(yield func(string) bool) {
		abs, err := filepath.Abs(root)
		if err != nil {
			return
		}
		exts := opts.extensions()
		excludes := opts.excludes()

		var gi *ignore.GitIgnore
		if opts.RespectGitignore {
			gi, _ = ignore.CompileIgnoreFile(filepath.Join(abs, ".gitignore"))
		}

		_ = filepath.WalkDir(abs, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d != nil && d.IsDir() && path != abs {
					return filepath.SkipDir
				}
				return nil
			}
			if path == abs {
				return nil
			}

			rel, _ := filepath.Rel(abs, path)
			if d.IsDir() {
				if slices.Contains(excludes, d.Name()) || ignored(gi, rel, true) {
					return filepath.SkipDir
				}
				return nil
			}
			if !exts[strings.ToLower(filepath.Ext(path))] || ignored(gi, rel, false) {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// Files collects [Walk] into a slice.
func Files(root string, opts Options) []string {
	return slices.Collect(Walk(root, opts))
}

func ignored(gi *ignore.GitIgnore, rel string, dir bool) bool {
	if gi == nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	if dir {
		return gi.MatchesPath(rel) || gi.MatchesPath(rel+"/")
	}
	return gi.MatchesPath(rel)
}
