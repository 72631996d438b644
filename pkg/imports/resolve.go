package imports

import (
	"os"
	"path/filepath"
	"strings"
)

// probeExtensions are tried, in order, in place of the specifier's own
// extension.
var probeExtensions = []string{".ts", ".tsx", ".js", ".jsx"}

// Resolve maps a relative specifier imported from fromDir to the canonical
// path of an existing file. It reports false for bare specifiers and for
// relative ones that match no file.
//
// Candidates are probed in order:
//
//	<path>.ts  <path>.tsx  <path>.js  <path>.jsx   (existing extension replaced)
//	<path>/index.ts  ...  <path>/index.jsx
func Resolve(spec, fromDir string) (string, bool) {
	if !strings.HasPrefix(spec, ".") {
		return "", false
	}
	resolved := Canonicalize(filepath.Join(fromDir, spec))

	base := resolved
	// A dotfile name like ".eslintrc" is a stem, not an extension.
	if ext := filepath.Ext(resolved); ext != filepath.Base(resolved) {
		base = strings.TrimSuffix(resolved, ext)
	}
	for _, ext := range probeExtensions {
		if p := base + ext; isFile(p) {
			return Canonicalize(p), true
		}
	}
	for _, ext := range probeExtensions {
		if p := filepath.Join(resolved, "index"+ext); isFile(p) {
			return Canonicalize(p), true
		}
	}
	return "", false
}

// Canonicalize returns the absolute, symlink-free form of path. When the
// path cannot be resolved on disk (for example, it does not exist) the
// lexically cleaned absolute path is returned instead.
func Canonicalize(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real
	}
	return abs
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
