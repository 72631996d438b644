package imports

import (
	"os"
	"path/filepath"
	"testing"
)

// project creates files under a fresh temp dir and returns its canonical
// path.
func project(t *testing.T, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		from  string
		spec  string
		want  string // relative to root; empty means unresolved
	}{
		{"tsx sibling", []string{"a.ts", "b.tsx"}, ".", "./b", "b.tsx"},
		{"missing", []string{"a.ts"}, ".", "./b", ""},
		{"ts before js", []string{"b.ts", "b.js"}, ".", "./b", "b.ts"},
		{"tsx before js", []string{"b.tsx", "b.js"}, ".", "./b", "b.tsx"},
		{"js before jsx", []string{"b.jsx", "b.js"}, ".", "./b", "b.js"},
		{"extension replaced", []string{"b.ts"}, ".", "./b.js", "b.ts"},
		{"explicit extension", []string{"b.jsx"}, ".", "./b.jsx", "b.jsx"},
		{"index file", []string{"lib/index.js"}, ".", "./lib", "lib/index.js"},
		{"index order", []string{"lib/index.tsx", "lib/index.ts"}, ".", "./lib", "lib/index.ts"},
		{"file before index", []string{"lib.ts", "lib/index.ts"}, ".", "./lib", "lib.ts"},
		{"parent dir", []string{"src/a.ts", "shared/util.ts"}, "src", "../shared/util", "shared/util.ts"},
		{"dot segments", []string{"src/x/y.ts"}, "src", "./x/../x/./y", "src/x/y.ts"},
		{"dotfile stem", []string{".eslintrc.ts"}, ".", "./.eslintrc", ".eslintrc.ts"},
		{"dotfile with extension", []string{".config.ts"}, ".", "./.config.js", ".config.ts"},
		{"current dir index", []string{"src/index.ts"}, "src", ".", "src/index.ts"},
		{"bare", []string{"lodash.ts", "lodash/index.ts"}, ".", "lodash", ""},
		{"scoped bare", []string{"@scope/pkg.ts"}, ".", "@scope/pkg", ""},
		{"absolute", []string{"b.ts"}, ".", "/b", ""},
		{"directory named like file", []string{"c.ts/inner.ts"}, ".", "./c", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := project(t, tt.files...)
			got, ok := Resolve(tt.spec, filepath.Join(root, tt.from))
			if tt.want == "" {
				if ok {
					t.Errorf("Resolve(%q) = %q, want unresolved", tt.spec, got)
				}
				return
			}
			want := filepath.Join(root, filepath.FromSlash(tt.want))
			if !ok || got != want {
				t.Errorf("Resolve(%q) = %q, %v; want %q", tt.spec, got, ok, want)
			}
		})
	}
}

func TestResolveThroughSymlink(t *testing.T) {
	root := project(t, "real/b.ts")
	link := filepath.Join(root, "link")
	if err := os.Symlink(filepath.Join(root, "real"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, ok := Resolve("./link/b", root)
	want := filepath.Join(root, "real", "b.ts")
	if !ok || got != want {
		t.Errorf("Resolve through symlink = %q, %v; want %q", got, ok, want)
	}
}

func TestCanonicalizeMissingPath(t *testing.T) {
	root := project(t)
	p := filepath.Join(root, "a", "..", "b", ".", "c.ts")
	if got, want := Canonicalize(p), filepath.Join(root, "b", "c.ts"); got != want {
		t.Errorf("Canonicalize(%q) = %q, want %q", p, got, want)
	}
}

func TestSourceTypeOf(t *testing.T) {
	tests := map[string]SourceType{
		"a.ts":   TypeScript,
		"a.TSX":  TSX,
		"a.js":   Script,
		"a.jsx":  Script,
		"a.mjs":  Script,
		"a.cjs":  Script,
		"a.vue":  Script,
		"a.d.ts": TypeScript,
	}
	for path, want := range tests {
		if got := SourceTypeOf(path); got != want {
			t.Errorf("SourceTypeOf(%q) = %v, want %v", path, got, want)
		}
	}
}
