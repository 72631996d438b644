package source

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("// "+f+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func relAll(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			t.Fatal(err)
		}
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestWalkFiltersExtensionsAndExcludes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root,
		"a.ts", "b.tsx", "c.js", "d.jsx", "e.mjs", "f.cjs",
		"README.md", "style.css", "types.d.ts",
		"node_modules/pkg/index.js",
		".git/hooks/pre-commit.js",
		"dist/bundle.js",
		"build/out.js",
		"coverage/lcov.js",
		"src/deep/node_modules/x.js",
		"src/lib/util.ts",
		"src/builder/ok.ts",
	)

	got := relAll(t, root, Files(root, Options{}))
	want := []string{
		"a.ts", "b.tsx", "c.js", "d.jsx", "e.mjs", "f.cjs",
		"src/builder/ok.ts", "src/lib/util.ts", "types.d.ts",
	}
	if !slices.Equal(got, want) {
		t.Errorf("Files() =\n  %v\nwant\n  %v", got, want)
	}
}

func TestWalkIsStable(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "z.ts", "a/b.ts", "a/a.ts", "m.js")

	first := Files(root, Options{})
	second := Files(root, Options{})
	if !slices.Equal(first, second) {
		t.Errorf("walks differ: %v vs %v", first, second)
	}
}

func TestWalkStopsEarly(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.ts", "c.ts")

	var seen []string
	for p := range Walk(root, Options{}) {
		seen = append(seen, p)
		if len(seen) == 2 {
			break
		}
	}
	if len(seen) != 2 {
		t.Errorf("saw %d files, want 2", len(seen))
	}
}

func TestWalkCustomOptions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "b.vue", "vendor/c.vue", "B.VUE")

	got := relAll(t, root, Files(root, Options{Extensions: []string{"vue"}, Exclude: []string{"vendor"}}))
	want := []string{"B.VUE", "b.vue"}
	if !slices.Equal(got, want) {
		t.Errorf("Files() = %v, want %v", got, want)
	}
}

func TestWalkRespectsGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts", "gen/out.ts", "src/skip.generated.ts", "src/keep.ts")
	if err := os.WriteFile(filepath.Join(root, ".gitignore"), []byte("gen/\n*.generated.ts\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got := relAll(t, root, Files(root, Options{RespectGitignore: true}))
	want := []string{"a.ts", "src/keep.ts"}
	if !slices.Equal(got, want) {
		t.Errorf("with gitignore: %v, want %v", got, want)
	}

	all := Files(root, Options{})
	if len(all) != 4 {
		t.Errorf("without gitignore: %d files, want 4", len(all))
	}
}

func TestWalkSkipsUnreadableDirectories(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}
	root := t.TempDir()
	writeTree(t, root, "a.ts", "locked/b.ts")
	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	got := relAll(t, root, Files(root, Options{}))
	if !slices.Equal(got, []string{"a.ts"}) {
		t.Errorf("Files() = %v, want [a.ts]", got)
	}
}

func TestWalkMissingRoot(t *testing.T) {
	if got := Files(filepath.Join(t.TempDir(), "missing"), Options{}); len(got) != 0 {
		t.Errorf("Files(missing) = %v, want empty", got)
	}
}

func TestCheck(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.ts")

	if _, err := Check(root); err != nil {
		t.Errorf("Check(dir) = %v", err)
	}
	if _, err := Check(filepath.Join(root, "a.ts")); !errors.Is(err, ErrNotDirectory) {
		t.Errorf("Check(file) = %v, want ErrNotDirectory", err)
	}
	if _, err := Check(filepath.Join(root, "nope")); !os.IsNotExist(err) {
		t.Errorf("Check(missing) = %v, want not-exist", err)
	}
}
