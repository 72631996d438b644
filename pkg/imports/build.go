package imports

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/amas/pkg/cache"
	"github.com/matzehuels/amas/pkg/observability"
	"github.com/matzehuels/amas/pkg/source"
	"github.com/matzehuels/amas/pkg/workspace"
)

// Result is the outcome of a build.
type Result struct {
	Graph *workspace.Graph
	// Root is the absolute project root.
	Root string
	// Files is the number of discovered candidate files.
	Files int
	// Specifiers counts every extracted specifier; Resolved counts those
	// that produced an edge.
	Specifiers int
	Resolved   int
	// Diagnostics lists files that could not be read or parsed.
	Diagnostics []Diagnostic
}

// Builder runs the two-pass graph build.
type Builder struct {
	extractor Extractor
	scan      source.Options
	cache     cache.Cache
	keyer     cache.Keyer
}

// Option configures a Builder.
type Option func(*Builder)

// WithExtractor replaces the default tree-sitter extractor.
func WithExtractor(e Extractor) Option {
	return func(b *Builder) { b.extractor = e }
}

// WithScanOptions sets the file discovery options.
func WithScanOptions(o source.Options) Option {
	return func(b *Builder) { b.scan = o }
}

// WithCache memoizes extracted specifiers by file content. A nil keyer
// uses cache.NewDefaultKeyer.
func WithCache(c cache.Cache, k cache.Keyer) Option {
	return func(b *Builder) {
		b.cache = c
		if k == nil {
			k = cache.NewDefaultKeyer()
		}
		b.keyer = k
	}
}

// NewBuilder creates a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	if b.extractor == nil {
		b.extractor = NewExtractor()
	}
	if b.cache == nil {
		b.cache = cache.NewNullCache()
		b.keyer = cache.NewDefaultKeyer()
	}
	return b
}

// Build scans root and returns its import graph. The only errors are an
// unusable root and context cancellation; per-file problems are reported
// as diagnostics.
func (b *Builder) Build(ctx context.Context, root string) (*Result, error) {
	abs, err := source.Check(root)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", root, err)
	}

	res := &Result{Graph: workspace.New(), Root: abs}

	// Pass 1: one node per canonical path, in discovery order.
	var order []workspace.NodeID
	for path := range source.Walk(abs, b.scan) {
		res.Files++
		id, inserted, err := res.Graph.AddFile(Canonicalize(path))
		if err != nil {
			continue
		}
		if inserted {
			order = append(order, id)
		}
	}

	// Pass 2: extract, resolve, connect. Each node is processed once even
	// if several discovered paths (symlinks) canonicalize to it.
	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := res.Graph.File(id)
		specs, err := b.specifiers(ctx, file.Path)
		if err != nil {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{Path: file.Path, Err: err})
			continue
		}
		dir := filepath.Dir(file.Path)
		for _, spec := range specs {
			res.Specifiers++
			target, ok := Resolve(spec, dir)
			if !ok {
				continue
			}
			to, ok := res.Graph.Lookup(target)
			if !ok {
				continue
			}
			if err := res.Graph.AddEdge(id, to); err == nil {
				res.Resolved++
			}
		}
	}
	return res, nil
}

// specifiers reads path and extracts its specifiers, consulting the cache
// first. Parse failures are not cached.
func (b *Builder) specifiers(ctx context.Context, path string) ([]string, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	st := SourceTypeOf(path)
	key := b.keyer.ImportsKey(cache.Hash(src), st.String())

	if data, hit, err := b.cache.Get(ctx, key); err == nil && hit {
		var specs []string
		if json.Unmarshal(data, &specs) == nil {
			observability.Cache().OnCacheHit(ctx, "imports")
			return specs, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "imports")

	specs, err := b.extractor.Extract(ctx, src, st)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(specs); err == nil {
		if b.cache.Set(ctx, key, data, cache.ImportsTTL) == nil {
			observability.Cache().OnCacheSet(ctx, "imports", len(data))
		}
	}
	return specs, nil
}
