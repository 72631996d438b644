package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/amas/pkg/cache"
	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/imports"
	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/observability"
	"github.com/matzehuels/amas/pkg/workspace"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the server share it so that caching and logging stay in one
// place.
//
// The Runner is stateless except for the cache and logger; it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options as long as the cache is safe for
// concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → layout → render pipeline.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	result := &Result{}

	// Stage 1: Build
	buildStart := time.Now()
	built, err := r.Build(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Build = built
	result.Graph = built.Graph
	result.Stats = statsOf(built)
	result.Stats.BuildTime = time.Since(buildStart)

	// Stage 2: Layout
	layoutStart := time.Now()
	res, err := r.Layout(ctx, built.Graph, opts)
	if err != nil {
		return nil, err
	}
	result.Layout = res
	result.Stats.LayoutTime = time.Since(layoutStart)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, hash, hit, err := r.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.LayoutHash = hash
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build scans the project and assembles its import graph. Per-file
// diagnostics are logged as warnings; only an unusable root fails.
func (r *Runner) Build(ctx context.Context, opts Options) (*imports.Result, error) {
	if err := opts.ValidateForBuild(); err != nil {
		return nil, err
	}

	hooks := observability.Pipeline()
	hooks.OnBuildStart(ctx, opts.Root)
	start := time.Now()

	built, err := Build(ctx, r.Cache, r.Keyer, opts)
	dur := time.Since(start)
	if err != nil {
		hooks.OnBuildComplete(ctx, opts.Root, observability.BuildStats{}, dur, err)
		return nil, fmt.Errorf("build: %w", err)
	}

	stats := observability.BuildStats{
		Files:       built.Files,
		Nodes:       built.Graph.NodeCount(),
		Edges:       built.Graph.EdgeCount(),
		Diagnostics: len(built.Diagnostics),
	}
	hooks.OnBuildComplete(ctx, opts.Root, stats, dur, nil)

	for _, d := range built.Diagnostics {
		r.Logger.Warn("skipped file", "path", d.Path, "err", d.Err)
	}
	r.Logger.Info("built import graph",
		"files", stats.Files,
		"nodes", stats.Nodes,
		"edges", stats.Edges,
		"diagnostics", stats.Diagnostics,
		"duration", dur)

	return built, nil
}

// Layout computes a fresh layout for g.
func (r *Runner) Layout(ctx context.Context, g *workspace.Graph, opts Options) (layout.Result, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return layout.Result{}, err
	}

	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, g.NodeCount())
	start := time.Now()
	res := ComputeLayout(g, opts)
	dur := time.Since(start)
	hooks.OnLayoutComplete(ctx, g.NodeCount(), dur)

	r.Logger.Debug("computed layout",
		"nodes", res.Len(),
		"iterations", opts.Iterations,
		"seed", opts.Seed,
		"duration", dur)
	return res, nil
}

// RenderWithCacheInfo renders every requested format, serving each from
// the artifact cache when possible. It also returns the layout hash used
// for cache keys and whether every format was a cache hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, string, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, "", false, err
	}

	hash, err := cache.HashJSON(graph.FromResult(res, opts.LayoutOptions()))
	if err != nil {
		return nil, "", false, fmt.Errorf("hash layout: %w", err)
	}

	hooks := observability.Pipeline()
	cacheHooks := observability.Cache()
	artifacts := make(map[string][]byte, len(opts.Formats))
	allCached := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			cacheHooks.OnCacheHit(ctx, "artifact")
			artifacts[format] = data
			continue
		}
		cacheHooks.OnCacheMiss(ctx, "artifact")
		allCached = false

		hooks.OnRenderStart(ctx, format)
		start := time.Now()
		data, err := renderOne(ctx, res, format, opts)
		hooks.OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, "", false, err
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, cache.ArtifactTTL); err != nil {
			r.Logger.Debug("cache write failed", "format", format, "err", err)
		} else {
			cacheHooks.OnCacheSet(ctx, "artifact", len(data))
		}
	}

	return artifacts, hash, allCached, nil
}

// Render is a convenience wrapper that discards the cache info.
func (r *Runner) Render(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	artifacts, _, _, err := r.RenderWithCacheInfo(ctx, res, opts)
	return artifacts, err
}

func renderOne(ctx context.Context, res layout.Result, format string, opts Options) ([]byte, error) {
	single := opts
	single.Formats = []string{format}
	out, err := Render(ctx, res, single)
	if err != nil {
		return nil, err
	}
	return out[format], nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func statsOf(b *imports.Result) Stats {
	return Stats{
		Files:       b.Files,
		NodeCount:   b.Graph.NodeCount(),
		EdgeCount:   b.Graph.EdgeCount(),
		Specifiers:  b.Specifiers,
		Resolved:    b.Resolved,
		Diagnostics: len(b.Diagnostics),
	}
}
