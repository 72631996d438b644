package pipeline

import (
	"context"

	"github.com/matzehuels/amas/pkg/cache"
	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/imports"
)

// Build scans opts.Root and assembles its import graph. Extracted
// specifiers are memoized in c under keys from k.
func Build(ctx context.Context, c cache.Cache, k cache.Keyer, opts Options) (*imports.Result, error) {
	bopts := []imports.Option{
		imports.WithScanOptions(opts.ScanOptions()),
		imports.WithCache(c, k),
	}
	if opts.Extractor != nil {
		bopts = append(bopts, imports.WithExtractor(opts.Extractor))
	}
	return imports.NewBuilder(bopts...).Build(ctx, opts.Root)
}

// ExportGraph converts a build result to its serialized form, diagnostics
// included.
func ExportGraph(b *imports.Result) graph.Graph {
	gj := graph.FromWorkspace(b.Graph)
	gj.Root = b.Root
	for _, d := range b.Diagnostics {
		gj.Diagnostics = append(gj.Diagnostics, graph.Diagnostic{Path: d.Path, Error: d.Err.Error()})
	}
	return gj
}
