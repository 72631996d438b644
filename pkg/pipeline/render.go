package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/render"
	"github.com/matzehuels/amas/pkg/render/nodelink"
	"github.com/matzehuels/amas/pkg/render/sink"
)

// Render generates output artifacts in the requested formats from a
// padded, unzoomed scene of res.
func Render(ctx context.Context, res layout.Result, opts Options) (map[string][]byte, error) {
	scene := render.StaticScene(res, opts.Selected...)
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderScene(ctx, scene, format, opts)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderScene renders one format of an already framed scene. Hosts with a
// live viewport use this directly.
func RenderScene(ctx context.Context, scene render.Scene, format string, opts Options) ([]byte, error) {
	switch format {
	case render.FormatSVG:
		var svgOpts []sink.SVGOption
		if opts.HideNames {
			svgOpts = append(svgOpts, sink.WithoutNames())
		}
		if opts.Interactive {
			svgOpts = append(svgOpts, sink.WithInteraction())
		}
		return sink.RenderSVG(scene, svgOpts...), nil

	case render.FormatPNG:
		pngOpts := []sink.PNGOption{sink.WithScale(opts.Scale)}
		if opts.HideNames {
			pngOpts = append(pngOpts, sink.WithoutPNGNames())
		}
		data, err := sink.RenderPNG(scene, pngOpts...)
		if err != nil {
			return nil, fmt.Errorf("render png: %w", err)
		}
		return data, nil

	case render.FormatDOT:
		return []byte(nodelink.ToDOT(scene, nodelink.Options{})), nil

	case render.FormatGraphviz:
		data, err := nodelink.RenderSVG(ctx, nodelink.ToDOT(scene, nodelink.Options{}))
		if err != nil {
			return nil, fmt.Errorf("render graphviz: %w", err)
		}
		return data, nil

	default:
		return nil, ValidateFormat(format)
	}
}

// ContentType returns the MIME type of a format.
func ContentType(format string) string {
	switch format {
	case render.FormatSVG, render.FormatGraphviz:
		return "image/svg+xml"
	case render.FormatPNG:
		return "image/png"
	case render.FormatDOT:
		return "text/vnd.graphviz"
	default:
		return "application/octet-stream"
	}
}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == render.FormatGraphviz {
		return "graphviz.svg"
	}
	return format
}
