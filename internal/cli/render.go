package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/pipeline"
	"github.com/matzehuels/amas/pkg/render"
)

// renderCommand creates the render command. It accepts either a project
// root, running the whole pipeline, or a layout.json from 'layout'.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		scan   scanFlags
		lf     layoutFlags
		rf     renderFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "render [root|layout.json]",
		Short: "Render an import graph to SVG, PNG, DOT or Graphviz SVG",
		Long: `Render an import graph to SVG, PNG, DOT or Graphviz SVG.

Given a project root (default: the current directory), render builds the
import graph, lays it out and draws it. Given a layout.json produced by
'layout', it only draws.

Each file is drawn as a square labeled with its name, each import as a line.
Files passed to --select are highlighted. The graphviz format hands the pinned
positions to Graphviz (neato) for drawing.

Rendered outputs are cached per layout and render options.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := rootArg(args)
			opts := pipeline.Options{}
			if isLayoutFile(input) {
				if err := rf.apply(&opts, "."); err != nil {
					return err
				}
				return c.renderLayout(cmd.Context(), input, opts, output)
			}
			scan.apply(&opts)
			lf.apply(&opts)
			if err := rf.apply(&opts, input); err != nil {
				return err
			}
			return c.renderProject(cmd.Context(), input, opts, output)
		},
	}

	scan.bind(cmd)
	lf.bind(cmd)
	rf.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output base path (default: named after the input)")

	return cmd
}

func (c *CLI) renderProject(ctx context.Context, root string, opts pipeline.Options, output string) error {
	cfg, err := c.projectOptions(root, &opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Rendering import graph...")
	spinner.Start()
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	base := basePath(output, projectBase(root))
	paths, err := writeArtifacts(result.Artifacts, base)
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", root)
	for _, p := range paths {
		printFile(p)
	}
	printStats(graphStats{
		files:       result.Stats.Files,
		nodes:       result.Stats.NodeCount,
		edges:       result.Stats.EdgeCount,
		diagnostics: result.Stats.Diagnostics,
		cached:      result.CacheInfo.RenderHit,
		showCache:   true,
	})
	return nil
}

func (c *CLI) renderLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	l, err := graph.ReadLayoutFile(input)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}
	res, err := graph.ToResult(l)
	if err != nil {
		return fmt.Errorf("load layout %s: %w", input, err)
	}

	cfg, err := c.loadConfig("")
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	cfg.Apply(&opts)

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	progress := newProgress(c.Logger)
	artifacts, _, hit, err := runner.RenderWithCacheInfo(ctx, res, opts)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	progress.done(fmt.Sprintf("rendered %d format(s)", len(artifacts)))

	paths, err := writeArtifacts(artifacts, basePath(output, layoutBase(input)))
	if err != nil {
		return err
	}

	printSuccess("Rendered %s", input)
	for _, p := range paths {
		printFile(p)
	}
	printStats(graphStats{nodes: res.Len(), edges: len(res.Edges), cached: hit, showCache: true})
	return nil
}

// =============================================================================
// Output Paths
// =============================================================================

// isLayoutFile reports whether path names a JSON file rather than a project.
func isLayoutFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && strings.EqualFold(filepath.Ext(path), ".json")
}

// projectBase names outputs after the project directory.
func projectBase(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return appName
	}
	if name := filepath.Base(abs); name != string(filepath.Separator) && name != "." {
		return name
	}
	return appName
}

// layoutBase strips ".layout.json" (or ".json") from a layout path.
func layoutBase(input string) string {
	if base, ok := strings.CutSuffix(input, ".layout.json"); ok {
		return base
	}
	return strings.TrimSuffix(input, filepath.Ext(input))
}

// basePath returns output with any known format extension removed, or
// fallback when output is empty.
func basePath(output, fallback string) string {
	if output == "" {
		return fallback
	}
	// graphviz first: its extension ends in ".svg".
	for _, f := range []string{render.FormatGraphviz, render.FormatSVG, render.FormatPNG, render.FormatDOT} {
		if base, ok := strings.CutSuffix(output, "."+pipeline.Extension(f)); ok {
			return base
		}
	}
	return output
}

// writeArtifacts writes each artifact to base.<ext> in format order and
// returns the paths written.
func writeArtifacts(artifacts map[string][]byte, base string) ([]string, error) {
	var paths []string
	for _, f := range render.Formats {
		data, ok := artifacts[f]
		if !ok {
			continue
		}
		path := base + "." + pipeline.Extension(f)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
