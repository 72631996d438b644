package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/pipeline"
)

// layoutCommand creates the layout command for computing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute a force-directed layout from an import graph",
		Long: `Compute a force-directed layout from an import graph.

The layout command takes a graph.json file (produced by 'graph') and runs the
force simulation over it. The output is a layout.json file with a position for
every node, which 'render' turns into SVG, PNG or Graphviz output.

Layouts are deterministic for a given seed and never cached.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			lf.apply(&opts)
			return c.runLayout(cmd.Context(), args[0], opts, output)
		},
	}

	lf.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string) error {
	g, err := graph.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	cfg, err := c.loadConfig("")
	if err != nil {
		return err
	}
	opts.Logger = c.Logger
	cfg.Apply(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	// Layouts are never cached.
	runner := pipeline.NewRunner(nil, nil, c.Logger)

	spinner := newSpinner(ctx, "Computing layout...")
	spinner.Start()
	res, err := runner.Layout(ctx, g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if output == "" {
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := graph.WriteLayoutFile(graph.FromResult(res, opts.LayoutOptions()), output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Layout complete")
	printFile(output)
	printStats(graphStats{nodes: g.NodeCount(), edges: g.EdgeCount()})
	printNewline()
	printNextStep("Render", "amas render "+output)
	return nil
}
