package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/pipeline"
)

// graphCommand creates the graph command for building an import graph.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		scan   scanFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph [root]",
		Short: "Build the import graph of a project",
		Long: `Build the import graph of a project and write it as JSON.

Every discovered source file becomes a node. Relative imports, re-exports,
dynamic import() calls and require() calls that resolve to another discovered
file become edges. Files that cannot be parsed are listed under "diagnostics"
and contribute no edges.

Extracted imports are cached per file content, so rebuilding an unchanged
project is fast.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			scan.apply(&opts)
			return c.runGraph(cmd.Context(), rootArg(args), opts, output)
		},
	}

	scan.bind(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

func (c *CLI) runGraph(ctx context.Context, root string, opts pipeline.Options, output string) error {
	cfg, err := c.projectOptions(root, &opts)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinner(ctx, "Building import graph...")
	spinner.Start()
	built, err := runner.Build(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	gj := pipeline.ExportGraph(built)
	if output == "" {
		return graph.WriteGraph(gj, stdout)
	}
	if err := graph.WriteGraphFile(gj, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Import graph built")
	printFile(output)
	printStats(graphStats{
		files:       built.Files,
		nodes:       built.Graph.NodeCount(),
		edges:       built.Graph.EdgeCount(),
		diagnostics: len(built.Diagnostics),
	})
	printNewline()
	printNextStep("Lay it out", "amas layout "+output)
	return nil
}
