package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/pipeline"
	"github.com/matzehuels/amas/pkg/source"
)

// scanCommand lists the files a build would analyze.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		scan     scanFlags
		absolute bool
	)

	cmd := &cobra.Command{
		Use:   "scan [root]",
		Short: "List the source files amas would analyze",
		Long: `List the source files amas would analyze.

Files are discovered recursively under root (default: the current directory)
and printed relative to it, in lexical order. Use this to check extension and
exclusion settings before building a graph.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := rootArg(args)
			opts := pipeline.Options{}
			scan.apply(&opts)
			if _, err := c.projectOptions(root, &opts); err != nil {
				return err
			}
			if err := opts.ValidateForBuild(); err != nil {
				return err
			}

			abs, err := source.Check(root)
			if err != nil {
				return err
			}
			n := 0
			for path := range source.Walk(abs, opts.ScanOptions()) {
				if !absolute {
					path, _ = filepath.Rel(abs, path)
				}
				fmt.Fprintln(stdout, path)
				n++
			}
			c.Logger.Debug("scanned", "root", abs, "files", n)
			return nil
		},
	}

	scan.bind(cmd)
	cmd.Flags().BoolVar(&absolute, "abs", false, "print absolute paths")

	return cmd
}
