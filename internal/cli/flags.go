package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/imports"
	"github.com/matzehuels/amas/pkg/pipeline"
)

// Flag values default to zero so that amas.toml can fill whatever the
// command line leaves unset. Pipeline defaults apply after both.

// scanFlags control file discovery.
type scanFlags struct {
	extensions string
	exclude    string
	gitignore  bool
}

func (f *scanFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.extensions, "ext", "", "source extensions (default: .ts,.tsx,.js,.jsx,.mjs,.cjs)")
	cmd.Flags().StringVar(&f.exclude, "exclude", "", "directory names to skip (default: node_modules,.git,dist,build,coverage)")
	cmd.Flags().BoolVar(&f.gitignore, "gitignore", false, "skip paths matched by <root>/.gitignore")
}

func (f *scanFlags) apply(o *pipeline.Options) {
	o.Extensions = parseList(f.extensions)
	o.Exclude = parseList(f.exclude)
	o.RespectGitignore = f.gitignore
}

// layoutFlags control the force simulation.
type layoutFlags struct {
	width       float64
	height      float64
	iterations  int
	seed        uint64
	noCentering bool
}

func (f *layoutFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "canvas width (default 800)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "canvas height (default 600)")
	cmd.Flags().IntVar(&f.iterations, "iterations", 0, "simulation steps (default 100)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed for initial positions; 0 selects the default 42")
	cmd.Flags().BoolVar(&f.noCentering, "no-centering", false, "disable the pull toward the canvas center")
}

func (f *layoutFlags) apply(o *pipeline.Options) {
	o.Width = f.width
	o.Height = f.height
	o.Iterations = f.iterations
	o.Seed = f.seed
	o.NoCentering = f.noCentering
}

// renderFlags control output.
type renderFlags struct {
	formats     string
	scale       float64
	hideNames   bool
	interactive bool
	selected    string
}

func (f *renderFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, dot, graphviz (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor (default 1)")
	cmd.Flags().BoolVar(&f.hideNames, "no-names", false, "omit file name labels")
	cmd.Flags().BoolVar(&f.interactive, "interactive", false, "add hover styling to SVG output")
	cmd.Flags().StringVar(&f.selected, "select", "", "files to highlight (comma-separated)")
}

// apply copies the render flags into o. Selected paths are resolved
// against base and canonicalized, matching node identity.
func (f *renderFlags) apply(o *pipeline.Options, base string) error {
	o.Formats = parseFormats(f.formats)
	if err := pipeline.ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Scale = f.scale
	o.HideNames = f.hideNames
	o.Interactive = f.interactive
	o.Selected = selectedPaths(base, parseList(f.selected))
	return nil
}

func selectedPaths(base string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		out = append(out, imports.Canonicalize(p))
	}
	return out
}
