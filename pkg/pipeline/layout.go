package pipeline

import (
	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/workspace"
)

// =============================================================================
// Layout Generation
// =============================================================================

// ComputeLayout runs the force simulation over g.
// The result is never cached: every call starts from the seeded positions.
func ComputeLayout(g *workspace.Graph, opts Options) layout.Result {
	opts.SetLayoutDefaults()
	return layout.Run(g, opts.LayoutOptions())
}
