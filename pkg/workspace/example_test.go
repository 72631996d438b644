package workspace_test

import (
	"fmt"

	"github.com/matzehuels/amas/pkg/workspace"
)

func ExampleGraph() {
	g := workspace.New()
	app, _, _ := g.AddFile("/proj/src/app.ts")
	util, _, _ := g.AddFile("/proj/src/util.ts")
	_ = g.AddEdge(app, util)
	_ = g.AddEdge(app, util) // a second import of the same module

	fmt.Println("Nodes:", g.NodeCount())
	fmt.Println("Edges:", g.EdgeCount())
	fmt.Println("Degree of", g.File(util).Name+":", g.Degree(util))
	// Output:
	// Nodes: 2
	// Edges: 2
	// Degree of util.ts: 2
}
