package graph_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/amas/pkg/graph"
	"github.com/matzehuels/amas/pkg/workspace"
)

func ExampleWriteGraph() {
	g := workspace.New()
	app, _, _ := g.AddFile("/proj/app.ts")
	util, _, _ := g.AddFile("/proj/util.ts")
	_ = g.AddEdge(app, util)

	gj := graph.FromWorkspace(g)
	gj.Root = "/proj"
	if err := graph.WriteGraph(gj, os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// {
	//   "root": "/proj",
	//   "nodes": [
	//     {
	//       "id": 0,
	//       "path": "/proj/app.ts",
	//       "name": "app.ts",
	//       "degree": 1
	//     },
	//     {
	//       "id": 1,
	//       "path": "/proj/util.ts",
	//       "name": "util.ts",
	//       "degree": 1
	//     }
	//   ],
	//   "edges": [
	//     {
	//       "a": 0,
	//       "b": 1,
	//       "weight": 1
	//     }
	//   ]
	// }
}
