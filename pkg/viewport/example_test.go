package viewport_test

import (
	"fmt"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/viewport"
	"github.com/matzehuels/amas/pkg/workspace"
)

func ExampleController() {
	res := layout.Result{Placements: []layout.Placement{
		{ID: 0, File: workspace.NewSourceFile("/proj/app.ts"), Position: layout.Point{X: 100, Y: 100}},
		{ID: 1, File: workspace.NewSourceFile("/proj/util.ts"), Position: layout.Point{X: 200, Y: 100}},
	}}

	c := viewport.New(viewport.WithOpener(viewport.OpenerFunc(func(path string) error {
		fmt.Println("open", path)
		return nil
	})))
	c.Frame(res)

	// Hover util.ts and select it.
	c.PointerMove(200, 100)
	c.Click()
	fmt.Println("selected:", c.Selected())

	// Drag the view 50px to the right; the hover follows the pointer.
	c.PointerDown(200, 100)
	c.PointerMove(250, 100)
	c.PointerUp()
	h, _ := c.Hovered()
	fmt.Println("hovered:", h.File.Name)

	_, _ = c.DoubleClick()
	// Output:
	// selected: [/proj/util.ts]
	// hovered: util.ts
	// open /proj/util.ts
}
