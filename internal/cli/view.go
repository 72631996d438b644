package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/amas/pkg/layout"
	"github.com/matzehuels/amas/pkg/pipeline"
	"github.com/matzehuels/amas/pkg/render"
	"github.com/matzehuels/amas/pkg/viewport"
	"github.com/matzehuels/amas/pkg/workspace"
)

// Terminal cells map to screen units of the viewport controller. Cells are
// about twice as tall as they are wide.
const (
	cellWidth  = 4.0
	cellHeight = 8.0

	statusLines       = 2
	doubleClickWindow = 400 * time.Millisecond
	wheelStep         = 20.0
	keyPanStep        = 4 * cellWidth
	keyZoomStep       = 0.1
	pinchStep         = 0.5
	snapshotFile      = "amas-view.svg"
)

// viewCommand creates the interactive terminal viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		scan scanFlags
		lf   layoutFlags
	)

	cmd := &cobra.Command{
		Use:   "view [root]",
		Short: "Explore the import graph interactively in the terminal",
		Long: `Explore the import graph interactively in the terminal.

Mouse:
  drag              pan
  wheel             pan
  ctrl+wheel        zoom around the pointer
  alt+wheel         pinch zoom; zooming all the way in on a file opens it
  click             select the file under the pointer (click empty space to clear)
  double-click      open the file under the pointer in $EDITOR

Keys:
  arrows, hjkl      pan
  + / -             zoom
  space             add or remove the hovered file from the selection
  enter             open the hovered file in $EDITOR
  esc               clear the selection
  r                 reset the view
  s                 save the current view to ` + snapshotFile + `
  q                 quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := pipeline.Options{}
			scan.apply(&opts)
			lf.apply(&opts)
			return c.runView(cmd.Context(), rootArg(args), opts)
		},
	}

	scan.bind(cmd)
	lf.bind(cmd)

	return cmd
}

func (c *CLI) runView(ctx context.Context, root string, opts pipeline.Options) error {
	cfg, err := c.projectOptions(root, &opts)
	if err != nil {
		return err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	built, err := runner.Build(ctx, opts)
	if err != nil {
		return err
	}

	// Hold log output while the alternate screen is up.
	var held bytes.Buffer
	c.Logger.SetOutput(&held)
	defer func() {
		c.Logger.SetOutput(c.logOut)
		_, _ = c.logOut.Write(held.Bytes())
	}()

	m := newViewModel(ctx, runner, built.Graph, built.Root, opts)
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return m.err
}

// =============================================================================
// viewModel - bubbletea host for the viewport controller
// =============================================================================

type editorDoneMsg struct{ err error }

type cell struct{ col, row int }

// viewModel recomputes the layout and frames it in the controller after
// every input event.
type viewModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	graph  *workspace.Graph
	root   string
	opts   pipeline.Options
	ctrl   *viewport.Controller

	scene      render.Scene
	cols, rows int
	fitted     bool

	pressed   cell
	moved     bool
	clicked   cell
	lastClick time.Time
	pending   string

	now    func() time.Time
	open   func(path string) tea.Cmd
	status string
	err    error
}

func newViewModel(ctx context.Context, runner *pipeline.Runner, g *workspace.Graph, root string, opts pipeline.Options) *viewModel {
	m := &viewModel{
		ctx:    ctx,
		runner: runner,
		graph:  g,
		root:   root,
		opts:   opts,
		now:    time.Now,
	}
	m.open = openInEditor
	m.ctrl = viewport.New(viewport.WithOpener(viewport.OpenerFunc(func(path string) error {
		m.pending = path
		return nil
	})))
	return m
}

func (m *viewModel) Init() tea.Cmd { return nil }

func (m *viewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if !m.fitted {
			m.fit()
			m.fitted = true
		}
	case tea.KeyMsg:
		cmd = m.handleKey(msg)
	case tea.MouseMsg:
		cmd = m.handleMouse(msg)
	case editorDoneMsg:
		if msg.err != nil {
			m.status = "editor: " + msg.err.Error()
		}
	}

	if err := m.redraw(); err != nil {
		m.err = err
		return m, tea.Quit
	}
	return m, cmd
}

// redraw runs a fresh layout and frames it.
func (m *viewModel) redraw() error {
	res, err := m.runner.Layout(m.ctx, m.graph, m.opts)
	if err != nil {
		return err
	}
	m.scene = render.NewScene(res, m.ctrl)
	return nil
}

// fit zooms and pans so the whole canvas is visible and centered.
func (m *viewModel) fit() {
	w, h := m.screenSize()
	if w <= 0 || h <= 0 {
		return
	}
	m.ctrl.Reset()
	z := math.Min(w/m.opts.Width, h/m.opts.Height)
	m.ctrl.ZoomAt(z-1, 0, 0)
	z = m.ctrl.Zoom()
	m.ctrl.Pan((w-m.opts.Width*z)/2, (h-m.opts.Height*z)/2)
}

// screenSize is the drawable area in screen units.
func (m *viewModel) screenSize() (w, h float64) {
	return float64(m.cols) * cellWidth, float64(m.rows-statusLines) * cellHeight
}

func (m *viewModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	w, h := m.screenSize()
	switch msg.String() {
	case "q", "ctrl+c":
		return tea.Quit
	case "+", "=":
		m.ctrl.ZoomAt(keyZoomStep, w/2, h/2)
	case "-", "_":
		m.ctrl.ZoomAt(-keyZoomStep, w/2, h/2)
	case "left", "h":
		m.ctrl.Pan(keyPanStep, 0)
	case "right", "l":
		m.ctrl.Pan(-keyPanStep, 0)
	case "up", "k":
		m.ctrl.Pan(0, keyPanStep)
	case "down", "j":
		m.ctrl.Pan(0, -keyPanStep)
	case " ":
		m.ctrl.ToggleSelect()
	case "enter":
		return m.afterOpen(m.ctrl.DoubleClick())
	case "esc":
		m.ctrl.Select()
	case "r":
		m.fit()
	case "s":
		m.snapshot()
	}
	return nil
}

func (m *viewModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	at := cell{msg.X, msg.Y}
	x, y := cellCenter(at)

	switch {
	case msg.Action == tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
		if m.ctrl.Dragging() && at != m.pressed {
			m.moved = true
		}

	case msg.Action == tea.MouseActionRelease:
		wasDragging := m.ctrl.Dragging()
		m.ctrl.PointerUp()
		if wasDragging && !m.moved {
			return m.click(at)
		}

	case msg.Button == tea.MouseButtonLeft:
		m.ctrl.PointerMove(x, y)
		m.ctrl.PointerDown(x, y)
		m.pressed, m.moved = at, false

	case msg.Button == tea.MouseButtonWheelUp, msg.Button == tea.MouseButtonWheelDown,
		msg.Button == tea.MouseButtonWheelLeft, msg.Button == tea.MouseButtonWheelRight:
		m.ctrl.PointerMove(x, y)
		dx, dy := wheelDelta(msg.Button)
		if msg.Alt {
			return m.afterOpen(m.ctrl.Pinch(-dy / wheelStep * pinchStep))
		}
		m.ctrl.Wheel(dx, dy, msg.Ctrl)
	}
	return nil
}

// click treats a second click on the same cell within doubleClickWindow
// as a double-click.
func (m *viewModel) click(at cell) tea.Cmd {
	now := m.now()
	if at == m.clicked && now.Sub(m.lastClick) <= doubleClickWindow {
		m.lastClick = time.Time{}
		return m.afterOpen(m.ctrl.DoubleClick())
	}
	m.clicked, m.lastClick = at, now
	m.ctrl.Click()
	return nil
}

func (m *viewModel) afterOpen(opened bool, err error) tea.Cmd {
	if err != nil {
		m.status = err.Error()
		return nil
	}
	if !opened || m.pending == "" {
		return nil
	}
	path := m.pending
	m.pending = ""
	m.status = "opened " + m.rel(path)
	return m.open(path)
}

// snapshot writes the visible part of the scene as SVG.
func (m *viewModel) snapshot() {
	s := m.scene
	s.Width, s.Height = m.screenSize()
	data, err := pipeline.RenderScene(m.ctx, s, render.FormatSVG, m.opts)
	if err == nil {
		err = os.WriteFile(snapshotFile, data, 0o644)
	}
	if err != nil {
		m.status = "save failed: " + err.Error()
		return
	}
	m.status = "saved " + snapshotFile
}

func (m *viewModel) rel(path string) string {
	if r, err := filepath.Rel(m.root, path); err == nil && !strings.HasPrefix(r, "..") {
		return r
	}
	return path
}

func cellCenter(c cell) (x, y float64) {
	return (float64(c.col) + 0.5) * cellWidth, (float64(c.row) + 0.5) * cellHeight
}

func toCell(p layout.Point) cell {
	return cell{int(math.Floor(p.X / cellWidth)), int(math.Floor(p.Y / cellHeight))}
}

func wheelDelta(b tea.MouseButton) (dx, dy float64) {
	switch b {
	case tea.MouseButtonWheelUp:
		return 0, -wheelStep
	case tea.MouseButtonWheelDown:
		return 0, wheelStep
	case tea.MouseButtonWheelLeft:
		return -wheelStep, 0
	case tea.MouseButtonWheelRight:
		return wheelStep, 0
	}
	return 0, 0
}

// openInEditor suspends the program and opens path in $VISUAL or $EDITOR.
func openInEditor(path string) tea.Cmd {
	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	args := strings.Fields(editor)
	cmd := exec.Command(args[0], append(args[1:], path)...)
	return tea.ExecProcess(cmd, func(err error) tea.Msg { return editorDoneMsg{err} })
}

// =============================================================================
// Drawing
// =============================================================================

type cellKind uint8

const (
	kindEmpty cellKind = iota
	kindEdge
	kindNode
	kindSelected
	kindHovered
	kindLabel
)

var kindStyles = map[cellKind]lipgloss.Style{
	kindEdge:     lipgloss.NewStyle().Foreground(colorDim),
	kindNode:     lipgloss.NewStyle().Foreground(colorBlue),
	kindSelected: lipgloss.NewStyle().Foreground(colorYellow),
	kindHovered:  lipgloss.NewStyle().Foreground(colorCyan).Bold(true),
	kindLabel:    lipgloss.NewStyle().Foreground(colorGray),
}

type grid struct {
	cols, rows int
	runes      [][]rune
	kinds      [][]cellKind
}

func newGrid(cols, rows int) *grid {
	g := &grid{cols: cols, rows: rows, runes: make([][]rune, rows), kinds: make([][]cellKind, rows)}
	for r := range rows {
		g.runes[r] = []rune(strings.Repeat(" ", cols))
		g.kinds[r] = make([]cellKind, cols)
	}
	return g
}

func (g *grid) set(c cell, r rune, k cellKind) {
	if c.col < 0 || c.row < 0 || c.col >= g.cols || c.row >= g.rows {
		return
	}
	g.runes[c.row][c.col] = r
	g.kinds[c.row][c.col] = k
}

// line draws a Bresenham line that never overwrites nodes or labels.
func (g *grid) line(a, b cell) {
	dx, dy := abs(b.col-a.col), -abs(b.row-a.row)
	sx, sy := sign(b.col-a.col), sign(b.row-a.row)
	e := dx + dy
	for c := a; ; {
		if c.row >= 0 && c.row < g.rows && c.col >= 0 && c.col < g.cols && g.kinds[c.row][c.col] == kindEmpty {
			g.set(c, '·', kindEdge)
		}
		if c == b {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			c.col += sx
		}
		if e2 <= dx {
			e += dx
			c.row += sy
		}
	}
}

func (g *grid) node(n render.Node) {
	k := kindNode
	switch {
	case n.Hovered:
		k = kindHovered
	case n.Selected:
		k = kindSelected
	}
	lo, hi := toCell(n.Min()), toCell(n.Max())
	for r := lo.row; r <= hi.row; r++ {
		for c := lo.col; c <= hi.col; c++ {
			g.set(cell{c, r}, '█', k)
		}
	}

	label := []rune(n.File.Name)
	if width := max(hi.col-lo.col+1, 12); len(label) > width {
		label = append(label[:width-1], '…')
	}
	lk := kindLabel
	if k != kindNode {
		lk = k
	}
	mid := (lo.col + hi.col) / 2
	start := mid - len(label)/2
	for i, r := range label {
		g.set(cell{start + i, hi.row + 1}, r, lk)
	}
}

func (g *grid) String() string {
	var b strings.Builder
	for r := range g.rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < g.cols; {
			k := g.kinds[r][c]
			end := c
			for end < g.cols && g.kinds[r][end] == k {
				end++
			}
			run := string(g.runes[r][c:end])
			if style, ok := kindStyles[k]; ok {
				run = style.Render(run)
			}
			b.WriteString(run)
			c = end
		}
	}
	return b.String()
}

func (m *viewModel) View() string {
	if m.cols <= 0 || m.rows <= statusLines {
		return ""
	}
	g := newGrid(m.cols, m.rows-statusLines)

	// Plain nodes first so highlighted ones end up on top.
	for _, n := range m.scene.Nodes {
		if !n.Hovered && !n.Selected {
			g.node(n)
		}
	}
	for _, n := range m.scene.Nodes {
		if n.Selected && !n.Hovered {
			g.node(n)
		}
	}
	for _, n := range m.scene.Nodes {
		if n.Hovered {
			g.node(n)
		}
	}
	for _, l := range m.scene.Lines {
		g.line(toCell(l.From), toCell(l.To))
	}

	return g.String() + "\n" + m.statusBar()
}

func (m *viewModel) statusBar() string {
	line := lipgloss.NewStyle().MaxWidth(m.cols)

	top := StyleDim.Render("no file under pointer")
	if b, ok := m.ctrl.Hovered(); ok {
		top = StyleTitle.Render(m.rel(b.File.Path))
	}
	if m.status != "" {
		top += StyleDim.Render("  ·  ") + StyleWarning.Render(m.status)
	}

	bottom := fmt.Sprintf("zoom %.2f · %d selected · %d files · drag/wheel pan · ctrl+wheel zoom · click select · space toggle · enter open · s save · q quit",
		m.ctrl.Zoom(), len(m.ctrl.Selected()), len(m.scene.Nodes))
	return line.Render(top) + "\n" + line.Render(StyleDim.Render(bottom))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
