package tree

import (
	"context"
	"strings"
	"time"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/forcesim"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// Virtual pixels per terminal cell. The simulation runs in pixel space
// so the same tuning works for terminal and image export; positions are
// divided back down when projected onto the cell grid.
const (
	cellWidth  = 8.0
	cellHeight = 16.0
)

const defaultFrameRate = 30

// Single-width glyphs for grid placement.
const (
	glyphUnlocked    = '●'
	glyphUnlockable  = '◍'
	glyphLocked      = '○'
	glyphLink        = '·'
	glyphPlaceholder = "?"
)

type frameMsg time.Time

// TreeScreen renders the skill tree as a live force-directed layout.
type TreeScreen struct {
	sess   *session.Session
	cfg    config.Config
	logger *zap.Logger

	width  int
	height int

	handle    *forcesim.Handle
	positions map[string]forcesim.Vec

	nodes  []skilltree.SkillNode
	links  []skilltree.SkillLink
	states map[string]skilltree.NodeState
	order  []string
	focus  int

	spin spinner.Model
}

var _ screen.Screen = (*TreeScreen)(nil)
var _ screen.KeyHintProvider = (*TreeScreen)(nil)

// New creates a TreeScreen over a session. The simulation starts once
// the screen learns its dimensions.
func New(sess *session.Session, cfg config.Config, logger *zap.Logger) *TreeScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = lipgloss.NewStyle().Foreground(theme.Secondary)

	t := &TreeScreen{
		sess:      sess,
		cfg:       cfg,
		logger:    logger,
		positions: make(map[string]forcesim.Vec),
		spin:      spin,
	}
	t.refreshGraph()
	return t
}

func (t *TreeScreen) Title() string {
	return "Skill Tree"
}

func (t *TreeScreen) Init() tea.Cmd {
	return tea.Batch(t.frameCmd(), t.spin.Tick)
}

// KeyHints returns the key binding hints for the footer.
func (t *TreeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Focus"},
		{Key: "Enter", Description: "Unlock / Inspect"},
		{Key: "R", Description: "Reheat"},
		{Key: "Esc", Description: "Back"},
	}
}

func (t *TreeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.resize(msg.Width, layout.ContentHeight(msg.Height))
		return t, nil

	case frameMsg:
		if t.handle != nil && t.handle.Running() {
			t.handle.Step()
			t.positions = t.handle.Positions()
		}
		return t, t.frameCmd()

	case spinner.TickMsg:
		var cmd tea.Cmd
		t.spin, cmd = t.spin.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "shift+tab":
			t.moveFocus(-1)
		case "right", "l", "tab":
			t.moveFocus(1)
		case "enter":
			return t, t.activate()
		case "r":
			t.restartSim()
		case "q":
			return t, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return t, nil
}

// resize restarts the simulation with a fresh seed in the new space.
// Prior positions are discarded; carrying them over distorts the rings.
func (t *TreeScreen) resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width = width
	t.height = height
	t.restartSim()
}

func (t *TreeScreen) frameCmd() tea.Cmd {
	return frameTick(t.cfg.FrameRate)
}

// frameTick schedules the next simulation frame. The detail screen
// re-issues it too, so the chain survives while it covers the tree.
func frameTick(fps int) tea.Cmd {
	if fps <= 0 {
		fps = defaultFrameRate
	}
	return tea.Tick(time.Second/time.Duration(fps), func(ti time.Time) tea.Msg {
		return frameMsg(ti)
	})
}

// refreshGraph recomputes the visible subgraph from current progress.
func (t *TreeScreen) refreshGraph() {
	g := t.sess.Graph()
	p := t.sess.Progress()
	t.nodes = g.VisibleNodes(p)
	t.links = g.VisibleLinks(t.nodes)
	t.states = g.States(t.nodes, p)

	t.order = t.order[:0]
	for _, n := range t.nodes {
		t.order = append(t.order, n.ID)
	}
	if t.focus >= len(t.order) {
		t.focus = 0
	}
}

// restartSim stops any running simulation and starts a new one for the
// current visible subgraph and dimensions.
func (t *TreeScreen) restartSim() {
	if t.handle != nil {
		t.handle.Stop()
		t.handle = nil
	}
	if t.width <= 0 || t.height <= 0 {
		return
	}

	in := forcesim.Input{
		Width:  float64(t.width) * cellWidth,
		Height: float64(t.height) * cellHeight,
		Logger: t.logger,
	}
	for _, n := range t.nodes {
		in.Nodes = append(in.Nodes, forcesim.Node{
			ID:    n.ID,
			Level: n.Level,
			State: t.states[n.ID],
		})
	}
	for _, l := range t.links {
		in.Links = append(in.Links, forcesim.Link{
			SourceID: l.SourceID,
			TargetID: l.TargetID,
			Weight:   l.Weight,
		})
	}

	t.handle = forcesim.New(t.simConfig(), in).Start()
	t.positions = t.handle.Positions()
}

// simConfig applies user overrides on top of the simulation defaults.
func (t *TreeScreen) simConfig() forcesim.Config {
	fc := forcesim.DefaultConfig()
	sc := t.cfg.Sim
	if sc.MaxSteps > 0 {
		fc.MaxSteps = sc.MaxSteps
	}
	if sc.CenterStrength > 0 {
		fc.CenterStrength = sc.CenterStrength
	}
	if sc.LinkFraction > 0 {
		fc.LinkFraction = sc.LinkFraction
	}
	if sc.RepelStrength > 0 {
		fc.RepelStrength = sc.RepelStrength
	}
	if sc.RadialStrength > 0 {
		fc.RadialStrength = sc.RadialStrength
	}
	return fc
}

func (t *TreeScreen) moveFocus(delta int) {
	if len(t.order) == 0 {
		return
	}
	t.focus = (t.focus + delta + len(t.order)) % len(t.order)
}

func (t *TreeScreen) focusedID() string {
	if t.focus < 0 || t.focus >= len(t.order) {
		return ""
	}
	return t.order[t.focus]
}

// activate handles enter on the focused node: unlockable nodes unlock
// and persist, unlocked nodes open the detail screen, locked nodes are
// a no-op.
func (t *TreeScreen) activate() tea.Cmd {
	id := t.focusedID()
	if id == "" {
		return nil
	}

	switch t.states[id] {
	case skilltree.StateUnlockable:
		changed, err := t.sess.Unlock(context.Background(), id)
		if err != nil {
			t.logger.Warn("unlock persist failed", zap.String("id", id), zap.Error(err))
		}
		if !changed {
			return nil
		}
		t.refreshGraph()
		t.restartSim()
		unlocked, total := t.sess.UnlockedCount(), t.sess.TotalCount()
		return func() tea.Msg {
			return ProgressChangedMsg{Unlocked: unlocked, Total: total}
		}

	case skilltree.StateUnlocked:
		n, ok := t.sess.Graph().Node(id)
		if !ok {
			return nil
		}
		detail := newDetail(n, t.states[id], t.sess)
		return func() tea.Msg {
			return router.PushScreenMsg{Screen: detail}
		}
	}
	return nil
}

func (t *TreeScreen) View(width, height int) string {
	// The first frame arrives before any WindowSizeMsg.
	t.resize(width, height)
	if t.width <= 0 || t.height <= 0 {
		return ""
	}

	grid := newCellGrid(t.width, t.height-1)
	hovered := t.focusedID()

	for _, l := range t.links {
		t.drawLink(grid, l)
	}
	for _, n := range t.nodes {
		t.drawNode(grid, n, n.ID == hovered)
	}
	for _, n := range t.nodes {
		t.drawLabel(grid, n, n.ID == hovered)
	}

	return grid.String() + "\n" + t.statusLine()
}

// statusLine shows the focused node and, while the layout is still
// settling, a spinner.
func (t *TreeScreen) statusLine() string {
	var parts []string
	if id := t.focusedID(); id != "" {
		if n, ok := t.sess.Graph().Node(id); ok {
			name := n.Name
			if n.Level == skilltree.LevelModule && t.states[id] == skilltree.StateLocked {
				name = glyphPlaceholder
			}
			parts = append(parts,
				lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("▸ "+name),
				lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.states[id].Label()))
		}
	}
	if t.handle != nil && t.handle.Running() && !t.handle.Sim().Settled() {
		parts = append(parts, t.spin.View()+lipgloss.NewStyle().
			Foreground(theme.TextDim).Render("settling"))
	}
	return "  " + strings.Join(parts, "  ")
}

func (t *TreeScreen) cellAt(id string) (int, int, bool) {
	v, ok := t.positions[id]
	if !ok {
		return 0, 0, false
	}
	return int(v.X / cellWidth), int(v.Y / cellHeight), true
}

func (t *TreeScreen) drawLink(g *cellGrid, l skilltree.SkillLink) {
	a, aOK := t.states[l.SourceID]
	b, bOK := t.states[l.TargetID]
	if !aOK || !bOK {
		return
	}
	// Fully locked links stay hidden.
	if a == skilltree.StateLocked && b == skilltree.StateLocked {
		return
	}

	style := lipgloss.NewStyle().Foreground(theme.Border)
	if a == skilltree.StateUnlocked && b == skilltree.StateUnlocked {
		style = lipgloss.NewStyle().Foreground(theme.TextDim)
	}

	x0, y0, ok := t.cellAt(l.SourceID)
	if !ok {
		return
	}
	x1, y1, ok := t.cellAt(l.TargetID)
	if !ok {
		return
	}
	g.line(x0, y0, x1, y1, glyphLink, style)
}

func (t *TreeScreen) drawNode(g *cellGrid, n skilltree.SkillNode, hovered bool) {
	x, y, ok := t.cellAt(n.ID)
	if !ok {
		return
	}

	var glyph rune
	var style lipgloss.Style
	switch t.states[n.ID] {
	case skilltree.StateUnlocked:
		glyph = glyphUnlocked
		style = lipgloss.NewStyle().Foreground(theme.Unlocked)
	case skilltree.StateUnlockable:
		glyph = glyphUnlockable
		style = lipgloss.NewStyle().Foreground(theme.Unlockable)
	default:
		glyph = glyphLocked
		style = lipgloss.NewStyle().Foreground(theme.Locked)
	}
	if hovered {
		style = style.Bold(true)
		g.set(x-1, y, '▸', lipgloss.NewStyle().Foreground(theme.Primary).Bold(true))
	}
	g.set(x, y, glyph, style)
}

// drawLabel writes a node name next to its glyph. Progressive
// disclosure: root and domains always, everything else only when
// hovered. A locked module shows a placeholder instead of its name.
func (t *TreeScreen) drawLabel(g *cellGrid, n skilltree.SkillNode, hovered bool) {
	if n.Level > skilltree.LevelDomain && !hovered {
		return
	}

	text := n.Name
	if n.Level == skilltree.LevelModule && t.states[n.ID] == skilltree.StateLocked {
		text = glyphPlaceholder
	}

	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if hovered {
		style = lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	}

	x, y, ok := t.cellAt(n.ID)
	if !ok {
		return
	}
	g.text(x+2, y+1, text, style)
}

// cellGrid is a styled character grid the tree is painted onto.
type cellGrid struct {
	width  int
	height int
	chars  []rune
	styles []lipgloss.Style
}

func newCellGrid(width, height int) *cellGrid {
	g := &cellGrid{
		width:  width,
		height: height,
		chars:  make([]rune, width*height),
		styles: make([]lipgloss.Style, width*height),
	}
	for i := range g.chars {
		g.chars[i] = ' '
	}
	return g
}

func (g *cellGrid) set(x, y int, ch rune, style lipgloss.Style) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return
	}
	i := y*g.width + x
	g.chars[i] = ch
	g.styles[i] = style
}

func (g *cellGrid) text(x, y int, s string, style lipgloss.Style) {
	for i, ch := range []rune(s) {
		g.set(x+i, y, ch, style)
	}
}

// line draws a straight run of glyphs between two cells, endpoints
// excluded so node glyphs stay on top.
func (g *cellGrid) line(x0, y0, x1, y1 int, ch rune, style lipgloss.Style) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	x, y := x0, y0
	for {
		if x == x1 && y == y1 {
			break
		}
		if !(x == x0 && y == y0) {
			g.set(x, y, ch, style)
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func (g *cellGrid) String() string {
	rows := make([]string, g.height)
	for y := 0; y < g.height; y++ {
		var b strings.Builder
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			if g.chars[i] == ' ' {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(g.styles[i].Render(string(g.chars[i])))
		}
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
