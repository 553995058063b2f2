package render

import (
	"image/color"
	"math"

	"github.com/abhisek/arbor/internal/forcesim"
	"github.com/abhisek/arbor/internal/skilltree"
)

// Node radii by level; domains are the visual anchors and get the
// largest circles.
var nodeRadii = [3]float64{22, 26, 16}

// placeholderGlyph stands in for a name that is not yet disclosed.
const placeholderGlyph = "?"

// curveOffsetFraction bends each link: the control point sits this
// fraction of the link length away from the midpoint, perpendicular to
// the link vector.
const curveOffsetFraction = 0.15

// minCurveLength is the span below which a link is drawn straight; the
// perpendicular is not computable for degenerate links.
const minCurveLength = 1e-3

// Scene is one frame's worth of render input: the visible subgraph, its
// derived states, and the positions computed by the layout simulation.
type Scene struct {
	Nodes     []skilltree.SkillNode
	Links     []skilltree.SkillLink
	States    map[string]skilltree.NodeState
	Positions map[string]forcesim.Vec
	HoveredID string
}

// Renderer paints scenes onto a Canvas.
type Renderer struct{}

// New creates a Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Draw paints links first, then nodes, then labels, so circles cover
// curve endpoints and text covers everything.
func (r *Renderer) Draw(c Canvas, sc Scene) {
	for _, l := range sc.Links {
		r.drawLink(c, sc, l)
	}
	for _, n := range sc.Nodes {
		r.drawNode(c, sc, n)
	}
	for _, n := range sc.Nodes {
		r.drawLabel(c, sc, n)
	}
}

// NodeRadius returns the circle radius for a level.
func NodeRadius(level skilltree.Level) float64 {
	if level < 0 || level > skilltree.LevelModule {
		return nodeRadii[skilltree.LevelModule]
	}
	return nodeRadii[level]
}

// drawLink paints one quadratic curve. Links where neither endpoint is
// unlocked or unlockable are not drawn at all — the user has no business
// seeing structure that far ahead.
func (r *Renderer) drawLink(c Canvas, sc Scene, l skilltree.SkillLink) {
	src, okS := sc.Positions[l.SourceID]
	dst, okT := sc.Positions[l.TargetID]
	if !okS || !okT {
		return
	}

	col, visible := linkColor(sc.States[l.SourceID], sc.States[l.TargetID])
	if !visible {
		return
	}

	c.SetColor(col)
	c.SetLineWidth(2)
	c.MoveTo(src.X, src.Y)

	dx := dst.X - src.X
	dy := dst.Y - src.Y
	dist := math.Hypot(dx, dy)
	if dist < minCurveLength {
		// Degenerate link: straight zero-offset segment, no normalized
		// perpendicular to divide by.
		c.LineTo(dst.X, dst.Y)
		c.Stroke()
		return
	}

	mx := (src.X + dst.X) / 2
	my := (src.Y + dst.Y) / 2
	px := -dy / dist
	py := dx / dist
	offset := dist * curveOffsetFraction

	c.QuadraticTo(mx+px*offset, my+py*offset, dst.X, dst.Y)
	c.Stroke()
}

// linkColor maps the combined endpoint state to a stroke color, and
// reports whether the link is drawn at all.
func linkColor(a, b skilltree.NodeState) (color.RGBA, bool) {
	if a == skilltree.StateLocked && b == skilltree.StateLocked {
		return color.RGBA{}, false
	}
	unlocked := 0
	if a == skilltree.StateUnlocked {
		unlocked++
	}
	if b == skilltree.StateUnlocked {
		unlocked++
	}
	switch {
	case unlocked == 2:
		return linkBright, true
	case unlocked == 1 && (a == skilltree.StateUnlockable || b == skilltree.StateUnlockable):
		return linkMedium, true
	default:
		return linkDim, true
	}
}

// drawNode paints the state-colored circle with a border, plus a halo
// ring for unlockable nodes.
func (r *Renderer) drawNode(c Canvas, sc Scene, n skilltree.SkillNode) {
	pos, ok := sc.Positions[n.ID]
	if !ok {
		return
	}
	radius := NodeRadius(n.Level)
	state := sc.States[n.ID]

	if state == skilltree.StateUnlockable {
		c.SetColor(glowUnlockable)
		c.DrawCircle(pos.X, pos.Y, radius+6)
		c.Fill()
	}

	c.SetColor(fillColor(state))
	c.DrawCircle(pos.X, pos.Y, radius)
	c.Fill()

	c.SetColor(nodeBorder)
	c.SetLineWidth(1.5)
	c.DrawCircle(pos.X, pos.Y, radius)
	c.Stroke()
}

func fillColor(state skilltree.NodeState) color.RGBA {
	switch state {
	case skilltree.StateUnlocked:
		return nodeUnlocked
	case skilltree.StateUnlockable:
		return nodeUnlockable
	default:
		return nodeLocked
	}
}

// drawLabel writes the node name below the circle. Progressive
// disclosure: only root/domain nodes and the hovered node get labels,
// and a locked module shows a placeholder glyph instead of its name.
func (r *Renderer) drawLabel(c Canvas, sc Scene, n skilltree.SkillNode) {
	if n.Level > skilltree.LevelDomain && n.ID != sc.HoveredID {
		return
	}
	pos, ok := sc.Positions[n.ID]
	if !ok {
		return
	}

	state := sc.States[n.ID]
	text := n.Name
	col := textPrimary
	if n.Level == skilltree.LevelModule && state == skilltree.StateLocked {
		text = placeholderGlyph
		col = textMuted
	} else if state == skilltree.StateLocked {
		col = textMuted
	}

	w, h := c.MeasureString(text)
	c.SetColor(col)
	c.DrawString(text, pos.X-w/2, pos.Y+NodeRadius(n.Level)+h+4)
}
