package render

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/abhisek/arbor/internal/forcesim"
	"github.com/abhisek/arbor/internal/skilltree"
)

// recordCanvas captures draw calls for assertions.
type recordCanvas struct {
	calls   []string
	strings []string
	coords  []float64
}

func (r *recordCanvas) record(name string, xs ...float64) {
	r.calls = append(r.calls, name)
	r.coords = append(r.coords, xs...)
}

func (r *recordCanvas) MoveTo(x, y float64)              { r.record("MoveTo", x, y) }
func (r *recordCanvas) LineTo(x, y float64)              { r.record("LineTo", x, y) }
func (r *recordCanvas) QuadraticTo(cx, cy, x, y float64) { r.record("QuadraticTo", cx, cy, x, y) }
func (r *recordCanvas) ClosePath()                       { r.record("ClosePath") }
func (r *recordCanvas) DrawCircle(x, y, rad float64)     { r.record("DrawCircle", x, y, rad) }
func (r *recordCanvas) SetColor(color.RGBA)              {}
func (r *recordCanvas) SetLineWidth(float64)             {}
func (r *recordCanvas) Fill()                            { r.record("Fill") }
func (r *recordCanvas) Stroke()                          { r.record("Stroke") }
func (r *recordCanvas) MeasureString(s string) (float64, float64) {
	return float64(len(s)) * 7, 13
}
func (r *recordCanvas) DrawString(s string, x, y float64) {
	r.record("DrawString", x, y)
	r.strings = append(r.strings, s)
}

func (r *recordCanvas) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func twoNodeScene(a, b skilltree.NodeState) Scene {
	return Scene{
		Nodes: []skilltree.SkillNode{
			{ID: "a", Name: "Node A", Level: skilltree.LevelDomain},
			{ID: "b", Name: "Node B", Level: skilltree.LevelDomain},
		},
		Links:  []skilltree.SkillLink{{SourceID: "a", TargetID: "b", Weight: 1}},
		States: map[string]skilltree.NodeState{"a": a, "b": b},
		Positions: map[string]forcesim.Vec{
			"a": {X: 100, Y: 100},
			"b": {X: 300, Y: 200},
		},
	}
}

func TestDraw_LinkBetweenLockedEndpointsSkipped(t *testing.T) {
	c := &recordCanvas{}
	New().Draw(c, twoNodeScene(skilltree.StateLocked, skilltree.StateLocked))

	if got := c.count("QuadraticTo"); got != 0 {
		t.Errorf("got %d curve calls for a fully locked link, want 0", got)
	}
	if got := c.count("MoveTo"); got != 0 {
		t.Errorf("got %d MoveTo calls for a fully locked link, want 0", got)
	}
	// Nodes themselves are still painted.
	if got := c.count("DrawCircle"); got == 0 {
		t.Error("nodes should still be drawn")
	}
}

func TestDraw_VisibleLinkIsCurved(t *testing.T) {
	c := &recordCanvas{}
	New().Draw(c, twoNodeScene(skilltree.StateUnlocked, skilltree.StateUnlockable))

	if got := c.count("QuadraticTo"); got != 1 {
		t.Fatalf("got %d curve calls, want 1", got)
	}

	// Control point sits off the midpoint, perpendicular to the link.
	var q []float64
	for i, call := range c.calls {
		if call == "QuadraticTo" {
			// coords are appended in call order; find this call's slice
			// by replaying the preceding calls' arities.
			q = coordsAt(c, i, 4)
			break
		}
	}
	cx, cy := q[0], q[1]
	mx, my := 200.0, 150.0
	if math.Hypot(cx-mx, cy-my) < 1 {
		t.Errorf("control point (%v,%v) should be offset from midpoint", cx, cy)
	}
	for _, v := range q {
		if math.IsNaN(v) {
			t.Fatal("NaN coordinate emitted")
		}
	}
}

// coordsAt replays call arities to find the coordinates of call i.
func coordsAt(c *recordCanvas, i, arity int) []float64 {
	arities := map[string]int{
		"MoveTo": 2, "LineTo": 2, "QuadraticTo": 4, "ClosePath": 0,
		"DrawCircle": 3, "Fill": 0, "Stroke": 0, "DrawString": 2,
	}
	off := 0
	for j := 0; j < i; j++ {
		off += arities[c.calls[j]]
	}
	return c.coords[off : off+arity]
}

func TestDraw_ZeroLengthLinkNoCurve(t *testing.T) {
	sc := twoNodeScene(skilltree.StateUnlocked, skilltree.StateUnlocked)
	sc.Positions["b"] = sc.Positions["a"] // coincident endpoints

	c := &recordCanvas{}
	New().Draw(c, sc)

	if got := c.count("QuadraticTo"); got != 0 {
		t.Errorf("degenerate link must not compute a curve, got %d", got)
	}
	if got := c.count("LineTo"); got != 1 {
		t.Errorf("degenerate link should fall back to a straight segment, got %d LineTo", got)
	}
	for _, v := range c.coords {
		if math.IsNaN(v) {
			t.Fatal("NaN coordinate emitted for degenerate link")
		}
	}
}

func TestDraw_GlowOnlyForUnlockable(t *testing.T) {
	c := &recordCanvas{}
	New().Draw(c, twoNodeScene(skilltree.StateUnlocked, skilltree.StateUnlockable))

	// Unlocked node: fill + border = 2 circles. Unlockable: halo + fill +
	// border = 3.
	if got := c.count("DrawCircle"); got != 5 {
		t.Errorf("got %d circles, want 5 (2 + 3 with halo)", got)
	}
}

func TestDraw_LabelDisclosure(t *testing.T) {
	sc := Scene{
		Nodes: []skilltree.SkillNode{
			{ID: "root", Name: "Engineering", Level: skilltree.LevelRoot},
			{ID: "d1", Name: "Foundations", Level: skilltree.LevelDomain},
			{ID: "m1", Name: "Secret Module", Level: skilltree.LevelModule},
			{ID: "m2", Name: "Hovered Module", Level: skilltree.LevelModule},
			{ID: "m3", Name: "Hidden Module", Level: skilltree.LevelModule},
		},
		States: map[string]skilltree.NodeState{
			"root": skilltree.StateUnlocked,
			"d1":   skilltree.StateUnlocked,
			"m1":   skilltree.StateLocked,
			"m2":   skilltree.StateUnlockable,
			"m3":   skilltree.StateUnlockable,
		},
		Positions: map[string]forcesim.Vec{
			"root": {X: 100, Y: 100}, "d1": {X: 200, Y: 100},
			"m1": {X: 300, Y: 100}, "m2": {X: 400, Y: 100}, "m3": {X: 500, Y: 100},
		},
		HoveredID: "m2",
	}

	c := &recordCanvas{}
	New().Draw(c, sc)

	labels := strings.Join(c.strings, "|")
	if !strings.Contains(labels, "Engineering") || !strings.Contains(labels, "Foundations") {
		t.Errorf("root/domain labels missing: %q", labels)
	}
	if !strings.Contains(labels, "Hovered Module") {
		t.Errorf("hovered module label missing: %q", labels)
	}
	if strings.Contains(labels, "Secret Module") || strings.Contains(labels, "Hidden Module") {
		t.Errorf("undisclosed module name leaked: %q", labels)
	}
}

func TestDraw_LockedHoveredModuleShowsPlaceholder(t *testing.T) {
	sc := Scene{
		Nodes: []skilltree.SkillNode{
			{ID: "m1", Name: "Secret Module", Level: skilltree.LevelModule},
		},
		States:    map[string]skilltree.NodeState{"m1": skilltree.StateLocked},
		Positions: map[string]forcesim.Vec{"m1": {X: 100, Y: 100}},
		HoveredID: "m1",
	}

	c := &recordCanvas{}
	New().Draw(c, sc)

	if len(c.strings) != 1 || c.strings[0] != placeholderGlyph {
		t.Errorf("got labels %v, want just the placeholder glyph", c.strings)
	}
}

func TestSVGCanvas_EmitsDocument(t *testing.T) {
	var buf bytes.Buffer
	c := NewSVGCanvas(&buf, 400, 300)

	New().Draw(c, twoNodeScene(skilltree.StateUnlocked, skilltree.StateUnlocked))
	c.End()

	out := buf.String()
	for _, want := range []string{"<svg", "<path", "<circle", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("SVG output missing %q", want)
		}
	}
}
