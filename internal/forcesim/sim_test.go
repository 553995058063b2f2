package forcesim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/arbor/internal/skilltree"
)

// sixNodeInput is the Scenario fixture: root + two domains + three free
// modules of the first domain on an 800×600 canvas.
func sixNodeInput() Input {
	return Input{
		Nodes: []Node{
			{ID: "root", Level: skilltree.LevelRoot, State: skilltree.StateUnlocked},
			{ID: "d1", Level: skilltree.LevelDomain, State: skilltree.StateUnlocked},
			{ID: "d2", Level: skilltree.LevelDomain, State: skilltree.StateUnlockable},
			{ID: "m1", Level: skilltree.LevelModule, State: skilltree.StateUnlockable},
			{ID: "m2", Level: skilltree.LevelModule, State: skilltree.StateUnlockable},
			{ID: "m3", Level: skilltree.LevelModule, State: skilltree.StateUnlockable},
		},
		Links: []Link{
			{SourceID: "root", TargetID: "d1", Weight: 2},
			{SourceID: "root", TargetID: "d2", Weight: 2},
			{SourceID: "d1", TargetID: "m1", Weight: 1},
			{SourceID: "d1", TargetID: "m2", Weight: 1},
			{SourceID: "d1", TargetID: "m3", Weight: 1},
		},
		Width:  800,
		Height: 600,
	}
}

func TestSeeding_RingsAndPins(t *testing.T) {
	s := New(Config{}, sixNodeInput())
	pos := s.Positions()

	cx, cy := 400.0, 300.0
	inscribed := 300.0
	cfg := DefaultConfig()

	// Every node starts on its level's ring.
	wantRadius := map[string]float64{
		"root": cfg.RingFractions[0] * inscribed,
		"d1":   cfg.RingFractions[1] * inscribed,
		"d2":   cfg.RingFractions[1] * inscribed,
		"m1":   cfg.RingFractions[2] * inscribed,
		"m2":   cfg.RingFractions[2] * inscribed,
		"m3":   cfg.RingFractions[2] * inscribed,
	}
	for id, want := range wantRadius {
		p := pos[id]
		got := math.Hypot(p.X-cx, p.Y-cy)
		assert.InDelta(t, want, got, 1e-9, "ring radius for %s", id)
	}

	// Domains share a ring at evenly spaced angles: with two of them,
	// they sit diametrically opposite.
	d1, d2 := pos["d1"], pos["d2"]
	assert.InDelta(t, 2*cfg.RingFractions[1]*inscribed, math.Hypot(d1.X-d2.X, d1.Y-d2.Y), 1e-9)
}

func TestPinnedNodesDoNotMove(t *testing.T) {
	s := New(Config{}, sixNodeInput())
	before := s.Positions()

	for i := 0; i < 50; i++ {
		s.Step()
	}
	after := s.Positions()

	for _, id := range []string{"root", "d1", "d2"} {
		assert.Equal(t, before[id], after[id], "pinned node %s moved", id)
	}

	// Free modules must have moved off their seed positions.
	moved := false
	for _, id := range []string{"m1", "m2", "m3"} {
		if before[id] != after[id] {
			moved = true
		}
	}
	assert.True(t, moved, "no free node moved in 50 steps")
}

func TestAlphaDecayAndCooldown(t *testing.T) {
	s := New(Config{MaxSteps: 40}, sixNodeInput())

	prev := s.Alpha()
	s.Step()
	require.Less(t, s.Alpha(), prev, "alpha must decay each step")

	for !s.Settled() {
		s.Step()
	}
	assert.LessOrEqual(t, s.Steps(), 40, "cooldown budget must bound steps")

	// Settled simulations refuse further steps.
	frozen := s.Positions()
	s.Step()
	assert.Equal(t, frozen, s.Positions())
}

func TestConvergedSpacing(t *testing.T) {
	s := New(Config{CollideIterations: 4}, sixNodeInput())
	s.Run()
	require.True(t, s.Settled())

	report := s.OverlapReport()
	assert.Empty(t, report, "spacious canvas should settle with no overlaps")

	// Cross-check the diagnostic against raw positions: any pair not in
	// the report satisfies its minimum spacing.
	reported := make(map[[2]string]bool)
	for _, o := range report {
		reported[[2]string{o.A, o.B}] = true
	}
	pos := s.Positions()
	ids := []string{"root", "d1", "d2", "m1", "m2", "m3"}
	for i := 0; i < len(ids); i++ {
		for j := i + 1; j < len(ids); j++ {
			if reported[[2]string{ids[i], ids[j]}] {
				continue
			}
			a, b := pos[ids[i]], pos[ids[j]]
			dist := math.Hypot(a.X-b.X, a.Y-b.Y)
			min := s.MinSpacing(ids[i], ids[j])
			assert.GreaterOrEqual(t, dist, min-0.5,
				"%s-%s closer than spacing and not reported", ids[i], ids[j])
		}
	}
}

func TestResizeRequiresFreshSeed(t *testing.T) {
	in := sixNodeInput()
	old := New(Config{}, in)
	handle := old.Start()
	for i := 0; i < 10; i++ {
		handle.Step()
	}

	// Dimension change: stop the old handle, build from a fresh seed.
	handle.Stop()
	in.Width, in.Height = 400, 300
	fresh := New(Config{}, in)

	// Pinned positions derive from the new dimensions, not the old ones.
	cfg := DefaultConfig()
	pos := fresh.Positions()
	got := math.Hypot(pos["d1"].X-200, pos["d1"].Y-150)
	assert.InDelta(t, cfg.RingFractions[1]*150, got, 1e-9)

	oldPos := handle.Positions()
	assert.NotEqual(t, oldPos["d1"], pos["d1"], "stale pin carried across resize")
}

func TestHandleStop(t *testing.T) {
	s := New(Config{}, sixNodeInput())
	h := s.Start()

	require.True(t, h.Running())
	require.True(t, h.Step())

	h.Stop()
	assert.False(t, h.Running())

	frozen := h.Positions()
	assert.False(t, h.Step(), "stopped handle must not advance")
	assert.Equal(t, frozen, h.Positions())

	h.Stop() // idempotent
	assert.False(t, h.Running())
}

func TestDeterminism(t *testing.T) {
	a := New(Config{}, sixNodeInput())
	b := New(Config{}, sixNodeInput())
	a.Run()
	b.Run()
	assert.Equal(t, a.Positions(), b.Positions())
}

func TestRepulsionCutoff(t *testing.T) {
	// Two free modules farther apart than the cutoff feel no mutual
	// repulsion; with all other forces zeroed they only drift with the
	// radial pull, never away from each other.
	cfg := Config{
		CenterStrength:      1e-12,
		LinkStrength:        1e-12,
		RadialStrength:      1e-12,
		RepelCutoffFraction: 0.01, // 6px on a 600-min canvas
		MaxSteps:            5,
	}
	in := Input{
		Nodes: []Node{
			{ID: "a", Level: skilltree.LevelModule},
			{ID: "b", Level: skilltree.LevelModule},
		},
		Width:  800,
		Height: 600,
	}
	s := New(cfg, in)
	before := s.Positions()
	gap := math.Hypot(before["a"].X-before["b"].X, before["a"].Y-before["b"].Y)
	require.Greater(t, gap, 6.0, "fixture nodes must start beyond the cutoff")

	s.Step()
	after := s.Positions()
	gapAfter := math.Hypot(after["a"].X-after["b"].X, after["a"].Y-after["b"].Y)
	assert.LessOrEqual(t, gapAfter, gap+1e-6, "cutoff pairs must not repel apart")
}
