package tree

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/taxonomy"
)

func newTestTree(t *testing.T) *TreeScreen {
	t.Helper()
	tax, err := taxonomy.Default()
	if err != nil {
		t.Fatalf("load default taxonomy: %v", err)
	}
	g := skilltree.Build(tax)
	sess := session.New(g, "default", skilltree.NewProgress(), nil, nil)
	return New(sess, config.Default(), nil)
}

func sized(t *testing.T, scr *TreeScreen) *TreeScreen {
	t.Helper()
	scr.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	if scr.handle == nil {
		t.Fatal("expected simulation to start after resize")
	}
	return scr
}

// focusOn moves focus until id is the focused node.
func focusOn(t *testing.T, scr *TreeScreen, id string) {
	t.Helper()
	for i := 0; i < len(scr.order); i++ {
		if scr.focusedID() == id {
			return
		}
		scr.moveFocus(1)
	}
	t.Fatalf("node %q not in focus order %v", id, scr.order)
}

func TestInitialVisibleSubgraph(t *testing.T) {
	scr := newTestTree(t)

	// Root plus all domains; no modules until a domain unlocks.
	if len(scr.nodes) != 6 {
		t.Fatalf("visible nodes = %d, want 6", len(scr.nodes))
	}
	for _, n := range scr.nodes {
		if n.Level == skilltree.LevelModule {
			t.Errorf("module %s visible before its domain unlocked", n.ID)
		}
	}
}

func TestResizeRestartsSimulation(t *testing.T) {
	scr := sized(t, newTestTree(t))
	first := scr.handle

	scr.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if scr.handle == first {
		t.Error("resize should start a fresh simulation")
	}
	if first.Running() {
		t.Error("old simulation should be stopped")
	}

	// Same size again is a no-op.
	second := scr.handle
	scr.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if scr.handle != second {
		t.Error("same-size resize should not restart the simulation")
	}
}

func TestFrameAdvancesSimulation(t *testing.T) {
	scr := sized(t, newTestTree(t))
	before := scr.handle.Sim().Steps()

	_, cmd := scr.Update(frameMsg(time.Now()))
	if scr.handle.Sim().Steps() != before+1 {
		t.Errorf("steps = %d, want %d", scr.handle.Sim().Steps(), before+1)
	}
	if cmd == nil {
		t.Error("frame handler should re-arm the tick")
	}
}

func TestEnterUnlocksFocusedDomain(t *testing.T) {
	scr := sized(t, newTestTree(t))
	focusOn(t, scr, "foundations")

	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a progress message after unlocking")
	}
	msg, ok := cmd().(ProgressChangedMsg)
	if !ok {
		t.Fatalf("expected ProgressChangedMsg, got %T", cmd())
	}
	if msg.Unlocked != 1 {
		t.Errorf("unlocked = %d, want 1", msg.Unlocked)
	}

	if !scr.sess.Progress().Contains("foundations") {
		t.Error("session progress should contain the unlocked domain")
	}
	// The domain's modules join the visible frontier.
	if len(scr.nodes) != 9 {
		t.Errorf("visible nodes = %d, want 9", len(scr.nodes))
	}
}

func TestEnterOnLockedIsNoop(t *testing.T) {
	scr := sized(t, newTestTree(t))

	// Second domain is locked until the first has an unlocked module.
	focusOn(t, scr, "tooling")
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd != nil {
		t.Error("enter on a locked node should produce no command")
	}
	if scr.sess.UnlockedCount() != 0 {
		t.Errorf("unlocked count = %d, want 0", scr.sess.UnlockedCount())
	}
}

func TestEnterOnUnlockedPushesDetail(t *testing.T) {
	scr := sized(t, newTestTree(t))
	focusOn(t, scr, "foundations")
	scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	focusOn(t, scr, "foundations")
	_, cmd := scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a push command for the detail screen")
	}
	push, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("expected PushScreenMsg, got %T", cmd())
	}
	if _, ok := push.Screen.(*DetailScreen); !ok {
		t.Fatalf("expected *DetailScreen, got %T", push.Screen)
	}
}

func TestFocusWraps(t *testing.T) {
	scr := newTestTree(t)

	start := scr.focusedID()
	for i := 0; i < len(scr.order); i++ {
		scr.moveFocus(1)
	}
	if scr.focusedID() != start {
		t.Errorf("focus should wrap back to %q, got %q", start, scr.focusedID())
	}

	scr.moveFocus(-1)
	if scr.focusedID() != scr.order[len(scr.order)-1] {
		t.Error("backward focus should wrap to the last node")
	}
}

func TestViewShowsDomainLabels(t *testing.T) {
	scr := sized(t, newTestTree(t))
	for i := 0; i < 50; i++ {
		scr.Update(frameMsg(time.Now()))
	}

	view := scr.View(80, 24)
	if !strings.Contains(view, "Foundations") {
		t.Error("domain labels should always be visible")
	}
}

func TestViewHidesModuleLabelsUntilHovered(t *testing.T) {
	scr := sized(t, newTestTree(t))
	focusOn(t, scr, "foundations")
	scr.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	focusOn(t, scr, "root")

	view := scr.View(80, 24)
	if strings.Contains(view, "Language Fluency") {
		t.Error("module labels should stay hidden until hovered")
	}
}
