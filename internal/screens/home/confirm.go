package home

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/tree"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// resetConfirmScreen asks before wiping progress.
type resetConfirmScreen struct {
	sess *session.Session
	err  error
}

var _ screen.Screen = (*resetConfirmScreen)(nil)
var _ screen.KeyHintProvider = (*resetConfirmScreen)(nil)

func newResetConfirm(sess *session.Session) *resetConfirmScreen {
	return &resetConfirmScreen{sess: sess}
}

func (r *resetConfirmScreen) Init() tea.Cmd { return nil }
func (r *resetConfirmScreen) Title() string { return "Reset Progress" }

func (r *resetConfirmScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Y", Description: "Reset"},
		{Key: "Esc", Description: "Cancel"},
	}
}

func (r *resetConfirmScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}
	switch kmsg.String() {
	case "y":
		if err := r.sess.Reset(context.Background()); err != nil {
			r.err = err
			return r, nil
		}
		unlocked, total := r.sess.UnlockedCount(), r.sess.TotalCount()
		return r, tea.Batch(
			func() tea.Msg { return tree.ProgressChangedMsg{Unlocked: unlocked, Total: total} },
			func() tea.Msg { return router.PopScreenMsg{} },
		)
	case "n":
		return r, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return r, nil
}

func (r *resetConfirmScreen) View(width, height int) string {
	msg := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render("Reset all progress?")
	hint := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render("This deletes every saved snapshot. Press y to confirm, esc to cancel.")

	content := msg + "\n\n" + hint
	if r.err != nil {
		content += "\n\n" + lipgloss.NewStyle().
			Foreground(theme.Error).
			Render("reset failed: "+r.err.Error())
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
