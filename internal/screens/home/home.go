package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/arbor/internal/config"
	"github.com/abhisek/arbor/internal/router"
	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/screens/stats"
	"github.com/abhisek/arbor/internal/screens/tree"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	sess *session.Session
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(sess *session.Session, cfg config.Config, logger *zap.Logger) *HomeScreen {
	items := []components.MenuItem{
		{Label: "EXPLORE TREE", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: tree.New(sess, cfg, logger)}
			}
		}},
		{Label: "STATS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: stats.New(sess)}
			}
		}},
		{Label: "RESET PROGRESS", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: newResetConfirm(sess)}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		sess: sess,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	title := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render("A R B O R")
	sections = append(sections, title)

	subtitle := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(h.sess.Graph().Nodes()[0].Name)
	sections = append(sections, subtitle)
	sections = append(sections, "")

	// Live counts; the session is shared with the tree screen.
	progress := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Render(fmt.Sprintf("%d of %d nodes unlocked",
			h.sess.UnlockedCount(), h.sess.TotalCount()))
	sections = append(sections, progress)
	sections = append(sections, "")

	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
