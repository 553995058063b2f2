package tree

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/arbor/internal/screen"
	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/ui/components"
	"github.com/abhisek/arbor/internal/ui/layout"
	"github.com/abhisek/arbor/internal/ui/theme"
)

// maxPointValue scales the skill-point bars; seed taxonomies award up
// to this many points per dimension.
const maxPointValue = 5.0

// DetailScreen shows one node: description, skill points, and what it
// unlocks.
type DetailScreen struct {
	node  skilltree.SkillNode
	state skilltree.NodeState
	sess  *session.Session
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

func newDetail(node skilltree.SkillNode, state skilltree.NodeState, sess *session.Session) *DetailScreen {
	return &DetailScreen{node: node, state: state, sess: sess}
}

func (d *DetailScreen) Init() tea.Cmd { return nil }
func (d *DetailScreen) Title() string { return d.node.Name }

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Keep the tree's frame chain alive while this screen covers it.
	if _, ok := msg.(frameMsg); ok {
		return d, frameTick(0)
	}
	return d, nil
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (d *DetailScreen) View(width, height int) string {
	n := d.node
	contentWidth := width - 8
	if contentWidth > 70 {
		contentWidth = 70
	}

	var b strings.Builder

	// Node name + state.
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", d.state.Icon(), n.Name)))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s", d.state.Label())))
	b.WriteString("\n\n")

	// Description.
	if n.Description != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(contentWidth).
			Foreground(theme.Text).
			PaddingLeft(2).
			Render(n.Description))
		b.WriteString("\n\n")
	}

	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	valStyle := lipgloss.NewStyle().Foreground(theme.Text)

	g := d.sess.Graph()
	if n.Level == skilltree.LevelModule {
		if parent, ok := g.Node(n.GroupID); ok {
			b.WriteString(dimStyle.Render("  Domain:  ") + valStyle.Render(parent.Name) + "\n\n")
		}
	}

	// Skill points.
	if n.Level == skilltree.LevelModule {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Skill Points"))
		b.WriteString("\n")
		for _, dim := range skilltree.PointDimensions {
			v := n.Points[dim]
			bar := components.NewProgressBar(
				fmt.Sprintf("%-9s", dim), v/maxPointValue, false, contentWidth-10)
			b.WriteString("  " + bar.View())
			b.WriteString(dimStyle.Render(fmt.Sprintf("  %.0f", v)))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("  Total: %.0f", n.Points.Total())))
		b.WriteString("\n\n")
	}

	// What this node gates.
	var children []skilltree.SkillNode
	switch n.Level {
	case skilltree.LevelRoot:
		children = g.Domains()
	case skilltree.LevelDomain:
		children = g.Modules(n.ID)
	}
	if len(children) > 0 {
		b.WriteString(lipgloss.NewStyle().
			Foreground(theme.Secondary).
			Bold(true).
			Render("  Unlocks"))
		b.WriteString("\n")
		for _, c := range children {
			st := d.sess.State(c.ID)
			style := dimStyle
			if st == skilltree.StateUnlocked {
				style = lipgloss.NewStyle().Foreground(theme.Unlocked)
			}
			b.WriteString(style.Render(fmt.Sprintf("  %s %s", st.Icon(), c.Name)))
			b.WriteString("\n")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}
