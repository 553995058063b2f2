package stats

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

const barWidth = 30

// StatsScreen summarizes unlock progress and earned skill points.
type StatsScreen struct {
	sess *session.Session
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen over a session.
func New(sess *session.Session) *StatsScreen {
	return &StatsScreen{sess: sess}
}

func (s *StatsScreen) Init() tea.Cmd { return nil }
func (s *StatsScreen) Title() string { return "Stats" }

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) View(width, height int) string {
	g := s.sess.Graph()
	p := s.sess.Progress()

	var b strings.Builder
	sectionStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	b.WriteString(sectionStyle.Render("  Domains"))
	b.WriteString("\n\n")

	for _, d := range g.Domains() {
		modules := g.Modules(d.ID)
		unlocked := 0
		for _, m := range modules {
			if p.Contains(m.ID) {
				unlocked++
			}
		}

		frac := 0.0
		if len(modules) > 0 {
			frac = float64(unlocked) / float64(len(modules))
		}
		bar := components.NewProgressBar(fmt.Sprintf("%-14s", d.Name), frac, false, barWidth+16)
		b.WriteString("  " + bar.View())
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d/%d", unlocked, len(modules))))
		if !p.Contains(d.ID) {
			b.WriteString(dimStyle.Render("  (locked)"))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("  Skill Points"))
	b.WriteString("\n\n")

	totals := s.pointTotals()
	var grand float64
	for _, dim := range skilltree.PointDimensions {
		grand += totals[dim]
	}
	for _, dim := range skilltree.PointDimensions {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %-10s", dim)))
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("%5.0f", totals[dim])))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Total     "))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
		Render(fmt.Sprintf("%5.0f", grand)))
	b.WriteString("\n")

	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top,
		"\n"+b.String())
}

// pointTotals sums points per dimension across unlocked modules.
func (s *StatsScreen) pointTotals() map[string]float64 {
	g := s.sess.Graph()
	p := s.sess.Progress()

	totals := make(map[string]float64, len(skilltree.PointDimensions))
	for _, n := range g.Nodes() {
		if n.Level != skilltree.LevelModule || !p.Contains(n.ID) {
			continue
		}
		for _, dim := range skilltree.PointDimensions {
			totals[dim] += n.Points[dim]
		}
	}
	return totals
}
