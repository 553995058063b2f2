package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abhisek/arbor/internal/skilltree"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show unlock progress and skill points",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	sess, st, err := openSession(cmd.Context(), cmd, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	g := sess.Graph()
	p := sess.Progress()

	header := color.New(color.FgCyan, color.Bold)
	unlockedStyle := color.New(color.FgGreen)
	lockedStyle := color.New(color.FgHiBlack)

	header.Printf("%s\n", g.Nodes()[0].Name)
	fmt.Printf("%d of %d nodes unlocked\n\n", sess.UnlockedCount(), sess.TotalCount())

	for _, d := range g.Domains() {
		modules := g.Modules(d.ID)
		unlocked := 0
		for _, m := range modules {
			if p.Contains(m.ID) {
				unlocked++
			}
		}

		style := lockedStyle
		if p.Contains(d.ID) {
			style = unlockedStyle
		}
		style.Printf("  %-16s", d.Name)
		fmt.Printf(" %d/%d  %s\n", unlocked, len(modules), progressBar(unlocked, len(modules)))
	}

	fmt.Println()
	header.Println("Skill points")
	totals := make(map[string]float64)
	var grand float64
	for _, n := range g.Nodes() {
		if n.Level != skilltree.LevelModule || !p.Contains(n.ID) {
			continue
		}
		for _, dim := range skilltree.PointDimensions {
			totals[dim] += n.Points[dim]
			grand += n.Points[dim]
		}
	}
	for _, dim := range skilltree.PointDimensions {
		fmt.Printf("  %-10s %5.0f\n", dim, totals[dim])
	}
	color.New(color.Bold).Printf("  %-10s %5.0f\n", "total", grand)

	return nil
}

func progressBar(n, total int) string {
	const width = 20
	if total == 0 {
		return strings.Repeat("░", width)
	}
	filled := n * width / total
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
