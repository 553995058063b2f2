package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/arbor/internal/session"
	"github.com/abhisek/arbor/internal/skilltree"
	"github.com/abhisek/arbor/internal/store"
	"github.com/abhisek/arbor/internal/taxonomy"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Skill tree explorer for the terminal",
	Long:  "Arbor is a terminal skill tree: unlock competencies and watch the map grow around you.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ARBOR_DB env var)")
	rootCmd.PersistentFlags().String("taxonomy", "", "Path to a taxonomy JSON file (default: built-in)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ARBOR_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// loadTaxonomy loads the --taxonomy file, or the built-in taxonomy.
func loadTaxonomy(cmd *cobra.Command) (taxonomy.Taxonomy, error) {
	if p, _ := cmd.Flags().GetString("taxonomy"); p != "" {
		return taxonomy.Load(p)
	}
	return taxonomy.Default()
}

// buildLogger returns a development logger with --verbose, a nop
// logger otherwise.
func buildLogger(cmd *cobra.Command) (*zap.Logger, error) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if !verbose {
		return zap.NewNop(), nil
	}
	return zap.NewDevelopment()
}

// openSession opens the store and resumes the saved progress for the
// selected taxonomy. The caller closes the returned store.
func openSession(ctx context.Context, cmd *cobra.Command, logger *zap.Logger) (*session.Session, *store.Store, error) {
	tax, err := loadTaxonomy(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("load taxonomy: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	graph := skilltree.Build(tax)
	sess, err := session.Resume(ctx, graph, tax.Name, st.ProgressRepo(), logger)
	if err != nil {
		st.Close()
		return nil, nil, fmt.Errorf("resume session: %w", err)
	}
	return sess, st, nil
}
