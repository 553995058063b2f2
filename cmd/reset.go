package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all saved progress for the selected taxonomy",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().Bool("force", false, "Skip the confirmation check")
}

func runReset(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	if !force {
		return fmt.Errorf("this deletes every saved snapshot; re-run with --force to confirm")
	}

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

	if err := sess.Reset(cmd.Context()); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Printf("Progress for %q reset.\n", sess.Taxonomy())
	return nil
}
