package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/arbor/internal/app"
	"github.com/abhisek/arbor/internal/config"
)

// runApp opens the store, resumes the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, err := buildLogger(cmd)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sess, st, err := openSession(cmd.Context(), cmd, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{
		Session: sess,
		Config:  cfg,
		Logger:  logger,
	})
}
