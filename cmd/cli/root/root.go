package root

import (
	"database/sql"

	"github.com/spf13/cobra"

	"github.com/crucial707/feedback-board/internal/config"
	"github.com/crucial707/feedback-board/internal/db"
)

// RootCmd is the feedbackctl admin command. Subcommands attach via init().
var RootCmd = &cobra.Command{
	Use:   "feedbackctl",
	Short: "Feedback Board admin CLI",
	Long:  "Administrative command line tool for the feedback board database.",
}

// GetRoot returns the root command for registration and execution.
func GetRoot() *cobra.Command {
	return RootCmd
}

// OpenDB connects to the configured database. Callers must Close it.
func OpenDB() (*sql.DB, error) {
	cfg := config.Load()
	return db.Connect(cfg.DSN(), cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
}
