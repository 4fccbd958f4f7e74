// Package cli provides the notes command: the web server plus a few
// maintenance commands sharing the same configuration.
package cli

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/isdelr/notes-be/internal/config"
	"github.com/isdelr/notes-be/internal/database"
	"github.com/isdelr/notes-be/internal/logger"
	"github.com/spf13/cobra"
)

// CLI holds the command-line interface state.
type CLI struct {
	rootCmd *cobra.Command
	cfg     *config.Config

	// Global flags
	databasePath string
	logLevel     string
}

// New creates a new CLI instance.
func New() *CLI {
	cli := &CLI{}
	cli.rootCmd = cli.newRootCmd()
	return cli
}

// Execute runs the CLI with the given arguments.
func (c *CLI) Execute(args []string) error {
	c.rootCmd.SetArgs(args)
	return c.rootCmd.Execute()
}

// SetOutput redirects command output, mainly for tests.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func (c *CLI) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "notes",
		Short:         "Personal notes web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&c.databasePath, "db", "", "SQLite database path (overrides DATABASE_PATH)")
	cmd.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	cmd.AddCommand(c.newServeCmd())
	cmd.AddCommand(c.newMigrateCmd())
	cmd.AddCommand(c.newCreateUserCmd())

	return cmd
}

func (c *CLI) initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	c.cfg = cfg

	// Override with flags
	if c.databasePath != "" {
		c.cfg.DatabasePath = c.databasePath
	}
	if c.logLevel != "" {
		c.cfg.LogLevel = c.logLevel
	}

	logger.Init(c.cfg.LogLevel, !c.cfg.IsProduction())
	return nil
}

// openDatabase opens the configured database and applies migrations.
func (c *CLI) openDatabase() (*sql.DB, error) {
	db, err := database.New(c.cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply database migrations: %w", err)
	}
	return db, nil
}
