// Package cli provides the command-line interface for the rowboat gateway.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/rowboat-labs/rowboat/internal/config"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  *slog.Logger
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rowboat",
		Short: "Rowboat - browser-based SQL data viewer and editor",
		Long: `Rowboat is a gateway that exposes PostgreSQL, MySQL/MariaDB and SQL Server
databases through one HTTP API for browsing schemas and editing rows.

Databases are configured with indexed environment groups (DB_1_TYPE,
DB_1_HOST, ...), typically kept in a .env file.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelInfo
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default rowboat.yaml)")
	rootCmd.PersistentFlags().Int("port", config.DefaultPort, "HTTP port to listen on")
	rootCmd.PersistentFlags().String("env-file", "", "dotenv file with DB_<n>_* descriptor groups (default .env)")
	rootCmd.PersistentFlags().Bool("watch", false, "reload the registry when the env file changes")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
