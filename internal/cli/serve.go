package cli

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rowboat-labs/rowboat/internal/config"
	"github.com/rowboat-labs/rowboat/internal/gateway"
	"github.com/rowboat-labs/rowboat/internal/web"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the gateway HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			envFile := cfg.EnvFile
			if envFile == "" {
				if _, err := os.Stat(".env"); err == nil {
					envFile = ".env"
				}
			}

			source := config.EnvSource()
			if envFile != "" {
				source = config.FileSource(envFile)
			}

			registry := gateway.NewRegistry(gateway.RegistryConfig{
				Source: source,
				Logger: logger,
			})
			defer registry.Close()

			if err := registry.Initialize(ctx); err != nil {
				return err
			}
			logger.Info("registry initialized", slog.Int("databases", len(registry.List())))

			watchFile := ""
			if cfg.Watch && envFile != "" {
				watchFile = envFile
			}

			server := web.NewServer(web.Config{
				Registry:      registry,
				Port:          cfg.Port,
				SessionSecret: cfg.SessionSecret,
				AuthUser:      cfg.AuthUser,
				AuthPassword:  cfg.AuthPassword,
				WatchFile:     watchFile,
				Logger:        logger,
			})

			return server.Serve(ctx)
		},
	}
}
