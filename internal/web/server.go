// Package web provides the HTTP server exposing the database gateway.
package web

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"github.com/rowboat-labs/rowboat/internal/gateway"
	"github.com/rowboat-labs/rowboat/internal/web/router"
	"golang.org/x/sync/errgroup"
)

// Config holds configuration for the gateway server.
type Config struct {
	Registry      *gateway.Registry
	Port          int
	SessionSecret string
	AuthUser      string
	AuthPassword  string

	// WatchFile, when non-empty, is a configuration file whose changes
	// trigger a registry reload.
	WatchFile string

	Logger *slog.Logger
}

// Server is the gateway HTTP server.
type Server struct {
	registry     *gateway.Registry
	introspector *gateway.Introspector
	mutator      *gateway.Mutator
	sessionStore *sessions.CookieStore
	port         int
	authUser     string
	authPassword string
	watchFile    string
	logger       *slog.Logger
}

// NewServer creates a new server instance and wires the gateway services
// over the registry.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.MaxAge(86400) // 1 day
	sessionStore.Options.Path = "/"
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.SameSite = http.SameSiteLaxMode

	executor := gateway.NewExecutor(cfg.Registry, logger)
	introspector := gateway.NewIntrospector(cfg.Registry, executor)
	mutator := gateway.NewMutator(cfg.Registry, introspector, executor)

	return &Server{
		registry:     cfg.Registry,
		introspector: introspector,
		mutator:      mutator,
		sessionStore: sessionStore,
		port:         cfg.Port,
		authUser:     cfg.AuthUser,
		authPassword: cfg.AuthPassword,
		watchFile:    cfg.WatchFile,
		logger:       logger,
	}
}

// Serve starts the server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting gateway server", slog.String("addr", fmt.Sprintf("http://localhost:%d", s.port)))

	eg, egctx := errgroup.WithContext(ctx)

	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	router.SetupRoutes(r, router.Deps{
		Registry:     s.registry,
		Introspector: s.introspector,
		Mutator:      s.mutator,
		SessionStore: s.sessionStore,
		AuthUser:     s.authUser,
		AuthPassword: s.authPassword,
		Logger:       s.logger,
	})

	srv := &http.Server{
		Addr:    addr,
		Handler: r,
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	if s.watchFile != "" {
		eg.Go(func() error {
			return s.watchConfig(egctx)
		})
	}

	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down gateway server")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchConfig reloads the registry when the watched configuration file
// changes. Edits are debounced so editors that write in bursts trigger a
// single reload.
func (s *Server) watchConfig(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(s.watchFile); err != nil {
		s.logger.Error("failed to watch config file",
			slog.String("file", s.watchFile),
			slog.String("error", err.Error()))
		// Continue without watching.
		<-ctx.Done()
		return nil
	}

	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(250*time.Millisecond, func() {
				s.logger.Info("config file changed, reloading registry", slog.String("file", event.Name))
				if err := s.registry.Reload(ctx); err != nil {
					s.logger.Error("reload failed", slog.String("error", err.Error()))
				}
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", slog.String("error", err.Error()))
		}
	}
}
