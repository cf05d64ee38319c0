package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/internlink/server/internal/api"
	"github.com/internlink/server/internal/config"
	"github.com/internlink/server/internal/domain/accounts"
	"github.com/internlink/server/internal/storage"
	"github.com/internlink/server/internal/storage/postgres"
	"github.com/internlink/server/internal/storage/sqlite"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// Server flags (override config/env)
	serverHost string
	serverPort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the InternLink HTTP server",
	Long: `Start the InternLink HTTP server and begin accepting API requests.

The server will:
- Load configuration from environment variables (or --config file if provided)
- Open PostgreSQL when DATABASE_URL is set, otherwise a local SQLite file
- Apply pending schema migrations
- Seed the default admin account if it does not exist
- Handle graceful shutdown on SIGINT/SIGTERM

Examples:
  # Start with default configuration (from env vars)
  server serve

  # Start on a specific host and port
  server serve --host 127.0.0.1 --port 9090

  # Start with debug logging
  server serve --log-level debug`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host address (default: 0.0.0.0)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (default: 8080)")
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	logger := config.NewLogger(cfg.Logging)
	logger.Info().Str("version", Version).Msg("starting InternLink server")

	repo, err := openRepository(cfg, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	// A portal with no admin is unusable, so a failed seed is fatal.
	seedCtx, seedCancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = accounts.NewService(repo.Accounts(), logger).
		SeedAdmin(seedCtx, cfg.SeedAdmin.Name, cfg.SeedAdmin.Email, cfg.SeedAdmin.Password)
	seedCancel()
	if err != nil {
		return fmt.Errorf("admin seed failed: %w", err)
	}

	api.Version = Version
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           api.NewRouter(cfg, logger, repo),
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		logger.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	return gracefulShutdown(server, logger)
}

// openRepository selects the storage dialect once at startup and applies
// pending migrations before handing the repository out.
func openRepository(cfg config.Config, logger zerolog.Logger) (storage.Repository, error) {
	if cfg.Database.UsePostgres() {
		if err := postgres.MigrateUp(cfg.Database.URL); err != nil {
			return nil, fmt.Errorf("postgres migrations failed: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		pool, err := postgres.Connect(ctx, cfg.Database.URL, cfg.Database.MaxConnections)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}

		repo, err := postgres.NewRepository(pool)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("repository init failed: %w", err)
		}
		logger.Info().Msg("using PostgreSQL storage")
		return repo, nil
	}

	if err := sqlite.MigrateUp(cfg.Database.SQLitePath); err != nil {
		return nil, fmt.Errorf("sqlite migrations failed: %w", err)
	}

	db, err := sqlite.Open(cfg.Database.SQLitePath)
	if err != nil {
		return nil, fmt.Errorf("sqlite open failed: %w", err)
	}

	repo, err := sqlite.NewRepository(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repository init failed: %w", err)
	}
	logger.Info().Str("path", cfg.Database.SQLitePath).Msg("using SQLite storage")
	return repo, nil
}

func gracefulShutdown(server *http.Server, logger zerolog.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	logger.Info().Str("signal", sig.String()).Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	logger.Info().Msg("server stopped")
	return nil
}
