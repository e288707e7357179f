package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/api"
	"github.com/killallgit/book-search/api/types"
	"github.com/killallgit/book-search/internal/services/cleanup"
	"github.com/killallgit/book-search/internal/services/sessions"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Book Search server with the configured settings.

The server renders the search page, keeps one search session per browser
and streams results over server-sent events.

Example:
  book-search serve
  book-search serve --port 9090
  book-search serve --host 0.0.0.0 --port 8080`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Server flags
	serveCmd.Flags().StringVar(&serverHost, "host", "", "server host (overrides config)")
	serveCmd.Flags().IntVar(&serverPort, "port", 0, "server port (overrides config)")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load config (lazy loading - only when serve command is run)
	if err := loadConfig(); err != nil {
		return err
	}

	// Use config values if flags not provided
	serverCfg := appConfig.Server
	if serverHost != "" {
		serverCfg.Host = serverHost
	}
	if serverPort != 0 {
		serverCfg.Port = serverPort
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	db, repo, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()

		retention := cleanup.NewService(repo, appConfig.Database.Retention, appConfig.Database.PruneInterval)
		retention.Start(ctx)
		defer retention.Stop()
	}

	service := newSearchService(appConfig, repo)
	manager := sessions.NewManager(sessions.Config{
		DefaultPageSize: appConfig.Search.DefaultPageSize,
		Debounce:        appConfig.Search.Debounce,
		IdleTimeout:     appConfig.Sessions.IdleTimeout,
		CleanupInterval: appConfig.Sessions.CleanupInterval,
		EventBuffer:     appConfig.Sessions.EventBuffer,
	}, service)

	deps := &types.Dependencies{
		Config:   appConfig,
		DB:       db,
		Fetcher:  service,
		Sessions: manager,
		History:  repo,
	}

	srv := api.NewServer(serverCfg, deps, api.BuildInfo{Version: Version, Commit: GitCommit})
	if err := srv.Initialize(); err != nil {
		manager.Shutdown()
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"addr":              srv.Addr(),
		"default_page_size": appConfig.Search.DefaultPageSize,
		"history":           repo != nil,
	}).Info("Starting Book Search server")

	// Channel to listen for interrupt signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	// Wait for interrupt signal, cancellation or server error
	select {
	case <-stop:
		logrus.Info("Shutting down server...")
	case <-ctx.Done():
		logrus.Info("Context cancelled, shutting down server...")
	case err := <-serverErr:
		logrus.WithError(err).Error("Server failed")
	}

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), appConfig.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
		return err
	}

	logrus.Info("Server gracefully stopped")
	return nil
}
