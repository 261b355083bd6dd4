package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/converter-api/api"
	"github.com/killallgit/converter-api/api/types"
	"github.com/killallgit/converter-api/internal/services/cleanup"
	"github.com/killallgit/converter-api/internal/services/conversion"
	"github.com/killallgit/converter-api/internal/transcoder"
	"github.com/spf13/cobra"
)

var (
	serverHost string
	serverPort int
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long: `Start the Video to MP3 Converter API server with the configured settings.

Example:
  converter-api serve
  converter-api serve --port 9090
  converter-api serve --host 0.0.0.0 --port 8080`,
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
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Flags override config values
	if serverHost != "" {
		cfg.Server.Host = serverHost
	}
	if serverPort != 0 {
		cfg.Server.Port = serverPort
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	stats := conversion.NewStats()
	svc, err := newConversionService(cfg, stats, log)
	if err != nil {
		return fmt.Errorf("failed to initialize transcoder: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Only the ffmpeg backend leaves scratch directories behind
	if svc.Backend() == transcoder.BackendFFmpeg {
		sweeper := cleanup.NewService(cfg.Storage.TempDir, transcoder.TempDirPrefix, cfg.Storage.MaxTempAge, cfg.Storage.CleanupInterval, log)
		sweeper.Start(ctx)
		defer sweeper.Stop()
	}

	server := api.NewServer(cfg, &types.Dependencies{
		Converter: svc,
		Stats:     stats,
		Logger:    log,
		Build: types.BuildInfo{
			Version:   Version,
			GitCommit: GitCommit,
			BuildTime: BuildTime,
		},
	})
	if err := server.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	// Channel to receive server errors
	serverErr := make(chan error, 1)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("server error: %w", err)
		}
	}()

	log.Infow("Server is ready to handle requests",
		"addr", server.Addr(),
		"transcoder", svc.Backend(),
		"version", Version)

	// Wait for interrupt signal or server error
	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutting down server...")
	case runErr = <-serverErr:
		log.Errorw("Shutting down server...", "error", runErr)
	}

	// Create a context with timeout for shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Attempt graceful shutdown
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Server forced to shutdown", "error", err)
		return err
	}

	log.Info("Server gracefully stopped")
	return runErr
}
