package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	_ "lab_dashboard/docs"
	"lab_dashboard/internal/config"
	"lab_dashboard/internal/handlers"
	"lab_dashboard/internal/logger"
	"lab_dashboard/internal/repository"
	"lab_dashboard/internal/repository/db"
	"lab_dashboard/internal/server"
	"lab_dashboard/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server and the background refresher",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	// open DB
	conn, err := db.InitDB(cfg.DBPath)
	if err != nil {
		log.Errorw("failed to init sqlite", "err", err)
		return err
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// wire dependencies
	repos := repository.NewRepository(conn)
	if err := repos.LabRepo.SaveAll(ctx, cfg.Labs); err != nil {
		log.Errorw("failed to seed labs", "err", err)
		return err
	}
	log.Infow("labs_loaded", "count", len(cfg.Labs))

	services := newServices(cfg, repos, log)
	apiHandler := handlers.NewHandler(services, log, handlers.Config{
		RateLimit:   rate.Limit(cfg.HTTP.RateLimitPerSec),
		RateBurst:   cfg.HTTP.RateBurst,
		ViewRefresh: cfg.Refresh,
	})

	// start refresher (via composed service)
	go services.Refresher.Run(ctx, cfg.Refresh)

	// start HTTP server
	srv := &server.Server{}
	errCh := make(chan error, 1)
	go func() {
		log.Infow("http_listening", "port", cfg.Port)
		errCh <- srv.Run(cfg.Port, apiHandler.InitRoutes())
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("error starting server", "err", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
		return err
	}
	return nil
}

func newServices(cfg *config.Config, repos *repository.Repository, log *logger.Logger) *service.Service {
	source := service.NewMockSource(service.MockSourceConfig{
		MinLatency:     cfg.Source.MinLatency,
		MaxLatency:     cfg.Source.MaxLatency,
		MaintenanceMax: cfg.Source.MaintenanceMax,
		Seed:           cfg.Source.Seed,
	})
	return service.NewService(repos, source, log, service.Options{
		SigningKey:  cfg.Auth.SigningKey,
		TokenTTL:    cfg.Auth.TokenTTL,
		SnapshotTTL: 2 * cfg.Refresh,
	})
}
