package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brownsdata/ingredient-allocator/internal/api"
	"github.com/brownsdata/ingredient-allocator/internal/application/service"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/logging"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

// RunServe runs the API server until interrupted.
func RunServe(cfg *config.Config, flags *ServeFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "api")

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := service.NewAllocationService(store, cfg.Allocation, logger)

	port := cfg.Server.Port
	if flags.Port > 0 {
		port = flags.Port
	}
	apiCfg := api.Config{
		Port:           port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
	}

	server := api.NewServer(apiCfg, svc, logger)

	// Graceful shutdown on SIGINT/SIGTERM
	done := make(chan error, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		done <- server.Start()
	}()

	select {
	case err := <-done:
		return err
	case sig := <-quit:
		logger.Info("received signal", "signal", sig.String())
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(ctx)
	}
}
