package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"listkeeper-backend/infrastructure/config"
	"listkeeper-backend/infrastructure/di"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env in local development; ignore absence
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	// Expose worker metrics when enabled. The metrics server is best-effort
	// and never blocks the poller.
	var metricsSrv *http.Server
	if cfg.EnableMetrics {
		mux := http.NewServeMux()
		mux.Handle("/metrics", container.Metrics.Handler())
		metricsSrv = &http.Server{
			Addr:    cfg.MetricsAddress,
			Handler: mux,
		}
		go func() {
			container.Logger.Info("Starting metrics server",
				zap.String("address", cfg.MetricsAddress),
			)
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				container.Logger.Error("Metrics server failed", zap.Error(err))
			}
		}()
	}

	container.Logger.Info("Starting export worker",
		zap.String("queueUrl", cfg.QueueURL),
		zap.Duration("pollInterval", cfg.DefaultPollInterval),
	)
	container.Poller.Start(ctx)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	container.Logger.Info("Shutting down export worker...")
	container.Poller.Stop()

	if metricsSrv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
		defer shutdownCancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			container.Logger.Error("Metrics server shutdown error", zap.Error(err))
		}
	}

	if err := container.Logger.Sync(); err != nil {
		log.Printf("Failed to sync logger: %v", err)
	}

	log.Println("Export worker stopped")
}
