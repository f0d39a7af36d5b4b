package main

import (
	"context"
	"errors"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/akarpenko/image-normalizer/internal/api/handlers/image"
	"github.com/akarpenko/image-normalizer/internal/api/router"
	"github.com/akarpenko/image-normalizer/internal/api/server"
	"github.com/akarpenko/image-normalizer/internal/config"
	"github.com/akarpenko/image-normalizer/internal/fetch"
	"github.com/akarpenko/image-normalizer/internal/infra/kafka/consumer"
	"github.com/akarpenko/image-normalizer/internal/infra/kafka/producer"
	taskmsg "github.com/akarpenko/image-normalizer/internal/kafka/handlers/task"
	"github.com/akarpenko/image-normalizer/internal/normalize"
	imagesvc "github.com/akarpenko/image-normalizer/internal/service/image"
	"github.com/akarpenko/image-normalizer/internal/storage/file"
	"github.com/akarpenko/image-normalizer/internal/storage/object"
)

func main() {
	// Context & signals: used for graceful shutdown on system interrupts.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize logger and load application configuration.
	zlog.Init()
	cfg := config.MustLoad("./config/config.yml")

	// Retry strategy for Kafka and download calls.
	strategy := retry.Strategy{
		Attempts: cfg.Retry.Attempts,
		Delay:    cfg.Retry.Delay,
		Backoff:  cfg.Retry.Backoff,
	}

	// Image download client.
	dl := fetch.New(cfg.Download.Timeout, strategy)

	// Kafka producer for async normalization jobs.
	p := producer.New(&cfg.Kafka, strategy)

	svcCfg := imagesvc.Config{
		WorkDir: cfg.WorkDir,
		Watermark: imagesvc.Watermark{
			Text:     cfg.Watermark.Text,
			FontPath: cfg.Watermark.FontPath,
		},
		Defaults: normalize.Options{
			MaxWidth:  cfg.Normalize.MaxWidth,
			MaxHeight: cfg.Normalize.MaxHeight,
			MaxSize:   cfg.Normalize.MaxSize,
		},
	}

	// Build the service on the configured storage backend.
	var (
		svc *imagesvc.Service
		err error
	)
	switch cfg.Storage.Backend {
	case "local":
		svc, err = imagesvc.NewService(dl, file.NewStorage(cfg.Storage.BaseDir), p, svcCfg)
	default:
		var store *object.Storage
		store, err = object.NewStorage(ctx, cfg.Storage.Endpoint, cfg.Storage.AccessKey, cfg.Storage.SecretKey, cfg.Storage.BucketName, cfg.Storage.UseSSL)
		if err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to connect to storage")
		}
		svc, err = imagesvc.NewService(dl, store, p, svcCfg)
	}
	if err != nil {
		zlog.Logger.Fatal().Err(err).Msg("failed to create service")
	}

	// Kafka message handler for queued normalization tasks.
	queuedHandler := taskmsg.NewQueuedHandler(svc)

	// HTTP handler for normalization routes.
	imgHandler := image.NewHandler(svc)

	// Kafka consumer for processing queued tasks.
	c := consumer.New(&cfg.Kafka, strategy, queuedHandler)

	// Start Kafka consumer in a separate goroutine.
	var wg sync.WaitGroup
	wg.Add(1)
	go c.Consume(ctx, &wg)

	// Start HTTP server in a separate goroutine.
	r := router.Setup(imgHandler)
	s := server.New(cfg.Server.HTTPPort, r)
	go func() {
		if err := s.ListenAndServe(); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Block until context is canceled (SIGINT/SIGTERM).
	<-ctx.Done()
	zlog.Logger.Info().Msg("context done")

	// Wait for the Kafka consumer goroutine to finish.
	wg.Wait()

	// Graceful shutdown with timeout for the HTTP server.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}
	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}

	// Close Kafka producer and consumer clients.
	if err := p.Client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close kafka producer client")
	}
	if err := c.Client.Close(); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to close kafka consumer client")
	}
}
