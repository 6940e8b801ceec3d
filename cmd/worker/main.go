package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/common/otel"
	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/core/db"
	"github.com/idrsdev/agile-task/internal/queue"
	"github.com/idrsdev/agile-task/internal/store"
	"github.com/idrsdev/agile-task/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "audit worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Events.Group,
		"consumer_name", cfg.Events.Consumer)

	// Different node ID than the server so IDs never collide
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Events.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Events.Stream,
		Group:        cfg.Events.Group,
		Consumer:     cfg.Events.Consumer,
		DLQStream:    cfg.Events.DLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Events.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	stores := store.NewStores(database.Queries())

	w := worker.New(consumer, stores.WorkspaceEventLogs(), worker.Config{
		MaxAttempts: cfg.Events.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:      cfg.Events.Stream,
		Group:       cfg.Events.Group,
		Consumer:    cfg.Events.Consumer + "-reclaimer",
		MinIdle:     cfg.Events.ReclaimMinIdle,
		Interval:    time.Minute,
		BatchSize:   10,
		MaxAttempts: cfg.Events.MaxAttempts,
	}, consumer, w.ProcessMessage)

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(ctx)
	}()
	go func() {
		reclaimer.Run(ctx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Reclaimer first; it is quick. The worker may be mid-batch.
	done := make(chan struct{})
	go func() {
		reclaimer.Stop()
		w.Stop()
		close(done)
	}()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(shutdownCtx, "shutdown timeout exceeded")
	case <-done:
		for range 2 {
			if err := <-errCh; err != nil {
				slog.ErrorContext(shutdownCtx, "worker error during shutdown", "error", err)
			}
		}
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "worker shutdown complete")
}
