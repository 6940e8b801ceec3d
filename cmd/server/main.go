package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/idrsdev/agile-task/common/id"
	"github.com/idrsdev/agile-task/common/logger"
	"github.com/idrsdev/agile-task/common/otel"
	"github.com/idrsdev/agile-task/core/config"
	"github.com/idrsdev/agile-task/core/db"
	"github.com/idrsdev/agile-task/internal/http/middleware"
	httprouter "github.com/idrsdev/agile-task/internal/http/router"
	"github.com/idrsdev/agile-task/internal/http/validation"
	"github.com/idrsdev/agile-task/internal/queue"
	"github.com/idrsdev/agile-task/internal/service"
	"github.com/idrsdev/agile-task/internal/store"
	"github.com/idrsdev/agile-task/internal/token"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeServer)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	// OTel must init before logger (logger uses OTel provider in production)
	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	if telemetry != nil {
		slog.InfoContext(ctx, "otel initialized", "endpoint", cfg.OTel.Endpoint)
	} else {
		slog.InfoContext(ctx, "otel disabled (no endpoint configured)")
	}

	slog.InfoContext(ctx, "agile-task server starting", "env", cfg.Env, "service", cfg.OTel.ServiceName)
	if err := id.Init(1); err != nil {
		slog.ErrorContext(ctx, "failed to initialize snowflake id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	var events service.EventPublisher = service.NoopPublisher{}
	if cfg.Events.Enabled() {
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
		slog.InfoContext(ctx, "redis connected", "stream", cfg.Events.Stream)

		producer := queue.NewRedisProducer(redisClient, cfg.Events.Stream, slog.Default())
		defer producer.Close()
		events = producer
	} else {
		slog.InfoContext(ctx, "workspace events disabled (no redis configured)")
	}

	tokens := token.NewManager(cfg.Auth)

	sso := service.NewWorkOSProvider(cfg.WorkOS)
	if sso == nil {
		slog.InfoContext(ctx, "sso disabled (workos not configured)")
	}

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		tokens,
		sso,
		events,
		cfg.Paging,
	)

	if err := validation.Register(); err != nil {
		slog.ErrorContext(ctx, "failed to register validators", "error", err)
		os.Exit(1)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg, services, tokens, database)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.InfoContext(ctx, "http server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.ErrorContext(ctx, "http server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.ErrorContext(shutdownCtx, "http server shutdown error", "error", err)
	}

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(shutdownCtx, "shutdown complete")
}

func setupRouter(cfg config.Config, services *service.Services, verifier token.Verifier, database *db.DB) *gin.Engine {
	router := gin.New()

	// Order matters: OTel creates span → RequestID tags logs → Recovery catches panics → Logger logs with trace context
	if cfg.OTel.Enabled() {
		router.Use(otelgin.Middleware(cfg.OTel.ServiceName))
	}
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())

	httprouter.SetupRoutes(router, services, httprouter.RouterConfig{
		IsProduction: cfg.IsProduction(),
		Verifier:     verifier,
		AuthLimiter:  middleware.NewIPRateLimiter(cfg.RateLimit.AuthRPS, cfg.RateLimit.AuthBurst),
		DB:           database,
	})

	return router
}
