package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/afero"

	post_service "blog-post-service/internal/application/service/post"
	post_service_port "blog-post-service/internal/domain/ports/input/post"
	ports "blog-post-service/internal/domain/ports/output"
	post_repository "blog-post-service/internal/domain/ports/output/post"
	"blog-post-service/internal/infrastructure/config"
	delivery_http "blog-post-service/internal/infrastructure/inbound/http"
	post_http "blog-post-service/internal/infrastructure/inbound/http/post"
	metrics_server "blog-post-service/internal/infrastructure/inbound/metrics"
	"blog-post-service/internal/infrastructure/logger"
	redis_cache "blog-post-service/internal/infrastructure/outbound/cache/redis"
	prometheus_metrics "blog-post-service/internal/infrastructure/outbound/metrics/prometheus"
	post_memory "blog-post-service/internal/infrastructure/outbound/repository/post/memory"
	post_postgres "blog-post-service/internal/infrastructure/outbound/repository/post/postgres"
	"blog-post-service/internal/infrastructure/outbound/repository/postgres"
	"blog-post-service/internal/infrastructure/outbound/storage/disk"
)

func main() {
	cfg := config.MustLoad()
	ctx := context.Background()
	log := logger.New(cfg.Env)

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	var postRepo post_repository.Repository
	switch cfg.Repository.Driver {
	case "memory":
		log.Warn("Using in-memory post repository, data is lost on restart")
		postRepo = post_memory.NewPostRepository(log)
	default:
		dsn := cfg.Database.DSN()

		if cfg.Database.Migrate {
			if err := postgres.MigrateUp(dsn, log); err != nil {
				log.Error("Failed to run migrations", slog.String("error", err.Error()))
				os.Exit(1)
			}
		}

		poolConfig, err := pgxpool.ParseConfig(dsn)
		if err != nil {
			log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
			os.Exit(1)
		}
		if cfg.Database.MaxConns > 0 {
			poolConfig.MaxConns = cfg.Database.MaxConns
		}

		pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer pool.Close()

		postRepo = post_postgres.NewPostRepository(pool, log, metrics)
	}

	publicDisk, err := newPublicDisk(cfg.Storage, log, metrics)
	if err != nil {
		log.Error("Failed to open public disk", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var postService post_service_port.Service = post_service.NewPostService(postRepo, publicDisk, log, metrics)

	if cfg.Redis.Enabled {
		log.Info("Connecting to Redis",
			slog.String("address", cfg.Redis.Address),
			slog.Int("port", cfg.Redis.Port),
			slog.Int("db", cfg.Redis.DB))
		redisClient, err := redis_cache.NewClient(cfg.Redis, log)
		if err != nil {
			log.Error("Failed to create Redis client", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
			}
		}()

		postCache := redis_cache.NewPostCache(redisClient, log)
		postService = post_service.NewPostServiceCacheDecorator(postService, postCache, log, metrics)
	}

	postAPI := post_http.NewPostHTTPService(postService, publicDisk, cfg.HTTPServer.MaxUploadBytes, log)
	httpServer, err := delivery_http.NewServer(cfg.HTTPServer, postAPI, publicDisk.FileSystem(), log, metrics)
	if err != nil {
		log.Error("Failed to build HTTP server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	metrics.SetServiceHealth(true)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}

func newPublicDisk(cfg config.Storage, log ports.Logger, metrics ports.MetricsProvider) (*disk.PublicDisk, error) {
	if cfg.Driver == "memory" {
		log.Warn("Using in-memory public disk, uploaded files are lost on restart")
		return disk.NewPublicDisk(afero.NewMemMapFs(), cfg.PublicURL, log, metrics), nil
	}
	return disk.NewOSPublicDisk(cfg.PublicRoot, cfg.PublicURL, log, metrics)
}
