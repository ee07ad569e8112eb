package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/ssantos21/mercurylayer/internal/admin"
	"github.com/ssantos21/mercurylayer/internal/circuitbreaker"
	"github.com/ssantos21/mercurylayer/internal/config"
	"github.com/ssantos21/mercurylayer/internal/metrics"
	"github.com/ssantos21/mercurylayer/internal/store/postgres"
	redispkg "github.com/ssantos21/mercurylayer/internal/store/redis"
	"github.com/ssantos21/mercurylayer/internal/tracing"
	"github.com/ssantos21/mercurylayer/internal/transfer"
)

const (
	serviceName         = "mercuryd"
	shutdownGrace       = 10 * time.Second
	poolStatsInterval   = 15 * time.Second
	serverReadTimeout   = 10 * time.Second
	serverWriteTimeout  = 30 * time.Second
	serverIdleTimeout   = 2 * time.Minute
	serverHeaderTimeout = 5 * time.Second
)

type dbStatsProvider interface {
	Stats() sql.DBStats
}

func resolveLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func collectDBPoolStats(db dbStatsProvider) error {
	if db == nil {
		return fmt.Errorf("db stats provider is nil")
	}

	stats := db.Stats()
	metrics.DBPoolOpen.Set(float64(stats.OpenConnections))
	metrics.DBPoolInUse.Set(float64(stats.InUse))
	metrics.DBPoolIdle.Set(float64(stats.Idle))
	metrics.DBPoolWaitCount.Set(float64(stats.WaitCount))
	metrics.DBPoolWaitDurationSeconds.Set(stats.WaitDuration.Seconds())
	return nil
}

func startDBPoolStatsPump(ctx context.Context, db dbStatsProvider, interval time.Duration, logger *slog.Logger) {
	if db == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := collectDBPoolStats(db); err != nil {
					logger.Warn("failed to collect db pool stats", "error", err)
				}
			}
		}
	}()
}

// resolveEventPublisher picks the settlement event transport: the Redis
// stream when enabled, an in-process buffer otherwise.
func resolveEventPublisher(cfg *config.Config, logger *slog.Logger) (transfer.EventPublisher, func() error, error) {
	if !cfg.Redis.Enabled {
		logger.Info("event stream disabled, using in-memory transport")
		return redispkg.NewInMemoryStream(), func() error { return nil }, nil
	}

	stream, err := redispkg.NewStream(cfg.Redis.URL, cfg.Redis.StreamKey)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize redis event stream: %w", err)
	}

	breaker := circuitbreaker.New(circuitbreaker.Config{Name: "event_stream"}, logger)
	logger.Info("redis event stream enabled", "stream_key", cfg.Redis.StreamKey)
	return redispkg.NewGuardedStream(stream, breaker), stream.Close, nil
}

func newHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       serverReadTimeout,
		WriteTimeout:      serverWriteTimeout,
		IdleTimeout:       serverIdleTimeout,
		ReadHeaderTimeout: serverHeaderTimeout,
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Init(ctx, serviceName, cfg.Tracing.Endpoint, cfg.Tracing.Insecure)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("tracing shutdown failed", "error", err)
		}
	}()

	db, err := postgres.New(postgres.Config{
		URL:                cfg.DB.URL,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetime:    cfg.DB.ConnMaxLifetime,
		StatementTimeoutMS: cfg.DB.StatementTimeoutMS,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer db.Close()

	if err := db.RunMigrations(cfg.DB.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	publisher, closePublisher, err := resolveEventPublisher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closePublisher(); err != nil {
			logger.Warn("event stream close failed", "error", err)
		}
	}()

	transferRepo := postgres.NewTransferRepo(db)
	batchRepo := postgres.NewBatchRepo(db)
	coordinator := transfer.NewCoordinator(batchRepo, logger)
	svc := transfer.NewService(db, transferRepo, coordinator, publisher, logger)

	startDBPoolStatsPump(ctx, db.DB, poolStatsInterval, logger)

	rl := admin.NewRateLimitMiddleware(logger)
	defer rl.Stop()

	adminSrv := admin.NewServer(coordinator, svc, db.DB, logger)
	adminHTTP := newHTTPServer(fmt.Sprintf(":%d", cfg.Server.AdminPort), adminSrv.Handler(rl))

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsHTTP := newHTTPServer(fmt.Sprintf(":%d", cfg.Server.MetricsPort), metricsMux)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("admin server listening", "port", cfg.Server.AdminPort)
		if err := adminHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("metrics server listening", "port", cfg.Server.MetricsPort)
		if err := metricsHTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := adminHTTP.Shutdown(shutdownCtx); err != nil {
			logger.Warn("admin server shutdown failed", "error", err)
		}
		if err := metricsHTTP.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown failed", "error", err)
		}
		return nil
	})

	return g.Wait()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: resolveLogLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("mercuryd starting")
	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("mercuryd exited with error", "error", err)
		os.Exit(1)
	}
	logger.Info("mercuryd stopped")
}
