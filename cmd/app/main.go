package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/cmd"
	httpadapter "storefront/internal/adapters/in/http"
	"storefront/internal/adapters/out/metrics"
	"storefront/internal/adapters/out/postgres"
	redisadapter "storefront/internal/adapters/out/redis"
	"storefront/internal/core/ports"
	"storefront/internal/jobs"

	"github.com/go-faster/errors"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := cmd.LoadConfig()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Fatal("failed to create logger", zap.Error(err))
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, logger); err != nil {
		logger.Fatal("storefront stopped with error", zap.Error(err))
	}
	logger.Info("storefront stopped")
}

func run(ctx context.Context, cfg cmd.Config, logger *zap.Logger) error {
	db, err := postgres.Open(cfg.DSN(), cfg.Pool())
	if err != nil {
		return err
	}
	if err = postgres.Migrate(db); err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrap(err, "database handle")
	}
	defer func() { _ = sqlDB.Close() }()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	fulfilmentMetrics, err := metrics.NewPrometheus(registry)
	if err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(cfg, db, fulfilmentMetrics, logger)
	if err != nil {
		return err
	}

	var idempotency ports.IdempotencyStore
	if cfg.Redis.Addr != "" {
		client, redisErr := redisadapter.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if redisErr != nil {
			return redisErr
		}
		defer func() { _ = client.Close() }()
		idempotency = redisadapter.NewIdempotencyStore(client, redisadapter.DefaultKeyPrefix, cfg.Redis.TTL)
	} else {
		logger.Info("redis is not configured, Idempotency-Key headers are ignored")
	}

	handlers, err := app.CreateHTTPHandlers()
	if err != nil {
		return err
	}
	e, err := httpadapter.NewRouter(ctx, httpadapter.NewServer(handlers, idempotency, logger), httpadapter.RouterConfig{
		JWTSecret: []byte(cfg.JWTSecret),
		Gatherer:  registry,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	e.Logger.SetLevel(echoLogLevel(cfg.LogLevel))

	dispatcher, err := app.CreateDispatchNotificationsCommandHandler()
	if err != nil {
		return err
	}
	jobManager, err := jobs.NewJobManager(dispatcher, jobs.Config{
		DispatchSchedule:  cfg.Notify.Schedule,
		DispatchBatchSize: cfg.Notify.BatchSize,
	}, logger)
	if err != nil {
		return err
	}
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("port", cfg.HTTPPort))
		if startErr := e.Start(":" + cfg.HTTPPort); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return errors.Wrap(startErr, "http server")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gCtx), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newLogger(level string) (*zap.Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, errors.Wrap(err, "log level")
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = atomicLevel
	logger, err := zapCfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", "storefront")), nil
}

func echoLogLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
