package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/MrSnakeDoc/toolshelf/internal/catalog"
	"github.com/MrSnakeDoc/toolshelf/internal/config"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/toolshelf/internal/httpserver/mw"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/metrics"
	"github.com/MrSnakeDoc/toolshelf/internal/redis"
	"github.com/MrSnakeDoc/toolshelf/internal/scheduler"
	"github.com/MrSnakeDoc/toolshelf/internal/sources/seed"
	boltstore "github.com/MrSnakeDoc/toolshelf/internal/store/bolt"
	filestore "github.com/MrSnakeDoc/toolshelf/internal/store/file"
	"github.com/MrSnakeDoc/toolshelf/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/toolshelf/internal/store/redis"
	"github.com/MrSnakeDoc/toolshelf/internal/utils"
	"github.com/MrSnakeDoc/toolshelf/internal/version"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	backend   catalog.Backend
	refresher *scheduler.RecordsRefresher
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	backend, err := openBackend(cfg, loggerClient)
	if err != nil {
		return nil, err
	}
	loggerClient.Info("storage backend ready", logger.String("backend", backend.Name()))

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	prom := metrics.NewPrometheus(registry)

	svc := catalog.NewService(backend, loggerClient, catalog.WithObserver(prom))

	if cfg.SeedFile != "" {
		n, err := seed.LoadAndImport(context.Background(), cfg.SeedFile, svc, loggerClient)
		if err != nil {
			utils.CloseLogged(backend, backend.Name(), loggerClient)
			return nil, fmt.Errorf("failed to seed catalog: %w", err)
		}
		loggerClient.Info("seed applied", logger.String("file", cfg.SeedFile), logger.Int("imported", n))
	}

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		Catalog:        svc,
		BackendName:    svc.BackendName(),
		Metrics:        prom,
		Gatherer:       registry,
		RequestTimeout: cfg.RequestTimeout,
		CORSOrigins:    cfg.CORSOrigins,
		MetricsCIDRS:   cfg.MetricsCIDRS,
		TrustProxy:     cfg.TrustProxy,
		WriteLimit: mw.WriteLimitConfig{
			Burst:             cfg.WriteBurst,
			RefillPerIPPerMin: cfg.WriteRefillPerMin,
			TrustProxy:        cfg.TrustProxy,
		},
	}

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    httpserver.New(cfg.ListenAddr, d),
		backend:   backend,
		refresher: scheduler.NewRecordsRefresher(svc, prom, loggerClient, cfg.MetricsRefresh),
	}, nil
}

// openBackend builds the storage backend selected by cfg.Store.
func openBackend(cfg *config.Config, log logger.Logger) (catalog.Backend, error) {
	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory storage, records are lost on restart")
		return memory.New(), nil

	case config.StoreBolt:
		b, err := boltstore.Open(cfg.BoltFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open bolt store: %w", err)
		}
		return b, nil

	case config.StoreRedis:
		// fail fast if unavailable
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), cfg.RedisConnectTimeout+cfg.RedisPingTimeout)
		defer cancel()
		client, err := redis.Connect(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			PoolSize:       cfg.RedisPoolSize,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisstore.NewStore(client, cfg.RedisKeyPrefix), nil

	default:
		b := filestore.New(cfg.DataFile)
		if err := b.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize data file: %w", err)
		}
		log.Info("data file ready", logger.String("path", b.Path()))
		return b, nil
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting toolshelf %s on %s", version.Version, a.cfg.ListenAddr)
	a.logger.Infof("toolshelf %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.refresher.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	utils.CloseLogged(a.backend, a.backend.Name(), a.logger)

	if runErr == nil {
		a.logger.Info("✅ toolshelf stopped cleanly")
	}
	_ = a.logger.Sync()
	return runErr
}
