package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/lessonquiz-backend/internal/data/db"
	"github.com/yungbote/lessonquiz-backend/internal/http"
	"github.com/yungbote/lessonquiz-backend/internal/observability"
	"github.com/yungbote/lessonquiz-backend/internal/platform/envutil"
	"github.com/yungbote/lessonquiz-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *db.Service
	Server   *http.Server
	Cfg      Config
	Repos    Repos
	Services Services

	shutdownTelemetry func(context.Context) error
}

func New() (*App, error) {
	if _, err := loadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
	}
	log, err := logger.NewWithOptions(logger.Options{
		Mode:   envutil.String("LOG_MODE", "development"),
		Level:  envutil.String("LOG_LEVEL", ""),
		Redact: true,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading configuration...")
	cfg, err := LoadConfig(log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	shutdownTelemetry := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		Enabled:     cfg.Telemetry.Enabled,
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: cfg.Telemetry.Environment,
		Endpoint:    cfg.Telemetry.Endpoint,
		Insecure:    cfg.Telemetry.Insecure,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})

	database, err := db.Open(db.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.URL,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
	}, log)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.AutoMigrateAll(); err != nil {
		_ = database.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clientset, err := wireClients(log, cfg)
	if err != nil {
		_ = database.Close()
		log.Sync()
		return nil, err
	}
	reposet := wireRepos(database.DB(), log)
	serviceset := wireServices(database.DB(), log, cfg, reposet, clientset)
	handlerset := wireHandlers(log, serviceset, database)
	middleware := wireMiddleware(log, serviceset)
	server := wireServer(log, cfg, handlerset, middleware)

	return &App{
		Log:               log,
		DB:                database,
		Server:            server,
		Cfg:               cfg,
		Repos:             reposet,
		Services:          serviceset,
		shutdownTelemetry: shutdownTelemetry,
	}, nil
}

// Run serves HTTP until ctx is cancelled, then flushes telemetry.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	addr := ":" + a.Cfg.Port

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.Log.Info("Server listening", "addr", addr)
		return a.Server.Run(gctx, addr)
	})
	g.Go(func() error {
		<-gctx.Done()
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.shutdownTelemetry(flushCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		return nil
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil && a.Log != nil {
			a.Log.Warn("database close failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
