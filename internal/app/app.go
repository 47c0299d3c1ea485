package app

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/gorm"

	"github.com/yungbote/enrollment-eligibility/internal/config"
	"github.com/yungbote/enrollment-eligibility/internal/data/db"
	apphttp "github.com/yungbote/enrollment-eligibility/internal/http"
	"github.com/yungbote/enrollment-eligibility/internal/observability"
	"github.com/yungbote/enrollment-eligibility/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Server   *apphttp.Server
	Cfg      *config.Config
	Clients  Clients
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New() (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.NewWithLevel(cfg.Env, cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	a, err := NewWithConfig(context.Background(), cfg, log)
	if err != nil {
		log.Sync()
		return nil, err
	}
	return a, nil
}

// NewWithConfig wires the application from an already loaded config.
func NewWithConfig(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if cfg == nil {
		return nil, errors.New("app: nil config")
	}
	if log == nil {
		log = logger.Nop()
	}

	otelShutdown := observability.InitOTel(ctx, log, cfg.Env, cfg.Otel)

	dbService, err := db.NewService(cfg.DB, log)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, fmt.Errorf("init db: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := dbService.AutoMigrateAll(); err != nil {
			_ = dbService.Close()
			_ = otelShutdown(ctx)
			return nil, fmt.Errorf("db automigrate: %w", err)
		}
	}
	theDB := dbService.DB()

	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics()
	}

	clientset := wireClients(log, cfg)
	reposet := wireRepos(theDB, log, clientset)
	serviceset := wireServices(log, reposet, metrics)
	handlerset := wireHandlers(log, theDB, serviceset)

	server := apphttp.NewServer(apphttp.RouterConfig{
		Log:               log,
		ServiceName:       otelServiceName(cfg),
		AllowedOrigins:    cfg.HTTP.AllowedOrigins,
		Metrics:           metrics,
		HealthHandler:     handlerset.Health,
		EnrollmentHandler: handlerset.Enrollment,
	}, cfg.HTTP.Addr)

	return &App{
		Log:          log,
		DB:           theDB,
		Server:       server,
		Cfg:          cfg,
		Clients:      clientset,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start returns a context that is cancelled on SIGINT/SIGTERM or Close.
func (a *App) Start() context.Context {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	a.cancel = cancel
	return ctx
}

// Run serves HTTP until a signal arrives or the server fails, then drains
// in-flight requests within the configured shutdown timeout.
func (a *App) Run() error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	ctx := a.Start()

	errCh := make(chan error, 1)
	go func() { errCh <- a.Server.Run() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := shutdownTimeout(a.Cfg)
	a.Log.Info("Shutting down HTTP server...", "timeout", timeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return <-errCh
}

// Close releases the cache, database and tracer provider. Safe to call twice.
func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.Clients.Cache != nil {
		if err := a.Clients.Cache.Close(); err != nil {
			a.Log.Warn("Row cache close failed", "error", err)
		}
		a.Clients.Cache = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("DB close failed", "error", err)
		}
		a.dbService = nil
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("OTel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}

func otelServiceName(cfg *config.Config) string {
	if !cfg.Otel.Enabled {
		return ""
	}
	return cfg.Otel.ServiceName
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.HTTP.ShutdownTimeout <= 0 {
		return 15 * time.Second
	}
	return cfg.HTTP.ShutdownTimeout
}
