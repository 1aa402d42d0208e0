package app

import (
	"context"
	"fmt"
	"net"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/brainsync-backend/internal/data/db"
	apphttp "github.com/yungbote/brainsync-backend/internal/http"
	"github.com/yungbote/brainsync-backend/internal/observability"
	"github.com/yungbote/brainsync-backend/internal/platform/logger"
)

// Version is stamped at build time with -ldflags.
var Version = "dev"

type App struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.Service
	Metrics  *observability.Metrics
	Clients  Clients
	Repos    Repos
	Services Services
	Router   *gin.Engine

	server       *apphttp.Server
	shutdownOtel func(context.Context) error
}

// OpenDatabase connects with the configured driver without wiring anything else.
func OpenDatabase(log *logger.Logger, cfg Config) (*db.Service, error) {
	svc, err := db.NewService(log, db.Options{
		Driver:     cfg.DBDriver,
		DSN:        cfg.DatabaseURL,
		SQLitePath: cfg.SQLitePath,
	})
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	return svc, nil
}

// New wires the full server. The database is migrated before anything else is built.
func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	shutdownOtel := observability.InitOTel(ctx, log, cfg.OtelConfig(Version))
	metrics := observability.Init(cfg.MetricsEnabled)

	dbSvc, err := OpenDatabase(log, cfg)
	if err != nil {
		return nil, err
	}
	if err := dbSvc.AutoMigrateAll(); err != nil {
		_ = dbSvc.Close()
		return nil, err
	}
	theDB := dbSvc.DB()

	clients, err := wireClients(log, cfg)
	if err != nil {
		_ = dbSvc.Close()
		return nil, err
	}

	reposet := wireRepos(theDB, log)
	serviceset, err := wireServices(theDB, log, cfg, metrics, clients, reposet)
	if err != nil {
		clients.Close()
		_ = dbSvc.Close()
		return nil, err
	}

	handlerset := wireHandlers(theDB, serviceset)
	middleware := wireMiddleware(log, serviceset)
	router := wireRouter(log, cfg, metrics, handlerset, middleware)

	return &App{
		Log:          log,
		Cfg:          cfg,
		DB:           dbSvc,
		Metrics:      metrics,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Router:       router,
		server:       apphttp.NewServer(log, net.JoinHostPort("", cfg.Port), router),
		shutdownOtel: shutdownOtel,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.server.Run(ctx)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	a.Clients.Close()
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			a.Log.Warn("close database", "error", err)
		}
	}
	if a.shutdownOtel != nil {
		ctx, cancel := context.WithTimeout(context.Background(), apphttp.ShutdownTimeout)
		defer cancel()
		if err := a.shutdownOtel(ctx); err != nil {
			a.Log.Warn("flush traces", "error", err)
		}
	}
	a.Log.Sync()
}
