package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/datosargentinosjuniors/scouting-aaaj/internal/config"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/player"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/domain/variant"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/memory"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/postgres"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/infrastructure/repository/xlsx"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/interfaces/httpapi"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/interfaces/mcptools"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/observability"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/platform/logging"
	"github.com/datosargentinosjuniors/scouting-aaaj/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

// App owns the HTTP server and every resource opened to serve it.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	server  *http.Server
	rosters *usecase.RosterService
	closers []func(context.Context) error
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	if err := a.initObservability(); err != nil {
		_ = a.close(ctx)
		return nil, err
	}

	catalog, err := variant.DefaultCatalog()
	if err != nil {
		_ = a.close(ctx)
		return nil, fmt.Errorf("load variant catalog: %w", err)
	}

	repo, err := a.rosterRepository(ctx)
	if err != nil {
		_ = a.close(ctx)
		return nil, err
	}

	a.rosters = usecase.NewRosterService(catalog, repo, logger)
	scouting := usecase.NewScoutingService(a.rosters)

	opts := httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
	if cfg.MCPEnabled {
		opts.MCPPath = cfg.MCPPath
		opts.MCP = mcptools.NewHTTPHandler(mcptools.NewServer(scouting, logger.Named("mcp"), cfg.ServiceVersion))
	}
	router := httpapi.NewRouter(httpapi.NewHandler(scouting, logger), logger, opts)

	if cfg.HTTPAddr == "" {
		_ = a.close(ctx)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}
	a.server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return a, nil
}

// Handler exposes the router, mainly for tests.
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run serves until ctx is cancelled, then drains in-flight requests and
// releases resources.
func (a *App) Run(ctx context.Context) error {
	if a.cfg.RosterWarmup {
		go func() {
			if err := a.rosters.Warmup(ctx, a.cfg.RosterWarmupConcurrency); err != nil {
				a.logger.WarnContext(ctx, "roster warmup incomplete", "error", err)
				return
			}
			a.logger.InfoContext(ctx, "roster warmup done")
		}()
	}

	serveErr := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.server.Addr, "roster_source", a.cfg.RosterSource)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case err, ok := <-serveErr:
		if ok {
			runErr = fmt.Errorf("http server failed: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, fmt.Errorf("graceful shutdown failed: %w", err))
	}
	if err := a.close(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}
	a.logger.Info("http server stopped")
	return runErr
}

func (a *App) initObservability() error {
	stack, err := observability.Setup(a.cfg, a.logger)
	if err != nil {
		return err
	}
	a.closers = append(a.closers, stack.Shutdown)
	return nil
}

// rosterRepository picks the source named by ROSTER_SOURCE and optionally
// fronts it with the Redis snapshot cache.
func (a *App) rosterRepository(ctx context.Context) (player.Repository, error) {
	var repo player.Repository
	switch a.cfg.RosterSource {
	case config.RosterSourceXLSX:
		repo = xlsx.NewPlayerRepository(a.cfg.RosterDataDir, a.logger)
	case config.RosterSourcePostgres:
		db, err := OpenDB(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeDB(db))
		repo = postgres.NewPlayerRepository(db)
	case config.RosterSourceMemory:
		repo = memory.NewPlayerRepository(memory.SeedRecords())
	default:
		return nil, fmt.Errorf("unsupported roster source %q", a.cfg.RosterSource)
	}

	if !a.cfg.RedisEnabled {
		return repo, nil
	}
	cached, client := NewSnapshotCache(a.cfg, repo, a.logger)
	a.closers = append(a.closers, func(context.Context) error { return client.Close() })
	if err := client.Ping(ctx).Err(); err != nil {
		a.logger.Warn("redis unreachable at startup, snapshots degrade to source reads", "addr", a.cfg.RedisAddr, "error", err)
	}
	return cached, nil
}

// close runs closers in reverse order of registration.
func (a *App) close(ctx context.Context) error {
	var errs error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	a.closers = nil
	return errs
}

func closeDB(db *sqlx.DB) func(context.Context) error {
	return func(context.Context) error {
		return db.Close()
	}
}
