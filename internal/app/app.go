package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"

	"LaunchDashboard/internal/config"
	"LaunchDashboard/internal/domain"
	"LaunchDashboard/internal/infrastructure/chart"
	"LaunchDashboard/internal/infrastructure/csvsource"
	"LaunchDashboard/internal/infrastructure/storage"
	"LaunchDashboard/internal/infrastructure/web"
	"LaunchDashboard/internal/logging"
	"LaunchDashboard/internal/ports"
	"LaunchDashboard/internal/reactive"
	"LaunchDashboard/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg     config.Config
	logger  *slog.Logger
	dataset *domain.Dataset
	server  *web.Server
	closers []func() error
}

// New loads the dataset and builds the HTTP surface. Any load failure aborts
// construction so a partially initialised page is never served.
func New(ctx context.Context, cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	a := &Application{cfg: cfg, logger: baseLogger}

	source, err := a.datasetSource()
	if err != nil {
		return nil, err
	}

	ds, err := source.Load(ctx)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("load dataset: %w", err)
	}
	a.dataset = ds
	if err := a.Close(); err != nil {
		baseLogger.Warn("release dataset source", "error", err)
	}

	baseLogger.Info("dataset loaded",
		"records", ds.Len(),
		"sites", len(ds.Sites()),
		"min_payload", ds.MinPayload(),
		"max_payload", ds.MaxPayload(),
	)

	dashboard := usecase.NewDashboard(usecase.DashboardDeps{
		Dataset:            ds,
		IgnorePayloadRange: cfg.Scatter.IgnorePayloadRange,
		Logger:             baseLogger.With("component", "dashboard"),
	})

	layout := usecase.BuildLayout(ds)
	defaults := usecase.DefaultInputs(layout)
	registry := reactive.NewRegistry(defaults)
	if err := usecase.RegisterCallbacks(registry, dashboard); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("register callbacks: %w", err)
	}

	server, err := web.NewServer(web.ServerDeps{
		Layout:   layout,
		Registry: registry,
		Renderer: chart.NewRenderer(cfg.Chart),
		Defaults: defaults,
		Records:  ds.Len(),
		Logger:   baseLogger.With("component", "web"),
	})
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.server = server

	return a, nil
}

func (a *Application) datasetSource() (ports.DatasetSource, error) {
	if a.cfg.Dataset.DSN == "" {
		return csvsource.NewLoader(a.cfg.Dataset.Path, a.logger.With("component", "csvsource")), nil
	}

	db, err := sql.Open("postgres", a.cfg.Dataset.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	return storage.NewPostgresSource(db, a.cfg.Dataset.Table, a.cfg.Dataset.OrderBy), nil
}

// Dataset returns the loaded launch table.
func (a *Application) Dataset() *domain.Dataset {
	return a.dataset
}

// Handler exposes the HTTP handler, mainly for tests.
func (a *Application) Handler() http.Handler {
	return a.server.Handler()
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (a *Application) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", a.cfg.Server.Addr, err)
	}
	return a.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	defer a.Close()

	httpServer := &http.Server{Handler: a.server.Handler()}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("dashboard listening", "addr", listener.Addr().String())
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve http: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
		defer cancel()
		a.logger.Info("shutting down")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// Close releases resources opened for loading.
func (a *Application) Close() error {
	var errs []error
	for _, closer := range a.closers {
		errs = append(errs, closer())
	}
	a.closers = nil
	return errors.Join(errs...)
}
