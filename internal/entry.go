// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/sift/internal/index"
	"github.com/starford/sift/internal/metrics"
	"github.com/starford/sift/internal/server"
	"github.com/starford/sift/internal/storage"
)

// Run indexes the corpus and serves it until ctx is cancelled, a shutdown
// signal arrives, or the listening socket fails.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg, logger := app.config, app.logger

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("corpus_path", cfg.Corpus.Path),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.Bool("serial", cfg.App.HTTP.Serial),
		slog.String("log_level", cfg.App.LogLevel.String()))

	store, db, err := openIndex(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	shared := index.NewShared(db)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}
	onChange := func(kind, path string) {
		logger.Debug("index changed", slog.String("op", kind), slog.String("path", path))
		m.ObserveMutation(kind)
	}

	if err := index.Sync(shared, store, logger, onChange); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}
	if st, err := shared.Stats(); err == nil {
		m.SetIndexSize(st.Documents, st.Terms)
		logger.Info("Index ready", slog.Int("documents", st.Documents), slog.Int("terms", st.Terms))
	}

	handler := server.NewHandler(shared, m)
	router := server.NewRouter(handler, server.RouterOptions{
		Logger:  logger,
		Metrics: m,
		Serial:  cfg.App.HTTP.Serial,
	})
	srv := server.New(cfg.App.HTTP.Address(), router, logger)
	if err := srv.Listen(); err != nil {
		return err
	}
	if app.onReady != nil {
		app.onReady(srv.Addr())
	}

	g, gCtx := errgroup.WithContext(ctx)

	if cfg.Corpus.Watch {
		g.Go(func() error {
			if err := index.Watch(gCtx, shared, store, store.Root(), logger, onChange); err != nil {
				// Serving a stale index beats not serving.
				logger.Error("watcher failed", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	if m != nil {
		g.Go(func() error {
			if err := m.Serve(gCtx, cfg.Metrics.Address(), logger); err != nil {
				return fmt.Errorf("metrics server error: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return srv.Serve()
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher and metrics server stop
// once the HTTP server has been shut down.
var errShutdown = errors.New("shutdown")

// Reindex brings the index in line with the corpus once and returns.
func Reindex(_ context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	store, db, err := openIndex(app.config)
	if err != nil {
		return err
	}
	defer db.Close()
	shared := index.NewShared(db)

	changes := 0
	if err := index.Sync(shared, store, app.logger, func(string, string) { changes++ }); err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	st, err := shared.Stats()
	if err != nil {
		return fmt.Errorf("reindex: %w", err)
	}
	app.logger.Info("Reindex complete",
		slog.Int("changes", changes),
		slog.Int("documents", st.Documents),
		slog.Int("terms", st.Terms))
	return nil
}

func newApplication(opts []Option) (*application, error) {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	if app.logger == nil {
		app.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: app.config.App.LogLevel,
		}))
	}
	slog.SetDefault(app.logger)
	return app, nil
}

func openIndex(cfg *Config) (*storage.FS, *index.DB, error) {
	if err := os.MkdirAll(cfg.Corpus.Path, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create corpus dir: %w", err)
	}
	store, err := storage.NewFS(cfg.Corpus.Path, cfg.Corpus.Extensions)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}
	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}
	return store, db, nil
}
