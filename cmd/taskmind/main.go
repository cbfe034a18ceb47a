package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmind/internal/appserver"
	"taskmind/internal/assist"
	"taskmind/internal/command"
	"taskmind/internal/config"
	"taskmind/internal/db"
	"taskmind/internal/db/migration"
	"taskmind/internal/global"
	"taskmind/internal/lifecycle"
	"taskmind/internal/llm"
	"taskmind/internal/localapi"
	"taskmind/internal/logging"
	"taskmind/internal/repository"
	"taskmind/internal/store"
)

var version = "dev"

const (
	readHeaderTimeout = 10 * time.Second
)

func main() {
	rootCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app := command.BuildApp(command.Deps{
		LoadConfig:   config.LoadConfig,
		RunServe:     runServe,
		RunMigrateUp: runMigrateUp,
		Out:          os.Stdout,
	})
	app.Version = version

	if err := app.RunContext(rootCtx, os.Args); err != nil {
		logging.NewLogger(logging.Options{Level: "error", Writer: os.Stderr, Component: "taskmind"}).Error("taskmind failed", "err", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.NewLogger(logging.Options{
		Level:     cfg.LogLevel,
		Writer:    os.Stderr,
		Component: "taskmind",
	})
}

// taskStore is a Store plus whatever must be closed on shutdown.
type taskStore struct {
	store.Store
	close func()
}

func openStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (taskStore, error) {
	if cfg.StoreBackend == global.StoreSQLite {
		gdb, err := db.Open(cfg.SQLitePath)
		if err != nil {
			return taskStore{}, err
		}
		s, err := store.NewSQLiteStore(gdb, logger.With("module", "store"))
		if err != nil {
			db.Close(gdb)
			return taskStore{}, err
		}
		return taskStore{Store: s, close: func() { db.Close(gdb) }}, nil
	}
	s := store.NewJSONFileStore(cfg.DataFile, logger.With("module", "store"))
	if err := s.Init(ctx); err != nil {
		return taskStore{}, err
	}
	return taskStore{Store: s, close: func() {}}, nil
}

func buildHandler(cfg config.Config, s store.Store, completer assist.Completer, logger *slog.Logger) http.Handler {
	repo := repository.New(s)
	api := localapi.NewServer(localapi.Deps{
		Tasks:     repo,
		Assistant: assist.NewProxy(completer, repo, logger.With("module", "assist")),
		Logger:    logger.With("module", "localapi"),
	})
	return appserver.NewServer(appserver.Deps{
		API:    api.Handler(),
		WebUI:  appserver.WebUIConfig{DistDir: cfg.WebUIDir},
		Logger: logger.With("module", "http"),
	}).Handler()
}

func runServe(ctx context.Context, cfg config.Config) error {
	logger := newLogger(cfg)
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	ts, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	model := llm.NewClient(llm.Config{
		BaseURL: cfg.GeminiEndpoint,
		Model:   cfg.GeminiModel,
		APIKey:  cfg.GeminiAPIKey,
	}, nil)

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           buildHandler(cfg, ts, model, logger),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	ln, err := net.Listen("tcp", httpServer.Addr)
	if err != nil {
		ts.close()
		return err
	}
	logger.Info("taskmind listening",
		"addr", "http://"+ln.Addr().String(),
		"store", cfg.StoreBackend,
		"model", model.Model(),
		"version", version,
	)

	return serveUntilDone(ctx, httpServer, ln, ts.close, logger)
}

// serveUntilDone serves on ln until ctx ends or Serve fails. The server is
// shut down once, by the lifecycle hook, then closeStore runs.
func serveUntilDone(ctx context.Context, httpServer *http.Server, ln net.Listener, closeStore func(), logger *slog.Logger) error {
	mgr := lifecycle.NewManager(logger.With("module", "lifecycle"))
	mgr.AddRun("http-server", func(runCtx context.Context) error {
		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Serve(ln) }()
		select {
		case <-runCtx.Done():
			return nil
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		}
	})
	mgr.AddShutdown("http-server-shutdown", func(shutdownCtx context.Context) error {
		err := httpServer.Shutdown(shutdownCtx)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	mgr.AddShutdown("close-store", func(context.Context) error {
		closeStore()
		return nil
	})
	return mgr.StartAndWait(ctx)
}

func runMigrateUp(_ context.Context, cfg config.Config) error {
	logger := newLogger(cfg)
	gdb, err := db.Open(cfg.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close(gdb)
	if err := db.MigrateUp(gdb, migration.Options{JSONPath: cfg.DataFile, Logger: logger.With("module", "migrate")}); err != nil {
		return err
	}
	logger.Info("migrations applied", "sqlite", cfg.SQLitePath, "json", cfg.DataFile)
	return nil
}
