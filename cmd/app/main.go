package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"parcelhub/api"
	"parcelhub/cmd"
	httpin "parcelhub/internal/adapters/in/http"
	"parcelhub/internal/adapters/out/postgres"
	"parcelhub/internal/pkg/logging"

	"github.com/labstack/gommon/log"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New(configs.LogLevel)
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, configs, logger); err != nil {
		logger.Error("service stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, configs cmd.Config, logger *zap.Logger) error {
	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer func() { _ = postgres.Close(gormDB) }()

	if err = postgres.Migrate(gormDB); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)
	defer func() {
		if closeErr := app.Close(); closeErr != nil {
			logger.Warn("close outbound connections", zap.Error(closeErr))
		}
	}()

	gate, err := app.CreateGate(ctx)
	if err != nil {
		return err
	}

	document, err := api.Load(ctx)
	if err != nil {
		return fmt.Errorf("load api document: %w", err)
	}

	e, err := httpin.NewRouter(app.CreateServer(gate), httpin.RouterConfig{
		Gate:     gate,
		Logger:   logger,
		Metrics:  app.Metrics(),
		Gatherer: app.Gatherer(),
		Document: document,
	})
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(ctx); err != nil {
		return fmt.Errorf("start jobs: %w", err)
	}
	defer jobManager.StopAll()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", zap.String("port", configs.HTTPPort))
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down http server")
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
