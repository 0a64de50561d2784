package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"nytviewer/internal/config"
	"nytviewer/internal/httpapi"
	"nytviewer/internal/publisher"
	"nytviewer/internal/repository"
	"nytviewer/internal/scheduler"
	"nytviewer/internal/source/nyt"
	"nytviewer/internal/storage/postgres"
	"nytviewer/internal/viewmodel"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	logger := setupLogger("info")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = setupLogger(cfg.LogLevel)

	if err := run(cfg, logger); err != nil {
		logger.Error("viewer stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var opts []repository.Option
	var history httpapi.HistorySource

	if cfg.Database.Enabled {
		db, err := sqlx.Connect("postgres", cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer db.Close()
		logger.Info("connected to database")

		archive := postgres.NewArchive(db, logger)
		opts = append(opts, repository.WithArchive(archive))
		history = archive
	}

	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        cfg.RabbitMQ.URL,
			Exchange:   cfg.RabbitMQ.Exchange,
			RoutingKey: cfg.RabbitMQ.RoutingKey,
			QueueName:  cfg.RabbitMQ.QueueName,
		}, logger)
		if err != nil {
			return err
		}
		defer rabbitMQ.Close()
		logger.Info("connected to rabbitmq", "exchange", cfg.RabbitMQ.Exchange)

		opts = append(opts, repository.WithPublisher(rabbitMQ))
	}

	source := nyt.New(nyt.Config{
		BaseURL:        cfg.API.BaseURL,
		APIKey:         cfg.API.APIKey,
		Timeout:        cfg.API.Timeout,
		MaxAttempts:    cfg.API.Retry.MaxAttempts,
		InitialBackoff: cfg.API.Retry.InitialBackoff,
		MaxBackoff:     cfg.API.Retry.MaxBackoff,
	}, logger)

	repo := repository.New(source, logger, opts...)
	defer repo.Wait()

	theme, err := viewmodel.ParseColorTheme(cfg.Theme)
	if err != nil {
		logger.Warn("falling back to system theme", "error", err)
		theme = viewmodel.ThemeSystem
	}

	nav := viewmodel.NewNavigator(logger)
	themes := viewmodel.NewThemeProvider(theme)
	list := viewmodel.NewListViewModel(repo, nav, themes, logger)
	defer list.Wait()

	go list.Run(ctx)
	go consumeNavigation(ctx, nav, logger)

	repo.Start()

	sched := scheduler.NewScheduler(repo, cfg.Refresh.Interval, logger)
	go func() {
		if err := sched.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("scheduler error", "error", err)
		}
	}()

	srv := &http.Server{
		Addr: cfg.HTTP.Addr,
		Handler: httpapi.New(httpapi.Deps{
			List:    list,
			Repo:    repo,
			Nav:     nav,
			Theme:   themes,
			History: history,
		}, logger).Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting nyt viewer",
			"source", source.ID(),
			"source_name", source.Name(),
			"addr", cfg.HTTP.Addr,
			"refresh_interval", cfg.Refresh.Interval,
			"archive", cfg.Database.Enabled,
			"publisher", cfg.RabbitMQ.Enabled,
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()

	return srv.Shutdown(shutdownCtx)
}

// consumeNavigation stands in for a screen host: it only records where the
// user asked to go.
func consumeNavigation(ctx context.Context, nav *viewmodel.Navigator, logger *slog.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case action := <-nav.Actions():
			logger.Info("navigation", "action", action)
		}
	}
}

func setupLogger(level string) *slog.Logger {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: logLevel}
	handler := slog.NewJSONHandler(os.Stdout, opts)
	return slog.New(handler)
}
