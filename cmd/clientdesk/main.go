package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/alexanderramin/clientdesk/internal/api"
	"github.com/alexanderramin/clientdesk/internal/cli"
	"github.com/alexanderramin/clientdesk/internal/config"
	"github.com/alexanderramin/clientdesk/internal/db"
	"github.com/alexanderramin/clientdesk/internal/repository"
	"github.com/alexanderramin/clientdesk/internal/service"
	"github.com/mattn/go-isatty"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := cfg.Logger(os.Stderr)

	repos, tx, closeStore, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var observers []service.UseCaseObserver
	if cfg.Log.UseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	opts := service.WorkflowOptions{
		ValidateBeforeWrite: cfg.Workflow.ValidateBeforeWrite,
		StageProjectDeletes: cfg.Workflow.StageProjectDeletes,
	}

	app := &cli.App{
		Overview: service.NewOverviewService(repos.Overview),
		Clients:  service.NewClientService(repos.Clients, repos.Projects, observers...),
		Workflow: service.NewClientWorkflow(repos, tx, opts, observers...),
		Tasks:    service.NewTaskService(repos.Tasks),
	}

	app.Serve = func(ctx context.Context, addr string) error {
		if addr == "" {
			addr = cfg.HTTP.Addr
		}
		router := api.NewRouter(api.Services{
			Overview: app.Overview,
			Clients:  app.Clients,
			Workflow: app.Workflow,
		}, logger, cfg.HTTP.AllowedOrigins)
		return api.NewServer(addr, router, logger).Run(ctx, shutdownTimeout)
	}

	// Detect interactive terminal for the dashboard entrypoint.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	return cli.NewRootCmd(app).Execute()
}

// openStore opens the configured backend: PostgreSQL through GORM when a
// database URL is set, the local SQLite file otherwise.
func openStore(cfg config.Config, logger *slog.Logger) (repository.Repos, repository.TxRunner, func(), error) {
	if cfg.UsePostgres() {
		gdb, err := db.OpenPostgres(cfg.DB.URL)
		if err != nil {
			return repository.Repos{}, nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := gdb.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		logger.Debug("using postgres backend")
		return repository.NewGormRepos(gdb), repository.NewGormTxRunner(gdb), closeFn, nil
	}

	database, err := db.OpenDB(cfg.DB.Path)
	if err != nil {
		return repository.Repos{}, nil, nil, fmt.Errorf("opening database: %w", err)
	}
	closeFn := func() { _ = database.Close() }
	return repository.NewSQLiteRepos(database), repository.NewSQLiteTxRunner(db.NewSQLiteUnitOfWork(database)), closeFn, nil
}
