package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alexanderramin/recipecard/internal/cli"
	"github.com/alexanderramin/recipecard/internal/config"
	"github.com/alexanderramin/recipecard/internal/db"
	"github.com/alexanderramin/recipecard/internal/repository"
	"github.com/alexanderramin/recipecard/internal/service"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Config file location comes from RECIPECARD_CONFIG or the default path.
	cfg, err := config.Load("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// Open the recipe book
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	draftRepo := repository.NewSQLiteDraftRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	var observers []service.UseCaseObserver
	if cfg.LogUseCases {
		observers = append(observers, service.NewSlogUseCaseObserver(logger))
	}

	app := &cli.App{
		Export:    service.NewExportService(cfg.RenderConfig(), observers...),
		Import:    service.NewImportService(observers...),
		Drafts:    service.NewDraftService(draftRepo, uow, observers...),
		OutputDir: cfg.OutputDir,
	}

	// The editor and the pager need a terminal on stdin.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	slog.Debug("starting", "db", cfg.DBPath, "out", cfg.OutputDir, "page_size", cfg.Render.PageSize)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
