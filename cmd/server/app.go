package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/dkovacs/tasknest/internal/config"
	"github.com/dkovacs/tasknest/internal/generation"
	"github.com/dkovacs/tasknest/internal/platform/gemini"
	"github.com/dkovacs/tasknest/internal/platform/postgres"
	"github.com/dkovacs/tasknest/internal/service"
	"github.com/dkovacs/tasknest/internal/service/auth"
	"github.com/dkovacs/tasknest/internal/store"
)

// application holds the server's wired dependencies. Everything is
// constructed once at startup and injected by reference.
type application struct {
	config *config.Config
	logger *slog.Logger

	db *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	verifier        auth.Verifier
	identityService *service.IdentityService
	taskService     *service.TaskService
	generator       generation.Generator
}

// newApplication connects the database, runs migrations, and constructs the
// store and service graph.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	db, err := setupAppDatabase(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := runMigrations(ctx, db, logger); err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	verifier, err := auth.NewVerifier(cfg.Auth)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create token verifier: %w", err)
	}

	generator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		closeDatabase(db, logger)
		return nil, fmt.Errorf("failed to create task generator: %w", err)
	}

	identityService := service.NewIdentityService(userStore, logger)
	taskService := service.NewTaskService(taskStore, generator, logger)

	return &application{
		config:          cfg,
		logger:          logger,
		db:              db,
		userStore:       userStore,
		taskStore:       taskStore,
		verifier:        verifier,
		identityService: identityService,
		taskService:     taskService,
		generator:       generator,
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	closeDatabase(app.db, app.logger)
}

func closeDatabase(db *sql.DB, logger *slog.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Error("failed to close database connection", "error", err)
	}
}
