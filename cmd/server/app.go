package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/config"
	"github.com/flashdeck/flashdeck-api/internal/generation"
	"github.com/flashdeck/flashdeck-api/internal/platform/gemini"
	"github.com/flashdeck/flashdeck-api/internal/platform/postgres"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/service/auth"
	"github.com/flashdeck/flashdeck-api/internal/service/quiz"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/flashdeck/flashdeck-api/internal/task"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores
	userStore       store.UserStore
	flashcardStore  store.FlashcardStore
	categoryStore   store.CategoryStore
	quizRecordStore store.QuizRecordStore
	marathonStore   store.MarathonStore
	statsStore      store.StatsStore

	// Services
	jwtService       auth.JWTService
	userService      *service.UserService
	flashcardService *service.FlashcardService
	quizService      quiz.QuizService

	// Background generation; nil when no LLM API key is configured
	generator  task.Generator
	taskQueue  *task.TaskQueue
	workerPool *task.WorkerPool
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	// Stores
	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.flashcardStore = postgres.NewPostgresFlashcardStore(db, logger)
	app.categoryStore = postgres.NewPostgresCategoryStore(db, logger)
	app.quizRecordStore = postgres.NewPostgresQuizRecordStore(db, logger)
	app.marathonStore = postgres.NewPostgresMarathonStore(db, logger)
	app.statsStore = postgres.NewPostgresStatsStore(db, logger)

	// Services
	app.userService = service.NewUserService(app.userStore, auth.NewBcryptHasher(), logger)
	app.flashcardService = service.NewFlashcardService(
		db, app.flashcardStore, app.categoryStore, logger)
	app.quizService = quiz.NewQuizService(
		db, app.flashcardStore, app.quizRecordStore, app.marathonStore, logger)

	if err := app.setupGeneration(ctx); err != nil {
		return nil, err
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupGeneration wires the LLM generator, task queue, and worker pool.
// Without an API key the generate endpoint stays disabled and the rest of
// the application runs normally.
func (app *application) setupGeneration(ctx context.Context) error {
	if app.config.LLM.GeminiAPIKey == "" {
		app.logger.Warn("No LLM API key configured; flashcard generation disabled")
		return nil
	}

	generator, err := gemini.NewGeminiGenerator(
		ctx,
		app.logger.With("component", "llm_generator"),
		app.config.LLM,
	)
	if err != nil {
		if errors.Is(err, generation.ErrInvalidConfig) {
			return fmt.Errorf("invalid LLM configuration: %w", err)
		}
		return fmt.Errorf("failed to initialize LLM generator: %w", err)
	}
	app.generator = generator

	app.taskQueue = task.NewTaskQueue(app.config.Task.QueueSize, app.logger)
	app.workerPool = task.NewWorkerPool(app.taskQueue, task.WorkerPoolConfig{
		WorkerCount: app.config.Task.WorkerCount,
	}, app.logger)
	app.workerPool.Start()

	app.logger.Info("LLM generation pipeline initialized",
		"model", app.config.LLM.ModelName,
		"worker_count", app.config.Task.WorkerCount,
		"queue_size", app.config.Task.QueueSize)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.taskQueue != nil {
		app.taskQueue.Close()
	}
	if app.workerPool != nil {
		app.workerPool.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
