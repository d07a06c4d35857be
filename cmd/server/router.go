package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/flashdeck/flashdeck-api/internal/api"
	apiMiddleware "github.com/flashdeck/flashdeck-api/internal/api/middleware"
	"github.com/flashdeck/flashdeck-api/internal/task"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	authHandler := api.NewAuthHandler(app.userService, app.jwtService, app.logger)
	flashcardHandler := api.NewFlashcardHandler(
		app.flashcardService, app.taskQueueWriter(), app.generator, app.logger)
	quizHandler := api.NewQuizHandler(app.quizService, app.logger)
	marathonHandler := api.NewMarathonHandler(app.quizService, app.logger)
	statsHandler := api.NewStatsHandler(app.statsStore, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Flashcard management
			r.Post("/flashcards", flashcardHandler.CreateFlashcard)
			r.Get("/flashcards", flashcardHandler.ListFlashcards)
			r.Get("/flashcards/{id}", flashcardHandler.GetFlashcard)
			r.Put("/flashcards/{id}", flashcardHandler.UpdateFlashcard)
			r.Delete("/flashcards/{id}", flashcardHandler.DeleteFlashcard)
			r.Post("/flashcards/generate", flashcardHandler.GenerateFlashcards)
			r.Get("/categories", flashcardHandler.ListCategories)

			// Quiz generation and submission
			r.Post("/quizzes/practice", quizHandler.GeneratePracticeQuizzes)
			r.Post("/quizzes/submit", quizHandler.SubmitQuiz)

			// Marathon schedules
			r.Post("/marathons", marathonHandler.CreateMarathon)
			r.Get("/marathons", marathonHandler.ListMarathons)
			r.Get("/marathons/{id}/current", marathonHandler.GetCurrentQuiz)

			// Statistics
			r.Get("/stats", statsHandler.GetUserStats)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}

// taskQueueWriter returns the queue as its writer interface, keeping the nil
// check in one place: a nil *TaskQueue must become a nil interface, not a
// non-nil interface holding a nil pointer.
func (app *application) taskQueueWriter() task.TaskQueueWriter {
	if app.taskQueue == nil {
		return nil
	}
	return app.taskQueue
}
