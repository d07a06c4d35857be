package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/service"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/flashdeck/flashdeck-api/internal/task"
)

// FlashcardHandler handles flashcard-related HTTP requests.
type FlashcardHandler struct {
	flashcardService *service.FlashcardService
	taskQueue        task.TaskQueueWriter
	generator        task.Generator
	logger           *slog.Logger
}

// NewFlashcardHandler creates a new FlashcardHandler. The task queue and
// generator may be nil when LLM generation is disabled; the generate
// endpoint then responds with 503.
func NewFlashcardHandler(
	flashcardService *service.FlashcardService,
	taskQueue task.TaskQueueWriter,
	generator task.Generator,
	logger *slog.Logger,
) *FlashcardHandler {
	if flashcardService == nil {
		panic("flashcardService cannot be nil for FlashcardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardHandler{
		flashcardService: flashcardService,
		taskQueue:        taskQueue,
		generator:        generator,
		logger:           logger.With(slog.String("component", "flashcard_handler")),
	}
}

// CreateFlashcard handles POST /flashcards requests.
func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	var req CreateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	card, err := h.flashcardService.CreateFlashcard(
		r.Context(),
		username,
		req.Question,
		req.Answer,
		req.Category,
		domain.DifficultyLevel(req.DifficultyLevel),
		false,
	)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create flashcard"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, flashcardToResponse(card))
}

// GetFlashcard handles GET /flashcards/{id} requests.
func (h *FlashcardHandler) GetFlashcard(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	id, ok := h.flashcardIDFromPath(w, r)
	if !ok {
		return
	}

	card, err := h.flashcardService.GetFlashcard(r.Context(), username, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// ListFlashcards handles GET /flashcards requests. The category and
// difficulty query parameters narrow the listing.
func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	filter := store.FlashcardFilter{
		Category:   r.URL.Query().Get("category"),
		Difficulty: domain.DifficultyLevel(r.URL.Query().Get("difficulty")),
	}
	if filter.Difficulty != "" && !filter.Difficulty.Valid() {
		shared.RespondWithError(w, r, http.StatusBadRequest,
			"Difficulty level must be Easy, Medium, or Hard")
		return
	}

	cards, err := h.flashcardService.ListFlashcards(r.Context(), username, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list flashcards", err)
		return
	}

	responses := make([]FlashcardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, flashcardToResponse(&cards[i]))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// UpdateFlashcard handles PUT /flashcards/{id} requests.
func (h *FlashcardHandler) UpdateFlashcard(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	id, ok := h.flashcardIDFromPath(w, r)
	if !ok {
		return
	}

	var req UpdateFlashcardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	update := store.FlashcardUpdate{
		Question: req.Question,
		Answer:   req.Answer,
		Category: req.Category,
	}
	if req.DifficultyLevel != nil {
		level := domain.DifficultyLevel(*req.DifficultyLevel)
		update.DifficultyLevel = &level
	}

	card, err := h.flashcardService.UpdateFlashcard(r.Context(), username, id, update)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update flashcard"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, flashcardToResponse(card))
}

// DeleteFlashcard handles DELETE /flashcards/{id} requests.
func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	id, ok := h.flashcardIDFromPath(w, r)
	if !ok {
		return
	}

	if err := h.flashcardService.DeleteFlashcard(r.Context(), username, id); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete flashcard"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListCategories handles GET /categories requests.
func (h *FlashcardHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	categories, err := h.flashcardService.ListCategories(r.Context(), username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list categories", err)
		return
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Category)
	}
	shared.RespondWithJSON(w, r, http.StatusOK, map[string][]string{"categories": names})
}

// GenerateFlashcards handles POST /flashcards/generate requests. The
// generation itself runs as a background task; the response only
// acknowledges that the task was queued.
func (h *FlashcardHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	if h.taskQueue == nil || h.generator == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable,
			"Flashcard generation is not available")
		return
	}

	var req GenerateFlashcardsRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	genTask, err := task.NewFlashcardGenerationTask(
		username, req.Topic, req.Count, h.generator, h.flashcardService, h.logger)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest,
			"Invalid generation request", err)
		return
	}

	if err := h.taskQueue.Enqueue(genTask); err != nil {
		if errors.Is(err, task.ErrQueueFull) {
			shared.RespondWithErrorAndLog(w, r, http.StatusTooManyRequests,
				"Generation queue is full, try again later", err)
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to queue generation task", err)
		return
	}

	log.Info("flashcard generation queued",
		slog.String("task_id", genTask.ID().String()),
		slog.String("username", username),
		slog.String("topic", req.Topic),
		slog.Int("count", req.Count))
	shared.RespondWithJSON(w, r, http.StatusAccepted, GenerateFlashcardsResponse{
		TaskID: genTask.ID().String(),
		Status: string(genTask.Status()),
	})
}

// flashcardIDFromPath extracts and parses the {id} path parameter, writing
// an error response when it is missing or malformed.
func (h *FlashcardHandler) flashcardIDFromPath(
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, bool) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Flashcard ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid flashcard ID format")
		return uuid.Nil, false
	}
	return id, true
}
