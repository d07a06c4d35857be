package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/service/quiz"
)

// MarathonHandler handles marathon schedule HTTP requests.
type MarathonHandler struct {
	quizService quiz.QuizService
	logger      *slog.Logger
}

// NewMarathonHandler creates a new MarathonHandler.
func NewMarathonHandler(quizService quiz.QuizService, logger *slog.Logger) *MarathonHandler {
	if quizService == nil {
		panic("quizService cannot be nil for MarathonHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MarathonHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "marathon_handler")),
	}
}

// CreateMarathon handles POST /marathons requests.
func (h *MarathonHandler) CreateMarathon(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	var req CreateMarathonRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	marathonID, err := h.quizService.GenerateMarathon(r.Context(), quiz.MarathonRequest{
		Username:      username,
		Category:      req.Category,
		TotalDays:     req.TotalDays,
		NumQuestions:  req.NumQuestions,
		NumQuizPerDay: req.NumQuizPerDay,
	})
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		shared.RespondWithErrorAndLog(w, r, statusCode, GetSafeErrorMessage(err), err)
		return
	}

	log.Info("marathon created",
		slog.String("marathon_id", marathonID.String()),
		slog.String("username", username),
		slog.String("category", req.Category),
		slog.Int("total_days", req.TotalDays))
	shared.RespondWithJSON(w, r, http.StatusCreated, CreateMarathonResponse{
		MarathonID: marathonID,
	})
}

// ListMarathons handles GET /marathons requests, returning every marathon
// cell of the authenticated user.
func (h *MarathonHandler) ListMarathons(w http.ResponseWriter, r *http.Request) {
	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	marathons, err := h.quizService.ListMarathons(r.Context(), username)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list marathons", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, marathons)
}

// GetCurrentQuiz handles GET /marathons/{id}/current requests, returning the
// quiz records of the marathon's current cell.
func (h *MarathonHandler) GetCurrentQuiz(w http.ResponseWriter, r *http.Request) {
	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Marathon ID is required")
		return
	}

	marathonID, err := uuid.Parse(pathID)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid marathon ID format")
		return
	}

	records, err := h.quizService.GetCurrentMarathonQuiz(r.Context(), marathonID)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to get current marathon quiz"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}
