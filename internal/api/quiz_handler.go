package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/service/quiz"
)

// QuizHandler handles practice quiz generation and submission requests.
type QuizHandler struct {
	quizService quiz.QuizService
	logger      *slog.Logger
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService quiz.QuizService, logger *slog.Logger) *QuizHandler {
	if quizService == nil {
		panic("quizService cannot be nil for QuizHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &QuizHandler{
		quizService: quizService,
		logger:      logger.With(slog.String("component", "quiz_handler")),
	}
}

// GeneratePracticeQuizzes handles POST /quizzes/practice requests. The
// returned quizzes are ephemeral; nothing is persisted until submission.
func (h *QuizHandler) GeneratePracticeQuizzes(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	var req PracticeQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	quizzes, err := h.quizService.GeneratePracticeQuizzes(
		r.Context(), username, req.Categories, req.QuizSize)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to generate practice quizzes"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("practice quizzes generated",
		slog.String("username", username),
		slog.Int("quiz_count", len(quizzes)))
	shared.RespondWithJSON(w, r, http.StatusOK, quizzes)
}

// SubmitQuiz handles POST /quizzes/submit requests for both practice and
// marathon submissions.
func (h *QuizHandler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	username, ok := shared.GetUsername(r.Context())
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Username not found in request context")
		return
	}

	var req SubmitQuizRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	sub, err := submissionFromRequest(req)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid submission identifiers")
		return
	}

	result, err := h.quizService.SubmitQuiz(r.Context(), username, sub)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to submit quiz"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("quiz submitted",
		slog.String("username", username),
		slog.String("mode", req.Mode),
		slog.Bool("applied", result.Applied))
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// submissionFromRequest maps a validated SubmitQuizRequest onto the service
// submission type.
func submissionFromRequest(req SubmitQuizRequest) (quiz.Submission, error) {
	sub := quiz.Submission{
		Mode:      quiz.SubmissionMode(req.Mode),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if req.MarathonID != "" {
		id, err := uuid.Parse(req.MarathonID)
		if err != nil {
			return quiz.Submission{}, err
		}
		sub.MarathonID = id
	}
	if req.QuizID != "" {
		id, err := uuid.Parse(req.QuizID)
		if err != nil {
			return quiz.Submission{}, err
		}
		sub.QuizID = id
	}

	sub.Flashcards = make([]quiz.SubmittedFlashcard, 0, len(req.Flashcards))
	for _, f := range req.Flashcards {
		id, err := uuid.Parse(f.FlashcardID)
		if err != nil {
			return quiz.Submission{}, err
		}
		sub.Flashcards = append(sub.Flashcards, quiz.SubmittedFlashcard{
			FlashcardID:     id,
			DifficultyLevel: domain.DifficultyLevel(f.DifficultyLevel),
			Category:        f.Category,
		})
	}

	return sub, nil
}
