package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username  string `json:"username"   validate:"required,min=3,max=64"`
	Password  string `json:"password"   validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"max=64"`
	LastName  string `json:"last_name"  validate:"max=64"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID uuid.UUID `json:"user_id"`

	// Username identifies the account
	Username string `json:"username"`

	// Token is the JWT used for API authorization
	Token string `json:"token"`
}

// CreateFlashcardRequest defines the payload for creating a flashcard.
type CreateFlashcardRequest struct {
	Question        string `json:"question"         validate:"required"`
	Answer          string `json:"answer"           validate:"required"`
	Category        string `json:"category"         validate:"required"`
	DifficultyLevel string `json:"difficulty_level" validate:"required,oneof=Easy Medium Hard"`
}

// UpdateFlashcardRequest defines the payload for a partial flashcard update.
// Omitted fields leave the card untouched.
type UpdateFlashcardRequest struct {
	Question        *string `json:"question,omitempty"`
	Answer          *string `json:"answer,omitempty"`
	Category        *string `json:"category,omitempty"`
	DifficultyLevel *string `json:"difficulty_level,omitempty" validate:"omitempty,oneof=Easy Medium Hard"`
}

// FlashcardResponse represents the response data for a flashcard.
type FlashcardResponse struct {
	ID              string    `json:"id"`
	Username        string    `json:"username"`
	Question        string    `json:"question"`
	Answer          string    `json:"answer"`
	Category        string    `json:"category"`
	DifficultyLevel string    `json:"difficulty_level"`
	IsAuto          bool      `json:"is_auto"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// flashcardToResponse converts a domain.Flashcard to a FlashcardResponse.
func flashcardToResponse(card *domain.Flashcard) FlashcardResponse {
	return FlashcardResponse{
		ID:              card.ID.String(),
		Username:        card.Username,
		Question:        card.Question,
		Answer:          card.Answer,
		Category:        card.Category,
		DifficultyLevel: string(card.DifficultyLevel),
		IsAuto:          card.IsAuto,
		CreatedAt:       card.CreatedAt,
		UpdatedAt:       card.UpdatedAt,
	}
}

// GenerateFlashcardsRequest defines the payload for requesting LLM-generated
// flashcards about a topic.
type GenerateFlashcardsRequest struct {
	Topic string `json:"topic" validate:"required"`
	Count int    `json:"count" validate:"required,min=1,max=50"`
}

// GenerateFlashcardsResponse acknowledges an accepted generation task.
type GenerateFlashcardsResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// PracticeQuizRequest defines the payload for generating practice quizzes.
// A zero QuizSize selects the server default.
type PracticeQuizRequest struct {
	Categories []string `json:"categories" validate:"required,min=1,dive,required"`
	QuizSize   int      `json:"quiz_size"  validate:"min=0"`
}

// SubmittedFlashcardRequest is one attempted flashcard within a quiz
// submission.
type SubmittedFlashcardRequest struct {
	FlashcardID     string `json:"flashcard_id"     validate:"required,uuid"`
	DifficultyLevel string `json:"difficulty_level" validate:"required,oneof=Easy Medium Hard"`
	Category        string `json:"category"         validate:"required"`
}

// SubmitQuizRequest defines the payload for submitting a completed quiz.
// MarathonID and QuizID are required in marathon mode and ignored in
// practice mode.
type SubmitQuizRequest struct {
	Mode       string                      `json:"mode"                  validate:"required,oneof=practice marathon"`
	MarathonID string                      `json:"marathon_id,omitempty" validate:"omitempty,uuid"`
	QuizID     string                      `json:"quiz_id,omitempty"     validate:"omitempty,uuid"`
	Flashcards []SubmittedFlashcardRequest `json:"flashcards"            validate:"required,min=1,dive"`
	StartTime  time.Time                   `json:"start_time"            validate:"required"`
	EndTime    time.Time                   `json:"end_time"              validate:"required"`
}

// CreateMarathonRequest defines the payload for generating a marathon
// schedule. NumQuestions and NumQuizPerDay of zero select server defaults.
type CreateMarathonRequest struct {
	Category      string `json:"category"                   validate:"required"`
	TotalDays     int    `json:"total_days"                 validate:"required,min=1"`
	NumQuestions  int    `json:"num_questions,omitempty"    validate:"min=0"`
	NumQuizPerDay int    `json:"num_quiz_per_day,omitempty" validate:"min=0"`
}

// CreateMarathonResponse returns the id shared by all cells of the new
// marathon schedule.
type CreateMarathonResponse struct {
	MarathonID uuid.UUID `json:"marathon_id"`
}
