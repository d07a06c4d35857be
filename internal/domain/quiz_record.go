package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// QuizRecord-specific validation errors
var (
	// ErrQuizRecordQuizIDEmpty is returned when a record's quiz ID is nil.
	ErrQuizRecordQuizIDEmpty = errors.New("quiz record quiz ID cannot be empty")

	// ErrQuizRecordFlashcardIDEmpty is returned when a record's flashcard ID is nil.
	ErrQuizRecordFlashcardIDEmpty = errors.New("quiz record flashcard ID cannot be empty")

	// ErrQuizRecordUsernameEmpty is returned when a record's username is empty.
	ErrQuizRecordUsernameEmpty = errors.New("quiz record username cannot be empty")
)

// QuizRecord is the persisted linkage between a quiz, a flashcard, and the
// outcome of attempting it. One row exists per (quiz id, flashcard id) pair.
// Rows are created when a marathon is generated or a practice submission
// arrives, and updated when an attempt is scored.
type QuizRecord struct {
	QuizID          uuid.UUID       `json:"quiz_id"`
	FlashcardID     uuid.UUID       `json:"flashcard_id"`
	Username        string          `json:"username"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
	Category        string          `json:"category"`
	StartTime       *time.Time      `json:"start_time,omitempty"`
	EndTime         *time.Time      `json:"end_time,omitempty"`
	Completed       bool            `json:"completed"`
}

// Validate checks if the QuizRecord has valid data.
func (r *QuizRecord) Validate() error {
	if r.QuizID == uuid.Nil {
		return ErrQuizRecordQuizIDEmpty
	}
	if r.FlashcardID == uuid.Nil {
		return ErrQuizRecordFlashcardIDEmpty
	}
	if r.Username == "" {
		return ErrQuizRecordUsernameEmpty
	}
	if !r.DifficultyLevel.Valid() {
		return ErrInvalidDifficulty
	}
	return nil
}
