package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// QuizRecordUpdate carries the fields written when an attempt is scored.
type QuizRecordUpdate struct {
	DifficultyLevel domain.DifficultyLevel
	Category        string
	StartTime       *time.Time
	EndTime         *time.Time
	Completed       bool
}

// QuizRecordStore defines the interface for quiz-record persistence.
// One row exists per (quiz id, flashcard id) pair.
type QuizRecordStore interface {
	// Insert saves a new quiz record.
	// Returns ErrDuplicate if a row for the (quiz id, flashcard id) pair
	// already exists.
	Insert(ctx context.Context, record *domain.QuizRecord) error

	// Update applies the scored-attempt fields to the row identified by
	// (quizID, flashcardID).
	// Returns ErrQuizRecordNotFound if no such row exists.
	Update(ctx context.Context, quizID, flashcardID uuid.UUID, update QuizRecordUpdate) error

	// ListByQuiz retrieves all records of one quiz, in insertion order.
	ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]domain.QuizRecord, error)

	// WithTx returns a QuizRecordStore bound to the given transaction.
	WithTx(tx *sql.Tx) QuizRecordStore
}
