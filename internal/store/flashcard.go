package store

import (
	"context"
	"database/sql"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// FlashcardFilter narrows a flashcard listing. Zero-valued fields are
// ignored.
type FlashcardFilter struct {
	Category   string
	Difficulty domain.DifficultyLevel
}

// FlashcardUpdate carries the partial fields of a flashcard update.
// Nil pointers leave the corresponding column untouched.
type FlashcardUpdate struct {
	Question        *string
	Answer          *string
	Category        *string
	DifficultyLevel *domain.DifficultyLevel
	IsAuto          *bool
}

// FlashcardStore defines the interface for flashcard data persistence.
type FlashcardStore interface {
	// List retrieves all flashcards owned by username matching the filter,
	// ordered by creation time. Returns an empty slice when none match.
	List(ctx context.Context, username string, filter FlashcardFilter) ([]domain.Flashcard, error)

	// GetByID retrieves a flashcard by its unique ID.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error)

	// Insert saves a new flashcard.
	// Returns validation errors if the flashcard data is invalid.
	Insert(ctx context.Context, card *domain.Flashcard) error

	// Update applies the non-nil fields of update to an existing flashcard
	// and returns the updated row.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Update(ctx context.Context, id uuid.UUID, update FlashcardUpdate) (*domain.Flashcard, error)

	// Delete removes a flashcard by its ID.
	// Returns ErrFlashcardNotFound if the flashcard does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a FlashcardStore bound to the given transaction, for
	// use with RunInTransaction.
	WithTx(tx *sql.Tx) FlashcardStore
}
