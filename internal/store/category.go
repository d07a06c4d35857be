package store

import (
	"context"
	"database/sql"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// CategoryStore defines the interface for the derived category index.
// Category rows exist iff at least one flashcard of the user references
// them; callers (the flashcard service) drive the lifecycle.
type CategoryStore interface {
	// List retrieves all categories of a user.
	List(ctx context.Context, username string) ([]domain.Category, error)

	// Exists reports whether the (username, category) pair is present.
	Exists(ctx context.Context, username, category string) (bool, error)

	// Add inserts the (username, category) pair. The insert is an
	// idempotent upsert: adding an existing pair is a no-op, so concurrent
	// writers need no external serialization.
	Add(ctx context.Context, username, category string) error

	// Remove deletes the (username, category) pair.
	// Removing an absent pair is a no-op.
	Remove(ctx context.Context, username, category string) error

	// CountFlashcards returns how many flashcards of the user reference the
	// category, used to decide whether removing a flashcard empties it.
	CountFlashcards(ctx context.Context, username, category string) (int, error)

	// WithTx returns a CategoryStore bound to the given transaction.
	WithTx(tx *sql.Tx) CategoryStore
}
