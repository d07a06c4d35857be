package store

import (
	"context"
	"database/sql"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// MarathonStore defines the interface for marathon schedule persistence.
// One row exists per (day, quiz-of-day) cell sharing the marathon id.
type MarathonStore interface {
	// Insert saves a new marathon cell.
	// Returns validation errors if the marathon data is invalid.
	Insert(ctx context.Context, marathon *domain.Marathon) error

	// GetByIDs retrieves the cell identified by (marathonID, quizID).
	// Returns ErrMarathonNotFound if no such cell exists.
	GetByIDs(ctx context.Context, marathonID, quizID uuid.UUID) (*domain.Marathon, error)

	// SetCompleted updates the completion flag of the cell identified by
	// (marathonID, quizID).
	// Returns ErrMarathonNotFound if no such cell exists.
	SetCompleted(ctx context.Context, marathonID, quizID uuid.UUID, completed bool) error

	// ListByUser retrieves all marathon cells of a user, ordered by start
	// date and day index.
	ListByUser(ctx context.Context, username string) ([]domain.Marathon, error)

	// ListByMarathon retrieves all cells of one marathon, ordered by day
	// index. Returns an empty slice when the marathon id is unknown.
	ListByMarathon(ctx context.Context, marathonID uuid.UUID) ([]domain.Marathon, error)

	// WithTx returns a MarathonStore bound to the given transaction.
	WithTx(tx *sql.Tx) MarathonStore
}
