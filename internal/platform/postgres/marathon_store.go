package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// PostgresMarathonStore implements the store.MarathonStore interface
// using a PostgreSQL database as the storage backend.
type PostgresMarathonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMarathonStore creates a new PostgreSQL implementation of the
// MarathonStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresMarathonStore(db store.DBTX, logger *slog.Logger) *PostgresMarathonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresMarathonStore{
		db:     db,
		logger: logger.With(slog.String("component", "marathon_store")),
	}
}

// Ensure PostgresMarathonStore implements store.MarathonStore interface
var _ store.MarathonStore = (*PostgresMarathonStore)(nil)

const marathonColumns = "marathon_id, quiz_id, username, category, day, total_days, start_date, completed"

func scanMarathon(row interface{ Scan(dest ...any) error }) (*domain.Marathon, error) {
	var m domain.Marathon
	err := row.Scan(
		&m.MarathonID,
		&m.QuizID,
		&m.Username,
		&m.Category,
		&m.Day,
		&m.TotalDays,
		&m.StartDate,
		&m.Completed,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Insert implements store.MarathonStore.Insert
func (s *PostgresMarathonStore) Insert(ctx context.Context, marathon *domain.Marathon) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := marathon.Validate(); err != nil {
		log.Warn("marathon validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathon.MarathonID.String()))
		return err
	}

	query := `
		INSERT INTO marathons (marathon_id, quiz_id, username, category, day, total_days, start_date, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		marathon.MarathonID,
		marathon.QuizID,
		marathon.Username,
		marathon.Category,
		marathon.Day,
		marathon.TotalDays,
		marathon.StartDate,
		marathon.Completed,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate marathon cell",
				slog.String("marathon_id", marathon.MarathonID.String()),
				slog.String("quiz_id", marathon.QuizID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to insert marathon cell",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathon.MarathonID.String()),
			slog.String("quiz_id", marathon.QuizID.String()))
		return err
	}

	log.Debug("marathon cell inserted",
		slog.String("marathon_id", marathon.MarathonID.String()),
		slog.String("quiz_id", marathon.QuizID.String()),
		slog.Int("day", marathon.Day))
	return nil
}

// GetByIDs implements store.MarathonStore.GetByIDs
// Returns store.ErrMarathonNotFound if no cell matches (marathonID, quizID).
func (s *PostgresMarathonStore) GetByIDs(
	ctx context.Context,
	marathonID, quizID uuid.UUID,
) (*domain.Marathon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + marathonColumns + " FROM marathons WHERE marathon_id = $1 AND quiz_id = $2"

	marathon, err := scanMarathon(s.db.QueryRowContext(ctx, query, marathonID, quizID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("marathon cell not found",
				slog.String("marathon_id", marathonID.String()),
				slog.String("quiz_id", quizID.String()))
			return nil, store.ErrMarathonNotFound
		}
		log.Error("failed to get marathon cell",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathonID.String()),
			slog.String("quiz_id", quizID.String()))
		return nil, err
	}

	return marathon, nil
}

// SetCompleted implements store.MarathonStore.SetCompleted
// Returns store.ErrMarathonNotFound if no cell matches (marathonID, quizID).
func (s *PostgresMarathonStore) SetCompleted(
	ctx context.Context,
	marathonID, quizID uuid.UUID,
	completed bool,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "UPDATE marathons SET completed = $1 WHERE marathon_id = $2 AND quiz_id = $3"

	result, err := s.db.ExecContext(ctx, query, completed, marathonID, quizID)
	if err != nil {
		log.Error("failed to update marathon completion",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathonID.String()),
			slog.String("quiz_id", quizID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathonID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("marathon cell not found for completion update",
			slog.String("marathon_id", marathonID.String()),
			slog.String("quiz_id", quizID.String()))
		return store.ErrMarathonNotFound
	}

	log.Info("marathon cell completion updated",
		slog.String("marathon_id", marathonID.String()),
		slog.String("quiz_id", quizID.String()),
		slog.Bool("completed", completed))
	return nil
}

// ListByUser implements store.MarathonStore.ListByUser
func (s *PostgresMarathonStore) ListByUser(ctx context.Context, username string) ([]domain.Marathon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + marathonColumns + " FROM marathons WHERE username = $1 ORDER BY start_date, marathon_id, day"

	return s.list(ctx, log, query, username)
}

// ListByMarathon implements store.MarathonStore.ListByMarathon
func (s *PostgresMarathonStore) ListByMarathon(ctx context.Context, marathonID uuid.UUID) ([]domain.Marathon, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + marathonColumns + " FROM marathons WHERE marathon_id = $1 ORDER BY day, quiz_id"

	return s.list(ctx, log, query, marathonID)
}

func (s *PostgresMarathonStore) list(
	ctx context.Context,
	log *slog.Logger,
	query string,
	args ...any,
) ([]domain.Marathon, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list marathon cells", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cells []domain.Marathon
	for rows.Next() {
		cell, err := scanMarathon(rows)
		if err != nil {
			log.Error("failed to scan marathon row", slog.String("error", err.Error()))
			return nil, err
		}
		cells = append(cells, *cell)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if cells == nil {
		cells = []domain.Marathon{}
	}

	return cells, nil
}

// WithTx implements store.MarathonStore.WithTx
func (s *PostgresMarathonStore) WithTx(tx *sql.Tx) store.MarathonStore {
	return &PostgresMarathonStore{db: tx, logger: s.logger}
}
