package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// PostgresQuizRecordStore implements the store.QuizRecordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresQuizRecordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresQuizRecordStore creates a new PostgreSQL implementation of the
// QuizRecordStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresQuizRecordStore(db store.DBTX, logger *slog.Logger) *PostgresQuizRecordStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresQuizRecordStore{
		db:     db,
		logger: logger.With(slog.String("component", "quiz_record_store")),
	}
}

// Ensure PostgresQuizRecordStore implements store.QuizRecordStore interface
var _ store.QuizRecordStore = (*PostgresQuizRecordStore)(nil)

// Insert implements store.QuizRecordStore.Insert
// Returns store.ErrDuplicate if a row for the (quiz id, flashcard id) pair
// already exists; the pair is unique at the schema level.
func (s *PostgresQuizRecordStore) Insert(ctx context.Context, record *domain.QuizRecord) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := record.Validate(); err != nil {
		log.Warn("quiz record validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("quiz_id", record.QuizID.String()),
			slog.String("flashcard_id", record.FlashcardID.String()))
		return err
	}

	query := `
		INSERT INTO quiz_records (quiz_id, flashcard_id, username, difficulty_level, category, start_time, end_time, completed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		record.QuizID,
		record.FlashcardID,
		record.Username,
		string(record.DifficultyLevel),
		record.Category,
		record.StartTime,
		record.EndTime,
		record.Completed,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate quiz record",
				slog.String("quiz_id", record.QuizID.String()),
				slog.String("flashcard_id", record.FlashcardID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to insert quiz record",
			slog.String("error", err.Error()),
			slog.String("quiz_id", record.QuizID.String()),
			slog.String("flashcard_id", record.FlashcardID.String()))
		return err
	}

	log.Debug("quiz record inserted",
		slog.String("quiz_id", record.QuizID.String()),
		slog.String("flashcard_id", record.FlashcardID.String()))
	return nil
}

// Update implements store.QuizRecordStore.Update
// Returns store.ErrQuizRecordNotFound if no row matches (quizID, flashcardID).
func (s *PostgresQuizRecordStore) Update(
	ctx context.Context,
	quizID, flashcardID uuid.UUID,
	update store.QuizRecordUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !update.DifficultyLevel.Valid() {
		return domain.ErrInvalidDifficulty
	}

	query := `
		UPDATE quiz_records
		SET difficulty_level = $1, category = $2, start_time = $3, end_time = $4, completed = $5
		WHERE quiz_id = $6 AND flashcard_id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		string(update.DifficultyLevel),
		update.Category,
		update.StartTime,
		update.EndTime,
		update.Completed,
		quizID,
		flashcardID,
	)
	if err != nil {
		log.Error("failed to update quiz record",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quizID.String()),
			slog.String("flashcard_id", flashcardID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quizID.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("quiz record not found for update",
			slog.String("quiz_id", quizID.String()),
			slog.String("flashcard_id", flashcardID.String()))
		return store.ErrQuizRecordNotFound
	}

	log.Debug("quiz record updated",
		slog.String("quiz_id", quizID.String()),
		slog.String("flashcard_id", flashcardID.String()))
	return nil
}

// ListByQuiz implements store.QuizRecordStore.ListByQuiz
func (s *PostgresQuizRecordStore) ListByQuiz(ctx context.Context, quizID uuid.UUID) ([]domain.QuizRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT quiz_id, flashcard_id, username, difficulty_level, category, start_time, end_time, completed
		FROM quiz_records
		WHERE quiz_id = $1
		ORDER BY inserted_seq
	`

	rows, err := s.db.QueryContext(ctx, query, quizID)
	if err != nil {
		log.Error("failed to list quiz records",
			slog.String("error", err.Error()),
			slog.String("quiz_id", quizID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var records []domain.QuizRecord
	for rows.Next() {
		var r domain.QuizRecord
		var difficulty string
		err := rows.Scan(
			&r.QuizID,
			&r.FlashcardID,
			&r.Username,
			&difficulty,
			&r.Category,
			&r.StartTime,
			&r.EndTime,
			&r.Completed,
		)
		if err != nil {
			log.Error("failed to scan quiz record row", slog.String("error", err.Error()))
			return nil, err
		}
		r.DifficultyLevel = domain.DifficultyLevel(difficulty)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if records == nil {
		records = []domain.QuizRecord{}
	}

	return records, nil
}

// WithTx implements store.QuizRecordStore.WithTx
func (s *PostgresQuizRecordStore) WithTx(tx *sql.Tx) store.QuizRecordStore {
	return &PostgresQuizRecordStore{db: tx, logger: s.logger}
}
