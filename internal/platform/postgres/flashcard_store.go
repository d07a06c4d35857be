package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// PostgresFlashcardStore implements the store.FlashcardStore interface
// using a PostgreSQL database as the storage backend.
type PostgresFlashcardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresFlashcardStore creates a new PostgreSQL implementation of the
// FlashcardStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresFlashcardStore(db store.DBTX, logger *slog.Logger) *PostgresFlashcardStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresFlashcardStore{
		db:     db,
		logger: logger.With(slog.String("component", "flashcard_store")),
	}
}

// Ensure PostgresFlashcardStore implements store.FlashcardStore interface
var _ store.FlashcardStore = (*PostgresFlashcardStore)(nil)

const flashcardColumns = "id, username, question, answer, category, difficulty_level, is_auto, created_at, updated_at"

// scanFlashcard reads one flashcard row from a row scanner.
func scanFlashcard(row interface{ Scan(dest ...any) error }) (*domain.Flashcard, error) {
	var card domain.Flashcard
	var difficulty string
	err := row.Scan(
		&card.ID,
		&card.Username,
		&card.Question,
		&card.Answer,
		&card.Category,
		&difficulty,
		&card.IsAuto,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	card.DifficultyLevel = domain.DifficultyLevel(difficulty)
	return &card, nil
}

// List implements store.FlashcardStore.List
// It retrieves all flashcards owned by username matching the filter.
func (s *PostgresFlashcardStore) List(
	ctx context.Context,
	username string,
	filter store.FlashcardFilter,
) ([]domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + flashcardColumns + " FROM flashcards WHERE username = $1"
	args := []any{username}

	if filter.Category != "" {
		args = append(args, filter.Category)
		query += fmt.Sprintf(" AND category = $%d", len(args))
	}
	if filter.Difficulty != "" {
		args = append(args, string(filter.Difficulty))
		query += fmt.Sprintf(" AND difficulty_level = $%d", len(args))
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list flashcards",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var cards []domain.Flashcard
	for rows.Next() {
		card, err := scanFlashcard(rows)
		if err != nil {
			log.Error("failed to scan flashcard row", slog.String("error", err.Error()))
			return nil, err
		}
		cards = append(cards, *card)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if cards == nil {
		cards = []domain.Flashcard{}
	}

	log.Debug("listed flashcards",
		slog.String("username", username),
		slog.String("category", filter.Category),
		slog.Int("count", len(cards)))
	return cards, nil
}

// GetByID implements store.FlashcardStore.GetByID
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT " + flashcardColumns + " FROM flashcards WHERE id = $1"

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found", slog.String("flashcard_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to get flashcard by ID",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, err
	}

	return card, nil
}

// Insert implements store.FlashcardStore.Insert
// It saves a new flashcard, handling domain validation.
func (s *PostgresFlashcardStore) Insert(ctx context.Context, card *domain.Flashcard) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("flashcard validation failed during insert",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO flashcards (id, username, question, answer, category, difficulty_level, is_auto, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.Username,
		card.Question,
		card.Answer,
		card.Category,
		string(card.DifficultyLevel),
		card.IsAuto,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			log.Warn("duplicate flashcard id during insert",
				slog.String("flashcard_id", card.ID.String()))
			return store.ErrDuplicate
		}
		log.Error("failed to insert flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", card.ID.String()),
			slog.String("username", card.Username))
		return err
	}

	log.Info("flashcard inserted",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("username", card.Username),
		slog.String("category", card.Category))
	return nil
}

// Update implements store.FlashcardStore.Update
// It applies the non-nil fields of update to an existing flashcard and
// returns the updated row.
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) Update(
	ctx context.Context,
	id uuid.UUID,
	update store.FlashcardUpdate,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	sets := []string{"updated_at = $1"}
	args := []any{time.Now().UTC()}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Question != nil {
		appendSet("question", *update.Question)
	}
	if update.Answer != nil {
		appendSet("answer", *update.Answer)
	}
	if update.Category != nil {
		appendSet("category", *update.Category)
	}
	if update.DifficultyLevel != nil {
		if !update.DifficultyLevel.Valid() {
			return nil, domain.ErrInvalidDifficulty
		}
		appendSet("difficulty_level", string(*update.DifficultyLevel))
	}
	if update.IsAuto != nil {
		appendSet("is_auto", *update.IsAuto)
	}

	args = append(args, id)
	query := fmt.Sprintf(
		"UPDATE flashcards SET %s WHERE id = $%d RETURNING "+flashcardColumns,
		strings.Join(sets, ", "),
		len(args),
	)

	card, err := scanFlashcard(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("flashcard not found for update", slog.String("flashcard_id", id.String()))
			return nil, store.ErrFlashcardNotFound
		}
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return nil, err
	}

	log.Info("flashcard updated", slog.String("flashcard_id", id.String()))
	return card, nil
}

// Delete implements store.FlashcardStore.Delete
// Returns store.ErrFlashcardNotFound if the flashcard does not exist.
func (s *PostgresFlashcardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, "DELETE FROM flashcards WHERE id = $1", id)
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()))
		return err
	}
	if rowsAffected == 0 {
		log.Debug("flashcard not found for delete", slog.String("flashcard_id", id.String()))
		return store.ErrFlashcardNotFound
	}

	log.Info("flashcard deleted", slog.String("flashcard_id", id.String()))
	return nil
}

// WithTx implements store.FlashcardStore.WithTx
func (s *PostgresFlashcardStore) WithTx(tx *sql.Tx) store.FlashcardStore {
	return &PostgresFlashcardStore{db: tx, logger: s.logger}
}
