package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// PostgresCategoryStore implements the store.CategoryStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCategoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCategoryStore creates a new PostgreSQL implementation of the
// CategoryStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresCategoryStore(db store.DBTX, logger *slog.Logger) *PostgresCategoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCategoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "category_store")),
	}
}

// Ensure PostgresCategoryStore implements store.CategoryStore interface
var _ store.CategoryStore = (*PostgresCategoryStore)(nil)

// List implements store.CategoryStore.List
func (s *PostgresCategoryStore) List(ctx context.Context, username string) ([]domain.Category, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT username, category
		FROM categories
		WHERE username = $1
		ORDER BY category
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		log.Error("failed to list categories",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.Username, &c.Category); err != nil {
			log.Error("failed to scan category row", slog.String("error", err.Error()))
			return nil, err
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if categories == nil {
		categories = []domain.Category{}
	}

	return categories, nil
}

// Exists implements store.CategoryStore.Exists
func (s *PostgresCategoryStore) Exists(ctx context.Context, username, category string) (bool, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT 1 FROM categories WHERE username = $1 AND category = $2 LIMIT 1"

	var one int
	err := s.db.QueryRowContext(ctx, query, username, category).Scan(&one)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		log.Error("failed to check category existence",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("category", category))
		return false, err
	}

	return true, nil
}

// Add implements store.CategoryStore.Add
// The insert is an idempotent upsert: adding an existing pair is a no-op,
// so concurrent writers cannot race on an exists-then-insert sequence.
func (s *PostgresCategoryStore) Add(ctx context.Context, username, category string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO categories (username, category)
		VALUES ($1, $2)
		ON CONFLICT (username, category) DO NOTHING
	`

	if _, err := s.db.ExecContext(ctx, query, username, category); err != nil {
		log.Error("failed to add category",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("category", category))
		return err
	}

	log.Debug("category ensured",
		slog.String("username", username),
		slog.String("category", category))
	return nil
}

// Remove implements store.CategoryStore.Remove
// Removing an absent pair is a no-op.
func (s *PostgresCategoryStore) Remove(ctx context.Context, username, category string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "DELETE FROM categories WHERE username = $1 AND category = $2"

	if _, err := s.db.ExecContext(ctx, query, username, category); err != nil {
		log.Error("failed to remove category",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("category", category))
		return err
	}

	log.Info("category removed",
		slog.String("username", username),
		slog.String("category", category))
	return nil
}

// CountFlashcards implements store.CategoryStore.CountFlashcards
func (s *PostgresCategoryStore) CountFlashcards(ctx context.Context, username, category string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := "SELECT COUNT(*) FROM flashcards WHERE username = $1 AND category = $2"

	var count int
	if err := s.db.QueryRowContext(ctx, query, username, category).Scan(&count); err != nil {
		log.Error("failed to count category flashcards",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("category", category))
		return 0, err
	}

	return count, nil
}

// WithTx implements store.CategoryStore.WithTx
func (s *PostgresCategoryStore) WithTx(tx *sql.Tx) store.CategoryStore {
	return &PostgresCategoryStore{db: tx, logger: s.logger}
}
