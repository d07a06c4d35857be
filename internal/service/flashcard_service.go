// Package service contains application services that orchestrate domain
// logic and persistence.
package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// ErrFlashcardNotOwned indicates the flashcard exists but belongs to a
// different user.
var ErrFlashcardNotOwned = errors.New("unauthorized access: flashcard not owned by user")

// FlashcardService manages flashcards and the derived category index. A
// category row exists iff at least one of the user's flashcards references
// it; every mutation here keeps that invariant.
type FlashcardService struct {
	db         *sql.DB
	flashcards store.FlashcardStore
	categories store.CategoryStore
	logger     *slog.Logger
}

// NewFlashcardService creates a new FlashcardService.
// The db handle scopes each mutation to a transaction; it may be nil in
// tests backed by in-memory stores.
func NewFlashcardService(
	db *sql.DB,
	flashcards store.FlashcardStore,
	categories store.CategoryStore,
	logger *slog.Logger,
) *FlashcardService {
	if flashcards == nil {
		panic("flashcards store cannot be nil")
	}
	if categories == nil {
		panic("categories store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardService{
		db:         db,
		flashcards: flashcards,
		categories: categories,
		logger:     logger.With(slog.String("component", "flashcard_service")),
	}
}

// runTx scopes a mutation to a database transaction. Without a db handle the
// stores are used directly; in-memory test stores take this path.
func (s *FlashcardService) runTx(
	ctx context.Context,
	fn func(ctx context.Context, flashcards store.FlashcardStore, categories store.CategoryStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.flashcards, s.categories)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.flashcards.WithTx(tx), s.categories.WithTx(tx))
	})
}

// CreateFlashcard creates a flashcard for username, ensuring its category row
// exists first. The category label is normalized before use.
func (s *FlashcardService) CreateFlashcard(
	ctx context.Context,
	username, question, answer, category string,
	difficulty domain.DifficultyLevel,
	isAuto bool,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := domain.NewFlashcard(username, question, answer, category, difficulty, isAuto)
	if err != nil {
		log.Warn("flashcard creation rejected",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	err = s.runTx(ctx, func(ctx context.Context, flashcards store.FlashcardStore, categories store.CategoryStore) error {
		if err := categories.Add(ctx, username, card.Category); err != nil {
			return fmt.Errorf("ensuring category %q: %w", card.Category, err)
		}
		return flashcards.Insert(ctx, card)
	})
	if err != nil {
		log.Error("failed to create flashcard",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("category", card.Category))
		return nil, err
	}

	log.Info("flashcard created",
		slog.String("flashcard_id", card.ID.String()),
		slog.String("username", username),
		slog.String("category", card.Category),
		slog.Bool("is_auto", isAuto))
	return card, nil
}

// GetFlashcard retrieves one flashcard, verifying ownership.
// Returns ErrFlashcardNotOwned when the card belongs to someone else.
func (s *FlashcardService) GetFlashcard(
	ctx context.Context,
	username string,
	id uuid.UUID,
) (*domain.Flashcard, error) {
	card, err := s.flashcards.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card.Username != username {
		return nil, ErrFlashcardNotOwned
	}
	return card, nil
}

// ListFlashcards retrieves the user's flashcards matching the filter.
func (s *FlashcardService) ListFlashcards(
	ctx context.Context,
	username string,
	filter store.FlashcardFilter,
) ([]domain.Flashcard, error) {
	if filter.Category != "" {
		filter.Category = domain.NormalizeCategory(filter.Category)
	}
	return s.flashcards.List(ctx, username, filter)
}

// UpdateFlashcard applies a partial update, verifying ownership first. When
// the update moves the card to a new category, the new category row is
// ensured and the old one removed if the card was its last member.
func (s *FlashcardService) UpdateFlashcard(
	ctx context.Context,
	username string,
	id uuid.UUID,
	update store.FlashcardUpdate,
) (*domain.Flashcard, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.GetFlashcard(ctx, username, id)
	if err != nil {
		return nil, err
	}

	oldCategory := card.Category
	if update.Category != nil {
		normalized := domain.NormalizeCategory(*update.Category)
		if normalized == "" {
			return nil, domain.ErrFlashcardCategoryEmpty
		}
		update.Category = &normalized
	}

	var updated *domain.Flashcard
	err = s.runTx(ctx, func(ctx context.Context, flashcards store.FlashcardStore, categories store.CategoryStore) error {
		if update.Category != nil && *update.Category != oldCategory {
			if err := categories.Add(ctx, username, *update.Category); err != nil {
				return fmt.Errorf("ensuring category %q: %w", *update.Category, err)
			}
		}

		var err error
		updated, err = flashcards.Update(ctx, id, update)
		if err != nil {
			return err
		}

		if update.Category != nil && *update.Category != oldCategory {
			return s.removeCategoryIfEmpty(ctx, categories, username, oldCategory)
		}
		return nil
	})
	if err != nil {
		log.Error("failed to update flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()),
			slog.String("username", username))
		return nil, err
	}

	log.Info("flashcard updated",
		slog.String("flashcard_id", id.String()),
		slog.String("username", username))
	return updated, nil
}

// DeleteFlashcard removes a flashcard, verifying ownership first, and drops
// its category row if the card was the category's last member.
func (s *FlashcardService) DeleteFlashcard(ctx context.Context, username string, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card, err := s.GetFlashcard(ctx, username, id)
	if err != nil {
		return err
	}

	err = s.runTx(ctx, func(ctx context.Context, flashcards store.FlashcardStore, categories store.CategoryStore) error {
		if err := flashcards.Delete(ctx, id); err != nil {
			return err
		}
		return s.removeCategoryIfEmpty(ctx, categories, username, card.Category)
	})
	if err != nil {
		log.Error("failed to delete flashcard",
			slog.String("error", err.Error()),
			slog.String("flashcard_id", id.String()),
			slog.String("username", username))
		return err
	}

	log.Info("flashcard deleted",
		slog.String("flashcard_id", id.String()),
		slog.String("username", username))
	return nil
}

// removeCategoryIfEmpty drops the category row once no flashcard references
// it. Must run after the referencing mutation in the same transaction.
func (s *FlashcardService) removeCategoryIfEmpty(
	ctx context.Context,
	categories store.CategoryStore,
	username, category string,
) error {
	count, err := categories.CountFlashcards(ctx, username, category)
	if err != nil {
		return fmt.Errorf("counting flashcards in category %q: %w", category, err)
	}
	if count == 0 {
		if err := categories.Remove(ctx, username, category); err != nil {
			return fmt.Errorf("removing empty category %q: %w", category, err)
		}
	}
	return nil
}

// ListCategories retrieves the user's categories.
func (s *FlashcardService) ListCategories(ctx context.Context, username string) ([]domain.Category, error) {
	return s.categories.List(ctx, username)
}
