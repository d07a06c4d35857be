package domain

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Flashcard-specific validation errors
var (
	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = errors.New("flashcard ID cannot be empty")

	// ErrFlashcardUsernameEmpty is returned when a flashcard's owner is empty.
	ErrFlashcardUsernameEmpty = errors.New("flashcard username cannot be empty")

	// ErrFlashcardQuestionEmpty is returned when a flashcard's question is empty.
	ErrFlashcardQuestionEmpty = errors.New("flashcard question cannot be empty")

	// ErrFlashcardAnswerEmpty is returned when a flashcard's answer is empty.
	ErrFlashcardAnswerEmpty = errors.New("flashcard answer cannot be empty")

	// ErrFlashcardCategoryEmpty is returned when a flashcard's category is empty.
	ErrFlashcardCategoryEmpty = errors.New("flashcard category cannot be empty")
)

// Flashcard represents a single question/answer card owned by a user.
// Category is a free-text label, normalized on creation; cards with
// IsAuto set were produced by the generation backend rather than typed
// in by the user.
type Flashcard struct {
	ID              uuid.UUID       `json:"id"`
	Username        string          `json:"username"`
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	Category        string          `json:"category"`
	DifficultyLevel DifficultyLevel `json:"difficulty_level"`
	IsAuto          bool            `json:"is_auto"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// Category is a derived (username, category-name) pair. A category row
// exists iff at least one flashcard of that user references it; its
// lifecycle is fully driven by flashcard mutations.
type Category struct {
	Username string `json:"username"`
	Category string `json:"category"`
}

// NormalizeCategory canonicalizes a category label: surrounding whitespace
// is trimmed and the first letter upper-cased, so "biology" and "Biology"
// name the same category.
func NormalizeCategory(category string) string {
	category = strings.TrimSpace(category)
	if category == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(category)
	return string(unicode.ToUpper(r)) + category[size:]
}

// NewFlashcard creates a new Flashcard owned by username. It generates a new
// UUID, normalizes the category label, and sets the creation/update
// timestamps. Returns an error if validation fails.
func NewFlashcard(
	username, question, answer, category string,
	difficulty DifficultyLevel,
	isAuto bool,
) (*Flashcard, error) {
	now := time.Now().UTC()
	card := &Flashcard{
		ID:              uuid.New(),
		Username:        username,
		Question:        question,
		Answer:          answer,
		Category:        NormalizeCategory(category),
		DifficultyLevel: difficulty,
		IsAuto:          isAuto,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if f.Username == "" {
		return ErrFlashcardUsernameEmpty
	}
	if f.Question == "" {
		return ErrFlashcardQuestionEmpty
	}
	if f.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}
	if f.Category == "" {
		return ErrFlashcardCategoryEmpty
	}
	if !f.DifficultyLevel.Valid() {
		return ErrInvalidDifficulty
	}
	return nil
}
