package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewFlashcard(t *testing.T) {
	t.Parallel()

	card, err := NewFlashcard("alice", "What is Go?", "A programming language", "programming", DifficultyEasy, false)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if card.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	if card.Username != "alice" {
		t.Errorf("Expected username alice, got %s", card.Username)
	}

	// Category is normalized on creation.
	if card.Category != "Programming" {
		t.Errorf("Expected category Programming, got %s", card.Category)
	}

	if card.CreatedAt.IsZero() || card.UpdatedAt.IsZero() {
		t.Error("Expected non-zero timestamps")
	}

	// Missing fields are rejected.
	if _, err := NewFlashcard("", "q", "a", "c", DifficultyEasy, false); err != ErrFlashcardUsernameEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardUsernameEmpty, err)
	}
	if _, err := NewFlashcard("alice", "", "a", "c", DifficultyEasy, false); err != ErrFlashcardQuestionEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardQuestionEmpty, err)
	}
	if _, err := NewFlashcard("alice", "q", "", "c", DifficultyEasy, false); err != ErrFlashcardAnswerEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardAnswerEmpty, err)
	}
	if _, err := NewFlashcard("alice", "q", "a", "", DifficultyEasy, false); err != ErrFlashcardCategoryEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardCategoryEmpty, err)
	}
	if _, err := NewFlashcard("alice", "q", "a", "c", DifficultyLevel("Extreme"), false); err != ErrInvalidDifficulty {
		t.Errorf("Expected error %v, got %v", ErrInvalidDifficulty, err)
	}
}

func TestNormalizeCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"biology", "Biology"},
		{"Biology", "Biology"},
		{"  math  ", "Math"},
		{"ökologie", "Ökologie"},
		{"", ""},
		{"a", "A"},
	}

	for _, tt := range tests {
		if got := NormalizeCategory(tt.in); got != tt.want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFlashcardValidate(t *testing.T) {
	t.Parallel()

	valid := Flashcard{
		ID:              uuid.New(),
		Username:        "alice",
		Question:        "What is Go?",
		Answer:          "A programming language",
		Category:        "Programming",
		DifficultyLevel: DifficultyMedium,
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	invalid := valid
	invalid.ID = uuid.Nil
	if err := invalid.Validate(); err != ErrFlashcardIDEmpty {
		t.Errorf("Expected error %v, got %v", ErrFlashcardIDEmpty, err)
	}
}
