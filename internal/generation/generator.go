// Package generation defines the boundary between the application core and
// the LLM backend that produces flashcards automatically.
package generation

import (
	"context"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// Generator defines the interface for generating flashcards from a topic.
// Implementations call an external model; the returned cards carry the
// auto-generated flag and a normalized category but are not yet persisted.
type Generator interface {
	// GenerateFlashcards creates count flashcards about topic for username.
	// Returns a slice of Flashcard domain objects or an error if generation
	// fails (see errors.go for specific types).
	GenerateFlashcards(
		ctx context.Context,
		username, topic string,
		count int,
	) ([]*domain.Flashcard, error)
}
