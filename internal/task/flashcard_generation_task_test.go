package task

import (
	"context"
	"testing"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	cards []*domain.Flashcard
	err   error
}

func (g *stubGenerator) GenerateFlashcards(
	_ context.Context,
	_, _ string,
	_ int,
) ([]*domain.Flashcard, error) {
	return g.cards, g.err
}

type recordingCreator struct {
	created []string
	err     error
}

func (c *recordingCreator) CreateFlashcard(
	_ context.Context,
	username, question, answer, category string,
	difficulty domain.DifficultyLevel,
	isAuto bool,
) (*domain.Flashcard, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.created = append(c.created, question)
	return domain.NewFlashcard(username, question, answer, category, difficulty, isAuto)
}

func generatedCards(t *testing.T, n int) []*domain.Flashcard {
	t.Helper()
	cards := make([]*domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		card, err := domain.NewFlashcard(
			"alice", "generated question", "generated answer",
			"Chemistry", domain.DifficultyMedium, true)
		require.NoError(t, err)
		cards = append(cards, card)
	}
	return cards
}

func TestNewFlashcardGenerationTaskValidation(t *testing.T) {
	t.Parallel()

	gen := &stubGenerator{}
	creator := &recordingCreator{}

	_, err := NewFlashcardGenerationTask("alice", "Chemistry", 5, nil, creator, nil)
	assert.ErrorIs(t, err, ErrNilGenerator)

	_, err = NewFlashcardGenerationTask("alice", "Chemistry", 5, gen, nil, nil)
	assert.ErrorIs(t, err, ErrNilCreator)

	_, err = NewFlashcardGenerationTask("alice", "", 5, gen, creator, nil)
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = NewFlashcardGenerationTask("alice", "Chemistry", 0, gen, creator, nil)
	assert.ErrorIs(t, err, ErrInvalidCount)
}

func TestFlashcardGenerationTaskExecute(t *testing.T) {
	t.Parallel()

	t.Run("persists every generated card", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{cards: generatedCards(t, 3)}
		creator := &recordingCreator{}

		task, err := NewFlashcardGenerationTask("alice", "Chemistry", 3, gen, creator, nil)
		require.NoError(t, err)
		assert.Equal(t, TaskStatusPending, task.Status())

		require.NoError(t, task.Execute(context.Background()))
		assert.Equal(t, TaskStatusCompleted, task.Status())
		assert.Len(t, creator.created, 3)
	})

	t.Run("fails when generation fails", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{err: assert.AnError}
		creator := &recordingCreator{}

		task, err := NewFlashcardGenerationTask("alice", "Chemistry", 3, gen, creator, nil)
		require.NoError(t, err)

		err = task.Execute(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, TaskStatusFailed, task.Status())
		assert.Empty(t, creator.created)
	})

	t.Run("fails when persistence fails", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{cards: generatedCards(t, 2)}
		creator := &recordingCreator{err: assert.AnError}

		task, err := NewFlashcardGenerationTask("alice", "Chemistry", 2, gen, creator, nil)
		require.NoError(t, err)

		err = task.Execute(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, TaskStatusFailed, task.Status())
	})

	t.Run("payload round-trips the request", func(t *testing.T) {
		t.Parallel()
		gen := &stubGenerator{}
		creator := &recordingCreator{}

		task, err := NewFlashcardGenerationTask("alice", "Chemistry", 5, gen, creator, nil)
		require.NoError(t, err)

		assert.JSONEq(t,
			`{"username": "alice", "topic": "Chemistry", "count": 5}`,
			string(task.Payload()))
	})
}
