package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// Common errors
var (
	ErrNilGenerator = errors.New("generator cannot be nil")
	ErrNilCreator   = errors.New("flashcard creator cannot be nil")
	ErrEmptyTopic   = errors.New("topic cannot be empty")
	ErrInvalidCount = errors.New("card count must be at least 1")
)

// Generator defines the interface for flashcard generation backends.
// Narrowed locally so the task package does not depend on a concrete LLM
// client.
type Generator interface {
	// GenerateFlashcards creates count flashcards about topic for username
	GenerateFlashcards(
		ctx context.Context,
		username, topic string,
		count int,
	) ([]*domain.Flashcard, error)
}

// FlashcardCreator defines the persistence operation the task needs. The
// flashcard service satisfies it, keeping category index maintenance in one
// place.
type FlashcardCreator interface {
	// CreateFlashcard persists one flashcard and maintains the category index
	CreateFlashcard(
		ctx context.Context,
		username, question, answer, category string,
		difficulty domain.DifficultyLevel,
		isAuto bool,
	) (*domain.Flashcard, error)
}

// flashcardGenerationPayload represents the serialized data stored in the task
type flashcardGenerationPayload struct {
	Username string `json:"username"`
	Topic    string `json:"topic"`
	Count    int    `json:"count"`
}

// FlashcardGenerationTask implements the Task interface for generating
// flashcards about a topic through the LLM backend.
type FlashcardGenerationTask struct {
	id        uuid.UUID
	username  string
	topic     string
	count     int
	generator Generator
	creator   FlashcardCreator
	logger    *slog.Logger
	status    TaskStatus
}

// NewFlashcardGenerationTask creates a new flashcard generation task
func NewFlashcardGenerationTask(
	username, topic string,
	count int,
	generator Generator,
	creator FlashcardCreator,
	logger *slog.Logger,
) (*FlashcardGenerationTask, error) {
	if generator == nil {
		return nil, ErrNilGenerator
	}
	if creator == nil {
		return nil, ErrNilCreator
	}
	if topic == "" {
		return nil, ErrEmptyTopic
	}
	if count < 1 {
		return nil, ErrInvalidCount
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FlashcardGenerationTask{
		id:        uuid.New(),
		username:  username,
		topic:     topic,
		count:     count,
		generator: generator,
		creator:   creator,
		logger: logger.With(
			"task_type", TaskTypeFlashcardGeneration,
			"username", username,
			"topic", topic),
		status: TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *FlashcardGenerationTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *FlashcardGenerationTask) Type() string {
	return TaskTypeFlashcardGeneration
}

// Payload returns the task data as a byte slice
func (t *FlashcardGenerationTask) Payload() []byte {
	payload := flashcardGenerationPayload{
		Username: t.username,
		Topic:    t.topic,
		Count:    t.count,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *FlashcardGenerationTask) Status() TaskStatus {
	return t.status
}

// Execute runs the generation and persists the resulting flashcards.
// Cards are inserted one by one; a failure mid-batch leaves earlier cards
// persisted and fails the task.
func (t *FlashcardGenerationTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting flashcard generation", "task_id", t.id, "count", t.count)

	cards, err := t.generator.GenerateFlashcards(ctx, t.username, t.topic, t.count)
	if err != nil {
		t.status = TaskStatusFailed
		return fmt.Errorf("generating flashcards: %w", err)
	}

	created := 0
	for _, card := range cards {
		_, err := t.creator.CreateFlashcard(
			ctx,
			t.username,
			card.Question,
			card.Answer,
			card.Category,
			card.DifficultyLevel,
			true,
		)
		if err != nil {
			t.status = TaskStatusFailed
			return fmt.Errorf("persisting generated flashcard (%d of %d saved): %w",
				created, len(cards), err)
		}
		created++
	}

	t.status = TaskStatusCompleted
	t.logger.Info("flashcard generation completed",
		"task_id", t.id,
		"cards_created", created)
	return nil
}
