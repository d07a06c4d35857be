// Package quiz implements the generation and reconciliation engine: practice
// quiz assembly, marathon scheduling, and submission reconciliation.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/google/uuid"
)

// SubmissionMode classifies a submission as a standalone practice session or
// an in-progress marathon day.
type SubmissionMode string

const (
	// ModePractice marks a standalone practice submission.
	ModePractice SubmissionMode = "practice"

	// ModeMarathon marks a submission against a marathon day.
	ModeMarathon SubmissionMode = "marathon"
)

// Valid reports whether m is a known submission mode.
func (m SubmissionMode) Valid() bool {
	return m == ModePractice || m == ModeMarathon
}

// SubmittedFlashcard is one attempted flashcard within a submission, carrying
// the difficulty level and category recorded on the card at attempt time.
type SubmittedFlashcard struct {
	FlashcardID     uuid.UUID              `json:"flashcard_id"`
	DifficultyLevel domain.DifficultyLevel `json:"difficulty_level"`
	Category        string                 `json:"category"`
}

// Submission is a completed quiz attempt sent in by a user.
// QuizID and MarathonID identify the marathon cell in marathon mode; both are
// ignored in practice mode, where a fresh quiz id is allocated server-side.
type Submission struct {
	Mode       SubmissionMode       `json:"mode"`
	MarathonID uuid.UUID            `json:"marathon_id,omitempty"`
	QuizID     uuid.UUID            `json:"quiz_id,omitempty"`
	Flashcards []SubmittedFlashcard `json:"flashcards"`
	StartTime  time.Time            `json:"start_time"`
	EndTime    time.Time            `json:"end_time"`
}

// SubmitResult acknowledges a submission. Applied is false when a
// marathon-mode submission referenced an unknown (marathon id, quiz id) pair;
// the submission is then discarded and Warning explains why.
type SubmitResult struct {
	Applied bool      `json:"applied"`
	QuizID  uuid.UUID `json:"quiz_id"`
	Warning string    `json:"warning,omitempty"`
}

// MarathonRequest carries the parameters of a marathon generation call.
// NumQuestions and NumQuizPerDay are optional; zero means "resolve a default"
// (see GenerateMarathon).
type MarathonRequest struct {
	Username      string `json:"username"`
	Category      string `json:"category"`
	TotalDays     int    `json:"total_days"`
	NumQuestions  int    `json:"num_questions,omitempty"`
	NumQuizPerDay int    `json:"num_quiz_per_day,omitempty"`
}

// QuizService is the engine's surface: quiz and marathon generation plus
// submission reconciliation.
type QuizService interface {
	// GeneratePracticeQuizzes partitions each listed category's flashcard pool
	// into consecutive quizzes of quizSize flashcards. A quizSize of zero
	// selects the default of domain.MinQuizSize; an explicit size below the
	// minimum fails with ErrQuizTooSmall. Each category yields
	// floor(pool/quizSize) quizzes with no flashcard repeated across them.
	// Nothing is persisted; records are written only on submission.
	//
	// Returns an *InsufficientPoolError naming the offending category when its
	// pool is smaller than quizSize.
	GeneratePracticeQuizzes(
		ctx context.Context,
		username string,
		categories []string,
		quizSize int,
	) ([]domain.Quiz, error)

	// GenerateMarathon builds a multi-day study schedule over one category and
	// returns the marathon id shared by all its cells. One Marathon row and
	// NumQuestions QuizRecord rows are persisted per (day, quiz-of-day) cell,
	// each cell in its own transaction.
	//
	// Returns an *InsufficientPoolError when the pool cannot satisfy the
	// resolved question count, and a *PartialWriteError when a mid-schedule
	// store failure leaves earlier cells persisted. Negative counts fail with
	// ErrInvalidQuizCount; an explicit question count below the minimum fails
	// with ErrQuizTooSmall.
	GenerateMarathon(ctx context.Context, req MarathonRequest) (uuid.UUID, error)

	// SubmitQuiz reconciles a completed attempt. In marathon mode it marks the
	// referenced cell completed and rewrites its QuizRecord rows with the
	// observed difficulty, category, and timestamps; an unknown cell yields
	// SubmitResult{Applied: false} with a warning rather than an error. In
	// practice mode it inserts fresh QuizRecord rows under a new quiz id.
	// In both modes each submitted difficulty is also written back onto the
	// flashcard itself, so a re-rating during the attempt updates the deck.
	SubmitQuiz(ctx context.Context, username string, sub Submission) (*SubmitResult, error)

	// GetCurrentMarathonQuiz returns the QuizRecord rows of the marathon's
	// lowest-day incomplete cell, or of the final cell when every day is done.
	// Returns store.ErrMarathonNotFound for an unknown marathon id.
	GetCurrentMarathonQuiz(ctx context.Context, marathonID uuid.UUID) ([]domain.QuizRecord, error)

	// ListMarathons returns all marathon cells of a user, ordered by start
	// date and day index.
	ListMarathons(ctx context.Context, username string) ([]domain.Marathon, error)
}

// Common error types for QuizService
var (
	// ErrQuizTooSmall indicates an explicit quiz size below the minimum of 3.
	ErrQuizTooSmall = errors.New("quiz size below minimum")

	// ErrInvalidMode indicates an unrecognized submission mode.
	ErrInvalidMode = errors.New("invalid submission mode")

	// ErrEmptySubmission indicates a submission with no flashcards.
	ErrEmptySubmission = errors.New("submission contains no flashcards")

	// ErrInvalidTotalDays indicates a marathon request with total_days < 1.
	ErrInvalidTotalDays = errors.New("total days must be at least 1")

	// ErrInvalidQuizCount indicates a marathon request with a negative
	// question or quiz-per-day count.
	ErrInvalidQuizCount = errors.New("question and quiz counts cannot be negative")
)

// InsufficientPoolError indicates a category's flashcard pool is smaller than
// the requested quiz or marathon shape requires.
type InsufficientPoolError struct {
	// Category is the offending category.
	Category string
	// Have is the pool size found.
	Have int
	// Need is the minimum pool size the request required.
	Need int
}

// Error implements the error interface for InsufficientPoolError.
func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf(
		"insufficient pool in category %q: have %d flashcards, need %d",
		e.Category, e.Have, e.Need,
	)
}

// PartialWriteError indicates a mid-sequence store failure during marathon
// generation. Cells already written are not rolled back; CellsWritten and
// RecordsWritten report how far generation progressed so the caller can decide
// whether to retry or discard.
type PartialWriteError struct {
	MarathonID     uuid.UUID
	CellsWritten   int
	RecordsWritten int
	Err            error
}

// Error implements the error interface for PartialWriteError.
func (e *PartialWriteError) Error() string {
	return fmt.Sprintf(
		"marathon %s partially written: %d cells and %d records persisted before failure: %v",
		e.MarathonID, e.CellsWritten, e.RecordsWritten, e.Err,
	)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
