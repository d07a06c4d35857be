package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Marathon-specific validation errors
var (
	// ErrMarathonIDEmpty is returned when a marathon ID is nil.
	ErrMarathonIDEmpty = errors.New("marathon ID cannot be empty")

	// ErrMarathonQuizIDEmpty is returned when a marathon's quiz ID is nil.
	ErrMarathonQuizIDEmpty = errors.New("marathon quiz ID cannot be empty")

	// ErrMarathonUsernameEmpty is returned when a marathon's username is empty.
	ErrMarathonUsernameEmpty = errors.New("marathon username cannot be empty")

	// ErrMarathonCategoryEmpty is returned when a marathon's category is empty.
	ErrMarathonCategoryEmpty = errors.New("marathon category cannot be empty")

	// ErrMarathonDayOutOfRange is returned when a marathon's day index falls
	// outside [0, total_days).
	ErrMarathonDayOutOfRange = errors.New("marathon day index out of range")
)

// Marathon is one (day, quiz-of-day) cell of a multi-day study schedule.
// All cells of the same schedule share the marathon ID; each cell owns one
// quiz ID whose QuizRecord rows hold the drawn flashcards. Cells are created
// entirely during marathon generation and mutated only when a submission
// marks them completed.
type Marathon struct {
	MarathonID uuid.UUID `json:"marathon_id"`
	QuizID     uuid.UUID `json:"quiz_id"`
	Username   string    `json:"username"`
	Category   string    `json:"category"`
	Day        int       `json:"day"`
	TotalDays  int       `json:"total_days"`
	StartDate  time.Time `json:"start_date"`
	Completed  bool      `json:"completed"`
}

// Validate checks if the Marathon has valid data.
// Returns an error if any field fails validation.
func (m *Marathon) Validate() error {
	if m.MarathonID == uuid.Nil {
		return ErrMarathonIDEmpty
	}
	if m.QuizID == uuid.Nil {
		return ErrMarathonQuizIDEmpty
	}
	if m.Username == "" {
		return ErrMarathonUsernameEmpty
	}
	if m.Category == "" {
		return ErrMarathonCategoryEmpty
	}
	if m.Day < 0 || m.Day >= m.TotalDays {
		return ErrMarathonDayOutOfRange
	}
	return nil
}
