package store

import (
	"context"

	"github.com/flashdeck/flashdeck-api/internal/domain"
)

// UserStats is a read-only rollup of a user's practice activity.
type UserStats struct {
	TotalFlashcards       int                            `json:"total_flashcards"`
	ByDifficulty          map[domain.DifficultyLevel]int `json:"by_difficulty"`
	ByCategory            map[string]int                 `json:"by_category"`
	AutoGenerated         int                            `json:"auto_generated"`
	QuizzesTaken          int                            `json:"quizzes_taken"`
	QuizzesCompleted      int                            `json:"quizzes_completed"`
	MarathonsStarted      int                            `json:"marathons_started"`
	MarathonDaysCompleted int                            `json:"marathon_days_completed"`
}

// StatsStore defines the interface for statistics rollup queries.
// Implementations are read-only.
type StatsStore interface {
	// GetUserStats aggregates a user's flashcard and attempt activity.
	GetUserStats(ctx context.Context, username string) (*UserStats, error)
}
