package postgres

import (
	"context"
	"log/slog"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface with
// read-only aggregate queries over the flashcard and attempt tables.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the
// StatsStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// GetUserStats implements store.StatsStore.GetUserStats
func (s *PostgresStatsStore) GetUserStats(ctx context.Context, username string) (*store.UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	stats := &store.UserStats{
		ByDifficulty: make(map[domain.DifficultyLevel]int),
		ByCategory:   make(map[string]int),
	}

	if err := s.fillFlashcardCounts(ctx, username, stats); err != nil {
		log.Error("failed to aggregate flashcard stats",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}
	if err := s.fillQuizCounts(ctx, username, stats); err != nil {
		log.Error("failed to aggregate quiz stats",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}
	if err := s.fillMarathonCounts(ctx, username, stats); err != nil {
		log.Error("failed to aggregate marathon stats",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return stats, nil
}

func (s *PostgresStatsStore) fillFlashcardCounts(
	ctx context.Context,
	username string,
	stats *store.UserStats,
) error {
	query := `
		SELECT category, difficulty_level, is_auto, COUNT(*)
		FROM flashcards
		WHERE username = $1
		GROUP BY category, difficulty_level, is_auto
	`

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var category, difficulty string
		var isAuto bool
		var count int
		if err := rows.Scan(&category, &difficulty, &isAuto, &count); err != nil {
			return err
		}
		stats.TotalFlashcards += count
		stats.ByDifficulty[domain.DifficultyLevel(difficulty)] += count
		stats.ByCategory[category] += count
		if isAuto {
			stats.AutoGenerated += count
		}
	}
	return rows.Err()
}

func (s *PostgresStatsStore) fillQuizCounts(
	ctx context.Context,
	username string,
	stats *store.UserStats,
) error {
	query := `
		SELECT COUNT(DISTINCT quiz_id),
		       COUNT(DISTINCT quiz_id) FILTER (WHERE completed)
		FROM quiz_records
		WHERE username = $1
	`
	return s.db.QueryRowContext(ctx, query, username).
		Scan(&stats.QuizzesTaken, &stats.QuizzesCompleted)
}

func (s *PostgresStatsStore) fillMarathonCounts(
	ctx context.Context,
	username string,
	stats *store.UserStats,
) error {
	query := `
		SELECT COUNT(DISTINCT marathon_id),
		       COUNT(*) FILTER (WHERE completed)
		FROM marathons
		WHERE username = $1
	`
	return s.db.QueryRowContext(ctx, query, username).
		Scan(&stats.MarathonsStarted, &stats.MarathonDaysCompleted)
}
