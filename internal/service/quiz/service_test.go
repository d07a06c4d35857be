package quiz

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/sampling"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makePool(username, category string, n int) []domain.Flashcard {
	levels := []domain.DifficultyLevel{
		domain.DifficultyEasy,
		domain.DifficultyMedium,
		domain.DifficultyHard,
	}
	cards := make([]domain.Flashcard, 0, n)
	for i := 0; i < n; i++ {
		cards = append(cards, domain.Flashcard{
			ID:              uuid.New(),
			Username:        username,
			Question:        fmt.Sprintf("question %d", i),
			Answer:          fmt.Sprintf("answer %d", i),
			Category:        category,
			DifficultyLevel: levels[i%len(levels)],
			CreatedAt:       time.Now().UTC(),
			UpdatedAt:       time.Now().UTC(),
		})
	}
	return cards
}

type testEnv struct {
	service   QuizService
	flashcard *fakeFlashcardStore
	records   *fakeQuizRecordStore
	marathons *fakeMarathonStore
}

func newTestEnv(t *testing.T, cards []domain.Flashcard) *testEnv {
	t.Helper()
	flashcards := &fakeFlashcardStore{cards: cards}
	records := newFakeQuizRecordStore()
	marathons := &fakeMarathonStore{}

	svc := NewQuizService(
		nil,
		flashcards,
		records,
		marathons,
		nil,
		WithSampler(sampling.NewWithSource(rand.NewSource(42))),
		WithTimeFunc(func() time.Time {
			return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		}),
	)

	return &testEnv{
		service:   svc,
		flashcard: flashcards,
		records:   records,
		marathons: marathons,
	}
}

func TestGeneratePracticeQuizzes(t *testing.T) {
	t.Parallel()

	t.Run("returns floor(pool/size) quizzes with no repeats", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		quizzes, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 3)
		require.NoError(t, err)
		require.Len(t, quizzes, 3)

		seen := make(map[uuid.UUID]bool)
		for _, quiz := range quizzes {
			assert.Equal(t, "Quiz_1", quiz.ID)
			assert.Equal(t, "Quiz 1", quiz.Title)
			assert.Equal(t, []string{"Biology"}, quiz.Categories)
			require.Len(t, quiz.Flashcards, 3)
			for _, card := range quiz.Flashcards {
				assert.False(t, seen[card.ID], "flashcard repeated across quizzes in one call")
				seen[card.ID] = true
			}
		}
	})

	t.Run("zero size defaults to the minimum", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 7))

		quizzes, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 0)
		require.NoError(t, err)
		require.Len(t, quizzes, 2)
		for _, quiz := range quizzes {
			assert.Len(t, quiz.Flashcards, domain.MinQuizSize)
		}
	})

	t.Run("explicit size below minimum fails", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		_, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 2)
		assert.ErrorIs(t, err, ErrQuizTooSmall)
	})

	t.Run("pool smaller than size fails with offending category", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 2))

		_, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 3)
		var poolErr *InsufficientPoolError
		require.ErrorAs(t, err, &poolErr)
		assert.Equal(t, "Biology", poolErr.Category)
		assert.Equal(t, 2, poolErr.Have)
		assert.Equal(t, 3, poolErr.Need)
	})

	t.Run("titles follow category position across categories", func(t *testing.T) {
		t.Parallel()
		cards := append(makePool("alice", "Biology", 4), makePool("alice", "History", 4)...)
		env := newTestEnv(t, cards)

		quizzes, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology", "History"}, 4)
		require.NoError(t, err)
		require.Len(t, quizzes, 2)
		assert.Equal(t, "Quiz_1", quizzes[0].ID)
		assert.Equal(t, []string{"Biology"}, quizzes[0].Categories)
		assert.Equal(t, "Quiz_2", quizzes[1].ID)
		assert.Equal(t, []string{"History"}, quizzes[1].Categories)
	})

	t.Run("difficulty levels are distinct and canonically ordered", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 6))

		quizzes, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 6)
		require.NoError(t, err)
		require.Len(t, quizzes, 1)
		assert.Equal(t, []domain.DifficultyLevel{
			domain.DifficultyEasy,
			domain.DifficultyMedium,
			domain.DifficultyHard,
		}, quizzes[0].DifficultyLevels)
	})

	t.Run("persists nothing", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		_, err := env.service.GeneratePracticeQuizzes(
			context.Background(), "alice", []string{"Biology"}, 3)
		require.NoError(t, err)
		assert.Empty(t, env.records.all())
		assert.Empty(t, env.marathons.cells)
	})
}

func TestGenerateMarathon(t *testing.T) {
	t.Parallel()

	t.Run("covers the pool exactly once when shape matches", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 10)
		env := newTestEnv(t, pool)

		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    2,
			NumQuestions: 5,
		})
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, marathonID)

		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, cells, 2)
		for i, cell := range cells {
			assert.Equal(t, marathonID, cell.MarathonID)
			assert.Equal(t, i, cell.Day)
			assert.Equal(t, 2, cell.TotalDays)
			assert.Equal(t, "Biology", cell.Category)
			assert.False(t, cell.Completed)
			assert.Equal(t, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), cell.StartDate)
		}

		records := env.records.all()
		require.Len(t, records, 10)
		seen := make(map[uuid.UUID]bool)
		for _, r := range records {
			assert.False(t, seen[r.FlashcardID], "flashcard drawn twice within one cycle")
			seen[r.FlashcardID] = true
			assert.Equal(t, "alice", r.Username)
			assert.Nil(t, r.StartTime)
			assert.Nil(t, r.EndTime)
			assert.False(t, r.Completed)
		}
		assert.Len(t, seen, len(pool))
	})

	t.Run("resolves default question count from pool and shape", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 12))

		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:  "alice",
			Category:  "Biology",
			TotalDays: 3,
		})
		require.NoError(t, err)

		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, cells, 3)
		for _, cell := range cells {
			records, err := env.records.ListByQuiz(context.Background(), cell.QuizID)
			require.NoError(t, err)
			// 12 / (3 * 1) = 4, above the minimum so not clamped
			assert.Len(t, records, 4)
		}
	})

	t.Run("clamps resolved question count to the minimum", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 8))

		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:  "alice",
			Category:  "Biology",
			TotalDays: 4,
		})
		require.NoError(t, err)

		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, cells, 4)
		for _, cell := range cells {
			records, err := env.records.ListByQuiz(context.Background(), cell.QuizID)
			require.NoError(t, err)
			// 8 / (4 * 1) = 2, clamped up to 3
			assert.Len(t, records, 3)
		}
	})

	t.Run("pool of two fails regardless of shape", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 2))

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:  "alice",
			Category:  "Biology",
			TotalDays: 1,
		})
		var poolErr *InsufficientPoolError
		require.ErrorAs(t, err, &poolErr)
		assert.Equal(t, 2, poolErr.Have)
	})

	t.Run("pool smaller than explicit question count fails", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 5))

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    1,
			NumQuestions: 6,
		})
		var poolErr *InsufficientPoolError
		require.ErrorAs(t, err, &poolErr)
		assert.Equal(t, 5, poolErr.Have)
		assert.Equal(t, 6, poolErr.Need)
	})

	t.Run("rejects total days below one", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username: "alice",
			Category: "Biology",
		})
		assert.ErrorIs(t, err, ErrInvalidTotalDays)
	})

	t.Run("rejects negative question and per-day counts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    2,
			NumQuestions: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidQuizCount)

		_, err = env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:      "alice",
			Category:      "Biology",
			TotalDays:     2,
			NumQuizPerDay: -1,
		})
		assert.ErrorIs(t, err, ErrInvalidQuizCount)

		assert.Empty(t, env.records.all())
		assert.Empty(t, env.marathons.cells)
	})

	t.Run("rejects explicit question count below the minimum", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    2,
			NumQuestions: 2,
		})
		assert.ErrorIs(t, err, ErrQuizTooSmall)
	})

	t.Run("multiple quizzes per day draw from one pool-wide bitmap", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 12)
		env := newTestEnv(t, pool)

		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:      "alice",
			Category:      "Biology",
			TotalDays:     2,
			NumQuestions:  3,
			NumQuizPerDay: 2,
		})
		require.NoError(t, err)

		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, cells, 4)

		// 4 cells * 3 questions = 12 = pool size, so one full cycle with no
		// flashcard repeated anywhere in the schedule.
		seen := make(map[uuid.UUID]bool)
		for _, r := range env.records.all() {
			assert.False(t, seen[r.FlashcardID])
			seen[r.FlashcardID] = true
		}
		assert.Len(t, seen, len(pool))
	})

	t.Run("mid-schedule store failure reports progress", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 10))
		env.marathons.insertErr = errors.New("connection reset")
		env.marathons.failOnCall = 2

		_, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    2,
			NumQuestions: 5,
		})
		var partial *PartialWriteError
		require.ErrorAs(t, err, &partial)
		assert.Equal(t, 1, partial.CellsWritten)
		assert.Equal(t, 5, partial.RecordsWritten)
		assert.NotEqual(t, uuid.Nil, partial.MarathonID)
	})
}

func TestSubmitQuiz(t *testing.T) {
	t.Parallel()

	submissionFor := func(records []domain.QuizRecord, marathonID, quizID uuid.UUID) Submission {
		cards := make([]SubmittedFlashcard, 0, len(records))
		for _, r := range records {
			cards = append(cards, SubmittedFlashcard{
				FlashcardID:     r.FlashcardID,
				DifficultyLevel: domain.DifficultyHard,
				Category:        r.Category,
			})
		}
		return Submission{
			Mode:       ModeMarathon,
			MarathonID: marathonID,
			QuizID:     quizID,
			Flashcards: cards,
			StartTime:  time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			EndTime:    time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
		}
	}

	generateMarathon := func(t *testing.T, env *testEnv) (uuid.UUID, []domain.Marathon) {
		t.Helper()
		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    2,
			NumQuestions: 3,
		})
		require.NoError(t, err)
		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		return marathonID, cells
	}

	t.Run("marathon mode completes the cell and rewrites its records", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 6))
		marathonID, cells := generateMarathon(t, env)

		records, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		sub := submissionFor(records, marathonID, cells[0].QuizID)

		result, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, cells[0].QuizID, result.QuizID)

		cell, err := env.marathons.GetByIDs(context.Background(), marathonID, cells[0].QuizID)
		require.NoError(t, err)
		assert.True(t, cell.Completed)

		updated, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		for _, r := range updated {
			assert.Equal(t, domain.DifficultyHard, r.DifficultyLevel)
			assert.True(t, r.Completed)
			require.NotNil(t, r.StartTime)
			assert.Equal(t, sub.StartTime, *r.StartTime)
			require.NotNil(t, r.EndTime)
			assert.Equal(t, sub.EndTime, *r.EndTime)
		}
	})

	t.Run("marathon submission writes ratings back to the deck", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 6))
		marathonID, cells := generateMarathon(t, env)

		records, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		sub := submissionFor(records, marathonID, cells[0].QuizID)

		_, err = env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)

		for _, submitted := range sub.Flashcards {
			card, err := env.flashcard.GetByID(context.Background(), submitted.FlashcardID)
			require.NoError(t, err)
			assert.Equal(t, domain.DifficultyHard, card.DifficultyLevel,
				"submitted rating not persisted on the flashcard")
		}
	})

	t.Run("practice submission writes ratings back to the deck", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 3)
		env := newTestEnv(t, pool)
		require.Equal(t, domain.DifficultyEasy, pool[0].DifficultyLevel)

		sub := Submission{
			Mode: ModePractice,
			Flashcards: []SubmittedFlashcard{
				{FlashcardID: pool[0].ID, DifficultyLevel: domain.DifficultyHard, Category: "Biology"},
			},
			StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC),
		}

		_, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)

		card, err := env.flashcard.GetByID(context.Background(), pool[0].ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DifficultyHard, card.DifficultyLevel)
	})

	t.Run("marathon mode against unknown cell is a discarded soft failure", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 6)
		env := newTestEnv(t, pool)
		marathonID, cells := generateMarathon(t, env)

		records, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		sub := submissionFor(records, marathonID, uuid.New())

		result, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		assert.False(t, result.Applied)
		assert.NotEmpty(t, result.Warning)

		// Nothing was written.
		for _, cell := range env.marathons.cells {
			assert.False(t, cell.Completed)
		}
		unchanged, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		for _, r := range unchanged {
			assert.False(t, r.Completed)
			assert.Nil(t, r.StartTime)
		}
		for _, original := range pool {
			card, err := env.flashcard.GetByID(context.Background(), original.ID)
			require.NoError(t, err)
			assert.Equal(t, original.DifficultyLevel, card.DifficultyLevel,
				"discarded submission must not touch the deck")
		}
	})

	t.Run("re-submitting is idempotent", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, makePool("alice", "Biology", 6))
		marathonID, cells := generateMarathon(t, env)

		records, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)
		sub := submissionFor(records, marathonID, cells[0].QuizID)

		_, err = env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		first, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)

		_, err = env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		second, err := env.records.ListByQuiz(context.Background(), cells[0].QuizID)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		cell, err := env.marathons.GetByIDs(context.Background(), marathonID, cells[0].QuizID)
		require.NoError(t, err)
		assert.True(t, cell.Completed)
	})

	t.Run("practice mode inserts fresh records and leaves marathons alone", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 3)
		env := newTestEnv(t, pool)

		sub := Submission{
			Mode: ModePractice,
			Flashcards: []SubmittedFlashcard{
				{FlashcardID: pool[0].ID, DifficultyLevel: domain.DifficultyEasy, Category: "Biology"},
				{FlashcardID: pool[1].ID, DifficultyLevel: domain.DifficultyMedium, Category: "Biology"},
			},
			StartTime: time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2025, 6, 2, 9, 5, 0, 0, time.UTC),
		}

		result, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		require.NotEqual(t, uuid.Nil, result.QuizID)

		records, err := env.records.ListByQuiz(context.Background(), result.QuizID)
		require.NoError(t, err)
		require.Len(t, records, 2)
		for _, r := range records {
			assert.Equal(t, "alice", r.Username)
			assert.True(t, r.Completed)
			require.NotNil(t, r.StartTime)
		}
		assert.Empty(t, env.marathons.cells)
	})

	t.Run("two practice submissions get distinct quiz ids", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 3)
		env := newTestEnv(t, pool)

		sub := Submission{
			Mode: ModePractice,
			Flashcards: []SubmittedFlashcard{
				{FlashcardID: pool[0].ID, DifficultyLevel: domain.DifficultyEasy, Category: "Biology"},
			},
		}

		first, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		second, err := env.service.SubmitQuiz(context.Background(), "alice", sub)
		require.NoError(t, err)
		assert.NotEqual(t, first.QuizID, second.QuizID)
	})

	t.Run("rejects invalid input", func(t *testing.T) {
		t.Parallel()
		pool := makePool("alice", "Biology", 3)
		env := newTestEnv(t, pool)

		_, err := env.service.SubmitQuiz(context.Background(), "alice", Submission{
			Mode:       "sprint",
			Flashcards: []SubmittedFlashcard{{FlashcardID: pool[0].ID, DifficultyLevel: domain.DifficultyEasy}},
		})
		assert.ErrorIs(t, err, ErrInvalidMode)

		_, err = env.service.SubmitQuiz(context.Background(), "alice", Submission{Mode: ModePractice})
		assert.ErrorIs(t, err, ErrEmptySubmission)

		_, err = env.service.SubmitQuiz(context.Background(), "alice", Submission{
			Mode:       ModePractice,
			Flashcards: []SubmittedFlashcard{{FlashcardID: pool[0].ID, DifficultyLevel: "Impossible"}},
		})
		assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
	})
}

func TestGetCurrentMarathonQuiz(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (*testEnv, uuid.UUID, []domain.Marathon) {
		t.Helper()
		env := newTestEnv(t, makePool("alice", "Biology", 9))
		marathonID, err := env.service.GenerateMarathon(context.Background(), MarathonRequest{
			Username:     "alice",
			Category:     "Biology",
			TotalDays:    3,
			NumQuestions: 3,
		})
		require.NoError(t, err)
		cells, err := env.marathons.ListByMarathon(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, cells, 3)
		return env, marathonID, cells
	}

	t.Run("returns the lowest incomplete day", func(t *testing.T) {
		t.Parallel()
		env, marathonID, cells := setup(t)

		require.NoError(t, env.marathons.SetCompleted(
			context.Background(), marathonID, cells[0].QuizID, true))

		records, err := env.service.GetCurrentMarathonQuiz(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		for _, r := range records {
			assert.Equal(t, cells[1].QuizID, r.QuizID)
		}
	})

	t.Run("falls back to the final day when everything is complete", func(t *testing.T) {
		t.Parallel()
		env, marathonID, cells := setup(t)

		for _, cell := range cells {
			require.NoError(t, env.marathons.SetCompleted(
				context.Background(), marathonID, cell.QuizID, true))
		}

		records, err := env.service.GetCurrentMarathonQuiz(context.Background(), marathonID)
		require.NoError(t, err)
		require.Len(t, records, 3)
		for _, r := range records {
			assert.Equal(t, cells[2].QuizID, r.QuizID)
		}
	})

	t.Run("unknown marathon id is not found", func(t *testing.T) {
		t.Parallel()
		env, _, _ := setup(t)

		_, err := env.service.GetCurrentMarathonQuiz(context.Background(), uuid.New())
		assert.ErrorIs(t, err, store.ErrMarathonNotFound)
	})
}
