package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/flashdeck/flashdeck-api/internal/api/shared"
	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/service/quiz"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// authedRequest builds a JSON request carrying the given username in its
// context, as the auth middleware would.
func authedRequest(t *testing.T, method, target, username string, body interface{}) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, target, reader)
	if username != "" {
		ctx := context.WithValue(r.Context(), shared.UsernameContextKey, username)
		ctx = context.WithValue(ctx, shared.UserIDContextKey, uuid.New())
		r = r.WithContext(ctx)
	}
	return r
}

// memUserStore is an in-memory store.UserStore.
type memUserStore struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]domain.User)}
}

func (s *memUserStore) Create(_ context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return store.ErrUsernameExists
	}
	s.users[user.Username] = *user
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return &user, nil
}

// memFlashcardStore is an in-memory store.FlashcardStore.
type memFlashcardStore struct {
	mu    sync.Mutex
	cards map[uuid.UUID]domain.Flashcard
}

func newMemFlashcardStore() *memFlashcardStore {
	return &memFlashcardStore{cards: make(map[uuid.UUID]domain.Flashcard)}
}

func (s *memFlashcardStore) List(
	_ context.Context,
	username string,
	filter store.FlashcardFilter,
) ([]domain.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Flashcard
	for _, card := range s.cards {
		if card.Username != username {
			continue
		}
		if filter.Category != "" && card.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && card.DifficultyLevel != filter.Difficulty {
			continue
		}
		out = append(out, card)
	}
	return out, nil
}

func (s *memFlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}
	return &card, nil
}

func (s *memFlashcardStore) Insert(_ context.Context, card *domain.Flashcard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = *card
	return nil
}

func (s *memFlashcardStore) Update(
	_ context.Context,
	id uuid.UUID,
	update store.FlashcardUpdate,
) (*domain.Flashcard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	card, ok := s.cards[id]
	if !ok {
		return nil, store.ErrFlashcardNotFound
	}
	if update.Question != nil {
		card.Question = *update.Question
	}
	if update.Answer != nil {
		card.Answer = *update.Answer
	}
	if update.Category != nil {
		card.Category = *update.Category
	}
	if update.DifficultyLevel != nil {
		card.DifficultyLevel = *update.DifficultyLevel
	}
	card.UpdatedAt = time.Now().UTC()
	s.cards[id] = card
	return &card, nil
}

func (s *memFlashcardStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[id]; !ok {
		return store.ErrFlashcardNotFound
	}
	delete(s.cards, id)
	return nil
}

func (s *memFlashcardStore) WithTx(_ *sql.Tx) store.FlashcardStore { return s }

// memCategoryStore is an in-memory store.CategoryStore that counts
// flashcards against its companion flashcard store.
type memCategoryStore struct {
	mu         sync.Mutex
	pairs      map[string]map[string]bool
	flashcards *memFlashcardStore
}

func newMemCategoryStore(flashcards *memFlashcardStore) *memCategoryStore {
	return &memCategoryStore{
		pairs:      make(map[string]map[string]bool),
		flashcards: flashcards,
	}
}

func (s *memCategoryStore) List(_ context.Context, username string) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Category
	for category := range s.pairs[username] {
		out = append(out, domain.Category{Username: username, Category: category})
	}
	return out, nil
}

func (s *memCategoryStore) Exists(_ context.Context, username, category string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pairs[username][category], nil
}

func (s *memCategoryStore) Add(_ context.Context, username, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pairs[username] == nil {
		s.pairs[username] = make(map[string]bool)
	}
	s.pairs[username][category] = true
	return nil
}

func (s *memCategoryStore) Remove(_ context.Context, username, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pairs[username], category)
	return nil
}

func (s *memCategoryStore) CountFlashcards(
	ctx context.Context,
	username, category string,
) (int, error) {
	cards, err := s.flashcards.List(ctx, username, store.FlashcardFilter{Category: category})
	if err != nil {
		return 0, err
	}
	return len(cards), nil
}

func (s *memCategoryStore) WithTx(_ *sql.Tx) store.CategoryStore { return s }

// stubQuizService implements quiz.QuizService with overridable functions.
type stubQuizService struct {
	generatePractice func(ctx context.Context, username string, categories []string, quizSize int) ([]domain.Quiz, error)
	generateMarathon func(ctx context.Context, req quiz.MarathonRequest) (uuid.UUID, error)
	submit           func(ctx context.Context, username string, sub quiz.Submission) (*quiz.SubmitResult, error)
	currentQuiz      func(ctx context.Context, marathonID uuid.UUID) ([]domain.QuizRecord, error)
	listMarathons    func(ctx context.Context, username string) ([]domain.Marathon, error)
}

func (s *stubQuizService) GeneratePracticeQuizzes(
	ctx context.Context,
	username string,
	categories []string,
	quizSize int,
) ([]domain.Quiz, error) {
	return s.generatePractice(ctx, username, categories, quizSize)
}

func (s *stubQuizService) GenerateMarathon(
	ctx context.Context,
	req quiz.MarathonRequest,
) (uuid.UUID, error) {
	return s.generateMarathon(ctx, req)
}

func (s *stubQuizService) SubmitQuiz(
	ctx context.Context,
	username string,
	sub quiz.Submission,
) (*quiz.SubmitResult, error) {
	return s.submit(ctx, username, sub)
}

func (s *stubQuizService) GetCurrentMarathonQuiz(
	ctx context.Context,
	marathonID uuid.UUID,
) ([]domain.QuizRecord, error) {
	return s.currentQuiz(ctx, marathonID)
}

func (s *stubQuizService) ListMarathons(
	ctx context.Context,
	username string,
) ([]domain.Marathon, error) {
	return s.listMarathons(ctx, username)
}
