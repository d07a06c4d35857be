package quiz

import (
	"context"
	"database/sql"
	"sync"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/store"
	"github.com/google/uuid"
)

// fakeFlashcardStore serves a pool from memory. Safe for concurrent use
// because submissions write difficulty ratings back in parallel.
type fakeFlashcardStore struct {
	mu        sync.Mutex
	cards     []domain.Flashcard
	listErr   error
	updateErr error
}

var _ store.FlashcardStore = (*fakeFlashcardStore)(nil)

func (f *fakeFlashcardStore) List(
	_ context.Context,
	username string,
	filter store.FlashcardFilter,
) ([]domain.Flashcard, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Flashcard
	for _, c := range f.cards {
		if c.Username != username {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Difficulty != "" && c.DifficultyLevel != filter.Difficulty {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeFlashcardStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Flashcard, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cards {
		if c.ID == id {
			card := c
			return &card, nil
		}
	}
	return nil, store.ErrFlashcardNotFound
}

func (f *fakeFlashcardStore) Insert(_ context.Context, card *domain.Flashcard) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cards = append(f.cards, *card)
	return nil
}

func (f *fakeFlashcardStore) Update(
	_ context.Context,
	id uuid.UUID,
	update store.FlashcardUpdate,
) (*domain.Flashcard, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.cards {
		if f.cards[i].ID != id {
			continue
		}
		if update.Question != nil {
			f.cards[i].Question = *update.Question
		}
		if update.Answer != nil {
			f.cards[i].Answer = *update.Answer
		}
		if update.Category != nil {
			f.cards[i].Category = *update.Category
		}
		if update.DifficultyLevel != nil {
			f.cards[i].DifficultyLevel = *update.DifficultyLevel
		}
		if update.IsAuto != nil {
			f.cards[i].IsAuto = *update.IsAuto
		}
		card := f.cards[i]
		return &card, nil
	}
	return nil, store.ErrFlashcardNotFound
}

func (f *fakeFlashcardStore) Delete(_ context.Context, _ uuid.UUID) error {
	return store.ErrFlashcardNotFound
}

func (f *fakeFlashcardStore) WithTx(_ *sql.Tx) store.FlashcardStore { return f }

type recordKey struct {
	quizID      uuid.UUID
	flashcardID uuid.UUID
}

// fakeQuizRecordStore keeps records in a map keyed by (quiz id, flashcard id),
// mirroring the schema's uniqueness constraint. Safe for concurrent use
// because submissions write records in parallel.
type fakeQuizRecordStore struct {
	mu        sync.Mutex
	records   map[recordKey]domain.QuizRecord
	order     []recordKey
	insertErr error
	updateErr error
}

var _ store.QuizRecordStore = (*fakeQuizRecordStore)(nil)

func newFakeQuizRecordStore() *fakeQuizRecordStore {
	return &fakeQuizRecordStore{records: make(map[recordKey]domain.QuizRecord)}
}

func (f *fakeQuizRecordStore) Insert(_ context.Context, record *domain.QuizRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	if err := record.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey{quizID: record.QuizID, flashcardID: record.FlashcardID}
	if _, ok := f.records[key]; ok {
		return store.ErrDuplicate
	}
	f.records[key] = *record
	f.order = append(f.order, key)
	return nil
}

func (f *fakeQuizRecordStore) Update(
	_ context.Context,
	quizID, flashcardID uuid.UUID,
	update store.QuizRecordUpdate,
) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey{quizID: quizID, flashcardID: flashcardID}
	record, ok := f.records[key]
	if !ok {
		return store.ErrQuizRecordNotFound
	}
	record.DifficultyLevel = update.DifficultyLevel
	record.Category = update.Category
	record.StartTime = update.StartTime
	record.EndTime = update.EndTime
	record.Completed = update.Completed
	f.records[key] = record
	return nil
}

func (f *fakeQuizRecordStore) ListByQuiz(_ context.Context, quizID uuid.UUID) ([]domain.QuizRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.QuizRecord{}
	for _, key := range f.order {
		if key.quizID == quizID {
			out = append(out, f.records[key])
		}
	}
	return out, nil
}

func (f *fakeQuizRecordStore) all() []domain.QuizRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.QuizRecord, 0, len(f.order))
	for _, key := range f.order {
		out = append(out, f.records[key])
	}
	return out
}

func (f *fakeQuizRecordStore) WithTx(_ *sql.Tx) store.QuizRecordStore { return f }

// fakeMarathonStore keeps marathon cells in insertion order, which matches
// the day ordering the scheduler generates them in.
type fakeMarathonStore struct {
	mu          sync.Mutex
	cells       []domain.Marathon
	insertErr   error
	failOnCall  int // 1-indexed Insert call to fail with insertErr; 0 fails every call
	insertCalls int
}

var _ store.MarathonStore = (*fakeMarathonStore)(nil)

func (f *fakeMarathonStore) Insert(_ context.Context, marathon *domain.Marathon) error {
	if f.insertErr != nil {
		f.insertCalls++
		if f.failOnCall == 0 || f.insertCalls == f.failOnCall {
			return f.insertErr
		}
	}
	if err := marathon.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cells {
		if c.MarathonID == marathon.MarathonID && c.QuizID == marathon.QuizID {
			return store.ErrDuplicate
		}
	}
	f.cells = append(f.cells, *marathon)
	return nil
}

func (f *fakeMarathonStore) GetByIDs(
	_ context.Context,
	marathonID, quizID uuid.UUID,
) (*domain.Marathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.cells {
		if c.MarathonID == marathonID && c.QuizID == quizID {
			cell := c
			return &cell, nil
		}
	}
	return nil, store.ErrMarathonNotFound
}

func (f *fakeMarathonStore) SetCompleted(
	_ context.Context,
	marathonID, quizID uuid.UUID,
	completed bool,
) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.cells {
		if c.MarathonID == marathonID && c.QuizID == quizID {
			f.cells[i].Completed = completed
			return nil
		}
	}
	return store.ErrMarathonNotFound
}

func (f *fakeMarathonStore) ListByUser(_ context.Context, username string) ([]domain.Marathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Marathon{}
	for _, c := range f.cells {
		if c.Username == username {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeMarathonStore) ListByMarathon(_ context.Context, marathonID uuid.UUID) ([]domain.Marathon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Marathon{}
	for _, c := range f.cells {
		if c.MarathonID == marathonID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeMarathonStore) WithTx(_ *sql.Tx) store.MarathonStore { return f }
