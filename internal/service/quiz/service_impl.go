package quiz

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/flashdeck/flashdeck-api/internal/domain"
	"github.com/flashdeck/flashdeck-api/internal/domain/sampling"
	"github.com/flashdeck/flashdeck-api/internal/platform/logger"
	"github.com/flashdeck/flashdeck-api/internal/store"
)

// Verify interface compliance at compile time
var _ QuizService = (*quizServiceImpl)(nil)

// defaultQuizPerDay is used when a marathon request leaves the per-day quiz
// count unspecified.
const defaultQuizPerDay = 1

// quizServiceImpl implements the QuizService interface.
type quizServiceImpl struct {
	db          *sql.DB
	flashcards  store.FlashcardStore
	quizRecords store.QuizRecordStore
	marathons   store.MarathonStore
	sampler     *sampling.Sampler
	logger      *slog.Logger
	timeFunc    func() time.Time
}

// QuizServiceOption configures optional behavior of the service.
type QuizServiceOption func(*quizServiceImpl)

// WithTimeFunc overrides the time source, primarily for testing.
func WithTimeFunc(fn func() time.Time) QuizServiceOption {
	return func(s *quizServiceImpl) {
		s.timeFunc = fn
	}
}

// WithSampler overrides the sampler, letting tests inject a seeded source.
func WithSampler(sampler *sampling.Sampler) QuizServiceOption {
	return func(s *quizServiceImpl) {
		s.sampler = sampler
	}
}

// NewQuizService creates a new QuizService implementation.
// The db handle is used to scope each marathon cell's writes to a
// transaction; it may be nil in tests that never generate marathons.
func NewQuizService(
	db *sql.DB,
	flashcards store.FlashcardStore,
	quizRecords store.QuizRecordStore,
	marathons store.MarathonStore,
	logger *slog.Logger,
	opts ...QuizServiceOption,
) QuizService {
	if flashcards == nil {
		panic("flashcards store cannot be nil")
	}
	if quizRecords == nil {
		panic("quizRecords store cannot be nil")
	}
	if marathons == nil {
		panic("marathons store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &quizServiceImpl{
		db:          db,
		flashcards:  flashcards,
		quizRecords: quizRecords,
		marathons:   marathons,
		sampler:     sampling.New(),
		logger:      logger.With(slog.String("component", "quiz_service")),
		timeFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GeneratePracticeQuizzes implements QuizService.GeneratePracticeQuizzes.
func (s *quizServiceImpl) GeneratePracticeQuizzes(
	ctx context.Context,
	username string,
	categories []string,
	quizSize int,
) ([]domain.Quiz, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if quizSize == 0 {
		quizSize = domain.MinQuizSize
	}
	if quizSize < domain.MinQuizSize {
		log.Warn("practice quiz size below minimum",
			slog.String("username", username),
			slog.Int("quiz_size", quizSize))
		return nil, ErrQuizTooSmall
	}

	var quizzes []domain.Quiz
	for i, category := range categories {
		pool, err := s.flashcards.List(ctx, username, store.FlashcardFilter{Category: category})
		if err != nil {
			log.Error("failed to load category pool",
				slog.String("error", err.Error()),
				slog.String("username", username),
				slog.String("category", category))
			return nil, fmt.Errorf("failed to load pool for category %q: %w", category, err)
		}
		if len(pool) < quizSize {
			log.Warn("pool too small for practice generation",
				slog.String("username", username),
				slog.String("category", category),
				slog.Int("pool", len(pool)),
				slog.Int("quiz_size", quizSize))
			return nil, &InsufficientPoolError{Category: category, Have: len(pool), Need: quizSize}
		}

		// One bitmap per category, shared across that category's quizzes, so
		// later quizzes never repeat a flashcard drawn by an earlier one in
		// the same call.
		bitmap := sampling.NewBitmap(len(pool))
		numQuizzes := len(pool) / quizSize

		for q := 0; q < numQuizzes; q++ {
			draw, err := s.sampler.Draw(bitmap, quizSize)
			if err != nil {
				return nil, fmt.Errorf("sampling category %q: %w", category, err)
			}

			cards := make([]domain.Flashcard, 0, quizSize)
			levels := make([]domain.DifficultyLevel, 0, quizSize)
			for _, idx := range draw.Indices {
				cards = append(cards, pool[idx])
				levels = append(levels, pool[idx].DifficultyLevel)
			}

			quizzes = append(quizzes, domain.Quiz{
				ID:               fmt.Sprintf("Quiz_%d", i+1),
				Title:            fmt.Sprintf("Quiz %d", i+1),
				Categories:       []string{category},
				Flashcards:       cards,
				DifficultyLevels: domain.SortDifficulties(levels),
			})
		}
	}

	log.Info("practice quizzes generated",
		slog.String("username", username),
		slog.Int("categories", len(categories)),
		slog.Int("quizzes", len(quizzes)))
	return quizzes, nil
}

// GenerateMarathon implements QuizService.GenerateMarathon.
func (s *quizServiceImpl) GenerateMarathon(
	ctx context.Context,
	req MarathonRequest,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if req.TotalDays < 1 {
		return uuid.Nil, ErrInvalidTotalDays
	}
	if req.NumQuestions < 0 || req.NumQuizPerDay < 0 {
		return uuid.Nil, ErrInvalidQuizCount
	}
	if req.NumQuestions > 0 && req.NumQuestions < domain.MinQuizSize {
		return uuid.Nil, ErrQuizTooSmall
	}
	quizPerDay := req.NumQuizPerDay
	if quizPerDay == 0 {
		quizPerDay = defaultQuizPerDay
	}

	pool, err := s.flashcards.List(ctx, req.Username, store.FlashcardFilter{Category: req.Category})
	if err != nil {
		log.Error("failed to load marathon pool",
			slog.String("error", err.Error()),
			slog.String("username", req.Username),
			slog.String("category", req.Category))
		return uuid.Nil, fmt.Errorf("failed to load pool for category %q: %w", req.Category, err)
	}

	numQuestions := req.NumQuestions
	if numQuestions == 0 {
		numQuestions = len(pool) / (req.TotalDays * quizPerDay)
		if numQuestions < domain.MinQuizSize {
			numQuestions = domain.MinQuizSize
		}
	}
	if len(pool) < numQuestions || len(pool) < domain.MinQuizSize {
		need := numQuestions
		if need < domain.MinQuizSize {
			need = domain.MinQuizSize
		}
		log.Warn("pool too small for marathon generation",
			slog.String("username", req.Username),
			slog.String("category", req.Category),
			slog.Int("pool", len(pool)),
			slog.Int("num_questions", numQuestions))
		return uuid.Nil, &InsufficientPoolError{Category: req.Category, Have: len(pool), Need: need}
	}

	marathonID := uuid.New()
	startDate := s.timeFunc().UTC()

	// One bitmap spans the whole schedule, so the cycle-reset guarantee
	// covers every flashcard marathon-wide rather than per day.
	bitmap := sampling.NewBitmap(len(pool))

	cellsWritten := 0
	recordsWritten := 0
	for day := 0; day < req.TotalDays; day++ {
		for slot := 0; slot < quizPerDay; slot++ {
			quizID := uuid.New()

			draw, err := s.sampler.Draw(bitmap, numQuestions)
			if err != nil {
				return uuid.Nil, fmt.Errorf("sampling marathon day %d: %w", day, err)
			}

			cell := &domain.Marathon{
				MarathonID: marathonID,
				QuizID:     quizID,
				Username:   req.Username,
				Category:   req.Category,
				Day:        day,
				TotalDays:  req.TotalDays,
				StartDate:  startDate,
				Completed:  false,
			}

			err = s.runCellTx(ctx, func(ctx context.Context, records store.QuizRecordStore, marathons store.MarathonStore) error {
				for _, idx := range draw.Indices {
					card := pool[idx]
					record := &domain.QuizRecord{
						QuizID:          quizID,
						FlashcardID:     card.ID,
						Username:        req.Username,
						DifficultyLevel: card.DifficultyLevel,
						Category:        req.Category,
					}
					if err := records.Insert(ctx, record); err != nil {
						return fmt.Errorf("inserting quiz record: %w", err)
					}
				}
				return marathons.Insert(ctx, cell)
			})
			if err != nil {
				log.Error("marathon generation aborted mid-schedule",
					slog.String("error", err.Error()),
					slog.String("marathon_id", marathonID.String()),
					slog.Int("day", day),
					slog.Int("slot", slot),
					slog.Int("cells_written", cellsWritten))
				return uuid.Nil, &PartialWriteError{
					MarathonID:     marathonID,
					CellsWritten:   cellsWritten,
					RecordsWritten: recordsWritten,
					Err:            err,
				}
			}
			cellsWritten++
			recordsWritten += numQuestions
		}
	}

	log.Info("marathon generated",
		slog.String("marathon_id", marathonID.String()),
		slog.String("username", req.Username),
		slog.String("category", req.Category),
		slog.Int("total_days", req.TotalDays),
		slog.Int("num_questions", numQuestions),
		slog.Int("cells", cellsWritten))
	return marathonID, nil
}

// runCellTx scopes one marathon cell's writes to a database transaction.
// Without a db handle the stores are used directly; in-memory test stores
// take this path.
func (s *quizServiceImpl) runCellTx(
	ctx context.Context,
	fn func(ctx context.Context, records store.QuizRecordStore, marathons store.MarathonStore) error,
) error {
	if s.db == nil {
		return fn(ctx, s.quizRecords, s.marathons)
	}
	return store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, s.quizRecords.WithTx(tx), s.marathons.WithTx(tx))
	})
}

// SubmitQuiz implements QuizService.SubmitQuiz.
func (s *quizServiceImpl) SubmitQuiz(
	ctx context.Context,
	username string,
	sub Submission,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !sub.Mode.Valid() {
		return nil, ErrInvalidMode
	}
	if len(sub.Flashcards) == 0 {
		return nil, ErrEmptySubmission
	}
	for _, card := range sub.Flashcards {
		if !card.DifficultyLevel.Valid() {
			return nil, domain.ErrInvalidDifficulty
		}
	}

	if sub.Mode == ModeMarathon {
		return s.submitMarathon(ctx, log, username, sub)
	}
	return s.submitPractice(ctx, log, username, sub)
}

// submitMarathon reconciles a marathon-mode submission: the referenced cell is
// marked completed and every submitted flashcard's QuizRecord row is rewritten
// with the observed difficulty, category, and timestamps; the difficulty is
// also written back onto the flashcard row itself. Updates are idempotent;
// re-submitting overwrites with the same values.
func (s *quizServiceImpl) submitMarathon(
	ctx context.Context,
	log *slog.Logger,
	username string,
	sub Submission,
) (*SubmitResult, error) {
	_, err := s.marathons.GetByIDs(ctx, sub.MarathonID, sub.QuizID)
	if err != nil {
		if errors.Is(err, store.ErrMarathonNotFound) {
			// Unknown cell: the submission is discarded, not failed. The
			// caller gets an acknowledgement with a warning so the condition
			// is recoverable rather than silently swallowed.
			log.Warn("marathon submission references unknown cell, discarding",
				slog.String("username", username),
				slog.String("marathon_id", sub.MarathonID.String()),
				slog.String("quiz_id", sub.QuizID.String()))
			return &SubmitResult{
				Applied: false,
				QuizID:  sub.QuizID,
				Warning: "no marathon day matches the submitted quiz; submission discarded",
			}, nil
		}
		log.Error("failed to look up marathon cell",
			slog.String("error", err.Error()),
			slog.String("marathon_id", sub.MarathonID.String()),
			slog.String("quiz_id", sub.QuizID.String()))
		return nil, fmt.Errorf("failed to look up marathon cell: %w", err)
	}

	if err := s.marathons.SetCompleted(ctx, sub.MarathonID, sub.QuizID, true); err != nil {
		log.Error("failed to mark marathon cell completed",
			slog.String("error", err.Error()),
			slog.String("marathon_id", sub.MarathonID.String()),
			slog.String("quiz_id", sub.QuizID.String()))
		return nil, fmt.Errorf("failed to mark marathon cell completed: %w", err)
	}

	start, end := sub.StartTime, sub.EndTime
	g, gctx := errgroup.WithContext(ctx)
	for _, card := range sub.Flashcards {
		g.Go(func() error {
			update := store.QuizRecordUpdate{
				DifficultyLevel: card.DifficultyLevel,
				Category:        card.Category,
				StartTime:       &start,
				EndTime:         &end,
				Completed:       true,
			}
			if err := s.quizRecords.Update(gctx, sub.QuizID, card.FlashcardID, update); err != nil {
				return fmt.Errorf("updating record for flashcard %s: %w", card.FlashcardID, err)
			}
			return s.applyRating(gctx, card)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("marathon submission partially applied",
			slog.String("error", err.Error()),
			slog.String("marathon_id", sub.MarathonID.String()),
			slog.String("quiz_id", sub.QuizID.String()))
		return nil, err
	}

	log.Info("marathon submission applied",
		slog.String("username", username),
		slog.String("marathon_id", sub.MarathonID.String()),
		slog.String("quiz_id", sub.QuizID.String()),
		slog.Int("flashcards", len(sub.Flashcards)))
	return &SubmitResult{Applied: true, QuizID: sub.QuizID}, nil
}

// submitPractice records a standalone practice attempt: a fresh quiz id is
// allocated and one QuizRecord row inserted per submitted flashcard, and each
// flashcard's stored difficulty is updated to the submitted rating. Marathon
// rows are never touched.
func (s *quizServiceImpl) submitPractice(
	ctx context.Context,
	log *slog.Logger,
	username string,
	sub Submission,
) (*SubmitResult, error) {
	quizID := uuid.New()
	start, end := sub.StartTime, sub.EndTime

	g, gctx := errgroup.WithContext(ctx)
	for _, card := range sub.Flashcards {
		g.Go(func() error {
			record := &domain.QuizRecord{
				QuizID:          quizID,
				FlashcardID:     card.FlashcardID,
				Username:        username,
				DifficultyLevel: card.DifficultyLevel,
				Category:        card.Category,
				StartTime:       &start,
				EndTime:         &end,
				Completed:       true,
			}
			if err := s.quizRecords.Insert(gctx, record); err != nil {
				return fmt.Errorf("inserting record for flashcard %s: %w", card.FlashcardID, err)
			}
			return s.applyRating(gctx, card)
		})
	}
	if err := g.Wait(); err != nil {
		log.Error("practice submission partially applied",
			slog.String("error", err.Error()),
			slog.String("username", username),
			slog.String("quiz_id", quizID.String()))
		return nil, err
	}

	log.Info("practice submission recorded",
		slog.String("username", username),
		slog.String("quiz_id", quizID.String()),
		slog.Int("flashcards", len(sub.Flashcards)))
	return &SubmitResult{Applied: true, QuizID: quizID}, nil
}

// applyRating writes the submitted difficulty back onto the flashcard row,
// so a user's re-rating during an attempt carries over to the deck.
func (s *quizServiceImpl) applyRating(ctx context.Context, card SubmittedFlashcard) error {
	level := card.DifficultyLevel
	update := store.FlashcardUpdate{DifficultyLevel: &level}
	if _, err := s.flashcards.Update(ctx, card.FlashcardID, update); err != nil {
		return fmt.Errorf("updating flashcard %s difficulty: %w", card.FlashcardID, err)
	}
	return nil
}

// GetCurrentMarathonQuiz implements QuizService.GetCurrentMarathonQuiz.
func (s *quizServiceImpl) GetCurrentMarathonQuiz(
	ctx context.Context,
	marathonID uuid.UUID,
) ([]domain.QuizRecord, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	cells, err := s.marathons.ListByMarathon(ctx, marathonID)
	if err != nil {
		log.Error("failed to list marathon cells",
			slog.String("error", err.Error()),
			slog.String("marathon_id", marathonID.String()))
		return nil, fmt.Errorf("failed to list marathon cells: %w", err)
	}
	if len(cells) == 0 {
		log.Debug("marathon not found", slog.String("marathon_id", marathonID.String()))
		return nil, store.ErrMarathonNotFound
	}

	// Cells are ordered by day; the current quiz is the earliest incomplete
	// cell, or the final cell once everything is done.
	current := cells[len(cells)-1]
	for _, cell := range cells {
		if !cell.Completed {
			current = cell
			break
		}
	}

	records, err := s.quizRecords.ListByQuiz(ctx, current.QuizID)
	if err != nil {
		log.Error("failed to list quiz records",
			slog.String("error", err.Error()),
			slog.String("quiz_id", current.QuizID.String()))
		return nil, fmt.Errorf("failed to list quiz records: %w", err)
	}

	return records, nil
}

// ListMarathons implements QuizService.ListMarathons.
func (s *quizServiceImpl) ListMarathons(
	ctx context.Context,
	username string,
) ([]domain.Marathon, error) {
	return s.marathons.ListByUser(ctx, username)
}
