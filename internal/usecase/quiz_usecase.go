package usecase

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/quiz"
	"github.com/wordsnap/wordsnap/internal/repository"
)

// sessionTTL bounds how long an abandoned session lingers in the registry.
const sessionTTL = 2 * time.Hour

// QuestionView is the transport-friendly shape of the current question.
type QuestionView struct {
	Index    int
	Total    int
	Word     entity.Word
	Options  []entity.Word
	Complete bool
}

// BoardView exposes a matching board's columns and progress.
type BoardView struct {
	Terms    []entity.Word
	Meanings []entity.Word
	Matched  int
	Total    int
	Attempts int
}

// SessionView describes a freshly created session.
type SessionView struct {
	ID       string
	QuizType entity.QuizType
	Total    int
}

// AnswerOutcome reports the judgment of one submitted answer.
type AnswerOutcome struct {
	Correct  bool
	Accepted bool
	// Meaning echoes the target meaning so the client can show the
	// correct answer after a miss.
	Meaning string
}

// MatchOutcome reports one pairing attempt on a matching board.
type MatchOutcome struct {
	Attempted bool
	Matched   bool
	Completed bool
	Board     BoardView
}

// CompletionView is the final tally of a finished session.
type CompletionView struct {
	ResultID        string
	Total           int
	Correct         int
	ScorePercentage int32
	Results         []quiz.Result
}

// QuizUsecase runs quiz sessions over a user's word pool and persists the
// outcome when a session completes.
type QuizUsecase interface {
	StartSession(ctx context.Context, userID string, typ entity.QuizType, requested int) (*SessionView, error)
	Question(userID, sessionID string) (*QuestionView, error)
	SubmitAnswer(userID, sessionID, answer string) (*AnswerOutcome, error)
	NextQuestion(userID, sessionID string) (*QuestionView, error)
	Board(userID, sessionID string) (*BoardView, error)
	SubmitMatch(userID, sessionID, termID, meaningID string) (*MatchOutcome, error)
	CompleteSession(ctx context.Context, userID, sessionID string) (*CompletionView, error)
	AbandonSession(userID, sessionID string) error

	ListResults(ctx context.Context, userID string, limit int32) ([]*entity.QuizResult, error)
	ResultAnswers(ctx context.Context, userID, resultID string) ([]*entity.WordAnswer, error)
	StatsByType(ctx context.Context, userID string, typ entity.QuizType) (*entity.QuizTypeStats, error)
	RecentTrend(ctx context.Context, userID string, limit int32) ([]entity.TrendPoint, error)
}

// NewQuizUsecase wires the repositories with default behaviour.
func NewQuizUsecase(words repository.WordRepository, results repository.QuizResultRepository, logger *logrus.Logger) QuizUsecase {
	return &quizUsecase{
		words:    words,
		results:  results,
		logger:   logger,
		sessions: make(map[string]*activeSession),
		clock:    time.Now,
		newID:    uuid.NewString,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// activeSession pairs an engine session with its owner. Each session is used
// by a single logical flow; the registry lock only protects the map itself
// plus the handoff of the session pointer.
type activeSession struct {
	userID    string
	quizType  entity.QuizType
	session   *quiz.Session
	board     *quiz.Board
	createdAt time.Time
}

type quizUsecase struct {
	words   repository.WordRepository
	results repository.QuizResultRepository
	logger  *logrus.Logger

	mu       sync.Mutex
	sessions map[string]*activeSession

	clock  func() time.Time
	newID  func() string
	newRNG func() *rand.Rand
}

func (u *quizUsecase) StartSession(ctx context.Context, userID string, typ entity.QuizType, requested int) (*SessionView, error) {
	pool, _, err := u.words.List(ctx, &entity.WordFilter{UserID: userID})
	if err != nil {
		return nil, err
	}

	rng := u.newRNG()
	session, err := quiz.NewSession(lo.Map(pool, func(w *entity.Word, _ int) entity.Word {
		return *w
	}), requested, typ, rng)
	if err != nil {
		return nil, err
	}

	active := &activeSession{
		userID:    userID,
		quizType:  typ,
		session:   session,
		createdAt: u.clock(),
	}
	if typ == entity.QuizTypeMatching {
		active.board = quiz.NewBoard(session, rng)
	}

	id := u.newID()
	u.mu.Lock()
	u.pruneLocked()
	u.sessions[id] = active
	u.mu.Unlock()

	return &SessionView{ID: id, QuizType: typ, Total: session.Len()}, nil
}

func (u *quizUsecase) Question(userID, sessionID string) (*QuestionView, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	return questionView(active.session), nil
}

func (u *quizUsecase) SubmitAnswer(userID, sessionID, answer string) (*AnswerOutcome, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	q := active.session.Current()
	result, accepted := active.session.Submit(answer)
	outcome := &AnswerOutcome{Correct: result.Correct, Accepted: accepted}
	if q != nil {
		outcome.Meaning = q.Word.Meaning
	}
	return outcome, nil
}

func (u *quizUsecase) NextQuestion(userID, sessionID string) (*QuestionView, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	active.session.Advance()
	return questionView(active.session), nil
}

func (u *quizUsecase) Board(userID, sessionID string) (*BoardView, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if active.board == nil {
		return nil, entity.ErrInvalidQuizType
	}
	view := boardView(active.board)
	return &view, nil
}

func (u *quizUsecase) SubmitMatch(userID, sessionID, termID, meaningID string) (*MatchOutcome, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}
	if active.board == nil {
		return nil, entity.ErrInvalidQuizType
	}

	active.board.SelectTerm(termID)
	result := active.board.SelectMeaning(meaningID)
	return &MatchOutcome{
		Attempted: result.Attempted,
		Matched:   result.Matched,
		Completed: result.Completed,
		Board:     boardView(active.board),
	}, nil
}

// CompleteSession finalizes the tally and persists the quiz result, answer
// records and per-word mastery updates. The tally is the contract: once the
// session finalizes cleanly the client gets its score, and persistence
// failures are logged rather than surfaced, so a transient backend error
// never interrupts the learning session.
func (u *quizUsecase) CompleteSession(ctx context.Context, userID, sessionID string) (*CompletionView, error) {
	active, err := u.lookup(userID, sessionID)
	if err != nil {
		return nil, err
	}

	var summary quiz.Summary
	if active.board != nil {
		summary, err = active.board.Summary()
	} else {
		summary, err = active.session.Finalize()
	}
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()

	score := int32(0)
	if summary.Total > 0 {
		score = int32(math.Round(100 * float64(summary.Correct) / float64(summary.Total)))
	}

	view := &CompletionView{
		Total:           summary.Total,
		Correct:         summary.Correct,
		ScorePercentage: score,
		Results:         summary.Results,
	}

	now := u.clock()
	result, err := u.results.CreateResult(ctx, &entity.QuizResult{
		ID:              u.newID(),
		UserID:          userID,
		QuizType:        active.quizType,
		TotalQuestions:  int32(summary.Total),
		CorrectAnswers:  int32(summary.Correct),
		ScorePercentage: score,
		Difficulty:      entity.DifficultyMixed,
		CompletedAt:     now,
	})
	if err != nil {
		u.logger.WithError(err).Warn("store quiz result failed")
		return view, nil
	}
	view.ResultID = result.ID

	answers := lo.Map(summary.Results, func(r quiz.Result, _ int) *entity.WordAnswer {
		return &entity.WordAnswer{
			ID:           u.newID(),
			QuizResultID: result.ID,
			WordID:       r.WordID,
			UserAnswer:   r.Answer,
			IsCorrect:    r.Correct,
			AnsweredAt:   now,
		}
	})
	if err := u.results.CreateAnswers(ctx, answers); err != nil {
		u.logger.WithError(err).Warn("store quiz answers failed")
	}

	// Each mastery write carries the fully recomputed state, so ordering
	// between them does not matter and individual failures are skipped.
	for _, r := range summary.Results {
		if err := u.recordMastery(ctx, userID, r); err != nil {
			u.logger.WithError(err).WithField("word_id", r.WordID).Warn("mastery update failed")
		}
	}

	return view, nil
}

func (u *quizUsecase) recordMastery(ctx context.Context, userID string, r quiz.Result) error {
	word, err := u.words.GetByID(ctx, userID, r.WordID)
	if err != nil {
		return err
	}
	quiz.Apply(word, r.Correct, u.clock())
	_, err = u.words.Update(ctx, word)
	return err
}

func (u *quizUsecase) AbandonSession(userID, sessionID string) error {
	if _, err := u.lookup(userID, sessionID); err != nil {
		return err
	}
	u.mu.Lock()
	delete(u.sessions, sessionID)
	u.mu.Unlock()
	return nil
}

func (u *quizUsecase) ListResults(ctx context.Context, userID string, limit int32) ([]*entity.QuizResult, error) {
	if limit <= 0 {
		limit = 20
	}
	return u.results.ListResults(ctx, &repository.ListQuizResultQuery{UserID: userID, Limit: limit})
}

func (u *quizUsecase) ResultAnswers(ctx context.Context, userID, resultID string) ([]*entity.WordAnswer, error) {
	if _, err := u.results.GetResult(ctx, userID, resultID); err != nil {
		return nil, err
	}
	return u.results.ListAnswers(ctx, resultID)
}

func (u *quizUsecase) StatsByType(ctx context.Context, userID string, typ entity.QuizType) (*entity.QuizTypeStats, error) {
	results, err := u.results.ListResults(ctx, &repository.ListQuizResultQuery{UserID: userID, QuizType: typ})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &entity.QuizTypeStats{}, nil
	}

	sum := lo.SumBy(results, func(r *entity.QuizResult) int32 { return r.ScorePercentage })
	best := lo.MaxBy(results, func(a, b *entity.QuizResult) bool {
		return a.ScorePercentage > b.ScorePercentage
	})
	return &entity.QuizTypeStats{
		TotalQuizzes: int32(len(results)),
		AverageScore: int32(math.Round(float64(sum) / float64(len(results)))),
		BestScore:    best.ScorePercentage,
	}, nil
}

func (u *quizUsecase) RecentTrend(ctx context.Context, userID string, limit int32) ([]entity.TrendPoint, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := u.results.ListResults(ctx, &repository.ListQuizResultQuery{UserID: userID, Limit: limit})
	if err != nil {
		return nil, err
	}
	return lo.Map(results, func(r *entity.QuizResult, _ int) entity.TrendPoint {
		return entity.TrendPoint{
			CompletedAt:     r.CompletedAt,
			ScorePercentage: r.ScorePercentage,
			QuizType:        r.QuizType,
		}
	}), nil
}

func (u *quizUsecase) lookup(userID, sessionID string) (*activeSession, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	active, ok := u.sessions[sessionID]
	if !ok || active.userID != userID {
		return nil, entity.ErrSessionNotFound
	}
	return active, nil
}

// pruneLocked drops sessions past their TTL. Callers hold u.mu.
func (u *quizUsecase) pruneLocked() {
	cutoff := u.clock().Add(-sessionTTL)
	for id, active := range u.sessions {
		if active.createdAt.Before(cutoff) {
			delete(u.sessions, id)
		}
	}
}

func questionView(s *quiz.Session) *QuestionView {
	q := s.Current()
	if q == nil {
		return &QuestionView{Index: s.Index(), Total: s.Len(), Complete: true}
	}
	return &QuestionView{
		Index:   s.Index(),
		Total:   s.Len(),
		Word:    q.Word,
		Options: q.Options,
	}
}

func boardView(b *quiz.Board) BoardView {
	return BoardView{
		Terms:    b.Terms(),
		Meanings: b.Meanings(),
		Matched:  b.MatchedCount(),
		Total:    len(b.Terms()),
		Attempts: b.Attempts(),
	}
}
