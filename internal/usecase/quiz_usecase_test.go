package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/wordsnap/wordsnap/internal/entity"
)

func newTestQuizUsecase(words *fakeWordRepo, results *fakeQuizResultRepo) *quizUsecase {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	seq := 0
	return &quizUsecase{
		words:    words,
		results:  results,
		logger:   logger,
		sessions: make(map[string]*activeSession),
		clock:    func() time.Time { return time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC) },
		newID:    func() string { seq++; return fmt.Sprintf("id-%03d", seq) },
		newRNG:   func() *rand.Rand { return rand.New(rand.NewSource(21)) },
	}
}

func seedWords(t *testing.T, repo *fakeWordRepo, userID string, n int) []*entity.Word {
	t.Helper()
	ctx := context.Background()
	words := make([]*entity.Word, 0, n)
	for i := 0; i < n; i++ {
		w := &entity.Word{
			ID:      fmt.Sprintf("word-%02d", i),
			UserID:  userID,
			English: fmt.Sprintf("english-%d", i),
			Meaning: fmt.Sprintf("뜻-%d", i),
		}
		if _, err := repo.Create(ctx, w); err != nil {
			t.Fatalf("seed word: %v", err)
		}
		words = append(words, w)
	}
	return words
}

func TestStartSessionInsufficientPool(t *testing.T) {
	words := newFakeWordRepo()
	uc := newTestQuizUsecase(words, newFakeQuizResultRepo())
	ctx := context.Background()

	if _, err := uc.StartSession(ctx, "user-1", entity.QuizTypeFillBlank, 5); !errors.Is(err, entity.ErrInsufficientPool) {
		t.Fatalf("empty pool: err = %v", err)
	}

	seedWords(t, words, "user-1", 3)
	if _, err := uc.StartSession(ctx, "user-1", entity.QuizTypeMultipleChoice, 5); !errors.Is(err, entity.ErrInsufficientPool) {
		t.Fatalf("small pool for multiple choice: err = %v", err)
	}
}

func TestFillBlankFlowPersistsEverything(t *testing.T) {
	words := newFakeWordRepo()
	results := newFakeQuizResultRepo()
	uc := newTestQuizUsecase(words, results)
	ctx := context.Background()
	seedWords(t, words, "user-1", 6)

	view, err := uc.StartSession(ctx, "user-1", entity.QuizTypeFillBlank, 4)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if view.Total != 4 {
		t.Fatalf("total = %d, want 4", view.Total)
	}

	// Answer first correctly, the rest wrong.
	for i := 0; i < view.Total; i++ {
		q, err := uc.Question("user-1", view.ID)
		if err != nil {
			t.Fatalf("Question: %v", err)
		}
		if q.Complete {
			t.Fatalf("question %d: unexpectedly complete", i)
		}
		answer := "wrong answer"
		if i == 0 {
			answer = q.Word.Meaning
		}
		outcome, err := uc.SubmitAnswer("user-1", view.ID, answer)
		if err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if !outcome.Accepted {
			t.Fatalf("question %d: answer rejected", i)
		}
		if (i == 0) != outcome.Correct {
			t.Fatalf("question %d: correct = %v", i, outcome.Correct)
		}
		if _, err := uc.NextQuestion("user-1", view.ID); err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
	}

	done, err := uc.CompleteSession(ctx, "user-1", view.ID)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if done.Total != 4 || done.Correct != 1 || done.ScorePercentage != 25 {
		t.Fatalf("completion = %+v", done)
	}

	stored, err := results.GetResult(ctx, "user-1", done.ResultID)
	if err != nil {
		t.Fatalf("stored result: %v", err)
	}
	if stored.TotalQuestions != 4 || stored.CorrectAnswers != 1 || stored.QuizType != entity.QuizTypeFillBlank {
		t.Fatalf("stored = %+v", stored)
	}

	answers, err := results.ListAnswers(ctx, done.ResultID)
	if err != nil {
		t.Fatalf("stored answers: %v", err)
	}
	if len(answers) != 4 {
		t.Fatalf("answers = %d, want 4", len(answers))
	}

	// Every quizzed word got exactly one mastery update.
	for _, r := range done.Results {
		w, err := words.GetByID(ctx, "user-1", r.WordID)
		if err != nil {
			t.Fatalf("word %s: %v", r.WordID, err)
		}
		if w.TimesCorrect+w.TimesWrong != 1 {
			t.Fatalf("word %s attempts = %d, want 1", r.WordID, w.TimesCorrect+w.TimesWrong)
		}
		want := int32(0)
		if r.Correct {
			want = 100
		}
		if w.MasteryLevel != want {
			t.Fatalf("word %s mastery = %d, want %d", r.WordID, w.MasteryLevel, want)
		}
	}

	// The session is gone after completion.
	if _, err := uc.Question("user-1", view.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("session lookup after completion: err = %v", err)
	}
}

func TestCompleteSessionSwallowsPersistenceFailures(t *testing.T) {
	words := newFakeWordRepo()
	results := newFakeQuizResultRepo()
	results.failCreateResult = true
	uc := newTestQuizUsecase(words, results)
	ctx := context.Background()
	seedWords(t, words, "user-1", 4)

	view, err := uc.StartSession(ctx, "user-1", entity.QuizTypeFillBlank, 2)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	for i := 0; i < 2; i++ {
		if _, err := uc.SubmitAnswer("user-1", view.ID, "whatever"); err != nil {
			t.Fatalf("SubmitAnswer: %v", err)
		}
		if _, err := uc.NextQuestion("user-1", view.ID); err != nil {
			t.Fatalf("NextQuestion: %v", err)
		}
	}

	// The user still gets their tally even though nothing could be stored.
	done, err := uc.CompleteSession(ctx, "user-1", view.ID)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	if done.Total != 2 || done.ResultID != "" {
		t.Fatalf("completion = %+v", done)
	}
}

func TestCompleteSessionRequiresCompletion(t *testing.T) {
	words := newFakeWordRepo()
	uc := newTestQuizUsecase(words, newFakeQuizResultRepo())
	ctx := context.Background()
	seedWords(t, words, "user-1", 4)

	view, err := uc.StartSession(ctx, "user-1", entity.QuizTypeFillBlank, 3)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := uc.CompleteSession(ctx, "user-1", view.ID); !errors.Is(err, entity.ErrSessionNotComplete) {
		t.Fatalf("early completion: err = %v", err)
	}
	// The session survives a failed completion attempt.
	if _, err := uc.Question("user-1", view.ID); err != nil {
		t.Fatalf("session lost after failed completion: %v", err)
	}
}

func TestMatchingFlow(t *testing.T) {
	words := newFakeWordRepo()
	results := newFakeQuizResultRepo()
	uc := newTestQuizUsecase(words, results)
	ctx := context.Background()
	seedWords(t, words, "user-1", 8)

	view, err := uc.StartSession(ctx, "user-1", entity.QuizTypeMatching, 10)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if view.Total != 6 {
		t.Fatalf("matching total = %d, want capped 6", view.Total)
	}

	board, err := uc.Board("user-1", view.ID)
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if len(board.Terms) != 6 || len(board.Meanings) != 6 {
		t.Fatalf("board columns = %d/%d", len(board.Terms), len(board.Meanings))
	}

	// One deliberate mismatch, then match everything.
	first, second := board.Terms[0].ID, board.Terms[1].ID
	out, err := uc.SubmitMatch("user-1", view.ID, first, second)
	if err != nil {
		t.Fatalf("SubmitMatch: %v", err)
	}
	if !out.Attempted || out.Matched {
		t.Fatalf("mismatch outcome = %+v", out)
	}
	for _, term := range board.Terms {
		out, err = uc.SubmitMatch("user-1", view.ID, term.ID, term.ID)
		if err != nil {
			t.Fatalf("SubmitMatch: %v", err)
		}
		if !out.Matched {
			t.Fatalf("match outcome = %+v", out)
		}
	}
	if !out.Completed {
		t.Fatal("board not completed after matching all")
	}

	done, err := uc.CompleteSession(ctx, "user-1", view.ID)
	if err != nil {
		t.Fatalf("CompleteSession: %v", err)
	}
	// 7 attempts for 6 items: one excess attempt costs one point.
	if done.Total != 6 || done.Correct != 5 {
		t.Fatalf("completion = %+v, want 5/6", done)
	}
}

func TestSessionOwnership(t *testing.T) {
	words := newFakeWordRepo()
	uc := newTestQuizUsecase(words, newFakeQuizResultRepo())
	ctx := context.Background()
	seedWords(t, words, "user-1", 4)

	view, err := uc.StartSession(ctx, "user-1", entity.QuizTypeFillBlank, 2)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if _, err := uc.Question("user-2", view.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("foreign session access: err = %v", err)
	}
	if err := uc.AbandonSession("user-1", view.ID); err != nil {
		t.Fatalf("AbandonSession: %v", err)
	}
	if _, err := uc.Question("user-1", view.ID); !errors.Is(err, entity.ErrSessionNotFound) {
		t.Fatalf("abandoned session access: err = %v", err)
	}
}

func TestStatsByTypeAndTrend(t *testing.T) {
	results := newFakeQuizResultRepo()
	uc := newTestQuizUsecase(newFakeWordRepo(), results)
	ctx := context.Background()

	base := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	scores := []int32{60, 80, 100}
	for i, score := range scores {
		_, err := results.CreateResult(ctx, &entity.QuizResult{
			ID:              fmt.Sprintf("r-%d", i),
			UserID:          "user-1",
			QuizType:        entity.QuizTypeMultipleChoice,
			ScorePercentage: score,
			CompletedAt:     base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("seed result: %v", err)
		}
	}

	stats, err := uc.StatsByType(ctx, "user-1", entity.QuizTypeMultipleChoice)
	if err != nil {
		t.Fatalf("StatsByType: %v", err)
	}
	if stats.TotalQuizzes != 3 || stats.AverageScore != 80 || stats.BestScore != 100 {
		t.Fatalf("stats = %+v", stats)
	}

	empty, err := uc.StatsByType(ctx, "user-1", entity.QuizTypeMatching)
	if err != nil {
		t.Fatalf("StatsByType empty: %v", err)
	}
	if empty.TotalQuizzes != 0 {
		t.Fatalf("empty stats = %+v", empty)
	}

	trend, err := uc.RecentTrend(ctx, "user-1", 2)
	if err != nil {
		t.Fatalf("RecentTrend: %v", err)
	}
	if len(trend) != 2 || trend[0].ScorePercentage != 100 {
		t.Fatalf("trend = %+v", trend)
	}
}
