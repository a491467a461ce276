package quiz

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/wordsnap/wordsnap/internal/entity"
)

func testPool(n int) []entity.Word {
	pool := make([]entity.Word, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, entity.Word{
			ID:      fmt.Sprintf("w%02d", i),
			English: fmt.Sprintf("word-%d", i),
			Meaning: fmt.Sprintf("뜻-%d", i),
		})
	}
	return pool
}

func TestNewSessionQuestionCountBounds(t *testing.T) {
	cases := []struct {
		name      string
		poolSize  int
		requested int
		typ       entity.QuizType
		want      int
	}{
		{"requested below pool", 20, 10, entity.QuizTypeFillBlank, 10},
		{"requested above pool", 5, 10, entity.QuizTypeFillBlank, 5},
		{"requested equals pool", 8, 8, entity.QuizTypeMultipleChoice, 8},
		{"matching capped at six", 20, 10, entity.QuizTypeMatching, 6},
		{"matching below cap", 4, 10, entity.QuizTypeMatching, 4},
		{"zero requested", 5, 0, entity.QuizTypeFillBlank, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rng := rand.New(rand.NewSource(1))
			s, err := NewSession(testPool(tc.poolSize), tc.requested, tc.typ, rng)
			if err != nil {
				t.Fatalf("NewSession: %v", err)
			}
			if s.Len() != tc.want {
				t.Fatalf("question count = %d, want %d", s.Len(), tc.want)
			}
		})
	}
}

func TestNewSessionInsufficientPool(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	if _, err := NewSession(nil, 5, entity.QuizTypeFillBlank, rng); err != entity.ErrInsufficientPool {
		t.Fatalf("empty pool: err = %v, want ErrInsufficientPool", err)
	}
	// Multiple choice requires three distractors on top of the target.
	if _, err := NewSession(testPool(3), 5, entity.QuizTypeMultipleChoice, rng); err != entity.ErrInsufficientPool {
		t.Fatalf("pool of 3 for multiple choice: err = %v, want ErrInsufficientPool", err)
	}
	if _, err := NewSession(testPool(4), 5, entity.QuizTypeMultipleChoice, rng); err != nil {
		t.Fatalf("pool of 4 for multiple choice: %v", err)
	}
}

func TestMultipleChoiceOptionsDistinct(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	s, err := NewSession(testPool(12), 12, entity.QuizTypeMultipleChoice, rng)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	for i, q := range s.Questions() {
		if len(q.Options) != 4 {
			t.Fatalf("question %d: %d options, want 4", i, len(q.Options))
		}
		seen := map[string]bool{}
		targets := 0
		for _, opt := range q.Options {
			if seen[opt.ID] {
				t.Fatalf("question %d: duplicate option %s", i, opt.ID)
			}
			seen[opt.ID] = true
			if opt.ID == q.Word.ID {
				targets++
			}
		}
		if targets != 1 {
			t.Fatalf("question %d: target appears %d times", i, targets)
		}
	}
}

func TestShuffleFairness(t *testing.T) {
	// Every word should land in the first slot with roughly uniform
	// frequency. With 5000 trials over 5 words the expected count per word
	// is 1000; allow a generous band.
	const trials = 5000
	pool := testPool(5)
	rng := rand.New(rand.NewSource(7))
	firsts := map[string]int{}
	for i := 0; i < trials; i++ {
		s, err := NewSession(pool, 1, entity.QuizTypeFillBlank, rng)
		if err != nil {
			t.Fatalf("NewSession: %v", err)
		}
		firsts[s.Questions()[0].Word.ID]++
	}
	for _, w := range pool {
		got := firsts[w.ID]
		if got < 800 || got > 1200 {
			t.Fatalf("word %s first %d times, outside [800, 1200]", w.ID, got)
		}
	}
}

func TestSessionStateMachine(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	s, err := NewSession(testPool(5), 3, entity.QuizTypeFillBlank, rng)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	// Cannot advance before answering.
	if s.Advance() {
		t.Fatal("Advance succeeded on unanswered question")
	}

	q := s.Current()
	if q == nil {
		t.Fatal("Current returned nil on fresh session")
	}

	r, ok := s.Submit(q.Word.Meaning)
	if !ok || !r.Correct {
		t.Fatalf("Submit = (%+v, %v), want accepted correct", r, ok)
	}

	// A question cannot be re-answered once judged.
	r2, ok := s.Submit("something else")
	if ok {
		t.Fatal("second Submit was accepted")
	}
	if r2 != r {
		t.Fatalf("second Submit returned %+v, want recorded outcome %+v", r2, r)
	}
	if len(s.Results()) != 1 {
		t.Fatalf("results length = %d after one answer", len(s.Results()))
	}

	s.Advance()
	s.Submit("wrong")
	s.Advance()
	s.Submit("wrong")

	if _, err := s.Finalize(); err != entity.ErrSessionNotComplete {
		t.Fatalf("Finalize before final advance: err = %v", err)
	}

	if s.Advance() {
		t.Fatal("Advance past last question reported more remaining")
	}
	if !s.IsComplete() {
		t.Fatal("session not complete after last advance")
	}
	if s.Current() != nil {
		t.Fatal("Current non-nil on complete session")
	}
	if _, ok := s.Submit("late"); ok {
		t.Fatal("Submit accepted on complete session")
	}
}

func TestFinalizeTally(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	pool := testPool(5)
	s, err := NewSession(pool, 5, entity.QuizTypeFillBlank, rng)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}

	// Answer pattern T, T, F, T, F.
	pattern := []bool{true, true, false, true, false}
	for i, correct := range pattern {
		q := s.Current()
		answer := "definitely wrong"
		if correct {
			answer = q.Word.Meaning
		}
		if _, ok := s.Submit(answer); !ok {
			t.Fatalf("question %d: submit rejected", i)
		}
		s.Advance()
	}

	sum, err := s.Finalize()
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if sum.Total != 5 || sum.Correct != 3 {
		t.Fatalf("Finalize = {Total:%d Correct:%d}, want {Total:5 Correct:3}", sum.Total, sum.Correct)
	}
	if len(sum.Results) != 5 {
		t.Fatalf("results length = %d, want 5", len(sum.Results))
	}
	for i, r := range sum.Results {
		if r.Correct != pattern[i] {
			t.Fatalf("result %d correct = %v, want %v", i, r.Correct, pattern[i])
		}
	}
}

func TestMultipleChoiceSubmitByOptionID(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s, err := NewSession(testPool(6), 1, entity.QuizTypeMultipleChoice, rng)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	q := s.Current()

	var distractor string
	for _, opt := range q.Options {
		if opt.ID != q.Word.ID {
			distractor = opt.ID
			break
		}
	}
	if r, ok := s.Submit(distractor); !ok || r.Correct {
		t.Fatalf("distractor submit = (%+v, %v), want accepted incorrect", r, ok)
	}
}
