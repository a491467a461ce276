package quiz

import (
	"math/rand"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// MatchingCohortSize caps how many words a matching round presents at once.
const MatchingCohortSize = 6

const distractorCount = 3

// Question is one step of a quiz session. Options is populated for
// multiple-choice only and always holds exactly four distinct words,
// one of which is the target.
type Question struct {
	Word    entity.Word
	Options []entity.Word
}

// Result records the outcome of a single answered question, in question order.
type Result struct {
	WordID  string
	Answer  string
	Correct bool
}

// Summary is the completion tally handed to the persistence layer.
type Summary struct {
	Total   int
	Correct int
	Results []Result
}

// Session owns question sequencing and progress for one quiz run. It is
// exclusively owned by its creator and must not be shared across goroutines.
type Session struct {
	Type      entity.QuizType
	questions []Question
	index     int
	answered  bool
	results   []Result
}

// NewSession shuffles the pool and takes the first min(requested, pool size,
// type cap) words as the question sequence. The caller supplies the random
// source so shuffling stays deterministic under test.
func NewSession(pool []entity.Word, requested int, typ entity.QuizType, rng *rand.Rand) (*Session, error) {
	if len(pool) < 1 {
		return nil, entity.ErrInsufficientPool
	}
	if typ == entity.QuizTypeMultipleChoice && len(pool) < distractorCount+1 {
		return nil, entity.ErrInsufficientPool
	}

	order := shuffledIndexes(len(pool), rng)

	count := requested
	if count > len(pool) {
		count = len(pool)
	}
	if typ == entity.QuizTypeMatching && count > MatchingCohortSize {
		count = MatchingCohortSize
	}
	if count < 0 {
		count = 0
	}

	questions := make([]Question, 0, count)
	for _, idx := range order[:count] {
		q := Question{Word: pool[idx]}
		if typ == entity.QuizTypeMultipleChoice {
			options, err := buildOptions(pool, pool[idx], rng)
			if err != nil {
				return nil, err
			}
			q.Options = options
		}
		questions = append(questions, q)
	}

	return &Session{Type: typ, questions: questions}, nil
}

// buildOptions samples three distractors without replacement from the pool,
// excluding the target, and shuffles them together with the target.
func buildOptions(pool []entity.Word, target entity.Word, rng *rand.Rand) ([]entity.Word, error) {
	candidates := make([]entity.Word, 0, len(pool)-1)
	for _, w := range pool {
		if w.ID != target.ID {
			candidates = append(candidates, w)
		}
	}
	if len(candidates) < distractorCount {
		return nil, entity.ErrInsufficientOptions
	}

	options := make([]entity.Word, 0, distractorCount+1)
	options = append(options, target)
	for i, idx := range shuffledIndexes(len(candidates), rng) {
		if i == distractorCount {
			break
		}
		options = append(options, candidates[idx])
	}
	shuffleWords(options, rng)
	return options, nil
}

// shuffledIndexes returns a uniform random permutation of [0, n) built with
// an explicit Fisher-Yates pass.
func shuffledIndexes(n int, rng *rand.Rand) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}
	return idx
}

func shuffleWords(words []entity.Word, rng *rand.Rand) {
	for i := len(words) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		words[i], words[j] = words[j], words[i]
	}
}

// Questions exposes the full sequence, e.g. for building a matching board.
func (s *Session) Questions() []Question { return s.questions }

// Len returns the total question count.
func (s *Session) Len() int { return len(s.questions) }

// Index returns the zero-based position of the current question.
func (s *Session) Index() int { return s.index }

// Current returns the question awaiting an answer, or nil once every
// question has been answered and advanced past.
func (s *Session) Current() *Question {
	if s.index >= len(s.questions) {
		return nil
	}
	return &s.questions[s.index]
}

// Answered reports whether the current question has already been judged.
func (s *Session) Answered() bool { return s.answered }

// Submit judges the answer for the current question and appends the outcome.
// The evaluator runs at most once per question: submitting again returns the
// recorded outcome with accepted=false, as does submitting on a finished
// session.
func (s *Session) Submit(answer string) (Result, bool) {
	if s.index >= len(s.questions) {
		return Result{}, false
	}
	if s.answered {
		return s.results[len(s.results)-1], false
	}

	q := s.questions[s.index]
	var correct bool
	switch s.Type {
	case entity.QuizTypeFillBlank:
		correct = MatchMeaning(answer, q.Word.Meaning)
	default:
		// Multiple choice submits the selected option's word ID.
		correct = answer == q.Word.ID
	}

	r := Result{WordID: q.Word.ID, Answer: answer, Correct: correct}
	s.results = append(s.results, r)
	s.answered = true
	return r, true
}

// Advance moves to the next question after the current one was answered.
// It reports whether a question remains; answering cannot be skipped.
func (s *Session) Advance() bool {
	if !s.answered || s.index >= len(s.questions) {
		return false
	}
	s.index++
	s.answered = false
	return s.index < len(s.questions)
}

// IsComplete is true once every question has been answered and advanced past.
func (s *Session) IsComplete() bool {
	return s.index == len(s.questions)
}

// Results returns the accumulated outcomes, one per answered question.
func (s *Session) Results() []Result { return s.results }

// Finalize aggregates the tally. It fails until the session is complete.
func (s *Session) Finalize() (Summary, error) {
	if !s.IsComplete() {
		return Summary{}, entity.ErrSessionNotComplete
	}
	correct := 0
	for _, r := range s.results {
		if r.Correct {
			correct++
		}
	}
	return Summary{Total: len(s.questions), Correct: correct, Results: s.results}, nil
}
