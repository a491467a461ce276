package quiz

import (
	"math/rand"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// Board is the live state of a matching round. Unlike the one-question-at-a-
// time modes, both columns are active simultaneously: the left column lists
// terms in session order, the right column the same words reshuffled so the
// meanings don't line up.
type Board struct {
	terms        []entity.Word
	meanings     []entity.Word
	matched      map[string]bool
	selectedTerm string
	attempts     int
}

// MatchOutcome describes the effect of one pairing click.
type MatchOutcome struct {
	// Attempted is false when the click was ignored (no term selected,
	// or the meaning was already matched).
	Attempted bool
	Matched   bool
	Completed bool
}

// NewBoard lays out a matching board over the session's question words.
func NewBoard(s *Session, rng *rand.Rand) *Board {
	terms := make([]entity.Word, 0, len(s.questions))
	for _, q := range s.questions {
		terms = append(terms, q.Word)
	}
	meanings := make([]entity.Word, len(terms))
	copy(meanings, terms)
	shuffleWords(meanings, rng)
	return &Board{
		terms:    terms,
		meanings: meanings,
		matched:  map[string]bool{},
	}
}

// Terms returns the left column in presentation order.
func (b *Board) Terms() []entity.Word { return b.terms }

// Meanings returns the right column in presentation order.
func (b *Board) Meanings() []entity.Word { return b.meanings }

// SelectTerm marks a left-column word as the active selection. Already
// matched items cannot be reselected.
func (b *Board) SelectTerm(wordID string) bool {
	if b.matched[wordID] || !b.contains(wordID) {
		return false
	}
	b.selectedTerm = wordID
	return true
}

// SelectedTerm returns the active left-column selection, if any.
func (b *Board) SelectedTerm() string { return b.selectedTerm }

// SelectMeaning attempts to pair the active term with a right-column word.
// Every attempted pairing counts toward Attempts, match or not. A wrong
// pairing leaves the term selected, mirroring the transient "wrong" flash
// on the meaning side.
func (b *Board) SelectMeaning(wordID string) MatchOutcome {
	if b.selectedTerm == "" || b.matched[wordID] || !b.contains(wordID) {
		return MatchOutcome{}
	}

	b.attempts++
	if b.selectedTerm != wordID {
		return MatchOutcome{Attempted: true}
	}

	b.matched[wordID] = true
	b.selectedTerm = ""
	return MatchOutcome{
		Attempted: true,
		Matched:   true,
		Completed: b.Completed(),
	}
}

// Attempts counts every pairing click made so far.
func (b *Board) Attempts() int { return b.attempts }

// MatchedCount returns how many pairs have been resolved.
func (b *Board) MatchedCount() int { return len(b.matched) }

// Completed is true once every item is matched.
func (b *Board) Completed() bool {
	return len(b.terms) > 0 && len(b.matched) == len(b.terms)
}

// Summary scores the round: attempts beyond the one-per-item minimum count
// as wrong answers subtracted from a perfect score. The per-item results all
// report correct, since every item ends up matched; only the aggregate
// deficit reflects mistakes.
func (b *Board) Summary() (Summary, error) {
	if !b.Completed() {
		return Summary{}, entity.ErrSessionNotComplete
	}
	total := len(b.terms)
	correct := total - (b.attempts - total)
	if correct < 0 {
		correct = 0
	}
	results := make([]Result, 0, total)
	for _, w := range b.terms {
		results = append(results, Result{WordID: w.ID, Correct: true})
	}
	return Summary{Total: total, Correct: correct, Results: results}, nil
}

func (b *Board) contains(wordID string) bool {
	for _, w := range b.terms {
		if w.ID == wordID {
			return true
		}
	}
	return false
}
