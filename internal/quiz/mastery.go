package quiz

import (
	"math"
	"time"

	"github.com/wordsnap/wordsnap/internal/entity"
)

// Apply records one answer outcome on the word, recomputing the derived
// mastery level from the cumulative counters. MasteryLevel is never edited
// independently; it is always min(100, round(100 * correct / attempts)) with
// half-up rounding. Callers persist the full resulting state, so replays of
// the same persisted state stay last-write-wins safe.
func Apply(w *entity.Word, correct bool, now time.Time) {
	if correct {
		w.TimesCorrect++
	} else {
		w.TimesWrong++
	}
	attempts := w.TimesCorrect + w.TimesWrong
	level := int32(math.Round(100 * float64(w.TimesCorrect) / float64(attempts)))
	if level > 100 {
		level = 100
	}
	w.MasteryLevel = level
	t := now
	w.LastReviewedAt = &t
	w.UpdatedAt = now
}
