package entity

import (
	"strings"
	"time"
)

// PartOfSpeech tags a word with its grammatical category.
type PartOfSpeech string

const (
	PartOfSpeechNoun         PartOfSpeech = "noun"
	PartOfSpeechVerb         PartOfSpeech = "verb"
	PartOfSpeechAdjective    PartOfSpeech = "adjective"
	PartOfSpeechAdverb       PartOfSpeech = "adverb"
	PartOfSpeechPreposition  PartOfSpeech = "preposition"
	PartOfSpeechConjunction  PartOfSpeech = "conjunction"
	PartOfSpeechPronoun      PartOfSpeech = "pronoun"
	PartOfSpeechInterjection PartOfSpeech = "interjection"
	PartOfSpeechOther        PartOfSpeech = "other"
)

// WordSource records how a word entered the user's vocabulary.
type WordSource string

const (
	SourceManual WordSource = "manual"
	SourceScan   WordSource = "scan"
)

// Difficulty is a coarse self-assessed difficulty bucket.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyMixed  Difficulty = "mixed"
)

// MasteredThreshold is the mastery level at which a word counts as mastered.
const MasteredThreshold = 80

// Word is a user's saved vocabulary entry. Meaning may carry several
// acceptable translations separated by "," or "/".
type Word struct {
	ID              string
	UserID          string
	English         string
	Meaning         string
	PartOfSpeech    PartOfSpeech
	ExampleSentence string
	Source          WordSource
	Difficulty      Difficulty
	MasteryLevel    int32
	IsBookmarked    bool
	TimesCorrect    int32
	TimesWrong      int32
	LastReviewedAt  *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Normalize ensures defaults & constraints before persistence.
func (w *Word) Normalize(now time.Time) {
	w.English = strings.TrimSpace(w.English)
	w.Meaning = strings.TrimSpace(w.Meaning)
	if w.PartOfSpeech == "" {
		w.PartOfSpeech = PartOfSpeechOther
	}
	if w.Source == "" {
		w.Source = SourceManual
	}
	if w.Difficulty == "" {
		w.Difficulty = DifficultyMedium
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = now
	}
	w.UpdatedAt = now
}

// Mastered reports whether the word crossed the mastered threshold.
func (w *Word) Mastered() bool {
	return w.MasteryLevel >= MasteredThreshold
}

// ParsePartOfSpeech converts an arbitrary string into a supported tag.
func ParsePartOfSpeech(s string) PartOfSpeech {
	switch PartOfSpeech(strings.ToLower(strings.TrimSpace(s))) {
	case PartOfSpeechNoun, PartOfSpeechVerb, PartOfSpeechAdjective, PartOfSpeechAdverb,
		PartOfSpeechPreposition, PartOfSpeechConjunction, PartOfSpeechPronoun, PartOfSpeechInterjection:
		return PartOfSpeech(strings.ToLower(strings.TrimSpace(s)))
	default:
		return PartOfSpeechOther
	}
}

// WordFilter defines filtering options when listing vocabulary entries.
type WordFilter struct {
	UserID          string
	Search          string
	IsBookmarked    *bool
	MasteryLevelMin *int32
	MasteryLevelMax *int32
	PartOfSpeech    PartOfSpeech
	Difficulty      Difficulty
	Limit           int32
	Offset          int32
}
