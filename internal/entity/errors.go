package entity

import "errors"

// Domain errors for words, quiz sessions and related aggregates.
var (
	ErrWordNotFound       = errors.New("word not found")
	ErrDuplicateWord      = errors.New("word already exists")
	ErrInvalidWordText    = errors.New("invalid word text")
	ErrInvalidQuizType    = errors.New("invalid quiz type")
	ErrQuizResultNotFound = errors.New("quiz result not found")

	// ErrInsufficientPool signals that the word pool is too small for the
	// requested quiz type; surfaced before a session is created, never mid-run.
	ErrInsufficientPool = errors.New("not enough words for quiz")
	// ErrInsufficientOptions guards multiple-choice distractor sampling.
	ErrInsufficientOptions = errors.New("not enough distractor options")

	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrSessionNotComplete = errors.New("quiz session not complete")

	ErrStatisticsNotFound = errors.New("user statistics not found")
)
