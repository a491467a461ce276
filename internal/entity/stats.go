package entity

import "time"

// UserStatistics is the per-user rollup maintained alongside words and quiz
// results. It is recomputed from source tables, never authored directly.
type UserStatistics struct {
	ID                  string
	UserID              string
	TotalWords          int32
	BookmarkedWords     int32
	MasteredWords       int32
	QuizzesCompleted    int32
	AverageQuizScore    int32
	AverageWordMastery  int32
	LastStudiedAt       *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Dashboard is the aggregate view served to the home screen.
type Dashboard struct {
	TotalWords       int32
	BookmarkedWords  int32
	MasteredWords    int32
	LearningWords    int32
	QuizzesCompleted int32
	AverageScore     int32
	AverageMastery   int32
	LastStudiedAt    *time.Time
}

// LearningProgress summarises how much of the vocabulary is mastered.
type LearningProgress struct {
	TotalWords         int32
	MasteredWords      int32
	ProgressPercentage int32
}

// StudyStreak reports consecutive days with at least one completed quiz.
type StudyStreak struct {
	CurrentStreak int32
	LastStudyDate *time.Time
}
