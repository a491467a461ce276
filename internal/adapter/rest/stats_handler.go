package rest

import (
	"net/http"
	"time"
)

type dashboardPayload struct {
	TotalWords       int32      `json:"total_words"`
	BookmarkedWords  int32      `json:"bookmarked_words"`
	MasteredWords    int32      `json:"mastered_words"`
	LearningWords    int32      `json:"learning_words"`
	QuizzesCompleted int32      `json:"quizzes_completed"`
	AverageScore     int32      `json:"average_score"`
	AverageMastery   int32      `json:"average_mastery"`
	LastStudiedAt    *time.Time `json:"last_studied_at,omitempty"`
}

// GET /api/v1/stats/dashboard
func (h *Handler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	d, err := h.stats.Dashboard(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, dashboardPayload{
		TotalWords:       d.TotalWords,
		BookmarkedWords:  d.BookmarkedWords,
		MasteredWords:    d.MasteredWords,
		LearningWords:    d.LearningWords,
		QuizzesCompleted: d.QuizzesCompleted,
		AverageScore:     d.AverageScore,
		AverageMastery:   d.AverageMastery,
		LastStudiedAt:    d.LastStudiedAt,
	})
}

type progressPayload struct {
	TotalWords         int32 `json:"total_words"`
	MasteredWords      int32 `json:"mastered_words"`
	ProgressPercentage int32 `json:"progress_percentage"`
}

// GET /api/v1/stats/progress
func (h *Handler) progress(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	p, err := h.stats.Progress(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, progressPayload{
		TotalWords:         p.TotalWords,
		MasteredWords:      p.MasteredWords,
		ProgressPercentage: p.ProgressPercentage,
	})
}

type streakPayload struct {
	CurrentStreak int32      `json:"current_streak"`
	LastStudyDate *time.Time `json:"last_study_date,omitempty"`
}

// GET /api/v1/stats/streak
func (h *Handler) streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	s, err := h.stats.Streak(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, streakPayload{
		CurrentStreak: s.CurrentStreak,
		LastStudyDate: s.LastStudyDate,
	})
}
