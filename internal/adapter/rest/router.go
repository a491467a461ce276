package rest

import "net/http"

// RegisterRoutes mounts every API endpoint on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Words
	mux.HandleFunc("POST /api/v1/words", h.createWord)
	mux.HandleFunc("GET /api/v1/words", h.listWords)
	mux.HandleFunc("GET /api/v1/words/count", h.countWords)
	mux.HandleFunc("GET /api/v1/words/{wordID}", h.getWord)
	mux.HandleFunc("PUT /api/v1/words/{wordID}", h.updateWord)
	mux.HandleFunc("DELETE /api/v1/words/{wordID}", h.deleteWord)
	mux.HandleFunc("POST /api/v1/words/{wordID}/bookmark", h.toggleBookmark)
	mux.HandleFunc("POST /api/v1/words/{wordID}/answers", h.recordAnswer)

	// Quiz sessions
	mux.HandleFunc("POST /api/v1/quiz/sessions", h.createSession)
	mux.HandleFunc("GET /api/v1/quiz/sessions/{sessionID}/question", h.currentQuestion)
	mux.HandleFunc("POST /api/v1/quiz/sessions/{sessionID}/answers", h.submitAnswer)
	mux.HandleFunc("POST /api/v1/quiz/sessions/{sessionID}/next", h.nextQuestion)
	mux.HandleFunc("GET /api/v1/quiz/sessions/{sessionID}/board", h.board)
	mux.HandleFunc("POST /api/v1/quiz/sessions/{sessionID}/matches", h.submitMatch)
	mux.HandleFunc("POST /api/v1/quiz/sessions/{sessionID}/complete", h.completeSession)
	mux.HandleFunc("DELETE /api/v1/quiz/sessions/{sessionID}", h.abandonSession)

	// Quiz history
	mux.HandleFunc("GET /api/v1/quiz/results", h.listResults)
	mux.HandleFunc("GET /api/v1/quiz/results/{resultID}/answers", h.resultAnswers)
	mux.HandleFunc("GET /api/v1/quiz/stats", h.quizStats)
	mux.HandleFunc("GET /api/v1/quiz/trend", h.quizTrend)

	// Statistics
	mux.HandleFunc("GET /api/v1/stats/dashboard", h.dashboard)
	mux.HandleFunc("GET /api/v1/stats/progress", h.progress)
	mux.HandleFunc("GET /api/v1/stats/streak", h.streak)
}
