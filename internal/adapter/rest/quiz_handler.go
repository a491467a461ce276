package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/quiz"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

type optionPayload struct {
	WordID  string `json:"word_id"`
	Meaning string `json:"meaning"`
}

type questionPayload struct {
	Index    int             `json:"index"`
	Total    int             `json:"total"`
	Complete bool            `json:"complete"`
	WordID   string          `json:"word_id,omitempty"`
	English  string          `json:"english,omitempty"`
	Options  []optionPayload `json:"options,omitempty"`
}

func toQuestionPayload(view *usecase.QuestionView) questionPayload {
	p := questionPayload{Index: view.Index, Total: view.Total, Complete: view.Complete}
	if view.Complete {
		return p
	}
	p.WordID = view.Word.ID
	p.English = view.Word.English
	p.Options = lo.Map(view.Options, func(w entity.Word, _ int) optionPayload {
		return optionPayload{WordID: w.ID, Meaning: w.Meaning}
	})
	return p
}

type boardItemPayload struct {
	WordID string `json:"word_id"`
	Text   string `json:"text"`
}

type boardPayload struct {
	Terms    []boardItemPayload `json:"terms"`
	Meanings []boardItemPayload `json:"meanings"`
	Matched  int                `json:"matched"`
	Total    int                `json:"total"`
	Attempts int                `json:"attempts"`
}

func toBoardPayload(view usecase.BoardView) boardPayload {
	return boardPayload{
		Terms: lo.Map(view.Terms, func(w entity.Word, _ int) boardItemPayload {
			return boardItemPayload{WordID: w.ID, Text: w.English}
		}),
		Meanings: lo.Map(view.Meanings, func(w entity.Word, _ int) boardItemPayload {
			return boardItemPayload{WordID: w.ID, Text: w.Meaning}
		}),
		Matched:  view.Matched,
		Total:    view.Total,
		Attempts: view.Attempts,
	}
}

type createSessionRequest struct {
	QuizType      string `json:"quiz_type"`
	QuestionCount int    `json:"question_count"`
}

type createSessionResponse struct {
	SessionID string `json:"session_id"`
	QuizType  string `json:"quiz_type"`
	Total     int    `json:"total"`
}

// POST /api/v1/quiz/sessions
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createSessionRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	typ, err := entity.ParseQuizType(req.QuizType)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	view, err := h.quiz.StartSession(r.Context(), userID, typ, req.QuestionCount)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: view.ID,
		QuizType:  string(view.QuizType),
		Total:     view.Total,
	})
}

// GET /api/v1/quiz/sessions/{sessionID}/question
func (h *Handler) currentQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	view, err := h.quiz.Question(userID, r.PathValue("sessionID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toQuestionPayload(view))
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

type answerOutcomePayload struct {
	Correct  bool   `json:"correct"`
	Accepted bool   `json:"accepted"`
	Meaning  string `json:"meaning"`
}

// POST /api/v1/quiz/sessions/{sessionID}/answers
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req submitAnswerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	outcome, err := h.quiz.SubmitAnswer(userID, r.PathValue("sessionID"), req.Answer)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, answerOutcomePayload{
		Correct:  outcome.Correct,
		Accepted: outcome.Accepted,
		Meaning:  outcome.Meaning,
	})
}

// POST /api/v1/quiz/sessions/{sessionID}/next
func (h *Handler) nextQuestion(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	view, err := h.quiz.NextQuestion(userID, r.PathValue("sessionID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toQuestionPayload(view))
}

// GET /api/v1/quiz/sessions/{sessionID}/board
func (h *Handler) board(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	view, err := h.quiz.Board(userID, r.PathValue("sessionID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toBoardPayload(*view))
}

type submitMatchRequest struct {
	TermID    string `json:"term_id"`
	MeaningID string `json:"meaning_id"`
}

type matchOutcomePayload struct {
	Attempted bool         `json:"attempted"`
	Matched   bool         `json:"matched"`
	Completed bool         `json:"completed"`
	Board     boardPayload `json:"board"`
}

// POST /api/v1/quiz/sessions/{sessionID}/matches
func (h *Handler) submitMatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req submitMatchRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	outcome, err := h.quiz.SubmitMatch(userID, r.PathValue("sessionID"), req.TermID, req.MeaningID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, matchOutcomePayload{
		Attempted: outcome.Attempted,
		Matched:   outcome.Matched,
		Completed: outcome.Completed,
		Board:     toBoardPayload(outcome.Board),
	})
}

type answerResultPayload struct {
	WordID  string `json:"word_id"`
	Answer  string `json:"answer"`
	Correct bool   `json:"correct"`
}

type completionPayload struct {
	ResultID        string                `json:"result_id,omitempty"`
	Total           int                   `json:"total"`
	Correct         int                   `json:"correct"`
	ScorePercentage int32                 `json:"score_percentage"`
	Results         []answerResultPayload `json:"results"`
}

// POST /api/v1/quiz/sessions/{sessionID}/complete
func (h *Handler) completeSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	view, err := h.quiz.CompleteSession(r.Context(), userID, r.PathValue("sessionID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, completionPayload{
		ResultID:        view.ResultID,
		Total:           view.Total,
		Correct:         view.Correct,
		ScorePercentage: view.ScorePercentage,
		Results: lo.Map(view.Results, func(res quiz.Result, _ int) answerResultPayload {
			return answerResultPayload{WordID: res.WordID, Answer: res.Answer, Correct: res.Correct}
		}),
	})
}

// DELETE /api/v1/quiz/sessions/{sessionID}
func (h *Handler) abandonSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.quiz.AbandonSession(userID, r.PathValue("sessionID")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type quizResultPayload struct {
	ID              string    `json:"id"`
	QuizType        string    `json:"quiz_type"`
	TotalQuestions  int32     `json:"total_questions"`
	CorrectAnswers  int32     `json:"correct_answers"`
	ScorePercentage int32     `json:"score_percentage"`
	Difficulty      string    `json:"difficulty"`
	CompletedAt     time.Time `json:"completed_at"`
}

// GET /api/v1/quiz/results
func (h *Handler) listResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var limit int32
	if n, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		limit = int32(n)
	}
	results, err := h.quiz.ListResults(r.Context(), userID, limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lo.Map(results, func(res *entity.QuizResult, _ int) quizResultPayload {
		return quizResultPayload{
			ID:              res.ID,
			QuizType:        string(res.QuizType),
			TotalQuestions:  res.TotalQuestions,
			CorrectAnswers:  res.CorrectAnswers,
			ScorePercentage: res.ScorePercentage,
			Difficulty:      string(res.Difficulty),
			CompletedAt:     res.CompletedAt,
		}
	}))
}

type wordAnswerPayload struct {
	ID         string    `json:"id"`
	WordID     string    `json:"word_id"`
	UserAnswer string    `json:"user_answer"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

// GET /api/v1/quiz/results/{resultID}/answers
func (h *Handler) resultAnswers(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	answers, err := h.quiz.ResultAnswers(r.Context(), userID, r.PathValue("resultID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lo.Map(answers, func(a *entity.WordAnswer, _ int) wordAnswerPayload {
		return wordAnswerPayload{
			ID:         a.ID,
			WordID:     a.WordID,
			UserAnswer: a.UserAnswer,
			IsCorrect:  a.IsCorrect,
			AnsweredAt: a.AnsweredAt,
		}
	}))
}

type quizStatsPayload struct {
	TotalQuizzes int32 `json:"total_quizzes"`
	AverageScore int32 `json:"average_score"`
	BestScore    int32 `json:"best_score"`
}

// GET /api/v1/quiz/stats?type=multiple_choice
func (h *Handler) quizStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	typ, err := entity.ParseQuizType(r.URL.Query().Get("type"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	stats, err := h.quiz.StatsByType(r.Context(), userID, typ)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, quizStatsPayload{
		TotalQuizzes: stats.TotalQuizzes,
		AverageScore: stats.AverageScore,
		BestScore:    stats.BestScore,
	})
}

type trendPointPayload struct {
	CompletedAt     time.Time `json:"completed_at"`
	ScorePercentage int32     `json:"score_percentage"`
	QuizType        string    `json:"quiz_type"`
}

// GET /api/v1/quiz/trend
func (h *Handler) quizTrend(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var limit int32
	if n, err := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 32); err == nil {
		limit = int32(n)
	}
	trend, err := h.quiz.RecentTrend(r.Context(), userID, limit)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lo.Map(trend, func(p entity.TrendPoint, _ int) trendPointPayload {
		return trendPointPayload{
			CompletedAt:     p.CompletedAt,
			ScorePercentage: p.ScorePercentage,
			QuizType:        string(p.QuizType),
		}
	}))
}
