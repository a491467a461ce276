package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/samber/lo"
	"github.com/wordsnap/wordsnap/internal/entity"
)

type wordPayload struct {
	ID              string     `json:"id"`
	English         string     `json:"english"`
	Meaning         string     `json:"meaning"`
	PartOfSpeech    string     `json:"part_of_speech,omitempty"`
	ExampleSentence string     `json:"example_sentence,omitempty"`
	Source          string     `json:"source"`
	Difficulty      string     `json:"difficulty"`
	MasteryLevel    int32      `json:"mastery_level"`
	IsBookmarked    bool       `json:"is_bookmarked"`
	TimesCorrect    int32      `json:"times_correct"`
	TimesWrong      int32      `json:"times_wrong"`
	LastReviewedAt  *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func toWordPayload(w *entity.Word) wordPayload {
	return wordPayload{
		ID:              w.ID,
		English:         w.English,
		Meaning:         w.Meaning,
		PartOfSpeech:    string(w.PartOfSpeech),
		ExampleSentence: w.ExampleSentence,
		Source:          string(w.Source),
		Difficulty:      string(w.Difficulty),
		MasteryLevel:    w.MasteryLevel,
		IsBookmarked:    w.IsBookmarked,
		TimesCorrect:    w.TimesCorrect,
		TimesWrong:      w.TimesWrong,
		LastReviewedAt:  w.LastReviewedAt,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

type createWordRequest struct {
	English         string `json:"english"`
	Meaning         string `json:"meaning"`
	PartOfSpeech    string `json:"part_of_speech"`
	ExampleSentence string `json:"example_sentence"`
	Source          string `json:"source"`
	Difficulty      string `json:"difficulty"`
}

// POST /api/v1/words
func (h *Handler) createWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req createWordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	word, err := h.words.CollectWord(r.Context(), userID, &entity.Word{
		English:         req.English,
		Meaning:         req.Meaning,
		PartOfSpeech:    entity.ParsePartOfSpeech(req.PartOfSpeech),
		ExampleSentence: req.ExampleSentence,
		Source:          entity.WordSource(req.Source),
		Difficulty:      entity.Difficulty(req.Difficulty),
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, toWordPayload(word))
}

type listWordsResponse struct {
	Words []wordPayload `json:"words"`
	Total int64         `json:"total"`
}

// GET /api/v1/words
func (h *Handler) listWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}

	filter := entity.WordFilter{UserID: userID}
	q := r.URL.Query()
	filter.Search = q.Get("search")
	if v := q.Get("is_bookmarked"); v != "" {
		bookmarked := v == "true"
		filter.IsBookmarked = &bookmarked
	}
	if v := q.Get("mastery_level_min"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			min := int32(n)
			filter.MasteryLevelMin = &min
		}
	}
	if v := q.Get("mastery_level_max"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			max := int32(n)
			filter.MasteryLevelMax = &max
		}
	}
	if v := q.Get("part_of_speech"); v != "" {
		filter.PartOfSpeech = entity.ParsePartOfSpeech(v)
	}
	if v := q.Get("difficulty"); v != "" {
		filter.Difficulty = entity.Difficulty(v)
	}
	if n, err := strconv.ParseInt(q.Get("limit"), 10, 32); err == nil && n > 0 {
		filter.Limit = int32(n)
	}
	if n, err := strconv.ParseInt(q.Get("offset"), 10, 32); err == nil && n > 0 {
		filter.Offset = int32(n)
	}

	words, total, err := h.words.ListWords(r.Context(), &filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, listWordsResponse{
		Words: lo.Map(words, func(word *entity.Word, _ int) wordPayload { return toWordPayload(word) }),
		Total: total,
	})
}

// GET /api/v1/words/count
func (h *Handler) countWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	count, err := h.words.CountWords(r.Context(), userID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

// GET /api/v1/words/{wordID}
func (h *Handler) getWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	word, err := h.words.GetWord(r.Context(), userID, r.PathValue("wordID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toWordPayload(word))
}

type updateWordRequest struct {
	English         string `json:"english"`
	Meaning         string `json:"meaning"`
	PartOfSpeech    string `json:"part_of_speech"`
	ExampleSentence string `json:"example_sentence"`
	Difficulty      string `json:"difficulty"`
}

// PUT /api/v1/words/{wordID}
func (h *Handler) updateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req updateWordRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	word := &entity.Word{
		ID:              r.PathValue("wordID"),
		English:         req.English,
		Meaning:         req.Meaning,
		ExampleSentence: req.ExampleSentence,
		Difficulty:      entity.Difficulty(req.Difficulty),
	}
	if req.PartOfSpeech != "" {
		word.PartOfSpeech = entity.ParsePartOfSpeech(req.PartOfSpeech)
	}

	updated, err := h.words.UpdateWord(r.Context(), userID, word)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toWordPayload(updated))
}

// DELETE /api/v1/words/{wordID}
func (h *Handler) deleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	if err := h.words.DeleteWord(r.Context(), userID, r.PathValue("wordID")); err != nil {
		h.writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// POST /api/v1/words/{wordID}/bookmark
func (h *Handler) toggleBookmark(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	word, err := h.words.ToggleBookmark(r.Context(), userID, r.PathValue("wordID"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toWordPayload(word))
}

type recordAnswerRequest struct {
	Correct bool `json:"correct"`
}

// POST /api/v1/words/{wordID}/answers
func (h *Handler) recordAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.userID(w, r)
	if !ok {
		return
	}
	var req recordAnswerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	word, err := h.words.RecordAnswer(r.Context(), userID, r.PathValue("wordID"), req.Correct)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, toWordPayload(word))
}
