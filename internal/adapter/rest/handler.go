package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/wordsnap/wordsnap/internal/entity"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

// Handler bundles the usecases behind the JSON API consumed by the mobile
// client.
type Handler struct {
	words  usecase.WordUsecase
	quiz   usecase.QuizUsecase
	stats  usecase.StatsUsecase
	logger *logrus.Logger
}

// NewHandler constructs the API handler.
func NewHandler(words usecase.WordUsecase, quiz usecase.QuizUsecase, stats usecase.StatsUsecase, logger *logrus.Logger) *Handler {
	return &Handler{words: words, quiz: quiz, stats: stats, logger: logger}
}

type errorResponse struct {
	Error string `json:"error"`
}

// userID resolves the authenticated user. Authentication itself happens at
// the gateway; the backend trusts the forwarded identity header.
func (h *Handler) userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.Header.Get("X-User-Id")
	if id == "" {
		h.writeError(w, http.StatusUnauthorized, errors.New("missing user identity"))
		return "", false
	}
	return id, true
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.WithError(err).Warn("encode response failed")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, err error) {
	h.writeJSON(w, status, errorResponse{Error: err.Error()})
}

// writeDomainError maps domain errors onto HTTP statuses.
func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrWordNotFound),
		errors.Is(err, entity.ErrQuizResultNotFound),
		errors.Is(err, entity.ErrSessionNotFound),
		errors.Is(err, entity.ErrStatisticsNotFound):
		h.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrDuplicateWord):
		h.writeError(w, http.StatusConflict, err)
	case errors.Is(err, entity.ErrInvalidWordText),
		errors.Is(err, entity.ErrInvalidQuizType),
		errors.Is(err, entity.ErrInsufficientPool),
		errors.Is(err, entity.ErrInsufficientOptions),
		errors.Is(err, entity.ErrSessionNotComplete):
		h.writeError(w, http.StatusBadRequest, err)
	default:
		h.logger.WithError(err).Error("internal error")
		h.writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	}
}
