package recommend

import (
	"context"
	"errors"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/mager/moodify/moodify"
	"github.com/mager/moodify/recommend"
	"go.uber.org/zap"
)

// Recommender builds playlists.
type Recommender interface {
	Recommend(ctx context.Context, text string) (moodify.Result, error)
}

// RecommendHandler turns a free-text request into a playlist.
type RecommendHandler struct {
	log         *zap.SugaredLogger
	recommender Recommender
}

func (*RecommendHandler) Pattern() string {
	return "/recommend"
}

func (*RecommendHandler) Methods() []string {
	return []string{http.MethodPost}
}

// NewRecommendHandler builds a new RecommendHandler.
func NewRecommendHandler(log *zap.SugaredLogger, recommender *recommend.Recommender) *RecommendHandler {
	return &RecommendHandler{
		log:         log,
		recommender: recommender,
	}
}

type Request struct {
	Text string `json:"text"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgMissingText   = "Please provide input text"
	msgInternalError = "internal error"

	maxBodyBytes = 1 << 20
)

// ServeHTTP handles a POST to /recommend.
func (h *RecommendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req Request
	if r.Body == nil {
		writeError(w, http.StatusBadRequest, msgMissingText)
		return
	}
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		h.log.Infow("rejected recommend request", "err", err)
		writeError(w, http.StatusBadRequest, msgMissingText)
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, msgMissingText)
		return
	}

	h.log.Infow("recommend request", "text", req.Text)

	result, err := h.recommender.Recommend(r.Context(), req.Text)
	if errors.Is(err, recommend.ErrEmptyInput) {
		writeError(w, http.StatusBadRequest, msgMissingText)
		return
	}
	if err != nil {
		h.log.Errorw("recommend failed", "err", err)
		writeError(w, http.StatusInternalServerError, msgInternalError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.log.Errorw("failed to write response", "err", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: msg})
}
