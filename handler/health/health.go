package health

import (
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/mager/moodify/llm"
	"github.com/mager/moodify/spotify"
	"go.uber.org/zap"
)

// HealthHandler reports whether the server and its upstream clients are set up.
type HealthHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	llmClient     *llm.Client
	pattern       string
}

func (h *HealthHandler) Pattern() string {
	return h.pattern
}

func (*HealthHandler) Methods() []string {
	return []string{http.MethodGet}
}

// NewHealthHandler builds the /health check.
func NewHealthHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, llmClient *llm.Client) *HealthHandler {
	return &HealthHandler{
		log:           log,
		spotifyClient: spotifyClient,
		llmClient:     llmClient,
		pattern:       "/health",
	}
}

// NewRootHandler serves the same check at /.
func NewRootHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, llmClient *llm.Client) *HealthHandler {
	h := NewHealthHandler(log, spotifyClient, llmClient)
	h.pattern = "/"
	return h
}

type Response struct {
	Message string `json:"message"`
	Status  string `json:"status"`
	Server  bool   `json:"server"`
	Spotify bool   `json:"spotify"`
	LLM     bool   `json:"llm"`
}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.log.Debug("health check")

	resp := Response{
		Message: "Moodify Backend is Running",
		Status:  "success",
		Server:  true,
	}

	// Make sure upstream clients are set up properly
	if h.spotifyClient != nil {
		resp.Spotify = h.spotifyClient.Configured()
	}
	if h.llmClient != nil {
		resp.LLM = h.llmClient.Configured
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
