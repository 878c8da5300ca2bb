package health

import (
	"encoding/json"
	"net/http"

	"github.com/mager/moodscale/insight"
	"github.com/mager/moodscale/spotify"
	"go.uber.org/zap"
)

// HealthHandler reports whether the server is up and which collaborators
// have credentials.
type HealthHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	generator     *insight.Generator
}

func (*HealthHandler) Pattern() string {
	return "/health"
}

// NewHealthHandler builds a new HealthHandler.
func NewHealthHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, generator *insight.Generator) *HealthHandler {
	return &HealthHandler{
		log:           log,
		spotifyClient: spotifyClient,
		generator:     generator,
	}
}

type Response struct {
	Status  string `json:"status"`
	Server  bool   `json:"server"`
	Spotify bool   `json:"spotify"`
	Insight bool   `json:"insight"`
}

// Health check
// @Summary Health check
// @Description Reports server liveness and configured collaborators
// @Produce json
// @Success 200 {object} Response
// @Router /health [get]
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := Response{
		Status:  "OK",
		Server:  true,
		Spotify: h.spotifyClient.Configured(),
		Insight: h.generator.Configured(),
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
