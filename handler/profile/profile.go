package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/mager/moodscale/listener"
	"github.com/mager/moodscale/moodscale"
	"github.com/mager/moodscale/profiler"
	"github.com/mager/moodscale/token"
	"go.uber.org/zap"
)

// Builder produces a listener's profile.
type Builder interface {
	Build(ctx context.Context, userID string, withInsight bool, progress profiler.ProgressFunc) (*moodscale.Profile, error)
}

// ProfileHandler returns a listener's full personality profile.
type ProfileHandler struct {
	log     *zap.SugaredLogger
	builder Builder
}

func (*ProfileHandler) Pattern() string {
	return "/profile"
}

// NewProfileHandler builds a new ProfileHandler.
func NewProfileHandler(log *zap.SugaredLogger, svc *profiler.Service) *ProfileHandler {
	return newProfileHandler(log, svc)
}

func newProfileHandler(log *zap.SugaredLogger, b Builder) *ProfileHandler {
	return &ProfileHandler{log: log, builder: b}
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Status int    `json:"status,omitempty"`
}

// GetProfile godoc
// @Summary Get a listener's personality profile
// @Description Reads the user's Spotify history and scores it
// @Produce json
// @Param user_id query string true "User ID"
// @Param insight query bool false "Also write a narrative insight"
// @Success 200 {object} moodscale.Profile
// @Failure 401 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /profile [get]
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "missing user_id"})
		return
	}
	withInsight, _ := strconv.ParseBool(r.URL.Query().Get("insight"))

	p, err := h.builder.Build(r.Context(), userID, withInsight, nil)
	if err != nil {
		status, msg := classify(err)
		h.log.Errorw("Failed to build profile", "user_id", userID, "status", status, "error", err)
		writeJSON(w, status, ErrorResponse{Error: msg})
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// classify maps a Build error to a status code and a message safe to show.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, token.ErrNotFound):
		return http.StatusUnauthorized, "spotify account not connected"
	case errors.Is(err, listener.ErrNoListeningData):
		return http.StatusNotFound, "no listening data found"
	case errors.Is(err, profiler.ErrUpstream):
		return http.StatusBadGateway, "could not reach spotify, please try again"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
