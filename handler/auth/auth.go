package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mager/moodscale/spotify"
	"github.com/mager/moodscale/token"
	"go.uber.org/zap"
)

// --- Auth Login Handler ---

// AuthLoginHandler redirects the user to Spotify's OAuth consent screen.
type AuthLoginHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
}

func (*AuthLoginHandler) Pattern() string {
	return "/auth/spotify"
}

func NewAuthLoginHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient) *AuthLoginHandler {
	return &AuthLoginHandler{log: log, spotifyClient: spotifyClient}
}

// Connect Spotify
// @Summary Connect Spotify
// @Description Redirects to the Spotify consent screen for the given user
// @Tags Auth
// @Param user_id query string true "User ID"
// @Success 307
// @Router /auth/spotify [get]
func (h *AuthLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, `{"error":"missing user_id"}`, http.StatusBadRequest)
		return
	}

	url, err := h.spotifyClient.AuthURL(userID)
	if err != nil {
		h.log.Errorw("Failed to sign oauth state", "error", err, "user_id", userID)
		http.Error(w, `{"error":"could not start authorization"}`, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// --- Auth Callback Handler ---

// AuthCallbackHandler exchanges the OAuth code for tokens and stores them.
type AuthCallbackHandler struct {
	log           *zap.SugaredLogger
	spotifyClient *spotify.SpotifyClient
	tokens        token.Store
}

func (*AuthCallbackHandler) Pattern() string {
	return "/auth/spotify/callback"
}

func NewAuthCallbackHandler(log *zap.SugaredLogger, spotifyClient *spotify.SpotifyClient, tokens token.Store) *AuthCallbackHandler {
	return &AuthCallbackHandler{log: log, spotifyClient: spotifyClient, tokens: tokens}
}

// Spotify OAuth callback
// @Summary Spotify OAuth callback
// @Description Verifies the state, exchanges the code and stores the token
// @Tags Auth
// @Produce json
// @Param state query string true "Signed state"
// @Param code query string true "Authorization code"
// @Router /auth/spotify/callback [get]
func (h *AuthCallbackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if reason := q.Get("error"); reason != "" {
		h.log.Infow("Spotify authorization denied", "reason", reason)
		http.Error(w, `{"error":"spotify authorization failed, please try again"}`, http.StatusBadRequest)
		return
	}

	state := q.Get("state")
	userID, err := h.spotifyClient.State.Verify(state)
	if errors.Is(err, spotify.ErrInvalidState) {
		h.log.Warnw("Rejected oauth state", "error", err)
		http.Error(w, `{"error":"invalid state"}`, http.StatusBadRequest)
		return
	}

	tok, err := h.spotifyClient.Auth.Token(ctx, state, r)
	if err != nil {
		h.log.Errorw("Failed to exchange Spotify token", "error", err, "user_id", userID)
		http.Error(w, `{"error":"spotify authorization failed, please try again"}`, http.StatusBadGateway)
		return
	}

	if err := h.tokens.Put(ctx, userID, tok); err != nil {
		h.log.Errorw("Failed to store token", "error", err, "user_id", userID)
		http.Error(w, `{"error":"failed to store token"}`, http.StatusInternalServerError)
		return
	}

	h.log.Infow("Spotify account connected", "user_id", userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "connected",
		"user_id": userID,
	})
}

// --- Disconnect Handler ---

// DisconnectHandler forgets a user's stored Spotify token.
type DisconnectHandler struct {
	log    *zap.SugaredLogger
	tokens token.Store
}

func (*DisconnectHandler) Pattern() string {
	return "/auth/spotify/disconnect"
}

func NewDisconnectHandler(log *zap.SugaredLogger, tokens token.Store) *DisconnectHandler {
	return &DisconnectHandler{log: log, tokens: tokens}
}

// Disconnect Spotify
// @Summary Disconnect Spotify
// @Description Deletes the stored Spotify token for the given user
// @Tags Auth
// @Produce json
// @Param user_id query string true "User ID"
// @Router /auth/spotify/disconnect [post]
func (h *DisconnectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, `{"error":"missing user_id"}`, http.StatusBadRequest)
		return
	}

	if err := h.tokens.Delete(r.Context(), userID); err != nil {
		h.log.Errorw("Failed to delete token", "error", err, "user_id", userID)
		http.Error(w, `{"error":"failed to delete token"}`, http.StatusInternalServerError)
		return
	}

	h.log.Infow("Spotify account disconnected", "user_id", userID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "disconnected",
		"user_id": userID,
	})
}
