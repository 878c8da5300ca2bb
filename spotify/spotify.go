package spotify

import (
	"context"

	"github.com/mager/moodscale/config"
	spot "github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Scopes needed to read a listener's top artists and recent plays.
var Scopes = []string{
	spotifyauth.ScopeUserReadPrivate,
	spotifyauth.ScopeUserTopRead,
	spotifyauth.ScopeUserReadRecentlyPlayed,
}

// SpotifyClient builds per-user API clients. It holds no user state: every
// call gets the token it should act with.
type SpotifyClient struct {
	Auth  *spotifyauth.Authenticator
	State *StateSigner

	// oauth mirrors Auth's settings so callers can watch token refreshes.
	oauth *oauth2.Config

	ID     string
	Secret string
}

func newOAuthConfig(cfg config.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.SpotifyID,
		ClientSecret: cfg.SpotifySecret,
		RedirectURL:  cfg.SpotifyRedirectURL,
		Scopes:       Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  spotifyauth.AuthURL,
			TokenURL: spotifyauth.TokenURL,
		},
	}
}

func newAuthenticator(cfg config.Config) *spotifyauth.Authenticator {
	return spotifyauth.New(
		spotifyauth.WithClientID(cfg.SpotifyID),
		spotifyauth.WithClientSecret(cfg.SpotifySecret),
		spotifyauth.WithRedirectURL(cfg.SpotifyRedirectURL),
		spotifyauth.WithScopes(Scopes...),
	)
}

// Configured reports whether client credentials were provided.
func (c *SpotifyClient) Configured() bool {
	return c.ID != "" && c.Secret != ""
}

// AuthURL returns the consent URL for a user, with a signed state.
func (c *SpotifyClient) AuthURL(userID string) (string, error) {
	state, err := c.State.Sign(userID)
	if err != nil {
		return "", err
	}
	return c.Auth.AuthURL(state), nil
}

// ForToken returns an API client acting as the token's owner, and the token
// source behind it. The source refreshes an expired access token on its own;
// read it after the calls to get the token that should be stored.
func (c *SpotifyClient) ForToken(ctx context.Context, token *oauth2.Token) (*spot.Client, oauth2.TokenSource) {
	ts := c.oauth.TokenSource(ctx, token)
	return spot.New(oauth2.NewClient(ctx, ts)), ts
}

func ProvideSpotify(cfg config.Config, log *zap.SugaredLogger) *SpotifyClient {
	log.Infow("setting up spotify client", "redirect_url", cfg.SpotifyRedirectURL, "configured", cfg.SpotifyID != "")

	return &SpotifyClient{
		Auth:   newAuthenticator(cfg),
		State:  NewStateSigner(cfg.StateSecret),
		oauth:  newOAuthConfig(cfg),
		ID:     cfg.SpotifyID,
		Secret: cfg.SpotifySecret,
	}
}

var Options = ProvideSpotify
