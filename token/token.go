// Package token keeps each user's Spotify OAuth token, keyed by user id.
// Callers always pass the user id explicitly; there is no current-user state.
package token

import (
	"context"
	"errors"
	"time"

	"golang.org/x/oauth2"
)

// ErrNotFound means the user never connected Spotify, or disconnected.
var ErrNotFound = errors.New("token not found")

// Store persists OAuth tokens per user.
type Store interface {
	Get(ctx context.Context, userID string) (*oauth2.Token, error)
	Put(ctx context.Context, userID string, tok *oauth2.Token) error
	Delete(ctx context.Context, userID string) error
}

// SpotifyToken is the stored form of a token.
type SpotifyToken struct {
	UserID       string `json:"user_id" firestore:"user_id" gorm:"primaryKey"`
	AccessToken  string `json:"access_token" firestore:"access_token"`
	RefreshToken string `json:"refresh_token" firestore:"refresh_token"`
	TokenType    string `json:"token_type" firestore:"token_type"`
	Expiry       int64  `json:"expiry" firestore:"expiry"`
}

func (SpotifyToken) TableName() string {
	return "spotify_tokens"
}

func fromOAuth(userID string, tok *oauth2.Token) SpotifyToken {
	st := SpotifyToken{
		UserID:       userID,
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.TokenType,
	}
	if !tok.Expiry.IsZero() {
		st.Expiry = tok.Expiry.Unix()
	}
	return st
}

func (st SpotifyToken) oauth() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		TokenType:    st.TokenType,
	}
	if st.Expiry != 0 {
		tok.Expiry = time.Unix(st.Expiry, 0)
	}
	return tok
}
