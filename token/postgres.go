package token

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
)

const postgresSchema = `
	CREATE TABLE IF NOT EXISTS spotify_tokens (
		user_id       TEXT PRIMARY KEY,
		access_token  TEXT NOT NULL,
		refresh_token TEXT NOT NULL DEFAULT '',
		token_type    TEXT NOT NULL DEFAULT '',
		expiry        BIGINT NOT NULL DEFAULT 0
	)
`

// PostgresStore keeps tokens in the spotify_tokens table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates the table if it does not exist yet.
func NewPostgresStore(ctx context.Context, db *sql.DB) (*PostgresStore, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, fmt.Errorf("error migrating spotify_tokens: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	query := `
		SELECT user_id, access_token, refresh_token, token_type, expiry
		FROM spotify_tokens
		WHERE user_id = $1
	`
	var st SpotifyToken
	err := s.db.QueryRowContext(ctx, query, userID).
		Scan(&st.UserID, &st.AccessToken, &st.RefreshToken, &st.TokenType, &st.Expiry)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading token for '%s': %w", userID, err)
	}
	return st.oauth(), nil
}

func (s *PostgresStore) Put(ctx context.Context, userID string, tok *oauth2.Token) error {
	query := `
		INSERT INTO spotify_tokens (user_id, access_token, refresh_token, token_type, expiry)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			token_type = EXCLUDED.token_type,
			expiry = EXCLUDED.expiry
	`
	st := fromOAuth(userID, tok)
	if _, err := s.db.ExecContext(ctx, query,
		st.UserID, st.AccessToken, st.RefreshToken, st.TokenType, st.Expiry); err != nil {
		return fmt.Errorf("error storing token for '%s': %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM spotify_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("error deleting token for '%s': %w", userID, err)
	}
	return nil
}
