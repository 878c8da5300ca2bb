package spotify

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const stateTTL = 10 * time.Minute

// ErrInvalidState is returned when an OAuth callback carries a state we did
// not issue, or one that has expired.
var ErrInvalidState = errors.New("invalid oauth state")

// StateSigner issues and verifies the OAuth state parameter. The state is a
// short-lived HS256 token whose subject is the user id, so the callback knows
// who it is for without any server-side session.
type StateSigner struct {
	key []byte
	now func() time.Time
}

// NewStateSigner uses secret as the HMAC key. An empty secret gets a random
// key, which only works for a single process.
func NewStateSigner(secret string) *StateSigner {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(err)
		}
	}
	return &StateSigner{key: key, now: time.Now}
}

// Sign returns a state value for userID.
func (s *StateSigner) Sign(userID string) (string, error) {
	if userID == "" {
		return "", fmt.Errorf("%w: empty user id", ErrInvalidState)
	}
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
}

// Verify checks a state value and returns the user id it was issued for.
func (s *StateSigner) Verify(state string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(state, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidState, err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidState)
	}
	return claims.Subject, nil
}
