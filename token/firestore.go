package token

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"golang.org/x/oauth2"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const firestoreCollection = "spotify_tokens"

// FirestoreStore keeps one document per user in the spotify_tokens collection.
type FirestoreStore struct {
	fs *firestore.Client
}

func NewFirestoreStore(fs *firestore.Client) *FirestoreStore {
	return &FirestoreStore{fs: fs}
}

func (s *FirestoreStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	doc, err := s.fs.Collection(firestoreCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading token for '%s': %w", userID, err)
	}

	var st SpotifyToken
	if err := doc.DataTo(&st); err != nil {
		return nil, fmt.Errorf("error decoding token for '%s': %w", userID, err)
	}
	return st.oauth(), nil
}

func (s *FirestoreStore) Put(ctx context.Context, userID string, tok *oauth2.Token) error {
	_, err := s.fs.Collection(firestoreCollection).Doc(userID).Set(ctx, fromOAuth(userID, tok))
	if err != nil {
		return fmt.Errorf("error storing token for '%s': %w", userID, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, userID string) error {
	_, err := s.fs.Collection(firestoreCollection).Doc(userID).Delete(ctx)
	if err != nil && status.Code(err) != codes.NotFound {
		return fmt.Errorf("error deleting token for '%s': %w", userID, err)
	}
	return nil
}
