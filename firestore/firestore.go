package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
)

// NewClient returns a firestore client for the given project.
func NewClient(ctx context.Context, projectID string) (*firestore.Client, error) {
	if projectID == "" {
		return nil, errors.New("firestore project is not set")
	}
	return firestore.NewClient(ctx, projectID)
}
