package token

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SQLiteStore keeps tokens in a local sqlite3 file, for running without a
// database server.
type SQLiteStore struct {
	db *gorm.DB
}

// OpenSQLite opens (creating if necessary) the file and migrates the table.
func OpenSQLite(filename string) (*SQLiteStore, error) {
	db, err := gorm.Open(sqlite.Open(filename), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error opening db file at '%s': %w", filename, err)
	}
	if err := db.AutoMigrate(&SpotifyToken{}); err != nil {
		return nil, fmt.Errorf("error migrating db at '%s': %w", filename, err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Get(ctx context.Context, userID string) (*oauth2.Token, error) {
	var st SpotifyToken
	err := s.db.WithContext(ctx).First(&st, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("error loading token for '%s': %w", userID, err)
	}
	return st.oauth(), nil
}

func (s *SQLiteStore) Put(ctx context.Context, userID string, tok *oauth2.Token) error {
	st := fromOAuth(userID, tok)
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&st).
		Error; err != nil {
		return fmt.Errorf("error storing token for '%s': %w", userID, err)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, userID string) error {
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&SpotifyToken{}).
		Error; err != nil {
		return fmt.Errorf("error deleting token for '%s': %w", userID, err)
	}
	return nil
}

// Close releases the underlying connection pool.
func (s *SQLiteStore) Close() error {
	pool, err := s.db.DB()
	if err != nil {
		return err
	}
	return pool.Close()
}
