package database

import (
	"context"
	"database/sql"
	"errors"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Open opens and pings a postgres connection pool.
func Open(ctx context.Context, logger *zap.SugaredLogger, databaseURL string) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errors.New("database url is not set")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		logger.Errorw("Failed to open database connection", "error", err)
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		logger.Errorw("Failed to ping database", "error", err)
		db.Close()
		return nil, err
	}

	return db, nil
}
