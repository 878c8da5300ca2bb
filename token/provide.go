package token

import (
	"context"
	"fmt"

	"github.com/mager/moodscale/config"
	"github.com/mager/moodscale/database"
	fsClient "github.com/mager/moodscale/firestore"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ProvideStore builds the backend named by cfg.TokenStore and closes it
// when the app stops.
func ProvideStore(lc fx.Lifecycle, cfg config.Config, log *zap.SugaredLogger) (Store, error) {
	ctx := context.Background()

	log.Infow("setting up token store", "backend", cfg.TokenStore)

	switch cfg.TokenStore {
	case "", "memory":
		return NewMemoryStore(), nil

	case "firestore":
		fs, err := fsClient.NewClient(ctx, cfg.FirestoreProject)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return fs.Close() }})
		return NewFirestoreStore(fs), nil

	case "postgres":
		db, err := database.Open(ctx, log, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return db.Close() }})
		return NewPostgresStore(ctx, db)

	case "sqlite":
		s, err := OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error { return s.Close() }})
		return s, nil
	}

	return nil, fmt.Errorf("unknown token store %q", cfg.TokenStore)
}

var Options = ProvideStore
