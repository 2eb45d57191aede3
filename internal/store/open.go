package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-qa-backend/internal/config"
	"github.com/tbourn/go-qa-backend/internal/repo"
)

// Open builds the Store selected by cfg.StoreBackend. For the SQL backend it
// connects, verifies the connection and migrates the schema; any failure is
// returned so the caller can abort startup.
func Open(ctx context.Context, cfg config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Info().Str("backend", cfg.StoreBackend).Msg("store ready")
		return NewMemoryStore(), nil
	case config.StoreSQL, "":
		db, err := repo.Open(ctx, cfg.DB)
		if err != nil {
			return nil, fmt.Errorf("store: open %s: %w", cfg.DB.Driver, err)
		}
		if err := repo.AutoMigrate(db); err != nil {
			_ = repo.Close(db)
			return nil, fmt.Errorf("store: migrate: %w", err)
		}
		log.Info().
			Str("backend", config.StoreSQL).
			Str("driver", cfg.DB.Driver).
			Int("max_conns", cfg.DB.MaxConns).
			Msg("store ready")
		return NewSQLStore(db), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", cfg.StoreBackend)
	}
}
