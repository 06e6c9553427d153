package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/foodexpress/delivery-api/internal/core/ports"
	"github.com/foodexpress/delivery-api/internal/infrastructure/config"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/migration"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/mongo"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/postgres"
	"github.com/foodexpress/delivery-api/internal/infrastructure/db/sqlite"
)

// openUserStore connects the user store selected by USER_STORE. The returned
// func releases it.
func openUserStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.UserRepository, func(), error) {
	switch cfg.UserStore {
	case config.StorePostgres:
		pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := migratePostgres(pool, log); err != nil {
				pool.Close()
				return nil, nil, err
			}
		}
		log.Info().Msg("postgres connected")
		return postgres.NewUserRepository(pool), pool.Close, nil

	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		if cfg.AutoMigrate {
			if err := migrateSQLite(db, log); err != nil {
				_ = db.Close()
				return nil, nil, err
			}
		}
		log.Info().Str("path", cfg.SQLite.Path).Msg("sqlite opened")
		return sqlite.NewUserRepository(db), func() { _ = db.Close() }, nil

	default:
		client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, nil, err
		}
		repo := mongo.NewUserRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")
		return repo, func() { _ = client.Disconnect(context.Background()) }, nil
	}
}

func migratePostgres(pool *pgxpool.Pool, log zerolog.Logger) error {
	m, err := postgres.NewMigrator(pool)
	if err != nil {
		return err
	}
	return applyUp(m, log)
}

func migrateSQLite(db *sql.DB, log zerolog.Logger) error {
	m, err := sqlite.NewMigrator(db)
	if err != nil {
		return err
	}
	return applyUp(m, log)
}

func applyUp(m *migration.Runner, log zerolog.Logger) error {
	if err := m.Up(); err != nil {
		return err
	}
	v, dirty, err := m.Version()
	if err != nil {
		return err
	}
	if dirty {
		return fmt.Errorf("schema version %d is dirty", v)
	}
	log.Info().Uint("version", v).Msg("schema up to date")
	return nil
}
