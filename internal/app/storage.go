package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/fulbito-league/internal/config"
	"github.com/riskibarqy/fulbito-league/internal/domain/league"
	"github.com/riskibarqy/fulbito-league/internal/domain/match"
	"github.com/riskibarqy/fulbito-league/internal/domain/player"
	cacherepo "github.com/riskibarqy/fulbito-league/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/fulbito-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/fulbito-league/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/fulbito-league/internal/platform/cache"
	"github.com/riskibarqy/fulbito-league/internal/platform/logging"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"
)

const dbPingTimeout = 5 * time.Second

type repositories struct {
	leagues league.Repository
	players player.Repository
	matches match.Repository
	closers []func(context.Context) error
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	var out repositories

	switch cfg.StorageBackend {
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		out = repositories{
			leagues: postgres.NewLeagueRepository(db),
			players: postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			closers: []func(context.Context) error{func(context.Context) error { return db.Close() }},
		}
		logger.Info("storage backend ready", "backend", config.StoragePostgres, "db_name", dbNameFromURL(cfg.DBURL))
	case config.StorageMemory, "":
		store := memory.NewStore()
		if cfg.AppEnv == config.EnvDev {
			if err := memory.SeedDemo(ctx, store, cfg.DemoOwnerUserID); err != nil {
				return repositories{}, fmt.Errorf("seed demo league: %w", err)
			}
			logger.Info("demo league seeded", "slug", memory.DemoLeagueSlug, "owner_user_id", cfg.DemoOwnerUserID)
		}
		out = repositories{
			leagues: memory.NewLeagueRepository(store),
			players: memory.NewPlayerRepository(store),
			matches: memory.NewMatchRepository(store),
		}
		logger.Info("storage backend ready", "backend", config.StorageMemory)
	default:
		return repositories{}, fmt.Errorf("unsupported storage backend %q", cfg.StorageBackend)
	}

	if cfg.CacheEnabled && cfg.StorageBackend == config.StoragePostgres {
		store := basecache.NewStore(cfg.CacheTTL)
		out.leagues = cacherepo.NewLeagueRepository(out.leagues, store)
		out.players = cacherepo.NewPlayerRepository(out.players, store)
		out.matches = cacherepo.NewMatchRepository(out.matches, store)
	}

	return out, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}
