package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"treatment-booking-api/internal/cache"
	"treatment-booking-api/internal/config"
	"treatment-booking-api/internal/events"
	"treatment-booking-api/internal/logging"
	"treatment-booking-api/internal/store"
	"treatment-booking-api/internal/store/memstore"
	"treatment-booking-api/internal/store/mongostore"
)

// backend is an opened repository plus whatever must be released with it.
type backend struct {
	repo    store.Repository
	migrate func(ctx context.Context) ([]string, error)
	closers []func()
}

func (b *backend) Close() {
	for i := len(b.closers) - 1; i >= 0; i-- {
		b.closers[i]()
	}
}

func loadConfig(envFile string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	log := logging.New(cfg.Env, cfg.LogLevel)
	return cfg, log, nil
}

func openBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := store.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
		if err != nil {
			return nil, err
		}
		log.Info().Msg("connected to postgres")
		st := store.New(pool)
		return &backend{
			repo:    st,
			migrate: func(ctx context.Context) ([]string, error) { return st.Migrate(ctx, cfg.MigrationsDir) },
			closers: []func(){pool.Close},
		}, nil

	case config.DriverMongo:
		client, err := mongostore.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		log.Info().Str("database", cfg.MongoDatabase).Msg("connected to mongo")
		st := mongostore.New(client.Database(cfg.MongoDatabase))
		return &backend{
			repo: st,
			migrate: func(ctx context.Context) ([]string, error) {
				if err := st.EnsureIndexes(ctx); err != nil {
					return nil, err
				}
				return []string{"indexes"}, nil
			},
			closers: []func(){func() { _ = client.Disconnect(context.Background()) }},
		}, nil

	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return &backend{
			repo:    memstore.New(),
			migrate: func(context.Context) ([]string, error) { return nil, nil },
		}, nil
	}
	return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
}

// catalogCache wraps the catalog with redis when REDIS_URL is set. It
// returns nil without error otherwise.
func (b *backend) catalogCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*cache.Catalog, error) {
	if cfg.RedisURL == "" {
		return nil, nil
	}
	rdb, err := cache.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, func() { _ = rdb.Close() })
	log.Info().Dur("ttl", cfg.CatalogCacheTTL).Msg("catalog cache enabled")
	return cache.NewCatalog(b.repo, rdb, cfg.CatalogCacheTTL, log), nil
}

// publisher dials the broker when AMQP_URL is set and falls back to a no-op.
func (b *backend) publisher(cfg *config.Config, log zerolog.Logger) (events.Publisher, error) {
	if cfg.AMQPURL == "" {
		return events.Nop{}, nil
	}
	p, err := events.Dial(cfg.AMQPURL, cfg.EventsExchange)
	if err != nil {
		return nil, err
	}
	b.closers = append(b.closers, func() {
		if err := p.Close(); err != nil {
			log.Warn().Err(err).Msg("close amqp")
		}
	})
	log.Info().Str("exchange", cfg.EventsExchange).Msg("publishing events")
	return p, nil
}

// prepare migrates and, when seedFile is set, seeds the catalog. The
// booking uniqueness index comes from the migration, so a failure stops
// startup.
func (b *backend) prepare(ctx context.Context, seedFile string, log zerolog.Logger) error {
	applied, err := b.migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if len(applied) > 0 {
		log.Info().Strs("applied", applied).Msg("migrations applied")
	}
	if seedFile == "" {
		return nil
	}
	n, err := seedTreatments(ctx, b.repo, seedFile)
	if err != nil {
		return err
	}
	log.Info().Int("treatments", n).Msg("catalog seeded")
	return nil
}
