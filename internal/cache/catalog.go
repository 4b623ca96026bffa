// Package cache fronts the treatment catalog with redis. The catalog is
// seeded out of band and changes rarely; bookings are never cached.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"treatment-booking-api/internal/model"
	"treatment-booking-api/internal/store"
)

const catalogKey = "booking:catalog:v1"

// NewClient parses a redis:// URL and pings the server.
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

type Catalog struct {
	next store.Catalog
	rdb  redis.Cmdable
	ttl  time.Duration
	log  zerolog.Logger
}

var _ store.Catalog = (*Catalog)(nil)

func NewCatalog(next store.Catalog, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *Catalog {
	return &Catalog{next: next, rdb: rdb, ttl: ttl, log: log.With().Str("component", "catalog_cache").Logger()}
}

// ListTreatments reads through the cache. Redis failures fall back to the
// store, which stays authoritative.
func (c *Catalog) ListTreatments(ctx context.Context) ([]model.TreatmentOption, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	switch {
	case err == nil:
		var out []model.TreatmentOption
		jerr := json.Unmarshal(raw, &out)
		if jerr == nil {
			return out, nil
		}
		c.log.Warn().Err(jerr).Msg("discarding undecodable catalog entry")
	case errors.Is(err, redis.Nil):
	default:
		c.log.Warn().Err(err).Msg("catalog cache read failed")
	}

	out, err := c.next.ListTreatments(ctx)
	if err != nil {
		return nil, err
	}
	if raw, err := json.Marshal(out); err != nil {
		c.log.Warn().Err(err).Msg("catalog encode failed")
	} else if err := c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Msg("catalog cache write failed")
	}
	return out, nil
}

// Invalidate drops the cached catalog; the seed command calls it after
// writing treatments.
func (c *Catalog) Invalidate(ctx context.Context) error {
	if err := c.rdb.Del(ctx, catalogKey).Err(); err != nil {
		return fmt.Errorf("invalidate catalog: %w", err)
	}
	return nil
}
