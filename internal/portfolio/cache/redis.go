package cache

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/aussiebroadwan/folio/pkg/slogx"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// DefaultTTL applies when CACHE_TTL is unset.
const DefaultTTL = 10 * time.Minute

// Redis caches aggregates in redis. Redis failures never fail a request:
// reads fall through to the loader and a circuit breaker stops calling a
// redis that keeps erroring. Concurrent misses for one owner share a
// single load.
type Redis struct {
	rdb    *redis.Client
	ttl    time.Duration
	sf     singleflight.Group
	cb     *gobreaker.CircuitBreaker
	logger *slog.Logger
}

func NewRedis(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	st := gobreaker.Settings{
		Name:        "portfolio-cache",
		MaxRequests: 1,
		Interval:    10 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && ratio >= 0.5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("cache circuit breaker state changed", "from", from.String(), "to", to.String())
		},
	}

	return &Redis{
		rdb:    rdb,
		ttl:    ttl,
		cb:     gobreaker.NewCircuitBreaker(st),
		logger: logger,
	}
}

func (c *Redis) Fetch(ctx context.Context, ownerID string, load Loader) ([]byte, error) {
	log := slogx.FromContext(ctx)

	gen, err := c.generation(ctx, ownerID)
	if err != nil {
		// Without the generation a write could outlive an invalidation.
		log.Warn("portfolio cache generation read failed, loading directly", "owner_id", ownerID, "error", err)
		return load(ctx)
	}
	key := Key(ownerID, gen)

	val, err := c.cb.Execute(func() (any, error) {
		b, err := c.rdb.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return b, err
	})
	if err != nil {
		log.Warn("portfolio cache read failed, loading directly", "key", key, "error", err)
	} else if b, ok := val.([]byte); ok && b != nil {
		return b, nil
	}

	res, err, shared := c.sf.Do(key, func() (any, error) {
		b, err := load(ctx)
		if err != nil {
			return nil, err
		}

		// Jitter keeps entries written together from expiring together.
		ttl := c.ttl + time.Duration(rand.IntN(60))*time.Second
		_, werr := c.cb.Execute(func() (any, error) {
			return nil, c.rdb.Set(ctx, key, b, ttl).Err()
		})
		if werr != nil {
			log.Warn("portfolio cache write failed", "key", key, "error", werr)
		}
		return b, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug("portfolio cache load shared", "key", key)
	}
	return res.([]byte), nil
}

// generation returns the owner's current generation, 0 before the first
// invalidation.
func (c *Redis) generation(ctx context.Context, ownerID string) (int64, error) {
	val, err := c.cb.Execute(func() (any, error) {
		n, err := c.rdb.Get(ctx, GenerationKey(ownerID)).Int64()
		if errors.Is(err, redis.Nil) {
			return int64(0), nil
		}
		return n, err
	})
	if err != nil {
		return 0, err
	}
	return val.(int64), nil
}

// Invalidate moves the owner to a new generation and drops the entry of the
// previous one.
func (c *Redis) Invalidate(ctx context.Context, ownerID string) {
	genKey := GenerationKey(ownerID)
	_, err := c.cb.Execute(func() (any, error) {
		gen, err := c.rdb.Incr(ctx, genKey).Result()
		if err != nil {
			return nil, err
		}
		return nil, c.rdb.Del(ctx, Key(ownerID, gen-1)).Err()
	})
	if err != nil {
		slogx.FromContext(ctx).Warn("portfolio cache invalidate failed", "key", genKey, "error", err)
	}
}

func (c *Redis) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

func (c *Redis) Close() error {
	return c.rdb.Close()
}
