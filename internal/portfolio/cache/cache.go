// Package cache holds rendered portfolio aggregates keyed by owner id.
package cache

import (
	"context"
	"fmt"
)

// Loader renders the aggregate on a miss.
type Loader func(ctx context.Context) ([]byte, error)

// Portfolio is a read-through cache of encoded aggregates.
type Portfolio interface {
	// Fetch returns the cached bytes for ownerID or calls load and stores
	// the result.
	Fetch(ctx context.Context, ownerID string, load Loader) ([]byte, error)
	// Invalidate drops the entry for ownerID after a mutation.
	Invalidate(ctx context.Context, ownerID string)
	Ping(ctx context.Context) error
}

// Key is the redis key of an owner's aggregate at generation gen.
func Key(ownerID string, gen int64) string {
	return fmt.Sprintf("portfolio:%s:%d", ownerID, gen)
}

// GenerationKey holds the counter Invalidate bumps. An entry is only read
// under the generation current at read time, so a load that raced a
// mutation writes to a key nobody reads again.
func GenerationKey(ownerID string) string {
	return fmt.Sprintf("portfolio:gen:%s", ownerID)
}

// Noop always loads. Used when REDIS_ADDR is unset.
type Noop struct{}

func (Noop) Fetch(ctx context.Context, _ string, load Loader) ([]byte, error) { return load(ctx) }
func (Noop) Invalidate(context.Context, string)                             {}
func (Noop) Ping(context.Context) error                                     { return nil }
