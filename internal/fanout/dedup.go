// internal/fanout/dedup.go
package fanout

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupKeyPrefix = "fanout:trigger:"

// DedupGuard suppresses re-running a fan-out for the same trigger id within a
// TTL window. The guard is optional: without it (or without a trigger id)
// every run produces an independent notification batch.
type DedupGuard struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDedupGuard(client *redis.Client, ttl time.Duration) *DedupGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &DedupGuard{client: client, ttl: ttl}
}

// Acquire claims the trigger id. It returns true when this is the first run
// for the id within the TTL window, false when a previous run already
// claimed it.
func (g *DedupGuard) Acquire(ctx context.Context, triggerID string) (bool, error) {
	return g.client.SetNX(ctx, dedupKeyPrefix+triggerID, 1, g.ttl).Result()
}
