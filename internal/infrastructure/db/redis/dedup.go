package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dedupTTL    = 24 * time.Hour
	dedupPrefix = "dedup:notify:"
)

// DedupChecker records which notifications were already sent.
// Key format: dedup:notify:<dedup_key>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// Claim atomically marks key as sent. It reports false when the key was
// already claimed within the TTL.
func (d *DedupChecker) Claim(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, dedupPrefix+key, "1", d.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("dedup claim: %w", err)
	}
	return ok, nil
}

// Release removes a claim so a failed send can be retried later.
func (d *DedupChecker) Release(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, dedupPrefix+key).Err(); err != nil {
		return fmt.Errorf("dedup release: %w", err)
	}
	return nil
}
