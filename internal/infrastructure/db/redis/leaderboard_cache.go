package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sirpyerre/wavegame-api/internal/core/domain"
	"github.com/sirpyerre/wavegame-api/internal/core/ports"
)

const (
	defaultLeaderboardTTL = 30 * time.Second
	versionKey            = "leaderboard:version"
)

var _ ports.LeaderboardCache = (*LeaderboardCache)(nil)

// LeaderboardCache stores ranked pages keyed by limit and a generation
// counter. Invalidate bumps the counter, so stale pages are never read again
// and simply expire.
// Key format: leaderboard:v<version>:<limit>
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a cache wrapping the given Redis client.
func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	if ttl <= 0 {
		ttl = defaultLeaderboardTTL
	}
	return &LeaderboardCache{client: client, ttl: ttl}
}

func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]domain.RankedEntry, bool, error) {
	key, err := c.key(ctx, limit)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("leaderboard cache get: %w", err)
	}

	var entries []domain.RankedEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, false, fmt.Errorf("leaderboard cache decode: %w", err)
	}
	return entries, true, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []domain.RankedEntry) error {
	key, err := c.key(ctx, limit)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("leaderboard cache encode: %w", err)
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("leaderboard cache invalidate: %w", err)
	}
	return nil
}

func (c *LeaderboardCache) key(ctx context.Context, limit int) (string, error) {
	version, err := c.client.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("leaderboard cache version: %w", err)
	}
	return fmt.Sprintf("leaderboard:v%d:%d", version, limit), nil
}
