// Package rediscache wraps the PostgreSQL repositories with a Redis
// read cache. Reads go to the primary store first and mirror the result
// into Redis; when the primary is unreachable the last mirrored copy is
// served instead. Writes always go to the primary and bump a per-domain
// version counter so stale list entries age out on their TTL.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type store struct {
	client redis.Cmdable
	ttl    time.Duration
	prefix string
}

func newStore(client redis.Cmdable, ttl time.Duration, prefix string) store {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return store{client: client, ttl: ttl, prefix: prefix}
}

// version returns the current cache generation for this domain. A zero
// generation is returned when Redis itself is unavailable, which makes
// every read skip the cache.
func (s store) version(ctx context.Context) (int64, bool) {
	v, err := s.client.Get(ctx, s.prefix+":ver").Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, true
		}
		return 0, false
	}
	return v, true
}

func (s store) bumpVersion(ctx context.Context) {
	if err := s.client.Incr(ctx, s.prefix+":ver").Err(); err != nil {
		slog.Warn("failed to bump cache version", "prefix", s.prefix, "error", err)
	}
}

func (s store) listKey(ctx context.Context, suffix string) (string, bool) {
	ver, ok := s.version(ctx)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%s:v%d:%s", s.prefix, ver, suffix), true
}

func (s store) idKey(id string) string {
	return fmt.Sprintf("%s:id:%s", s.prefix, id)
}

func (s store) setJSON(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.Warn("failed to marshal cache entry", "key", key, "error", err)
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		slog.Warn("failed to write cache entry", "key", key, "error", err)
	}
}

func (s store) getJSON(ctx context.Context, key string, out interface{}) bool {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("failed to read cache entry", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(data, out); err != nil {
		slog.Warn("failed to unmarshal cache entry", "key", key, "error", err)
		return false
	}
	return true
}

func (s store) invalidate(ctx context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("failed to invalidate cache entries", "error", err)
	}
}

// derefOr renders an optional filter field into a stable cache key part.
func derefOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}
