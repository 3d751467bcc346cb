package ratelimit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "taskboard:login:"

// LoginLimiter throttles failed login attempts with a fixed window counter in
// Redis, keyed per username+client address. A nil limiter (or nil client)
// allows everything, so the guard is a no-op when Redis is not configured.
type LoginLimiter struct {
	rdb    *redis.Client
	limit  int64
	window time.Duration
}

func NewLoginLimiter(rdb *redis.Client, limit int, window time.Duration) *LoginLimiter {
	if limit <= 0 {
		limit = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{
		rdb:    rdb,
		limit:  int64(limit),
		window: window,
	}
}

// Allow reports whether another attempt for this username/address pair is
// within the window limit.
func (l *LoginLimiter) Allow(ctx context.Context, username, addr string) (bool, error) {
	if l == nil || l.rdb == nil {
		return true, nil
	}

	key := keyPrefix + hashKey(username+"|"+addr)
	count, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, key, l.window).Err(); err != nil {
			return false, fmt.Errorf("ratelimit expire: %w", err)
		}
	}
	return count <= l.limit, nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, username, addr string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	key := keyPrefix + hashKey(username + "|" + addr)
	if err := l.rdb.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("ratelimit del: %w", err)
	}
	return nil
}

func hashKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
