package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	LoginMaxAttempts = 5
	LoginCooldown    = 15 * time.Minute
)

// LoginLimiter counts failed console logins per username.
// login_attempts:<name> holds the failure count, login_cooldown:<name> blocks further attempts.
type LoginLimiter struct {
	rdb         *redis.Client
	maxAttempts int64
	cooldown    time.Duration
}

func NewLoginLimiter(rdb *redis.Client) *LoginLimiter {
	return &LoginLimiter{rdb: rdb, maxAttempts: LoginMaxAttempts, cooldown: LoginCooldown}
}

func attemptsKey(name string) string { return "login_attempts:" + name }
func cooldownKey(name string) string { return "login_cooldown:" + name }

// Blocked reports the remaining cooldown, zero when attempts are allowed.
func (l *LoginLimiter) Blocked(ctx context.Context, name string) (time.Duration, error) {
	if l == nil || l.rdb == nil {
		return 0, nil
	}
	ttl, err := l.rdb.TTL(ctx, cooldownKey(name)).Result()
	if err != nil {
		return 0, fmt.Errorf("login cooldown ttl: %w", err)
	}
	if ttl < 0 {
		return 0, nil
	}
	return ttl, nil
}

// Fail records a failed attempt and starts the cooldown once the limit is hit.
// It returns the attempts left before the cooldown.
func (l *LoginLimiter) Fail(ctx context.Context, name string) (int64, error) {
	if l == nil || l.rdb == nil {
		return l.max(), nil
	}

	pipe := l.rdb.Pipeline()
	incr := pipe.Incr(ctx, attemptsKey(name))
	pipe.Expire(ctx, attemptsKey(name), l.cooldown)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("login attempts incr: %w", err)
	}

	attempts := incr.Val()
	if attempts >= l.maxAttempts {
		pipe := l.rdb.TxPipeline()
		pipe.Set(ctx, cooldownKey(name), "1", l.cooldown)
		pipe.Del(ctx, attemptsKey(name))
		if _, err := pipe.Exec(ctx); err != nil {
			return 0, fmt.Errorf("login cooldown set: %w", err)
		}
		return 0, nil
	}
	return l.maxAttempts - attempts, nil
}

// Reset clears the counters after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, name string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, attemptsKey(name), cooldownKey(name)).Err()
}

func (l *LoginLimiter) max() int64 {
	if l == nil {
		return LoginMaxAttempts
	}
	return l.maxAttempts
}
