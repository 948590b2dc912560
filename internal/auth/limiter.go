package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrLoginRateLimited signals that an identifier exceeded the allowed login
// attempts within the window.
var ErrLoginRateLimited = errors.New("too many login attempts")

// LoginLimiter throttles login attempts per username and client IP using
// redis counters with a sliding expiry window. When redis is unavailable the
// limiter fails open: login availability is preferred over throttling.
type LoginLimiter struct {
	redis  *redis.Client
	max    int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client disables throttling.
func NewLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{redis: client, max: maxAttempts, window: window, logger: logger}
}

// Allow records one attempt for the username and IP and reports whether the
// attempt may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, username, ip string) error {
	if l == nil || l.redis == nil || l.max <= 0 {
		return nil
	}

	if err := l.count(ctx, usernameKey(username)); err != nil {
		return err
	}
	if ip != "" {
		return l.count(ctx, ipKey(ip))
	}
	return nil
}

func (l *LoginLimiter) count(ctx context.Context, key string) error {
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return nil
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
			return nil
		}
	}
	if count > int64(l.max) {
		return ErrLoginRateLimited
	}
	return nil
}

func usernameKey(username string) string {
	return "login_attempts:u:" + strings.ToLower(username)
}

func ipKey(ip string) string {
	return "login_attempts:ip:" + ip
}
