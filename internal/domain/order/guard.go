// internal/domain/order/guard.go
package order

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckoutGuard serializes checkout attempts per user so a double
// submission cannot consume the same cart twice.
type CheckoutGuard interface {
	// Acquire returns false when a checkout for the user is already in
	// progress.
	Acquire(ctx context.Context, userID uint) (bool, error)
	Release(ctx context.Context, userID uint) error
}

// RedisCheckoutGuard implements CheckoutGuard with a SETNX lock and TTL,
// so a crashed request cannot wedge a user's checkout forever.
type RedisCheckoutGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCheckoutGuard creates a Redis-backed checkout guard
func NewRedisCheckoutGuard(client *redis.Client, ttl time.Duration) *RedisCheckoutGuard {
	return &RedisCheckoutGuard{
		client: client,
		ttl:    ttl,
	}
}

// Acquire takes the per-user checkout lock
func (g *RedisCheckoutGuard) Acquire(ctx context.Context, userID uint) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.key(userID), 1, g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire checkout guard: %w", err)
	}
	return ok, nil
}

// Release drops the per-user checkout lock
func (g *RedisCheckoutGuard) Release(ctx context.Context, userID uint) error {
	return g.client.Del(ctx, g.key(userID)).Err()
}

func (g *RedisCheckoutGuard) key(userID uint) string {
	return fmt.Sprintf("checkout:user:%d", userID)
}
