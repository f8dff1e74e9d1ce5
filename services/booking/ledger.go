package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// ProcessedEventTTL bounds how long webhook event ids are remembered. Stripe
// stops retrying a delivery well before that.
const ProcessedEventTTL = 72 * time.Hour

// EventLedger remembers webhook events that were already handled.
type EventLedger interface {
	// MarkProcessed records eventID and reports whether it was seen for the first time.
	MarkProcessed(ctx context.Context, eventID string) (bool, error)
	// Forget drops eventID so a retried delivery is processed again.
	Forget(ctx context.Context, eventID string) error
}

// redisKV is the subset of *redis.Client used by the ledger.
type redisKV interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisEventLedger stores processed event ids as expiring Redis keys.
type RedisEventLedger struct {
	client redisKV
	ttl    time.Duration
}

func NewRedisEventLedger(client *redis.Client) *RedisEventLedger {
	return &RedisEventLedger{client: client, ttl: ProcessedEventTTL}
}

func eventKey(eventID string) string {
	return "webhook:event:" + eventID
}

func (l *RedisEventLedger) MarkProcessed(ctx context.Context, eventID string) (bool, error) {
	ok, err := l.client.SetNX(ctx, eventKey(eventID), time.Now().Unix(), l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event %s: %w", eventID, err)
	}
	return ok, nil
}

func (l *RedisEventLedger) Forget(ctx context.Context, eventID string) error {
	if err := l.client.Del(ctx, eventKey(eventID)).Err(); err != nil {
		return fmt.Errorf("failed to forget webhook event %s: %w", eventID, err)
	}
	return nil
}
