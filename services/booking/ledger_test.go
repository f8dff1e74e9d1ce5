package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubKV struct {
	keys   map[string]time.Duration
	setErr error
}

func (s *stubKV) SetNX(_ context.Context, key string, _ interface{}, ttl time.Duration) *redis.BoolCmd {
	if s.setErr != nil {
		return redis.NewBoolResult(false, s.setErr)
	}
	if _, ok := s.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	s.keys[key] = ttl
	return redis.NewBoolResult(true, nil)
}

func (s *stubKV) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, k := range keys {
		delete(s.keys, k)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}

func TestRedisEventLedger(t *testing.T) {
	kv := &stubKV{keys: map[string]time.Duration{}}
	l := &RedisEventLedger{client: kv, ttl: ProcessedEventTTL}
	ctx := context.Background()

	first, err := l.MarkProcessed(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, ProcessedEventTTL, kv.keys["webhook:event:evt_1"])

	again, err := l.MarkProcessed(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, l.Forget(ctx, "evt_1"))
	afterForget, err := l.MarkProcessed(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, afterForget)
}

func TestRedisEventLedgerError(t *testing.T) {
	l := &RedisEventLedger{client: &stubKV{setErr: errors.New("redis down")}, ttl: time.Hour}

	_, err := l.MarkProcessed(context.Background(), "evt_1")
	assert.Error(t, err)
}
