package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentdesk/candidate-tracker/internal/config"
)

// fakeRedis serves Get and Set from a map; every other command panics
// through the nil embedded interface.
type fakeRedis struct {
	redis.Cmdable
	values   map[string]string
	ttls     map[string]time.Duration
	getErr   error
	setErr   error
	setCalls int
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.setCalls++
	if f.setErr != nil {
		return redis.NewStatusResult("", f.setErr)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func newTestCache(client redis.Cmdable) *ProjectionCache {
	return &ProjectionCache{client: client, ttl: time.Minute, logger: zap.NewNop()}
}

func TestProjectionKey(t *testing.T) {
	assert.Equal(t, "candidates:projection:e1:7:q=ana", ProjectionKey("e1", 7, "q=ana"))
	assert.NotEqual(t, ProjectionKey("e1", 1, ""), ProjectionKey("e1", 2, ""))
	assert.NotEqual(t, ProjectionKey("e1", 1, ""), ProjectionKey("e2", 1, ""))
}

func TestProjectionCache_SetThenGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newTestCache(fake)

	c.Set(ctx, "k", []string{"b", "a"})
	assert.Equal(t, `["b","a"]`, fake.values["k"])
	assert.Equal(t, time.Minute, fake.ttls["k"])

	ids, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, ids)
}

func TestProjectionCache_EmptyProjectionIsAHit(t *testing.T) {
	ctx := context.Background()
	c := newTestCache(newFakeRedis())

	c.Set(ctx, "k", []string{})
	ids, ok := c.Get(ctx, "k")
	require.True(t, ok)
	assert.Empty(t, ids)
}

func TestProjectionCache_Miss(t *testing.T) {
	ids, ok := newTestCache(newFakeRedis()).Get(context.Background(), "absent")
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestProjectionCache_CorruptEntry(t *testing.T) {
	fake := newFakeRedis()
	fake.values["k"] = "{not a list"

	ids, ok := newTestCache(fake).Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Nil(t, ids)
}

func TestProjectionCache_ReadError(t *testing.T) {
	fake := newFakeRedis()
	fake.values["k"] = `["a"]`
	fake.getErr = errors.New("connection reset")

	_, ok := newTestCache(fake).Get(context.Background(), "k")
	assert.False(t, ok)
}

func TestProjectionCache_WriteErrorIsSwallowed(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	fake.setErr = errors.New("READONLY")
	c := newTestCache(fake)

	assert.NotPanics(t, func() { c.Set(ctx, "k", []string{"a"}) })
	assert.Equal(t, 1, fake.setCalls)
	_, ok := c.Get(ctx, "k")
	assert.False(t, ok)
}

func TestNewRedis_DisabledWithoutAddr(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())
	assert.Nil(t, r)
	assert.Error(t, r.Ping(context.Background()))
	r.Close()
}

func TestProjectionCache_NilIsNoop(t *testing.T) {
	c := NewProjectionCache(nil, time.Minute, zap.NewNop())
	assert.Nil(t, c)

	c.Set(context.Background(), "k", []string{"a"})
	ids, ok := c.Get(context.Background(), "k")
	assert.False(t, ok)
	assert.Nil(t, ids)
}
