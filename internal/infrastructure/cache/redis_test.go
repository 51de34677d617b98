package cache

import (
	"context"
	"testing"
	"time"

	"next-hire/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabled_BypassesEveryCall(t *testing.T) {
	ctx := context.Background()
	r := Disabled()

	require.NoError(t, r.SetJSON(ctx, "k", map[string]int{"a": 1}, time.Minute))

	var out map[string]int
	hit, err := r.GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, hit)

	n, err := r.Counter(ctx, "jobs:list:gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = r.Incr(ctx, "jobs:list:gen")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	assert.NoError(t, r.Close())
}

func TestNilRedisIsSafe(t *testing.T) {
	var r *Redis
	hit, err := r.GetJSON(context.Background(), "k", &struct{}{})
	assert.NoError(t, err)
	assert.False(t, hit)
}

func TestNewRedis_EmptyHostSkipsDial(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, nil)
	assert.ErrorIs(t, r.Ping(context.Background()), ErrUnavailable)
	assert.Equal(t, DefaultTTL, r.ttl)
}
