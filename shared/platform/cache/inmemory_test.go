package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestInMemoryCache_SetGetDelete(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, Key("customer", 1), item{ID: 1, Name: "Ana"}, 0))

	var got item
	ok, err := c.Get(ctx, "customer:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, item{ID: 1, Name: "Ana"}, got)

	require.NoError(t, c.Delete(ctx, "customer:1"))
	ok, err = c.Get(ctx, "customer:1", &got)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryCache_Expiry(t *testing.T) {
	c := NewInMemoryCache(10*time.Millisecond, time.Hour)
	defer c.Stop()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", "v", 0))
	time.Sleep(20 * time.Millisecond)

	var s string
	ok, err := c.Get(ctx, "k", &s)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestInMemoryCache_StopTwice(t *testing.T) {
	c := NewInMemoryCache(time.Minute, time.Minute)
	c.Stop()
	assert.NotPanics(t, c.Stop)
}
