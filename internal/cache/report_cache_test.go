package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "report", []byte(`{"total":3}`), time.Minute))

	val, ok, err := store.Get(ctx, "report")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `{"total":3}`, string(val))
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "report", []byte("x"), time.Minute))
	require.NoError(t, store.Delete(ctx, "report"))

	_, ok, err := store.Get(ctx, "report")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	// already expired on write
	require.NoError(t, store.Set(ctx, "report", []byte("x"), -time.Second))

	_, ok, err := store.Get(ctx, "report")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewFallsBackToMemory(t *testing.T) {
	// unroutable address: the constructor must return a usable fallback
	store, err := New("127.0.0.1:1", "", 0)
	require.Error(t, err)
	require.NotNil(t, store)

	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	val, ok, getErr := store.Get(ctx, "k")
	require.NoError(t, getErr)
	require.True(t, ok)
	assert.Equal(t, "v", string(val))
}
