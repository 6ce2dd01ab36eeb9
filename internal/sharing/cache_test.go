package sharing

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *ListCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewListCache(client)
}

func TestListCache_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	list := &SharedList{
		ID:       "3e8f0c6e-0000-0000-0000-000000000001",
		PublicID: "list-12345-6789",
		OwnerID:  "3e8f0c6e-0000-0000-0000-000000000002",
	}

	_, ok := cache.Get(ctx, list.PublicID)
	assert.False(t, ok, "expected miss before Put")

	cache.Put(ctx, list)

	got, ok := cache.Get(ctx, list.PublicID)
	require.True(t, ok)
	assert.Equal(t, list.ID, got.ID)
	assert.Equal(t, list.PublicID, got.PublicID)
	assert.Equal(t, list.OwnerID, got.OwnerID)
}

func TestListCache_MissForUnknownID(t *testing.T) {
	cache := newTestCache(t)

	_, ok := cache.Get(context.Background(), "list-00000-0000")
	assert.False(t, ok)
}

func TestListCache_NilClientIsDisabled(t *testing.T) {
	cache := NewListCache(nil)
	ctx := context.Background()

	cache.Put(ctx, &SharedList{PublicID: "list-12345-6789"})
	_, ok := cache.Get(ctx, "list-12345-6789")
	assert.False(t, ok)
}
