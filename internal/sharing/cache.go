package sharing

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix = "share:list:" // share:list:{public_id} -> SharedList JSON
	listTTL       = 15 * time.Minute
)

// ListCache memoizes public-id → SharedList lookups in Redis. Lists are
// immutable once created, so a TTL is the only eviction needed. A nil
// client disables the cache entirely.
type ListCache struct {
	client *redis.Client
}

func NewListCache(client *redis.Client) *ListCache {
	return &ListCache{client: client}
}

func (c *ListCache) Get(ctx context.Context, publicID string) (*SharedList, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(ctx, listKeyPrefix+publicID).Result()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("[sharing] cache get public_id=%s error=%v", publicID, err)
		return nil, false
	}

	var l SharedList
	if err := json.Unmarshal([]byte(data), &l); err != nil {
		return nil, false
	}
	return &l, true
}

func (c *ListCache) Put(ctx context.Context, l *SharedList) {
	if c == nil || c.client == nil || l == nil {
		return
	}

	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+l.PublicID, data, listTTL).Err(); err != nil {
		log.Printf("[sharing] cache put public_id=%s error=%v", l.PublicID, err)
	}
}
