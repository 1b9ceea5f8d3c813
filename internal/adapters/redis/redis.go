// adapters/redis/redis.go
package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CartStore persists cart snapshots as plain string values. A zero ttl keeps
// snapshots until they are deleted.
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartStore(addr, username, password string, db int, ttl time.Duration) *CartStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	return &CartStore{client: client, ttl: ttl}
}

func (c *CartStore) Load(ctx context.Context, namespace string) ([]byte, error) {
	data, err := c.client.Get(ctx, namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *CartStore) Save(ctx context.Context, namespace string, snapshot []byte) error {
	return c.client.Set(ctx, namespace, snapshot, c.ttl).Err()
}

func (c *CartStore) Delete(ctx context.Context, namespace string) error {
	return c.client.Del(ctx, namespace).Err()
}

func (c *CartStore) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *CartStore) Close() error {
	return c.client.Close()
}
