package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:"

// RevocationStore keeps logged-out token digests as keys that expire together
// with the token, so revocations survive a restart and are shared by replicas.
type RevocationStore struct {
	client *redis.Client
	now    func() time.Time
}

func NewRevocationStore(addr, username, password string, db int) *RevocationStore {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})
	return &RevocationStore{client: client, now: time.Now}
}

// Revoke is a no-op for a token that has already expired.
func (r *RevocationStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	ttl := until.Sub(r.now())
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (r *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := r.client.Exists(ctx, revokedKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *RevocationStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RevocationStore) Close() error {
	return r.client.Close()
}
