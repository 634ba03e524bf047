package scheduling

import (
	"context"
	"fmt"

	"consultify/utils"

	"github.com/go-redis/redis/v8"
)

// IdempotencyStore remembers which booking a client-supplied key produced,
// so a retried create returns the original booking instead of a duplicate.
type IdempotencyStore interface {
	// Lookup returns the booking id previously recorded for (clientID, key).
	Lookup(ctx context.Context, clientID, key string) (string, bool, error)
	// Remember records the booking id produced for (clientID, key). Returns
	// false when another request already claimed the key.
	Remember(ctx context.Context, clientID, key, bookingID string) (bool, error)
}

// RedisIdempotencyStore is the production implementation backed by the
// shared cache client.
type RedisIdempotencyStore struct {
	Client *redis.Client
}

func idempotencyKey(clientID, key string) string {
	return utils.IdempotencyCachePrefix + clientID + ":" + key
}

func (s *RedisIdempotencyStore) Lookup(ctx context.Context, clientID, key string) (string, bool, error) {
	val, err := s.Client.Get(ctx, idempotencyKey(clientID, key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("idempotency lookup failed: %w", err)
	}
	return val, true, nil
}

func (s *RedisIdempotencyStore) Remember(ctx context.Context, clientID, key, bookingID string) (bool, error) {
	ok, err := s.Client.SetNX(ctx, idempotencyKey(clientID, key), bookingID, utils.IdempotencyCacheTTL).Result()
	if err != nil {
		return false, fmt.Errorf("idempotency store failed: %w", err)
	}
	return ok, nil
}
