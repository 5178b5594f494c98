package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConfirmationStore implements usecase.ConfirmationStore using Redis. One
// pending operation per key; the TTL bounds how long a parked mutation can
// wait for its confirmation.
type ConfirmationStore struct {
	client *redis.Client
	prefix string
}

// NewConfirmationStore creates a new ConfirmationStore.
func NewConfirmationStore(client *redis.Client) *ConfirmationStore {
	return &ConfirmationStore{
		client: client,
		prefix: "pending:",
	}
}

// Put parks a pending operation, replacing any previous one for the key.
func (s *ConfirmationStore) Put(ctx context.Context, key string, payload []byte, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefix+key, payload, ttl).Err()
}

// Get retrieves a pending operation. Returns (nil, nil) when none exists.
func (s *ConfirmationStore) Get(ctx context.Context, key string) ([]byte, error) {
	payload, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Delete removes a pending operation after it is executed or abandoned.
func (s *ConfirmationStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}
