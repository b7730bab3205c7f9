package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"metastar/utils"

	"github.com/go-redis/redis/v8"
)

// RedisConfigStore implements ConfigStore on the auth cache Redis instance.
// Documents are keyed "data:<subject>" with no TTL; last write wins.
type RedisConfigStore struct {
	Client *redis.Client
}

func (s *RedisConfigStore) Save(ctx context.Context, subject string, doc json.RawMessage) error {
	if err := s.Client.Set(ctx, utils.UserDataPrefix+subject, []byte(doc), 0).Err(); err != nil {
		return fmt.Errorf("failed to save user document: %w", err)
	}
	return nil
}

func (s *RedisConfigStore) Load(ctx context.Context, subject string) (json.RawMessage, error) {
	raw, err := s.Client.Get(ctx, utils.UserDataPrefix+subject).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user document: %w", err)
	}
	return json.RawMessage(raw), nil
}
