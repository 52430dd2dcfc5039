package session

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
)

type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore persists session records in Redis so multiple portal
// instances share one session space.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, token string) *Record {
	raw, err := s.rdb.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		// redis.Nil and transport errors both degrade to an absent session.
		return nil
	}
	return decodeRecord(raw)
}

func (s *RedisStore) Save(ctx context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, keyPrefix+rec.AccessToken, raw, defaultTTL).Err()
}

func (s *RedisStore) Clear(ctx context.Context, token string) error {
	return s.rdb.Del(ctx, keyPrefix+token).Err()
}
