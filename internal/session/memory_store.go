package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/patrickmn/go-cache"
)

type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore keeps session records in process memory. Records expire
// after the default TTL; expired items are purged every 10 minutes.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(defaultTTL, 10*time.Minute),
	}
}

func (s *MemoryStore) Load(_ context.Context, token string) *Record {
	x, found := s.cache.Get(keyPrefix + token)
	if !found {
		return nil
	}
	raw, ok := x.([]byte)
	if !ok {
		return nil
	}
	return decodeRecord(raw)
}

func (s *MemoryStore) Save(_ context.Context, rec *Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	s.cache.Set(keyPrefix+rec.AccessToken, raw, cache.DefaultExpiration)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, token string) error {
	s.cache.Delete(keyPrefix + token)
	return nil
}

// put stores a raw value without going through Record marshalling. Test
// hook for corrupt-payload scenarios.
func (s *MemoryStore) put(token string, raw []byte) {
	s.cache.Set(keyPrefix+token, raw, cache.DefaultExpiration)
}
