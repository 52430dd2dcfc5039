package session

import (
	"context"
	"time"
)

// keyPrefix matches the client-era storage key for the session record.
const keyPrefix = "userData:"

const defaultTTL = 24 * time.Hour

// Store is the only component that touches session persistence. Load
// returns nil for missing or malformed records instead of failing.
type Store interface {
	Load(ctx context.Context, token string) *Record
	Save(ctx context.Context, rec *Record) error
	Clear(ctx context.Context, token string) error
}
