package storage

import (
	"context"
	"encoding/json"
)

// ConfigStore persists each user's arbitrary JSON configuration document.
// Saves overwrite unconditionally; loads of a missing document return
// (nil, nil) rather than an error.
type ConfigStore interface {
	Save(ctx context.Context, subject string, doc json.RawMessage) error
	Load(ctx context.Context, subject string) (json.RawMessage, error)
}
