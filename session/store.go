package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Store persists encoded session data keyed by session id.
type Store interface {
	// Find returns the data for id. A missing or expired session reports
	// found == false with a nil error; err is reserved for backend failures.
	Find(ctx context.Context, id string) (data []byte, found bool, err error)

	// Commit stores data for id until expiry, overwriting any existing entry.
	Commit(ctx context.Context, id string, data []byte, expiry time.Time) error

	// Delete removes id. Deleting a missing id returns nil.
	Delete(ctx context.Context, id string) error
}

func encode(values map[string]string) ([]byte, error) {
	b, err := json.Marshal(values)
	if err != nil {
		return nil, fmt.Errorf("session: encoding values: %w", err)
	}
	return b, nil
}

func decode(b []byte) (map[string]string, error) {
	var values map[string]string
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, fmt.Errorf("session: decoding values: %w", err)
	}
	return values, nil
}
