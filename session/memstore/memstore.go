// Package memstore implements an in-process session store on top of go-cache.
// Sessions are lost on restart and not shared between processes; use
// redisstore for anything beyond a single instance.
package memstore

import (
	"bytes"
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Store struct {
	c *gocache.Cache
}

// New returns an empty store that purges expired entries every cleanup interval.
func New(cleanup time.Duration) *Store {
	return &Store{c: gocache.New(gocache.NoExpiration, cleanup)}
}

func (s *Store) Find(_ context.Context, id string) ([]byte, bool, error) {
	v, ok := s.c.Get(id)
	if !ok {
		return nil, false, nil
	}
	b, ok := v.([]byte)
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(b), true, nil
}

func (s *Store) Commit(_ context.Context, id string, data []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		s.c.Delete(id)
		return nil
	}
	s.c.Set(id, bytes.Clone(data), ttl)
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	s.c.Delete(id)
	return nil
}

// Len returns the number of entries, including expired ones not yet purged.
func (s *Store) Len() int {
	return s.c.ItemCount()
}
