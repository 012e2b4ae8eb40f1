// Package redisstore implements a session store backed by Redis, so that
// sessions survive restarts and are shared across instances.
package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultPrefix = "session"

type Store struct {
	client redis.UniversalClient
	prefix string
}

// Options configures Dial.
type Options struct {
	Addr     string
	Password string
	DB       int
	Prefix   string

	// DialTimeout bounds the initial ping. Defaults to 5s.
	DialTimeout time.Duration
}

// New wraps an existing client. Keys are stored as prefix + ":" + id;
// an empty prefix stores bare ids.
func New(client redis.UniversalClient, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Dial connects to Redis and verifies the connection with a ping.
func Dial(ctx context.Context, opt Options) (*Store, error) {
	if opt.Prefix == "" {
		opt.Prefix = DefaultPrefix
	}
	if opt.DialTimeout <= 0 {
		opt.DialTimeout = 5 * time.Second
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     opt.Addr,
		Password: opt.Password,
		DB:       opt.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, opt.DialTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redisstore: ping %s: %w", opt.Addr, err)
	}

	return New(rdb, opt.Prefix), nil
}

func (s *Store) key(id string) string {
	if s.prefix == "" {
		return id
	}
	return s.prefix + ":" + id
}

func (s *Store) Find(ctx context.Context, id string) ([]byte, bool, error) {
	b, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redisstore: get: %w", err)
	}
	return b, true, nil
}

func (s *Store) Commit(ctx context.Context, id string, data []byte, expiry time.Time) error {
	ttl := time.Until(expiry)
	if ttl <= 0 {
		return s.Delete(ctx, id)
	}
	if err := s.client.Set(ctx, s.key(id), data, ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: set: %w", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("redisstore: del: %w", err)
	}
	return nil
}

// Close closes the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}
