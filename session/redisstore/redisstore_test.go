package redisstore

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JeanGrijp/go-csrf-session/internal/random"
)

// dialTest connects to the Redis named by REDIS_ADDR or skips the test.
func dialTest(t *testing.T) *Store {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set")
	}

	prefix, err := random.URLString(8)
	require.NoError(t, err)

	s, err := Dial(context.Background(), Options{Addr: addr, Prefix: "test-" + prefix})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestKey(t *testing.T) {
	assert.Equal(t, "session:abc", New(nil, "session").key("abc"))
	assert.Equal(t, "abc", New(nil, "").key("abc"))
}

func TestDialUnreachable(t *testing.T) {
	_, err := Dial(context.Background(), Options{Addr: "127.0.0.1:1", DialTimeout: 200 * time.Millisecond})
	require.Error(t, err)
}

func TestCommitFindDelete(t *testing.T) {
	s := dialTest(t)
	ctx := context.Background()

	_, found, err := s.Find(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Commit(ctx, "abc", []byte(`{"k":"v"}`), time.Now().Add(time.Minute)))

	b, found, err := s.Find(ctx, "abc")
	require.NoError(t, err)
	require.True(t, found)
	assert.JSONEq(t, `{"k":"v"}`, string(b))

	ttl, err := s.client.TTL(ctx, s.key("abc")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))

	require.NoError(t, s.Delete(ctx, "abc"))
	_, found, err = s.Find(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCommitInThePastDeletes(t *testing.T) {
	s := dialTest(t)
	ctx := context.Background()

	require.NoError(t, s.Commit(ctx, "abc", []byte("x"), time.Now().Add(time.Minute)))
	require.NoError(t, s.Commit(ctx, "abc", []byte("x"), time.Now().Add(-time.Second)))

	_, found, err := s.Find(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, found)
}
