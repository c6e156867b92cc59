package idempotency

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, "invest", time.Hour, time.Minute), mr
}

func TestStore_ClaimCompleteReplay(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	stored, err := store.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, stored)

	_, err = store.Claim(ctx, "abc")
	assert.ErrorIs(t, err, ErrInFlight)
	assert.Equal(t, time.Minute, mr.TTL("idempotency:invest:abc"))

	require.NoError(t, store.Complete(ctx, "abc", []byte(`{"id":1}`)))

	stored, err = store.Claim(ctx, "abc")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":1}`, string(stored))

	assert.Equal(t, time.Hour, mr.TTL("idempotency:invest:abc"))
}

func TestStore_Release(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.Claim(ctx, "k")
	require.NoError(t, err)
	require.NoError(t, store.Release(ctx, "k"))

	stored, err := store.Claim(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestStore_Expiry(t *testing.T) {
	store, mr := newStore(t)
	ctx := context.Background()

	_, err := store.Claim(ctx, "k")
	require.NoError(t, err)

	mr.FastForward(2 * time.Minute)

	stored, err := store.Claim(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, stored)

	require.NoError(t, store.Complete(ctx, "k", []byte(`{}`)))
	mr.FastForward(30 * time.Minute)

	stored, err = store.Claim(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(stored))
}

func TestNewStore_ClampsPendingTTL(t *testing.T) {
	tests := []struct {
		name    string
		pending time.Duration
		want    time.Duration
	}{
		{name: "shorter kept", pending: time.Minute, want: time.Minute},
		{name: "zero uses ttl", pending: 0, want: time.Hour},
		{name: "longer clamped", pending: 2 * time.Hour, want: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore(nil, "invest", time.Hour, tt.pending)
			assert.Equal(t, tt.want, s.pendingTTL)
		})
	}
}

func TestStore_RedisDown(t *testing.T) {
	store, mr := newStore(t)
	mr.Close()

	_, err := store.Claim(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInFlight)
}
