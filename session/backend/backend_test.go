package backend

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/dashboard-client/session"
	"github.com/status-im/dashboard-client/session/l1"
)

func TestOpen_DefaultsToMemory(t *testing.T) {
	store, err := Open(&session.Config{}, nil, nil)
	require.NoError(t, err)
	defer store.Close()

	_, ok := store.(*l1.MemoryStore)
	assert.True(t, ok, "expected memory store, got %T", store)

	store.Set("dashTab", "second")
	value, found := store.Get("dashTab")
	assert.True(t, found)
	assert.Equal(t, "second", value)
}

func TestOpen_None(t *testing.T) {
	store, err := Open(&session.Config{Backend: session.BackendNone}, nil, nil)
	require.NoError(t, err)

	store.Set("dashTab", "second")
	_, found := store.Get("dashTab")
	assert.False(t, found)
	assert.NoError(t, store.Close())
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(&session.Config{Backend: "etcd"}, nil, nil)
	assert.Error(t, err)

	_, err = Open(&session.Config{Backend: session.BackendKeyDB}, nil, nil)
	assert.Error(t, err)

	_, err = Open(&session.Config{Backend: session.BackendLayered}, nil, nil)
	assert.Error(t, err)
}

func TestOpen_KeyDBUnreachable(t *testing.T) {
	cfg := &session.Config{
		Backend: session.BackendKeyDB,
		KeyDB: session.KeyDBConfig{
			URL:        "redis://127.0.0.1:1",
			Connection: session.ConnectionConfig{ConnectTimeout: 200 * time.Millisecond},
		},
	}

	_, err := Open(cfg, nil, nil)
	assert.Error(t, err)
}

func TestOpen_LayeredKeyDBUnreachable(t *testing.T) {
	cfg := &session.Config{
		Backend: session.BackendLayered,
		KeyDB: session.KeyDBConfig{
			URL:        "redis://127.0.0.1:1",
			Connection: session.ConnectionConfig{ConnectTimeout: 200 * time.Millisecond},
		},
	}

	_, err := Open(cfg, nil, nil)
	assert.Error(t, err)
}
