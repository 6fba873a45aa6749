package session

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_UnmarshalJSON_DurationStrings(t *testing.T) {
	data := `{
		"backend": "layered",
		"memory": {"session_ttl": "30m", "size": 4},
		"keydb": {
			"url": "redis://keydb:6379",
			"session_ttl": "2h",
			"connection": {"connect_timeout": "250ms", "send_timeout": "1s", "read_timeout": "1.5s"},
			"keepalive": {"pool_size": 8, "max_idle_timeout": "1m"}
		}
	}`

	var cfg Config
	require.NoError(t, json.Unmarshal([]byte(data), &cfg))

	assert.Equal(t, 30*time.Minute, cfg.Memory.SessionTTL)
	assert.Equal(t, 4, cfg.Memory.Size)
	assert.Equal(t, "redis://keydb:6379", cfg.KeyDB.URL)
	assert.Equal(t, 2*time.Hour, cfg.KeyDB.SessionTTL)
	assert.Equal(t, 250*time.Millisecond, cfg.KeyDB.Connection.ConnectTimeout)
	assert.Equal(t, time.Second, cfg.KeyDB.Connection.SendTimeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.KeyDB.Connection.ReadTimeout)
	assert.Equal(t, 8, cfg.KeyDB.Keepalive.PoolSize)
	assert.Equal(t, time.Minute, cfg.KeyDB.Keepalive.MaxIdleTimeout)
}

func TestConfig_UnmarshalJSON_DurationNanoseconds(t *testing.T) {
	var cfg MemoryConfig
	require.NoError(t, json.Unmarshal([]byte(`{"session_ttl": 60000000000}`), &cfg))

	assert.Equal(t, time.Minute, cfg.SessionTTL)
}

func TestConfig_UnmarshalJSON_KeepsUnsetDurations(t *testing.T) {
	cfg := KeyDBConfig{SessionTTL: time.Hour}
	cfg.Connection.ReadTimeout = time.Second

	require.NoError(t, json.Unmarshal([]byte(`{"prefix": "p:", "connection": {"send_timeout": "2s"}}`), &cfg))

	assert.Equal(t, "p:", cfg.Prefix)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, time.Second, cfg.Connection.ReadTimeout)
	assert.Equal(t, 2*time.Second, cfg.Connection.SendTimeout)
}

func TestConfig_UnmarshalJSON_InvalidDuration(t *testing.T) {
	var cfg MemoryConfig

	assert.Error(t, json.Unmarshal([]byte(`{"session_ttl": "soon"}`), &cfg))
	assert.Error(t, json.Unmarshal([]byte(`{"session_ttl": true}`), &cfg))
}
