package l1

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/dashboard-client/session"
)

type recordingMetrics struct {
	mu     sync.Mutex
	errors []string
	keys   []int64
}

func (r *recordingMetrics) RecordStoreError(backend, kind string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, backend+":"+kind)
}

func (r *recordingMetrics) UpdateStoreKeys(backend string, count int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys = append(r.keys, count)
}

func (r *recordingMetrics) lastKeys() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.keys) == 0 {
		return -1
	}
	return r.keys[len(r.keys)-1]
}

func newTestStore(t *testing.T, opts ...Option) *MemoryStore {
	t.Helper()

	s, err := NewMemoryStore(&session.MemoryConfig{SessionTTL: time.Minute}, opts...)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Close()
	})
	return s
}

func TestNewMemoryStore(t *testing.T) {
	cfg := &session.MemoryConfig{}
	s, err := NewMemoryStore(cfg)
	require.NoError(t, err)
	defer s.Close()

	assert.NotNil(t, s.cache)
	assert.Equal(t, 4096, s.maxEntrySize)
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL)
	assert.True(t, s.metricsScheduler.IsRunning())
}

func TestMemoryStore_SetAndGet(t *testing.T) {
	s := newTestStore(t)

	s.Set("dashTab", "second")

	value, found := s.Get("dashTab")
	assert.True(t, found)
	assert.Equal(t, "second", value)
}

func TestMemoryStore_Overwrite(t *testing.T) {
	s := newTestStore(t)

	s.Set("dashTab", "first")
	s.Set("dashTab", "second")

	value, found := s.Get("dashTab")
	assert.True(t, found)
	assert.Equal(t, "second", value)
	assert.Equal(t, 1, s.Len())
}

func TestMemoryStore_GetMissing(t *testing.T) {
	metrics := &recordingMetrics{}
	s := newTestStore(t, WithMetrics(metrics))

	value, found := s.Get("missing")
	assert.False(t, found)
	assert.Empty(t, value)
	assert.Empty(t, metrics.errors, "a miss is not an error")
}

func TestMemoryStore_Delete(t *testing.T) {
	s := newTestStore(t)

	s.Set("dashTab", "second")
	s.Delete("dashTab")

	_, found := s.Get("dashTab")
	assert.False(t, found)

	s.Delete("never-set") // Should not panic
}

func TestMemoryStore_EntryTooLarge(t *testing.T) {
	metrics := &recordingMetrics{}
	s := newTestStore(t, WithMetrics(metrics))

	s.Set("big", strings.Repeat("x", 5000))

	_, found := s.Get("big")
	assert.False(t, found)
	assert.Equal(t, []string{"memory:entry_too_large"}, metrics.errors)
}

func TestMemoryStore_PublishesKeyCount(t *testing.T) {
	metrics := &recordingMetrics{}
	s := newTestStore(t, WithMetrics(metrics), WithMetricsInterval(20*time.Millisecond))

	assert.Equal(t, int64(0), metrics.lastKeys(), "immediate run publishes an empty store")

	s.Set("a", "1")
	s.Set("b", "2")

	assert.Eventually(t, func() bool {
		return metrics.lastKeys() == 2
	}, time.Second, 10*time.Millisecond)
}

func TestMemoryStore_Close(t *testing.T) {
	s, err := NewMemoryStore(&session.MemoryConfig{})
	require.NoError(t, err)

	assert.NoError(t, s.Close())
	assert.False(t, s.metricsScheduler.IsRunning())
}
