package l1

import (
	"context"
	"errors"
	"time"

	"github.com/allegro/bigcache/v3"

	"github.com/status-im/dashboard-client/scheduler"
	"github.com/status-im/dashboard-client/session"
)

const backendName = "memory"

// Ensure MemoryStore implements session.Store
var _ session.Store = (*MemoryStore)(nil)

// MemoryStore keeps session values in process using BigCache. Entries live
// for the configured session TTL.
type MemoryStore struct {
	cache            *bigcache.BigCache
	logger           session.Logger
	metrics          session.MetricsRecorder
	metricsScheduler *scheduler.Scheduler
	metricsInterval  time.Duration
	maxEntrySize     int
}

// Option is a functional option for configuring MemoryStore
type Option func(*MemoryStore)

// WithLogger sets the logger for MemoryStore
func WithLogger(logger session.Logger) Option {
	return func(ms *MemoryStore) {
		ms.logger = logger
	}
}

// WithMetrics sets the metrics recorder for MemoryStore
func WithMetrics(metrics session.MetricsRecorder) Option {
	return func(ms *MemoryStore) {
		ms.metrics = metrics
	}
}

// WithMetricsInterval sets how often the key count is published
func WithMetricsInterval(interval time.Duration) Option {
	return func(ms *MemoryStore) {
		ms.metricsInterval = interval
	}
}

// NewMemoryStore creates a new MemoryStore instance
func NewMemoryStore(cfg *session.MemoryConfig, opts ...Option) (*MemoryStore, error) {
	cfg.ApplyDefaults()

	config := bigcache.DefaultConfig(cfg.SessionTTL)
	config.HardMaxCacheSize = cfg.Size
	config.Verbose = false
	config.MaxEntrySize = cfg.MaxEntrySize
	config.Shards = cfg.Shards
	config.MaxEntriesInWindow = 1024

	c, err := bigcache.New(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ms := &MemoryStore{
		cache:           c,
		logger:          session.NoopLogger{},
		metrics:         session.NoopMetrics{},
		metricsInterval: 30 * time.Second,
		maxEntrySize:    cfg.MaxEntrySize,
	}

	for _, opt := range opts {
		opt(ms)
	}

	ms.metricsScheduler = scheduler.New(ms.metricsInterval, ms.updateMetrics, scheduler.WithImmediateRun())
	ms.metricsScheduler.Start(context.Background())

	return ms, nil
}

// Get returns the value stored under key
func (ms *MemoryStore) Get(key string) (string, bool) {
	data, err := ms.cache.Get(key)
	if err != nil {
		if !errors.Is(err, bigcache.ErrEntryNotFound) {
			ms.logger.Warn("Session store get failed", "key", key, "error", err)
			ms.metrics.RecordStoreError(backendName, "read")
		}
		return "", false
	}

	return string(data), true
}

// Set stores value under key for the session TTL
func (ms *MemoryStore) Set(key, value string) {
	if len(key)+len(value) > ms.maxEntrySize {
		ms.logger.Warn("Session entry too large, skipping",
			"key", key,
			"size", len(value),
			"max_size", ms.maxEntrySize)
		ms.metrics.RecordStoreError(backendName, "entry_too_large")
		return
	}

	if err := ms.cache.Set(key, []byte(value)); err != nil {
		ms.logger.Error("Failed to set session entry", "key", key, "error", err)
		ms.metrics.RecordStoreError(backendName, "write")
	}
}

// Delete removes key from the store
func (ms *MemoryStore) Delete(key string) {
	_ = ms.cache.Delete(key)
}

// Len returns the number of stored entries
func (ms *MemoryStore) Len() int {
	return ms.cache.Len()
}

// Close stops metrics collection and releases the cache
func (ms *MemoryStore) Close() error {
	if ms.metricsScheduler != nil {
		ms.metricsScheduler.Stop()
	}

	return ms.cache.Close()
}

func (ms *MemoryStore) updateMetrics() {
	ms.metrics.UpdateStoreKeys(backendName, int64(ms.cache.Len()))
}
