package l2

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/status-im/dashboard-client/session"
)

const backendName = "keydb"

var (
	_ session.Store       = (*KeyDBStore)(nil)
	_ session.KeyDbClient = (*redis.Client)(nil)
)

// KeyDBStore keeps session values in KeyDB/Redis so they survive process
// restarts. Keys are namespaced with the configured prefix.
type KeyDBStore struct {
	client  session.KeyDbClient
	cfg     *session.KeyDBConfig
	logger  session.Logger
	metrics session.MetricsRecorder
}

// Option is a functional option for configuring KeyDBStore
type Option func(*KeyDBStore)

// WithLogger sets the logger for KeyDBStore
func WithLogger(logger session.Logger) Option {
	return func(ks *KeyDBStore) {
		ks.logger = logger
	}
}

// WithMetrics sets the metrics recorder for KeyDBStore
func WithMetrics(metrics session.MetricsRecorder) Option {
	return func(ks *KeyDBStore) {
		ks.metrics = metrics
	}
}

// NewKeyDBStore creates a new KeyDBStore instance with provided client
func NewKeyDBStore(cfg *session.KeyDBConfig, client session.KeyDbClient, opts ...Option) *KeyDBStore {
	cfg.ApplyDefaults()

	ks := &KeyDBStore{
		client:  client,
		cfg:     cfg,
		logger:  session.NoopLogger{},
		metrics: session.NoopMetrics{},
	}

	for _, opt := range opts {
		opt(ks)
	}

	return ks
}

// Get returns the value stored under key
func (ks *KeyDBStore) Get(key string) (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), ks.cfg.Connection.ReadTimeout)
	defer cancel()

	value, err := ks.client.Get(ctx, ks.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false
		}
		ks.logger.Warn("Session store get failed", "key", key, "error", err)
		ks.metrics.RecordStoreError(backendName, "redis")
		return "", false
	}

	return value, true
}

// Set stores value under key for the session TTL
func (ks *KeyDBStore) Set(key, value string) {
	ctx, cancel := context.WithTimeout(context.Background(), ks.cfg.Connection.SendTimeout)
	defer cancel()

	if err := ks.client.Set(ctx, ks.key(key), value, ks.cfg.SessionTTL).Err(); err != nil {
		ks.logger.Warn("Failed to set session entry", "key", key, "error", err)
		ks.metrics.RecordStoreError(backendName, "redis")
	}
}

// Delete removes key from the store
func (ks *KeyDBStore) Delete(key string) {
	ctx, cancel := context.WithTimeout(context.Background(), ks.cfg.Connection.SendTimeout)
	defer cancel()

	if err := ks.client.Del(ctx, ks.key(key)).Err(); err != nil {
		ks.logger.Warn("Failed to delete session entry", "key", key, "error", err)
	}
}

// Close closes the KeyDB connection
func (ks *KeyDBStore) Close() error {
	return ks.client.Close()
}

func (ks *KeyDBStore) key(key string) string {
	return ks.cfg.Prefix + key
}

// ClientOptions maps cfg onto go-redis options. The URL follows
// redis://[user:password@]host[:port][/db].
func ClientOptions(cfg *session.KeyDBConfig) (*redis.Options, error) {
	cfg.ApplyDefaults()

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid keydb url: %w", err)
	}

	opts.DialTimeout = cfg.Connection.ConnectTimeout
	opts.ReadTimeout = cfg.Connection.ReadTimeout
	opts.WriteTimeout = cfg.Connection.SendTimeout
	opts.PoolSize = cfg.Keepalive.PoolSize
	opts.IdleTimeout = cfg.Keepalive.MaxIdleTimeout
	return opts, nil
}

// Dial opens a go-redis client for cfg and pings it once. A session store
// that cannot be reached at startup is an error rather than a silent miss.
func Dial(cfg *session.KeyDBConfig, logger session.Logger) (session.KeyDbClient, error) {
	opts, err := ClientOptions(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = session.NoopLogger{}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Connection.ConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("keydb at %s is unreachable: %w", opts.Addr, err)
	}

	logger.Debug("Session store connected", "backend", backendName, "address", opts.Addr, "db", opts.DB)
	return client, nil
}
