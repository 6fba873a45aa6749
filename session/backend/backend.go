// Package backend opens the session store selected by session.Config.
package backend

import (
	"fmt"
	"io"

	"github.com/status-im/dashboard-client/session"
	"github.com/status-im/dashboard-client/session/l1"
	"github.com/status-im/dashboard-client/session/l2"
	"github.com/status-im/dashboard-client/session/multi"
	"github.com/status-im/dashboard-client/session/noop"
)

// Store is a session store that owns resources released by Close
type Store interface {
	session.Store
	io.Closer
}

type nopCloser struct {
	session.Store
}

func (nopCloser) Close() error {
	return nil
}

// Open builds the configured backend
func Open(cfg *session.Config, logger session.Logger, metrics session.MetricsRecorder) (Store, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session config: %w", err)
	}

	if logger == nil {
		logger = session.NoopLogger{}
	}
	if metrics == nil {
		metrics = session.NoopMetrics{}
	}

	switch cfg.Backend {
	case session.BackendKeyDB:
		client, err := l2.Dial(&cfg.KeyDB, logger)
		if err != nil {
			return nil, err
		}
		return l2.NewKeyDBStore(&cfg.KeyDB, client, l2.WithLogger(logger), l2.WithMetrics(metrics)), nil
	case session.BackendLayered:
		client, err := l2.Dial(&cfg.KeyDB, logger)
		if err != nil {
			return nil, err
		}
		memory, err := l1.NewMemoryStore(&cfg.Memory, l1.WithLogger(logger), l1.WithMetrics(metrics))
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to create memory session store: %w", err)
		}
		keydb := l2.NewKeyDBStore(&cfg.KeyDB, client, l2.WithLogger(logger), l2.WithMetrics(metrics))
		return multi.NewLayeredStore([]session.Store{memory, keydb}, true, multi.WithLogger(logger)), nil
	case session.BackendNone:
		return nopCloser{noop.NewNoOpStore()}, nil
	default:
		store, err := l1.NewMemoryStore(&cfg.Memory, l1.WithLogger(logger), l1.WithMetrics(metrics))
		if err != nil {
			return nil, fmt.Errorf("failed to create memory session store: %w", err)
		}
		return store, nil
	}
}
