package multi

import (
	"errors"
	"fmt"
	"io"

	"github.com/status-im/dashboard-client/session"
)

var _ session.Store = (*LayeredStore)(nil)

// Level reports which layer answered a lookup
type Level string

const (
	LevelMiss Level = "miss"
)

// LevelFromIndex names layer i as l1, l2, ...
func LevelFromIndex(i int) Level {
	return Level(fmt.Sprintf("l%d", i+1))
}

// LayeredStore reads through an ordered list of stores and writes to all of them
type LayeredStore struct {
	stores            []session.Store
	logger            session.Logger
	enablePropagation bool
}

type Option func(*LayeredStore)

func WithLogger(logger session.Logger) Option {
	return func(ls *LayeredStore) {
		ls.logger = logger
	}
}

// NewLayeredStore creates a store over stores, fastest first. With
// propagation enabled a hit in a later layer is copied into the earlier ones.
func NewLayeredStore(stores []session.Store, enablePropagation bool, opts ...Option) *LayeredStore {
	ls := &LayeredStore{
		stores:            stores,
		logger:            session.NoopLogger{},
		enablePropagation: enablePropagation,
	}

	for _, opt := range opts {
		opt(ls)
	}

	return ls
}

func (ls *LayeredStore) Get(key string) (string, bool) {
	value, level := ls.GetWithLevel(key)
	return value, level != LevelMiss
}

// GetWithLevel returns the value together with the layer that held it
func (ls *LayeredStore) GetWithLevel(key string) (string, Level) {
	if len(ls.stores) == 0 {
		ls.logger.Warn("No session stores available for get operation", "key", key)
		return "", LevelMiss
	}

	for i, s := range ls.stores {
		value, found := s.Get(key)
		if !found {
			continue
		}
		if i > 0 && ls.enablePropagation {
			for j := 0; j < i; j++ {
				ls.stores[j].Set(key, value)
			}
		}
		return value, LevelFromIndex(i)
	}

	return "", LevelMiss
}

func (ls *LayeredStore) Set(key, value string) {
	if len(ls.stores) == 0 {
		ls.logger.Warn("No session stores available for set operation", "key", key)
		return
	}

	for _, s := range ls.stores {
		s.Set(key, value)
	}
}

func (ls *LayeredStore) Delete(key string) {
	if len(ls.stores) == 0 {
		ls.logger.Warn("No session stores available for delete operation", "key", key)
		return
	}

	for _, s := range ls.stores {
		s.Delete(key)
	}
}

// Len returns the number of layers
func (ls *LayeredStore) Len() int {
	return len(ls.stores)
}

// Close closes every layer that holds resources
func (ls *LayeredStore) Close() error {
	var errs []error
	for _, s := range ls.stores {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
