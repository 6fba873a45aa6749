package noop

import "github.com/status-im/dashboard-client/session"

// Ensure NoOpStore implements session.Store
var _ session.Store = (*NoOpStore)(nil)

// NoOpStore remembers nothing; every Get is a miss
type NoOpStore struct{}

// NewNoOpStore creates a new no-operation store instance
func NewNoOpStore() session.Store {
	return &NoOpStore{}
}

func (n *NoOpStore) Get(key string) (string, bool) {
	return "", false
}

func (n *NoOpStore) Set(key, value string) {
}

func (n *NoOpStore) Delete(key string) {
}
