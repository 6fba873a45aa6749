package session

import (
	"fmt"
	"time"
)

const (
	BackendMemory  = "memory"
	BackendKeyDB   = "keydb"
	BackendLayered = "layered"
	BackendNone    = "none"
)

// Config selects and configures the session store backend
type Config struct {
	Backend string       `yaml:"backend" json:"backend"`
	Memory  MemoryConfig `yaml:"memory" json:"memory"`
	KeyDB   KeyDBConfig  `yaml:"keydb" json:"keydb"`
}

func (c *Config) ApplyDefaults() {
	if c.Backend == "" {
		c.Backend = BackendMemory
	}
	c.Memory.ApplyDefaults()
	c.KeyDB.ApplyDefaults()
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory, BackendNone:
		return nil
	case BackendKeyDB, BackendLayered:
		if c.KeyDB.URL == "" {
			return fmt.Errorf("keydb url is required for the %s session backend", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("unknown session backend '%s': must be one of 'memory', 'keydb', 'layered', 'none'", c.Backend)
	}
}

// MemoryConfig represents the in-process (bigcache) store configuration
type MemoryConfig struct {
	SessionTTL   time.Duration `yaml:"session_ttl" json:"session_ttl"`
	Size         int           `yaml:"size" json:"size"` // MB
	MaxEntrySize int           `yaml:"max_entry_size" json:"max_entry_size"`
	Shards       int           `yaml:"shards" json:"shards"` // must be power of 2
}

func (c *MemoryConfig) ApplyDefaults() {
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.Size == 0 {
		c.Size = 8
	}
	if c.MaxEntrySize == 0 {
		c.MaxEntrySize = 4096
	}
	if c.Shards == 0 {
		c.Shards = 16 // power of 2
	}
}

// KeyDBConfig represents the KeyDB/Redis store configuration
type KeyDBConfig struct {
	URL        string           `yaml:"url" json:"url"`
	Prefix     string           `yaml:"prefix" json:"prefix"`
	SessionTTL time.Duration    `yaml:"session_ttl" json:"session_ttl"`
	Connection ConnectionConfig `yaml:"connection" json:"connection"`
	Keepalive  KeepaliveConfig  `yaml:"keepalive" json:"keepalive"`
}

func (c *KeyDBConfig) ApplyDefaults() {
	if c.Prefix == "" {
		c.Prefix = "dashboard:session:"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}

	if c.Connection.ConnectTimeout == 0 {
		c.Connection.ConnectTimeout = 1000 * time.Millisecond
	}
	if c.Connection.SendTimeout == 0 {
		c.Connection.SendTimeout = 1000 * time.Millisecond
	}
	if c.Connection.ReadTimeout == 0 {
		c.Connection.ReadTimeout = 1000 * time.Millisecond
	}

	if c.Keepalive.PoolSize == 0 {
		c.Keepalive.PoolSize = 4
	}
	if c.Keepalive.MaxIdleTimeout == 0 {
		c.Keepalive.MaxIdleTimeout = 10000 * time.Millisecond
	}
}

type ConnectionConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout" json:"connect_timeout"`
	SendTimeout    time.Duration `yaml:"send_timeout" json:"send_timeout"`
	ReadTimeout    time.Duration `yaml:"read_timeout" json:"read_timeout"`
}

// KeepaliveConfig represents connection pool settings
type KeepaliveConfig struct {
	PoolSize       int           `yaml:"pool_size" json:"pool_size"` // max connections in pool
	MaxIdleTimeout time.Duration `yaml:"max_idle_timeout" json:"max_idle_timeout"`
}
