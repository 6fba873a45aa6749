package ratelimit

import (
	"math"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// RateLimit configures a token bucket. A zero RateLimitPerMinute disables limiting.
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" json:"rate_limit_per_minute"`
	Burst              int `yaml:"burst" json:"burst"`
}

// IRateLimiterManager provides a way to get a rate limiter for a target host
type IRateLimiterManager interface {
	GetLimiter(host string) *rate.Limiter
	ForRequest(req *http.Request) *rate.Limiter
}

var _ IRateLimiterManager = (*RateLimiterManager)(nil)

// RateLimiterManager manages per-host rate limiters for outgoing requests
type RateLimiterManager struct {
	mu            sync.RWMutex
	hostToLimiter map[string]*rate.Limiter
	defaults      RateLimit
	perHost       map[string]RateLimit
}

// NewRateLimiterManager creates a new rate limiter manager
func NewRateLimiterManager(defaults RateLimit, perHost map[string]RateLimit) *RateLimiterManager {
	return &RateLimiterManager{
		hostToLimiter: make(map[string]*rate.Limiter),
		defaults:      defaults,
		perHost:       normalizeHosts(perHost),
	}
}

// GetLimiter returns the limiter for host, creating it if missing.
// It returns nil when limiting is disabled for host.
func (m *RateLimiterManager) GetLimiter(host string) *rate.Limiter {
	host = strings.ToLower(host)

	m.mu.RLock()
	if lim, ok := m.hostToLimiter[host]; ok {
		m.mu.RUnlock()
		return lim
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	// Double-check after acquiring write lock
	if lim, ok := m.hostToLimiter[host]; ok {
		return lim
	}

	cfg := m.configForHost(host)
	if cfg.RateLimitPerMinute <= 0 {
		return nil
	}

	limit := rate.Limit(float64(cfg.RateLimitPerMinute) / 60.0)
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	limiter := rate.NewLimiter(limit, burst)
	m.hostToLimiter[host] = limiter
	return limiter
}

// ForRequest matches the httpclient rate limiter callback
func (m *RateLimiterManager) ForRequest(req *http.Request) *rate.Limiter {
	if req == nil || req.URL == nil {
		return nil
	}
	return m.GetLimiter(req.URL.Host)
}

func (m *RateLimiterManager) configForHost(host string) RateLimit {
	if cfg, ok := m.perHost[host]; ok {
		return cfg
	}
	return m.defaults
}

func normalizeHosts(perHost map[string]RateLimit) map[string]RateLimit {
	out := make(map[string]RateLimit, len(perHost))
	for host, cfg := range perHost {
		out[strings.ToLower(host)] = cfg
	}
	return out
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
