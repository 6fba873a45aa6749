package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/status-im/dashboard-client/httpclient"
	"github.com/status-im/dashboard-client/ratelimit"
	"github.com/status-im/dashboard-client/session"
)

type Config struct {
	BaseURL               string                         `json:"base_url" yaml:"base_url"`
	LogoutPath            string                         `json:"logout_path" yaml:"logout_path"`
	LoginURL              string                         `json:"login_url" yaml:"login_url"`
	ConnectTimeoutSeconds int                            `json:"connect_timeout_seconds" yaml:"connect_timeout_seconds"`
	RequestTimeoutSeconds int                            `json:"request_timeout_seconds" yaml:"request_timeout_seconds"`
	RateLimit             ratelimit.RateLimit            `json:"rate_limit" yaml:"rate_limit"`
	RateLimitHosts        map[string]ratelimit.RateLimit `json:"rate_limit_hosts" yaml:"rate_limit_hosts"` // overrides RateLimit per host[:port]
	Tabs                  []string                       `json:"tabs" yaml:"tabs"`
	TabKey                string                         `json:"tab_key" yaml:"tab_key"`
	DefaultTab            string                         `json:"default_tab" yaml:"default_tab"`
	Session               session.Config                 `json:"session" yaml:"session"`
	MetricsEnabled        bool                           `json:"metrics_enabled" yaml:"metrics_enabled"`
}

type Option func(*Config)

func New(opts ...Option) *Config {
	cfg := &Config{
		BaseURL:               "http://localhost:8080",
		LogoutPath:            "/logout",
		LoginURL:              "http://localhost:8080/login.html",
		ConnectTimeoutSeconds: 10,
		RequestTimeoutSeconds: 0,
		Tabs:                  []string{"first", "second"},
		TabKey:                "dashTab",
		DefaultTab:            "first",
		Session: session.Config{
			Backend: session.BackendMemory,
		},
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return cfg
}

func WithBaseURL(baseURL string) Option {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

func WithLogoutPath(path string) Option {
	return func(c *Config) {
		c.LogoutPath = path
	}
}

func WithLoginURL(loginURL string) Option {
	return func(c *Config) {
		c.LoginURL = loginURL
	}
}

func WithConnectTimeout(seconds int) Option {
	return func(c *Config) {
		c.ConnectTimeoutSeconds = seconds
	}
}

func WithRequestTimeout(seconds int) Option {
	return func(c *Config) {
		c.RequestTimeoutSeconds = seconds
	}
}

func WithRateLimit(perMinute, burst int) Option {
	return func(c *Config) {
		c.RateLimit = ratelimit.RateLimit{RateLimitPerMinute: perMinute, Burst: burst}
	}
}

// WithHostRateLimit overrides the rate limit for requests to host
func WithHostRateLimit(host string, perMinute, burst int) Option {
	return func(c *Config) {
		if c.RateLimitHosts == nil {
			c.RateLimitHosts = make(map[string]ratelimit.RateLimit)
		}
		c.RateLimitHosts[host] = ratelimit.RateLimit{RateLimitPerMinute: perMinute, Burst: burst}
	}
}

func WithTabs(tabs ...string) Option {
	return func(c *Config) {
		c.Tabs = tabs
	}
}

func WithTabKey(key string) Option {
	return func(c *Config) {
		c.TabKey = key
	}
}

func WithDefaultTab(tab string) Option {
	return func(c *Config) {
		c.DefaultTab = tab
	}
}

func WithSessionBackend(backend string) Option {
	return func(c *Config) {
		c.Session.Backend = backend
	}
}

func WithKeyDBURL(keydbURL string) Option {
	return func(c *Config) {
		c.Session.KeyDB.URL = keydbURL
	}
}

func WithMetrics(enable bool) Option {
	return func(c *Config) {
		c.MetricsEnabled = enable
	}
}

// LoadFromFile reads a JSON file, or YAML when the extension is .yaml or .yml.
// Fields missing from the file keep their defaults. Session durations are
// written as "30m" style strings in both formats; JSON also takes integer
// nanoseconds.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, config)
	default:
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Load loads configuration from the CONFIG_FILE environment variable
// or from the default path "dashctl.json"
func Load() (*Config, error) {
	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "dashctl.json"
	}
	return LoadFromFile(configFile)
}

// LoadFromEnv loads configuration from environment variables
// BASE_URL is required so that an unconfigured environment falls back to a file
func LoadFromEnv() (*Config, error) {
	cfg := New()

	if baseURL := os.Getenv("BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	} else {
		return nil, fmt.Errorf("BASE_URL environment variable is required")
	}

	if path := os.Getenv("LOGOUT_PATH"); path != "" {
		cfg.LogoutPath = path
	}

	if loginURL := os.Getenv("LOGIN_URL"); loginURL != "" {
		cfg.LoginURL = loginURL
	}

	if v := os.Getenv("CONNECT_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ConnectTimeoutSeconds = n
		}
	}

	if v := os.Getenv("REQUEST_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RequestTimeoutSeconds = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.RateLimitPerMinute = n
		}
	}

	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimit.Burst = n
		}
	}

	// RATE_LIMIT_HOSTS=host[:port]=perMinute[/burst],...
	if v := os.Getenv("RATE_LIMIT_HOSTS"); v != "" {
		hosts, err := parseHostRateLimits(v)
		if err != nil {
			return nil, err
		}
		cfg.RateLimitHosts = hosts
	}

	if tabs := os.Getenv("TABS"); tabs != "" {
		cfg.Tabs = splitList(tabs)
	}

	if key := os.Getenv("TAB_KEY"); key != "" {
		cfg.TabKey = key
	}

	if tab := os.Getenv("DEFAULT_TAB"); tab != "" {
		cfg.DefaultTab = tab
	}

	if backend := os.Getenv("SESSION_BACKEND"); backend != "" {
		cfg.Session.Backend = backend
	}

	if keydbURL := os.Getenv("KEYDB_URL"); keydbURL != "" {
		cfg.Session.KeyDB.URL = keydbURL
	}

	if v := os.Getenv("METRICS_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			cfg.MetricsEnabled = enabled
		}
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	base, err := url.Parse(c.BaseURL)
	if err != nil || base.Host == "" || (base.Scheme != "http" && base.Scheme != "https") {
		return fmt.Errorf("base url must be an absolute http(s) url")
	}

	if !strings.HasPrefix(c.LogoutPath, "/") {
		return fmt.Errorf("logout path must start with /")
	}

	if c.LoginURL == "" {
		return fmt.Errorf("login url is required")
	}
	if _, err := url.Parse(c.LoginURL); err != nil {
		return fmt.Errorf("invalid login url: %w", err)
	}

	if c.ConnectTimeoutSeconds < 0 {
		return fmt.Errorf("connect timeout must be non-negative")
	}

	if c.RequestTimeoutSeconds < 0 {
		return fmt.Errorf("request timeout must be non-negative")
	}

	if c.RateLimit.RateLimitPerMinute < 0 || c.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit must be non-negative")
	}

	for host, rl := range c.RateLimitHosts {
		if host == "" {
			return fmt.Errorf("rate limit host must not be empty")
		}
		if rl.RateLimitPerMinute < 0 || rl.Burst < 0 {
			return fmt.Errorf("rate limit for host %s must be non-negative", host)
		}
	}

	if c.TabKey == "" {
		return fmt.Errorf("tab key is required")
	}

	if len(c.Tabs) == 0 {
		return fmt.Errorf("at least one tab is required")
	}

	if !slices.Contains(c.Tabs, c.DefaultTab) {
		return fmt.Errorf("default tab %q is not one of the configured tabs", c.DefaultTab)
	}

	if err := c.Session.Validate(); err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}

	return nil
}

// LogoutURL joins the base url and the logout path
func (c *Config) LogoutURL() string {
	return strings.TrimSuffix(c.BaseURL, "/") + c.LogoutPath
}

// RateLimiters builds the per-host limiter manager used by the client
func (c *Config) RateLimiters() *ratelimit.RateLimiterManager {
	return ratelimit.NewRateLimiterManager(c.RateLimit, c.RateLimitHosts)
}

// ClientOptions maps the timeouts onto httpclient options
func (c *Config) ClientOptions() httpclient.ClientOptions {
	opts := httpclient.DefaultClientOptions()
	opts.LogPrefix = "dashctl"
	opts.ConnectionTimeout = time.Duration(c.ConnectTimeoutSeconds) * time.Second
	opts.RequestTimeout = time.Duration(c.RequestTimeoutSeconds) * time.Second
	return opts
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseHostRateLimits(s string) (map[string]ratelimit.RateLimit, error) {
	out := make(map[string]ratelimit.RateLimit)
	for _, entry := range splitList(s) {
		host, limit, ok := strings.Cut(entry, "=")
		if !ok || host == "" {
			return nil, fmt.Errorf("invalid RATE_LIMIT_HOSTS entry %q", entry)
		}

		perMinute, burst, hasBurst := strings.Cut(limit, "/")
		var rl ratelimit.RateLimit
		var err error
		if rl.RateLimitPerMinute, err = strconv.Atoi(perMinute); err != nil {
			return nil, fmt.Errorf("invalid rate for host %s: %w", host, err)
		}
		if hasBurst {
			if rl.Burst, err = strconv.Atoi(burst); err != nil {
				return nil, fmt.Errorf("invalid burst for host %s: %w", host, err)
			}
		}
		out[host] = rl
	}
	return out, nil
}
