package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"

	"github.com/status-im/dashboard-client/config"
	"github.com/status-im/dashboard-client/httpclient"
	"github.com/status-im/dashboard-client/logout"
	"github.com/status-im/dashboard-client/metrics"
	"github.com/status-im/dashboard-client/ratelimit"
	"github.com/status-im/dashboard-client/session"
	"github.com/status-im/dashboard-client/session/backend"
	"github.com/status-im/dashboard-client/tabs"
)

const usage = `usage:
  dashctl logout     end the current session and go back to the login page
  dashctl tab        show the remembered dashboard tab
  dashctl tab <id>   switch to tab <id> and remember it
`

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel()}))
	slog.SetDefault(logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	// Try to load from environment first
	cfg, err := config.LoadFromEnv()
	if err != nil {
		cfg, err = config.Load()
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "error", err)
		os.Exit(1)
	}

	recorder := metrics.NewNoopMetrics()
	if cfg.MetricsEnabled {
		recorder = metrics.NewPrometheusMetrics()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	var code int
	switch os.Args[1] {
	case "logout":
		code = runLogout(ctx, cfg, recorder, logger, os.Stdout)
	case "tab":
		code = runTab(cfg, os.Args[2:], recorder, logger, os.Stdout)
	default:
		fmt.Fprint(os.Stderr, usage)
		code = 2
	}

	stop()

	if cfg.MetricsEnabled {
		dumpMetrics(os.Stderr, logger)
	}
	os.Exit(code)
}

func runLogout(ctx context.Context, cfg *config.Config, recorder metrics.MetricsRecorder, logger *slog.Logger, out io.Writer) int {
	var limiters ratelimit.IRateLimiterManager = cfg.RateLimiters()
	client := httpclient.NewClient(cfg.ClientOptions(), recorder, limiters.ForRequest)

	action := logout.New(cfg, client,
		logout.NewTextStatus(out),
		logout.NewRecordingNavigator(out),
		logout.WithLogger(logger),
		logout.WithMetrics(recorder),
	)

	outcome, err := action.Logout(ctx)
	if err != nil {
		logger.Error("logout request could not be built", "error", err)
		return 1
	}
	if outcome.Kind == httpclient.OutcomeFailed {
		return 1
	}
	return 0
}

func runTab(cfg *config.Config, args []string, recorder metrics.MetricsRecorder, logger *slog.Logger, out io.Writer) int {
	store, err := backend.Open(&cfg.Session, session.NewSlogLogger(logger), recorder)
	if err != nil {
		logger.Error("failed to open session store", "error", err)
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close session store", "error", err)
		}
	}()

	panels := make(map[string]tabs.Panel, len(cfg.Tabs))
	for _, id := range cfg.Tabs {
		panels[id] = &consolePanel{id: id, out: out}
	}

	switcher, err := tabs.New(store, cfg.TabKey, cfg.DefaultTab, panels)
	if err != nil {
		logger.Error("failed to set up tabs", "error", err)
		return 1
	}

	if len(args) == 0 {
		switcher.Setup()
		return 0
	}

	if err := switcher.Show(args[0]); err != nil {
		logger.Error("failed to switch tab", "error", err, "tabs", switcher.IDs())
		return 1
	}
	if !persistent(cfg.Session.Backend) {
		logger.Warn("tab selection is not kept after exit, use the keydb or layered session backend",
			"backend", cfg.Session.Backend)
	}
	return 0
}

// persistent reports whether backend outlives the process
func persistent(backend string) bool {
	return backend == session.BackendKeyDB || backend == session.BackendLayered
}

// consolePanel prints the id of the panel that becomes visible
type consolePanel struct {
	id  string
	out io.Writer
}

func (p *consolePanel) SetVisible(visible bool) {
	if visible {
		fmt.Fprintf(p.out, "tab: %s\n", p.id)
	}
}

func dumpMetrics(w io.Writer, logger *slog.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		logger.Warn("failed to gather metrics", "error", err)
		return
	}

	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			logger.Warn("failed to encode metrics", "error", err)
			return
		}
	}
}

func logLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return slog.LevelInfo
	}
	return level
}
