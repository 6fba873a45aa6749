package logout

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/status-im/dashboard-client/config"
	"github.com/status-im/dashboard-client/httpclient"
	"github.com/status-im/dashboard-client/metrics"
)

// LoadingText is shown while the logout request is in flight
const LoadingText = "Loading ..."

// FailureText is shown when the logout request completes with a non-OK code
func FailureText(code int) string {
	return fmt.Sprintf("Logout failed with status %d", code)
}

// StatusDisplay shows a single line of status text to the user
type StatusDisplay interface {
	SetText(text string)
}

// Navigator moves the user to another page
type Navigator interface {
	Navigate(url string)
}

// Executor runs one request and reports its stages to handler
type Executor interface {
	Execute(req *http.Request, handler httpclient.IOutcomeHandler) *httpclient.Request
}

type Action struct {
	logoutURL string
	loginURL  string
	client    Executor
	display   StatusDisplay
	navigator Navigator
	logger    *slog.Logger
	metrics   metrics.MetricsRecorder
}

type Option func(*Action)

func WithLogger(logger *slog.Logger) Option {
	return func(a *Action) {
		a.logger = logger
	}
}

func WithMetrics(m metrics.MetricsRecorder) Option {
	return func(a *Action) {
		a.metrics = m
	}
}

func New(cfg *config.Config, client Executor, display StatusDisplay, navigator Navigator, opts ...Option) *Action {
	a := &Action{
		logoutURL: cfg.LogoutURL(),
		loginURL:  cfg.LoginURL,
		client:    client,
		display:   display,
		navigator: navigator,
		logger:    slog.Default(),
		metrics:   metrics.NewNoopMetrics(),
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Logout sends the logout request and reflects its progress on the display.
// On success the navigator is sent to the login page; on failure the status
// code is shown. The returned error only covers building the request.
func (a *Action) Logout(ctx context.Context) (httpclient.Outcome, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.logoutURL, nil)
	if err != nil {
		return httpclient.Outcome{}, fmt.Errorf("failed to build logout request: %w", err)
	}

	handler := httpclient.HandlerFuncs{
		Pending: func() {
			a.display.SetText(LoadingText)
		},
		Success: func() {
			a.navigator.Navigate(a.loginURL)
		},
		Failure: func(code int) {
			a.display.SetText(FailureText(code))
		},
	}

	r := a.client.Execute(req, handler)
	outcome := r.Outcome()

	a.metrics.ObserveRequestDuration(outcome.Kind.String(), r.Duration())
	a.logger.Debug("logout request completed",
		"url", a.logoutURL,
		"outcome", outcome.Kind.String(),
		"code", outcome.Code,
		"duration", r.Duration())

	return outcome, nil
}
