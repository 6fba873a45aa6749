package httpclient

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

// Client runs requests and reports every lifecycle stage through Dispatch
type Client struct {
	Client        *http.Client
	Opts          ClientOptions
	StatusHandler IHttpStatusHandler
	// RateLimiter is an optional callback that returns a rate limiter for the request
	// The callback receives the request and should return a rate limiter or nil
	RateLimiter func(*http.Request) *rate.Limiter
}

// NewClient creates a new Client
func NewClient(opts ClientOptions, handler IHttpStatusHandler, rateLimiter func(*http.Request) *rate.Limiter) *Client {
	if opts.ReadChunkSize <= 0 {
		opts.ReadChunkSize = DefaultClientOptions().ReadChunkSize
	}

	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &Client{
		Client:        client,
		Opts:          opts,
		StatusHandler: handler,
		RateLimiter:   rateLimiter,
	}
}

// SetStatusHandler sets the status handler for this Client
func (c *Client) SetStatusHandler(handler IHttpStatusHandler) {
	c.StatusHandler = handler
}

// Execute sends req and drives it to completion. The handler sees one
// callback per stage change and the terminal callback is always the last.
func (c *Client) Execute(req *http.Request, handler IOutcomeHandler) *Request {
	r := newRequest()

	c.observe(r, handler, State{Stage: StageOpened})

	if c.RateLimiter != nil {
		if limiter := c.RateLimiter(req); limiter != nil {
			if err := limiter.Wait(req.Context()); err != nil {
				c.fail(r, handler, fmt.Errorf("rate limiter wait failed: %w", err))
				return r
			}
		}
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		c.fail(r, handler, fmt.Errorf("request failed after %.2fs: %w", time.Since(r.started).Seconds(), err))
		return r
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	r.header = resp.Header
	c.observe(r, handler, State{Stage: StageHeadersReceived})

	chunkSize := c.Opts.ReadChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultClientOptions().ReadChunkSize
	}
	buf := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			r.body = append(r.body, buf[:n]...)
			c.observe(r, handler, State{Stage: StageLoading})
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.fail(r, handler, fmt.Errorf("error reading response: %w", err))
			return r
		}
	}

	c.complete(r, handler, resp.StatusCode)
	return r
}

// observe records a non-terminal stage and dispatches it
func (c *Client) observe(r *Request, handler IOutcomeHandler, s State) {
	r.state = s
	if c.StatusHandler != nil {
		c.StatusHandler.OnStage(s.Stage.String())
	}
	r.outcome = Dispatch(s, handler)
}

// fail completes the request with code 0 after a transport error
func (c *Client) fail(r *Request, handler IOutcomeHandler, err error) {
	r.err = err
	log.Printf("%s: %v", c.Opts.LogPrefix, err)
	c.complete(r, handler, 0)
}

func (c *Client) complete(r *Request, handler IOutcomeHandler, code int) {
	r.duration = time.Since(r.started)
	c.observe(r, handler, State{Stage: StageDone, Code: code})

	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(r.outcome.Kind.String())
	}
}
