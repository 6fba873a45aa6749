package httpclient

import (
	"net/http"
	"time"
)

// Request is the handle for one in-flight call. It is owned by the Execute
// call that created it and is never shared between requests.
type Request struct {
	state    State
	outcome  Outcome
	header   http.Header
	body     []byte
	err      error
	started  time.Time
	duration time.Duration
}

func newRequest() *Request {
	return &Request{started: time.Now()}
}

// State returns the latest observed stage and status code
func (r *Request) State() State {
	return r.state
}

// Outcome returns the outcome of the latest observation
func (r *Request) Outcome() Outcome {
	return r.outcome
}

// Header returns the response headers, nil until headers are received
func (r *Request) Header() http.Header {
	return r.header
}

// Body returns the response bytes read so far
func (r *Request) Body() []byte {
	return r.body
}

// Err returns the transport error that completed the request with code 0
func (r *Request) Err() error {
	return r.err
}

// Duration returns the time from open to completion
func (r *Request) Duration() time.Duration {
	return r.duration
}
