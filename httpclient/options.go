package httpclient

import "time"

// ClientOptions configures the transport used to run requests
type ClientOptions struct {
	LogPrefix         string
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout, zero means none
	ReadChunkSize     int           // Body bytes read per loading stage
}

// DefaultClientOptions returns default client options
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		LogPrefix:         "HTTP",
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    0,
		ReadChunkSize:     32 * 1024,
	}
}
