package apiclient

import (
	"net"
	"net/http"
	"time"
)

// DefaultTimeout bounds a whole request including the body read
const DefaultTimeout = 30 * time.Second

// NewHTTPClient creates the transport shared by a client set. The backends
// sit behind one gateway host in most deployments, so idle connections per
// host are kept generous.
func NewHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConns:          30,
		MaxIdleConnsPerHost:   10,
		ForceAttemptHTTP2:     true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
