package core

import (
	"net/http"
	"time"
)

// HTTPContext abstracts outbound HTTP so probes can be tested with canned
// responses instead of live platform endpoints.
type HTTPContext interface {
	Do(req *http.Request) (*http.Response, error)
}

// DefaultHTTPContext issues requests with a shared client. Timeouts are
// enforced by the caller through the request context, not the client.
type DefaultHTTPContext struct {
	Client *http.Client
}

func NewHTTPContext() *DefaultHTTPContext {
	return &DefaultHTTPContext{
		Client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        32,
				IdleConnTimeout:     90 * time.Second,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
	}
}

func (c *DefaultHTTPContext) Do(req *http.Request) (*http.Response, error) {
	return c.Client.Do(req)
}
