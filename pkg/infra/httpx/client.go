package httpx

import "net/http"

// Client is the subset of *http.Client used for outbound calls.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
