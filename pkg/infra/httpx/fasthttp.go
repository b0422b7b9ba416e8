package httpx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 10 * time.Second
	DefaultMaxConnsPerHost     = 64
	DefaultMaxIdleConnDuration = 30 * time.Second
	DefaultMaxResponseBodySize = 4 * 1024 * 1024

	maxRedirects = 3
)

type FastHTTPClientOptions struct {
	Timeout             time.Duration
	MaxConnsPerHost     int
	MaxIdleConnDuration time.Duration
	MaxResponseBodySize int
	UserAgent           string
}

type FastHTTPClientOption func(*FastHTTPClientOptions)

func WithTimeout(timeout time.Duration) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.Timeout = timeout
	}
}

func WithMaxConnsPerHost(max int) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.MaxConnsPerHost = max
	}
}

func WithUserAgent(userAgent string) FastHTTPClientOption {
	return func(o *FastHTTPClientOptions) {
		o.UserAgent = userAgent
	}
}

// FastHTTPClient adapts a fasthttp.Client to the net/http shaped Client.
type FastHTTPClient struct {
	client *fasthttp.Client
	// per-call budget when the request context carries no earlier deadline
	timeout   time.Duration
	userAgent string
}

func NewFastHTTPClient(opts ...FastHTTPClientOption) Client {
	options := &FastHTTPClientOptions{
		Timeout:             DefaultTimeout,
		MaxConnsPerHost:     DefaultMaxConnsPerHost,
		MaxIdleConnDuration: DefaultMaxIdleConnDuration,
		MaxResponseBodySize: DefaultMaxResponseBodySize,
	}
	for _, opt := range opts {
		opt(options)
	}

	client := &fasthttp.Client{
		MaxConnsPerHost:     options.MaxConnsPerHost,
		MaxIdleConnDuration: options.MaxIdleConnDuration,
		MaxResponseBodySize: options.MaxResponseBodySize,
		ReadTimeout:         options.Timeout,
		WriteTimeout:        options.Timeout,
	}

	return &FastHTTPClient{
		client:    client,
		timeout:   options.Timeout,
		userAgent: options.UserAgent,
	}
}

// Do sends req and follows up to maxRedirects redirects. The exchange is
// bounded by the client timeout and by the request context, whichever ends
// first.
func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	fastReq := fasthttp.AcquireRequest()
	if req.URL != nil {
		fastReq.SetRequestURI(req.URL.String())
	}
	fastReq.Header.SetMethod(req.Method)

	for key, values := range req.Header {
		for _, value := range values {
			fastReq.Header.Add(key, value)
		}
	}
	if c.userAgent != "" && req.Header.Get("User-Agent") == "" {
		fastReq.Header.SetUserAgent(c.userAgent)
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			fasthttp.ReleaseRequest(fastReq)
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		_ = req.Body.Close()
		fastReq.SetBodyRaw(body)
	}

	// the exchange owns fastReq until it returns, even after ctx is done
	done := make(chan exchangeResult, 1)
	go func() {
		defer fasthttp.ReleaseRequest(fastReq)
		done <- c.exchange(fastReq, deadline)
	}()

	select {
	case res := <-done:
		if res.err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			return nil, res.err
		}
		res.resp.Request = req
		return res.resp, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type exchangeResult struct {
	resp *http.Response
	err  error
}

func (c *FastHTTPClient) exchange(fastReq *fasthttp.Request, deadline time.Time) exchangeResult {
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(fastResp)

	// Apps Script web apps answer with a 302 to the content host.
	for redirects := 0; ; redirects++ {
		if err := c.client.DoDeadline(fastReq, fastResp, deadline); err != nil {
			return exchangeResult{err: err}
		}
		statusCode := fastResp.StatusCode()
		if !fasthttp.StatusCodeIsRedirect(statusCode) {
			break
		}
		if redirects == maxRedirects {
			return exchangeResult{err: fasthttp.ErrTooManyRedirects}
		}
		location := fastResp.Header.Peek(fasthttp.HeaderLocation)
		if len(location) == 0 {
			return exchangeResult{err: fasthttp.ErrMissingLocation}
		}
		next, err := url.Parse(string(location))
		if err != nil {
			return exchangeResult{err: fmt.Errorf("invalid redirect location: %w", err)}
		}
		current, err := url.Parse(fastReq.URI().String())
		if err != nil {
			return exchangeResult{err: fmt.Errorf("invalid request uri: %w", err)}
		}
		fastReq.SetRequestURI(current.ResolveReference(next).String())
		if statusCode == fasthttp.StatusSeeOther ||
			(!fastReq.Header.IsGet() && !fastReq.Header.IsHead() &&
				(statusCode == fasthttp.StatusMovedPermanently || statusCode == fasthttp.StatusFound)) {
			fastReq.Header.SetMethod(fasthttp.MethodGet)
			fastReq.ResetBody()
		}
	}

	bodyCopy := append([]byte(nil), fastResp.Body()...)
	statusCode := fastResp.StatusCode()

	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})

	return exchangeResult{resp: &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(bodyCopy)),
		ContentLength: int64(len(bodyCopy)),
	}}
}
