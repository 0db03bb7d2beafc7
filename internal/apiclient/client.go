// Package apiclient is the HTTP layer shared by every backend service client.
//
// A Client wraps one backend base URL with an ordered list of request
// interceptors (run before dispatch) and response interceptors (run before
// the caller sees the result). The Set type builds the six configured
// backend clients.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseBytes caps how much of a response body is buffered
const maxResponseBytes = 32 << 20

// RequestInterceptor mutates an outgoing request. A returned error aborts
// the request before it is sent.
type RequestInterceptor func(*http.Request) error

// ResponseInterceptor inspects a completed response. A returned error stops
// the remaining interceptors and becomes the caller's error.
type ResponseInterceptor func(*Response) error

// Request describes one call relative to the client's base URL
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded unless it is already a []byte
	Body        any
	ContentType string
	Header      http.Header
	// Binary marks the response as an opaque blob; it is never unwrapped
	Binary bool
}

// Response is a fully buffered backend response
type Response struct {
	Client     string
	Method     string
	Path       string
	StatusCode int
	Header     http.Header
	Body       []byte
	Binary     bool
}

// Config configures a single Client
type Config struct {
	Name                 string
	BaseURL              string
	HTTPClient           *http.Client
	Header               http.Header
	RequestInterceptors  []RequestInterceptor
	ResponseInterceptors []ResponseInterceptor
	Resilience           *ResilienceConfig
	Logger               *slog.Logger
}

// Client talks to one backend
type Client struct {
	name       string
	baseURL    string
	httpClient *http.Client
	header     http.Header
	requestIC  []RequestInterceptor
	responseIC []ResponseInterceptor
	resilience *resilience
	logger     *slog.Logger
}

// New creates a client for cfg.BaseURL
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client %s: base URL required", cfg.Name)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("client %s: parse base URL: %w", cfg.Name, err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = NewHTTPClient(0)
	}

	header := http.Header{}
	header.Set("Accept", "application/json")
	for k, vs := range cfg.Header {
		for _, v := range vs {
			header.Add(k, v)
		}
	}

	c := &Client{
		name:       cfg.Name,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		header:     header,
		requestIC:  append([]RequestInterceptor(nil), cfg.RequestInterceptors...),
		responseIC: append([]ResponseInterceptor(nil), cfg.ResponseInterceptors...),
		logger:     logger,
	}
	if cfg.Resilience != nil {
		c.resilience = newResilience(cfg.Name, *cfg.Resilience, logger)
	}
	return c, nil
}

// Name returns the backend name used in logs and errors
func (c *Client) Name() string {
	return c.name
}

// BaseURL returns the base URL requests are resolved against
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Close releases the client's rate limiter, if any
func (c *Client) Close() error {
	if c.resilience != nil {
		return c.resilience.Close()
	}
	return nil
}

// Do sends req and returns the buffered response after every response
// interceptor accepted it.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s %s: encode body: %w", c.name, method, req.Path, err)
	}

	attempt := func(ctx context.Context) (*Response, error) {
		return c.send(ctx, method, req, body, contentType)
	}

	start := time.Now()
	var resp *Response
	if c.resilience != nil {
		resp, err = c.resilience.execute(ctx, method == http.MethodGet, attempt)
	} else {
		resp, err = attempt(ctx)
	}
	if err != nil {
		c.logger.Debug("api request failed",
			"client", c.name,
			"method", method,
			"path", req.Path,
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, fmt.Errorf("%s %s %s: %w", c.name, method, req.Path, err)
	}

	c.logger.Debug("api request",
		"client", c.name,
		"method", method,
		"path", req.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds())

	for _, ic := range c.responseIC {
		if err := ic(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// send performs one attempt. Request interceptors run on every attempt so a
// retried request picks up the current session.
func (c *Client) send(ctx context.Context, method string, req *Request, body []byte, contentType string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.url(req), reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	for k, vs := range c.header {
		httpReq.Header[k] = append([]string(nil), vs...)
	}
	if req.Binary {
		httpReq.Header.Set("Accept", "*/*")
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	for k, vs := range req.Header {
		httpReq.Header[http.CanonicalHeaderKey(k)] = append([]string(nil), vs...)
	}

	for _, ic := range c.requestIC {
		if err := ic(httpReq); err != nil {
			return nil, fmt.Errorf("request interceptor: %w", err)
		}
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{
		Client:     c.name,
		Method:     method,
		Path:       req.Path,
		StatusCode: httpResp.StatusCode,
		Header:     httpResp.Header,
		Body:       data,
		Binary:     req.Binary,
	}, nil
}

func (c *Client) url(req *Request) string {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func encodeBody(req *Request) ([]byte, string, error) {
	switch b := req.Body.(type) {
	case nil:
		return nil, req.ContentType, nil
	case []byte:
		return b, req.ContentType, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, "", err
		}
		ct := req.ContentType
		if ct == "" {
			ct = "application/json"
		}
		return data, ct, nil
	}
}

// Get sends a GET request
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post sends body as JSON
func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Put sends body as JSON
func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

// Delete sends a DELETE request
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}

// PostMultipart uploads the contents of r as a single form file field
func (c *Client) PostMultipart(ctx context.Context, path, field, filename string, r io.Reader) (*Response, error) {
	if r == nil {
		return nil, errors.New("multipart upload: nil reader")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("copy upload: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	return c.Do(ctx, &Request{
		Method:      http.MethodPost,
		Path:        path,
		Body:        buf.Bytes(),
		ContentType: w.FormDataContentType(),
	})
}
