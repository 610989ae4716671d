// Package httpapi implements the remote API contract over fasthttp.
// All failures surface as classified domain errors; callers on the polling
// path treat them as recoverable and keep their last known-good state.
package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/fastygo/storefront/domain"
	appLogger "github.com/fastygo/storefront/pkg/logger"
)

// TokenSource supplies the current access token for the Authorization
// header. It is injected as a func so this package never imports the
// session store. An empty result sends the request unauthenticated; the
// server is expected to answer with a guest view.
type TokenSource func() string

// Client is a thin JSON client over fasthttp.
type Client struct {
	http    *fasthttp.Client
	baseURL string
	tokens  TokenSource
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient constructs a Client rooted at baseURL.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http:    &fasthttp.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		timeout: timeout,
		logger:  logger,
	}
}

// getJSON issues a GET and decodes the response body into out.
func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	body, err := c.do(ctx, fasthttp.MethodGet, path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.WrapError(domain.ErrCodeInternal, "decode response", err)
	}
	return nil
}

// post issues a POST with an empty body and discards the response payload.
func (c *Client) post(ctx context.Context, path string) error {
	_, err := c.do(ctx, fasthttp.MethodPost, path)
	return err
}

func (c *Client) do(ctx context.Context, method, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(method)
	req.Header.Set("Accept", "application/json")
	if reqID := appLogger.RequestIDFromContext(ctx); reqID != "" {
		req.Header.Set("X-Request-ID", reqID)
	}
	if c.tokens != nil {
		if token := c.tokens(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return nil, domain.WrapError(domain.ErrCodeUnavailable,
			fmt.Sprintf("%s %s", method, path), err)
	}

	status := resp.StatusCode()
	switch {
	case status >= 200 && status < 300:
		return append([]byte(nil), resp.Body()...), nil
	case status == fasthttp.StatusUnauthorized || status == fasthttp.StatusForbidden:
		return nil, domain.NewError(domain.ErrCodeUnauthorized,
			fmt.Sprintf("%s %s: status %d", method, path, status))
	case status == fasthttp.StatusNotFound:
		return nil, domain.NewError(domain.ErrCodeNotFound,
			fmt.Sprintf("%s %s: status %d", method, path, status))
	default:
		return nil, domain.NewError(domain.ErrCodeUnavailable,
			fmt.Sprintf("%s %s: status %d", method, path, status))
	}
}
