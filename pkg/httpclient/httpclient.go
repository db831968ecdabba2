package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultUserAgent = "tickerbrief/1.0"

// Response is the subset of an HTTP response consumers need.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client is a generic HTTP collaborator. Endpoints may be absolute URLs,
// which are used as-is, or relative paths joined to the configured base URL.
type Client interface {
	Get(ctx context.Context, endpoint string, params, headers map[string]string) (Response, error)
	Post(ctx context.Context, endpoint string, body any, headers map[string]string) (Response, error)
	// GetJSON performs a GET, fails on any non-2xx status and decodes the
	// response body into out.
	GetJSON(ctx context.Context, endpoint string, params map[string]string, out any) error
}

type restyClient struct {
	rc *resty.Client
}

// NewRestyClient builds a Client with no base URL and the given timeout.
func NewRestyClient(timeout time.Duration) Client {
	return NewRestyClientWithBase("", timeout, nil)
}

// NewRestyClientWithBase builds a Client whose relative endpoints are joined
// to baseURL. Default headers are sent with every request unless overridden
// per call.
func NewRestyClientWithBase(baseURL string, timeout time.Duration, headers map[string]string) Client {
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", defaultUserAgent).
		SetHeader("Content-Type", "application/json")

	if base := strings.TrimRight(strings.TrimSpace(baseURL), "/"); base != "" {
		rc.SetBaseURL(base)
	}
	for k, v := range headers {
		rc.SetHeader(k, v)
	}

	return &restyClient{rc: rc}
}

func (c *restyClient) Get(ctx context.Context, endpoint string, params, headers map[string]string) (Response, error) {
	req := c.rc.R().SetContext(ctx)
	if len(params) > 0 {
		req.SetQueryParams(params)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", endpoint, err)
	}
	return resp, nil
}

func (c *restyClient) Post(ctx context.Context, endpoint string, body any, headers map[string]string) (Response, error) {
	req := c.rc.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}
	if len(headers) > 0 {
		req.SetHeaders(headers)
	}

	resp, err := req.Post(endpoint)
	if err != nil {
		return nil, fmt.Errorf("POST %s: %w", endpoint, err)
	}
	return resp, nil
}

func (c *restyClient) GetJSON(ctx context.Context, endpoint string, params map[string]string, out any) error {
	resp, err := c.Get(ctx, endpoint, params, nil)
	if err != nil {
		return err
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("GET %s returned status %d body: %s", endpoint, code, bodySnippet(resp.Body()))
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s response: %w", endpoint, err)
	}
	return nil
}

func bodySnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
