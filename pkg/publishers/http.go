package publishers

import (
	"context"
	"fmt"
	"time"

	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
)

// httpPublisher posts aggregation events to a generic HTTP sink.
type httpPublisher struct {
	id      string
	typ     string
	url     string
	headers map[string]string
	client  httpclient.Client
	log     Logger
}

// newHTTPPublisher creates a publisher that POSTs the event JSON to the
// configured URL.
func newHTTPPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.HTTP == nil {
		return nil, fmt.Errorf("publisher %q missing http configuration", cfg.ID)
	}
	if cfg.HTTP.URL == "" {
		return nil, fmt.Errorf("publisher %q has no http url", cfg.ID)
	}

	timeout := time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second

	return &httpPublisher{
		id:      cfg.ID,
		typ:     cfg.Type,
		url:     cfg.HTTP.URL,
		headers: cfg.HTTP.Headers,
		client:  httpclient.NewRestyClient(timeout),
		log:     ensureLogger(log),
	}, nil
}

func (p *httpPublisher) ID() string   { return p.id }
func (p *httpPublisher) Type() string { return p.typ }

// Publish delivers the event to the sink, failing on any non-2xx response.
func (p *httpPublisher) Publish(ctx context.Context, evt Event) error {
	resp, err := p.client.Post(ctx, p.url, evt, p.headers)
	if err != nil {
		p.log.ErrorObj("http publisher send failed", "publisher_http_error", map[string]any{
			"ticker": evt.Ticker,
			"url":    p.url,
			"error":  err.Error(),
		})
		return fmt.Errorf("post event to %s: %w", p.url, err)
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return fmt.Errorf("post event to %s returned status %d", p.url, code)
	}

	p.log.DebugObj("http publisher delivered event", "publisher_http_delivery", map[string]any{
		"ticker": evt.Ticker,
		"url":    p.url,
	})
	return nil
}
