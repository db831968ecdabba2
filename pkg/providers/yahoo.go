package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
)

const (
	yahooDefaultBaseURL = "https://query1.finance.yahoo.com"
	yahooNewsEndpoint   = "v1/finance/search"
)

// YahooRecord is the provider-native shape of one Yahoo Finance news item.
// Newer API revisions nest these fields under a "content" sub-object; older
// ones carry them at the top level. Raw preserves the decoded item untouched.
type YahooRecord struct {
	Title           string          `json:"title"`
	Summary         string          `json:"summary"`
	Description     string          `json:"description"`
	PubDate         string          `json:"pubDate"`
	DisplayTime     string          `json:"displayTime"`
	ContentType     string          `json:"contentType"`
	ClickThroughURL *YahooURLRef    `json:"clickThroughUrl"`
	CanonicalURL    *YahooURLRef    `json:"canonicalUrl"`
	Provider        *YahooProvider  `json:"provider"`
	Thumbnail       *YahooThumbnail `json:"thumbnail"`

	Raw map[string]any `json:"-"`
}

// YahooURLRef is a click-through or canonical URL object.
type YahooURLRef struct {
	URL string `json:"url"`
}

// YahooProvider names the publishing outlet.
type YahooProvider struct {
	DisplayName string `json:"displayName"`
}

// YahooThumbnail carries the available thumbnail resolutions.
type YahooThumbnail struct {
	Resolutions []YahooResolution `json:"resolutions"`
}

// YahooResolution is one rendition of a thumbnail image.
type YahooResolution struct {
	URL string `json:"url"`
}

type yahooEnvelope struct {
	News []json.RawMessage `json:"news"`
}

// yahooSource wraps the Yahoo Finance ticker-news lookup.
type yahooSource struct {
	client  httpclient.Client
	baseURL string
}

// NewYahooSource builds the market-data news adapter. An empty baseURL
// selects the public Yahoo Finance API host.
func NewYahooSource(client httpclient.Client, baseURL string) Source {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if baseURL == "" {
		baseURL = yahooDefaultBaseURL
	}
	return &yahooSource{client: client, baseURL: baseURL}
}

func (s *yahooSource) ID() string {
	return SourceYahoo
}

// FetchNews retrieves raw news records for the ticker. Records are parsed
// into YahooRecord, supporting both the nested "content" layout and the flat
// one; null items and null content entries are skipped.
func (s *yahooSource) FetchNews(ctx context.Context, ticker string, limit int) ([]RawArticle, error) {
	ticker, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	params := map[string]string{"q": ticker}
	if limit > 0 {
		params["newsCount"] = strconv.Itoa(limit)
	}

	var envelope yahooEnvelope
	endpoint := s.baseURL + "/" + yahooNewsEndpoint
	if err := s.client.GetJSON(ctx, endpoint, params, &envelope); err != nil {
		return nil, &FetchError{Source: SourceYahoo, Ticker: ticker, Err: err}
	}

	out := make([]RawArticle, 0, len(envelope.News))
	for _, item := range envelope.News {
		rec, err := parseYahooItem(item)
		if err != nil {
			return nil, &FetchError{Source: SourceYahoo, Ticker: ticker, Err: err}
		}
		if rec == nil {
			continue
		}
		out = append(out, RawArticle{Schema: SchemaYahoo, Yahoo: rec})
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}

// parseYahooItem decodes one news item, unwrapping the "content" sub-object
// when present and falling back to the item itself otherwise. A nil result
// without error means the item was null and should be skipped.
func parseYahooItem(item json.RawMessage) (*YahooRecord, error) {
	if isJSONNull(item) {
		return nil, nil
	}

	payload := item
	var wrapper struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(item, &wrapper); err != nil {
		return nil, fmt.Errorf("decode news item: %w", err)
	}
	if len(wrapper.Content) > 0 {
		if isJSONNull(wrapper.Content) {
			return nil, nil
		}
		payload = wrapper.Content
	}

	var rec YahooRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode news content: %w", err)
	}
	if err := json.Unmarshal(payload, &rec.Raw); err != nil {
		return nil, fmt.Errorf("decode news content: %w", err)
	}

	return &rec, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
