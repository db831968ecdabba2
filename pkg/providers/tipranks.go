package providers

import (
	"context"
	"encoding/json"

	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
)

const (
	tipRanksDefaultBaseURL = "https://www.tipranks.com"
	tipRanksNewsEndpoint   = "api/stocks/getNews"
)

// TipRanksRecord is the provider-native shape of one TipRanks news item.
// Raw preserves the decoded item untouched.
type TipRanksRecord struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	URLString   string `json:"urlString"`
	SiteName    string `json:"siteName"`
	Date        string `json:"date"`
	Sentiment   string `json:"sentiment"`
	Ticker      string `json:"ticker"`
	CompanyName string `json:"companyName"`

	Raw map[string]any `json:"-"`
}

// tipRanksSource performs the TipRanks getNews lookup.
type tipRanksSource struct {
	client  httpclient.Client
	baseURL string
}

// NewTipRanksSource builds the news-site adapter. An empty baseURL selects
// the public TipRanks host.
func NewTipRanksSource(client httpclient.Client, baseURL string) Source {
	if client == nil {
		client = DefaultHTTPClient()
	}
	if baseURL == "" {
		baseURL = tipRanksDefaultBaseURL
	}
	return &tipRanksSource{client: client, baseURL: baseURL}
}

func (s *tipRanksSource) ID() string {
	return SourceTipRanks
}

// FetchNews retrieves raw news records for the ticker. The response may be
// shaped as {"news": [...]}, {"data": [...]} or a bare list; any other shape
// yields zero records rather than an error.
func (s *tipRanksSource) FetchNews(ctx context.Context, ticker string, limit int) ([]RawArticle, error) {
	ticker, err := NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	var payload json.RawMessage
	endpoint := s.baseURL + "/" + tipRanksNewsEndpoint
	params := map[string]string{"ticker": ticker}
	if err := s.client.GetJSON(ctx, endpoint, params, &payload); err != nil {
		return nil, &FetchError{Source: SourceTipRanks, Ticker: ticker, Err: err}
	}

	items := extractTipRanksItems(payload)

	out := make([]RawArticle, 0, len(items))
	for _, item := range items {
		if isJSONNull(item) {
			continue
		}
		var rec TipRanksRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			// Non-object entry in an otherwise valid list; nothing to map.
			continue
		}
		if err := json.Unmarshal(item, &rec.Raw); err != nil {
			continue
		}
		out = append(out, RawArticle{Schema: SchemaTipRanks, TipRanks: &rec})
		if limit > 0 && len(out) >= limit {
			break
		}
	}

	return out, nil
}

// extractTipRanksItems pulls the article list out of whichever envelope the
// API used. Unrecognized shapes are treated as zero results.
func extractTipRanksItems(payload json.RawMessage) []json.RawMessage {
	var envelope struct {
		News []json.RawMessage `json:"news"`
		Data []json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if len(envelope.News) > 0 {
			return envelope.News
		}
		if len(envelope.Data) > 0 {
			return envelope.Data
		}
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare
	}

	return nil
}
