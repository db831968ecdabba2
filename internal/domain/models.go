package domain

// Domain contains the canonical models shared by all components.

// Sentinel values used when a provider omits an optional field.
const (
	FieldUnavailable = "N/A"

	SentimentNeutral  = "neutral"
	SentimentPositive = "positive"
	SentimentNegative = "negative"

	ContentTypeArticle = "article"
)

// DateLayout is the normalized published-date layout. It is fixed-width and
// zero-padded, so lexicographic order matches chronological order.
const DateLayout = "2006-01-02 15:04:05"

// Article is the provider-agnostic news article every consumer sees.
// String fields default to FieldUnavailable when the provider omits them;
// PublishedDate is empty when the provider supplied no date at all and the
// raw provider value when it supplied one that could not be parsed.
type Article struct {
	Title         string         `json:"title"`
	Summary       string         `json:"summary"`
	URL           string         `json:"url"`
	Publisher     string         `json:"publisher"`
	PublishedDate string         `json:"published_date,omitempty"`
	Sentiment     string         `json:"sentiment"`
	Source        string         `json:"source"`
	Ticker        string         `json:"ticker,omitempty"`
	Thumbnail     string         `json:"thumbnail,omitempty"`
	ContentType   string         `json:"content_type"`
	CompanyName   string         `json:"company_name,omitempty"`
	RawData       map[string]any `json:"raw_data,omitempty"`
}

// SourceReport is the per-source accounting entry of a UnifiedResult.
// Error is non-empty exactly when the source's fetch failed; an empty
// Articles slice with an empty Error means the source had nothing to return.
type SourceReport struct {
	Count    int       `json:"count"`
	Articles []Article `json:"articles"`
	Error    string    `json:"error,omitempty"`
}

// UnifiedResult bundles the merged articles of one aggregation call with the
// per-source breakdown. It is built fresh per call and never mutated after.
type UnifiedResult struct {
	Ticker        string                  `json:"ticker"`
	Sources       []string                `json:"sources"`
	Articles      []Article               `json:"articles"`
	BySource      map[string]SourceReport `json:"by_source"`
	TotalArticles int                     `json:"total_articles"`
	Timestamp     string                  `json:"timestamp"`
}
