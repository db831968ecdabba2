package providers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
)

// Known source identifiers.
const (
	SourceYahoo    = "yahoo"
	SourceTipRanks = "tipranks"
)

// Schema tags the provider-native layout a RawArticle was parsed from.
type Schema string

const (
	SchemaYahoo    Schema = "yahoo"
	SchemaTipRanks Schema = "tipranks"
)

// RawArticle is a provider-native record parsed at the adapter boundary.
// Exactly one variant pointer is set, matching Schema. Field names are the
// provider's own; nothing is renamed until normalization.
type RawArticle struct {
	Schema   Schema
	Yahoo    *YahooRecord
	TipRanks *TipRanksRecord
}

// Source fetches raw provider records for a ticker. Implementations parse
// the wire payload into their RawArticle variant but never normalize it.
// limit <= 0 means all available records.
type Source interface {
	ID() string
	FetchNews(ctx context.Context, ticker string, limit int) ([]RawArticle, error)
}

// ValidationError reports invalid caller input rejected before any network
// request is attempted.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// FetchError reports a failed provider fetch: network failure, non-2xx
// status or a malformed response.
type FetchError struct {
	Source string
	Ticker string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s news for %s: %v", e.Source, e.Ticker, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NormalizeTicker trims and upper-cases a ticker symbol, rejecting empty
// input with a ValidationError.
func NormalizeTicker(ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" {
		return "", &ValidationError{Reason: "ticker must be a non-empty string"}
	}
	return ticker, nil
}

// DefaultHTTPClient returns a tuned HTTP client for source adapters.
func DefaultHTTPClient() httpclient.Client { return httpclient.NewRestyClient(15 * time.Second) }
