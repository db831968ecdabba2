package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yahooServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/finance/search", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestYahooFetchNews_NestedContent(t *testing.T) {
	t.Parallel()

	srv := yahooServer(t, `{"news": [
		{"content": {"title": "Nested layout", "pubDate": "2025-10-15T05:00:35Z",
			"provider": {"displayName": "Example Wire"},
			"clickThroughUrl": {"url": "https://news.example.com/1"}}},
		null,
		{"content": null}
	]}`)

	src := NewYahooSource(DefaultHTTPClient(), srv.URL)
	raws, err := src.FetchNews(context.Background(), "aapl", 0)
	require.NoError(t, err)
	require.Len(t, raws, 1)

	rec := raws[0].Yahoo
	require.NotNil(t, rec)
	assert.Equal(t, SchemaYahoo, raws[0].Schema)
	assert.Equal(t, "Nested layout", rec.Title)
	assert.Equal(t, "2025-10-15T05:00:35Z", rec.PubDate)
	assert.Equal(t, "Example Wire", rec.Provider.DisplayName)
	assert.Contains(t, rec.Raw, "title")
}

func TestYahooFetchNews_FlatLayoutFallback(t *testing.T) {
	t.Parallel()

	srv := yahooServer(t, `{"news": [
		{"title": "Flat layout", "summary": "Old schema item."},
		{"title": "Second"}
	]}`)

	src := NewYahooSource(DefaultHTTPClient(), srv.URL)
	raws, err := src.FetchNews(context.Background(), "AAPL", 0)
	require.NoError(t, err)
	require.Len(t, raws, 2)
	assert.Equal(t, "Flat layout", raws[0].Yahoo.Title)
	assert.Equal(t, "Old schema item.", raws[0].Yahoo.Summary)
}

func TestYahooFetchNews_LimitTruncates(t *testing.T) {
	t.Parallel()

	srv := yahooServer(t, `{"news": [
		{"title": "one"}, {"title": "two"}, {"title": "three"}
	]}`)

	src := NewYahooSource(DefaultHTTPClient(), srv.URL)
	raws, err := src.FetchNews(context.Background(), "AAPL", 2)
	require.NoError(t, err)
	assert.Len(t, raws, 2)
}

func TestYahooFetchNews_ServerErrorIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	src := NewYahooSource(DefaultHTTPClient(), srv.URL)
	_, err := src.FetchNews(context.Background(), "AAPL", 0)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, SourceYahoo, ferr.Source)
	assert.Equal(t, "AAPL", ferr.Ticker)
}

func TestYahooFetchNews_EmptyTickerNeverHitsNetwork(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	t.Cleanup(srv.Close)

	src := NewYahooSource(DefaultHTTPClient(), srv.URL)
	_, err := src.FetchNews(context.Background(), "  ", 0)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, calls)
}
