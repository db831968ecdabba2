package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tipRanksServer(t *testing.T, payload string) (*httptest.Server, *int) {
	t.Helper()
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/stocks/getNews", r.URL.Path)
		assert.Equal(t, "CCL", r.URL.Query().Get("ticker"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestTipRanksFetchNews_NewsEnvelope(t *testing.T) {
	t.Parallel()

	srv, _ := tipRanksServer(t, `{"news": [
		{"title": "CCL upgraded", "siteName": "Example Site", "date": "2025-03-01T10:30:00Z", "sentiment": "positive"}
	]}`)

	src := NewTipRanksSource(DefaultHTTPClient(), srv.URL)
	raws, err := src.FetchNews(context.Background(), "ccl", 0)
	require.NoError(t, err)
	require.Len(t, raws, 1)

	rec := raws[0].TipRanks
	require.NotNil(t, rec)
	assert.Equal(t, SchemaTipRanks, raws[0].Schema)
	assert.Equal(t, "CCL upgraded", rec.Title)
	assert.Equal(t, "positive", rec.Sentiment)
	assert.Contains(t, rec.Raw, "siteName")
}

func TestTipRanksFetchNews_ResponseShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		payload string
		want    int
	}{
		{"data envelope", `{"data": [{"title": "a"}, {"title": "b"}]}`, 2},
		{"bare list", `[{"title": "a"}]`, 1},
		{"empty news list", `{"news": []}`, 0},
		{"unrecognized object", `{"message": "not found"}`, 0},
		{"scalar", `42`, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := tipRanksServer(t, tc.payload)
			src := NewTipRanksSource(DefaultHTTPClient(), srv.URL)

			raws, err := src.FetchNews(context.Background(), "CCL", 0)
			require.NoError(t, err)
			assert.Len(t, raws, tc.want)
		})
	}
}

func TestTipRanksFetchNews_LimitTruncates(t *testing.T) {
	t.Parallel()

	srv, _ := tipRanksServer(t, `{"news": [{"title": "a"}, {"title": "b"}, {"title": "c"}]}`)
	src := NewTipRanksSource(DefaultHTTPClient(), srv.URL)

	raws, err := src.FetchNews(context.Background(), "CCL", 2)
	require.NoError(t, err)
	assert.Len(t, raws, 2)
}

func TestTipRanksFetchNews_EmptyTickerNeverHitsNetwork(t *testing.T) {
	t.Parallel()

	srv, calls := tipRanksServer(t, `{"news": []}`)
	src := NewTipRanksSource(DefaultHTTPClient(), srv.URL)

	_, err := src.FetchNews(context.Background(), "", 0)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Zero(t, *calls)
}

func TestTipRanksFetchNews_StatusFailureIsFetchError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	t.Cleanup(srv.Close)

	src := NewTipRanksSource(DefaultHTTPClient(), srv.URL)
	_, err := src.FetchNews(context.Background(), "CCL", 0)

	var ferr *FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, SourceTipRanks, ferr.Source)
}

func TestRegistry_CaseInsensitiveLookup(t *testing.T) {
	t.Parallel()

	reg := DefaultRegistry(nil)

	src, ok := reg.SourceFor("YAHOO")
	require.True(t, ok)
	assert.Equal(t, SourceYahoo, src.ID())

	src, ok = reg.SourceFor(" TipRanks ")
	require.True(t, ok)
	assert.Equal(t, SourceTipRanks, src.ID())

	_, ok = reg.SourceFor("bloomberg")
	assert.False(t, ok)

	assert.Equal(t, []string{SourceYahoo, SourceTipRanks}, reg.IDs())
}
