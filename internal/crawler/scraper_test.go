package crawler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvkm/tickerbrief/internal/domain"
)

const articlePage = `<!DOCTYPE html>
<html><head>
<title>Fallback title</title>
<meta property="og:title" content="Apple unveils new chip" />
<meta property="og:description" content="Full description from the page." />
<meta property="og:image" content="/images/apple.jpg" />
</head><body></body></html>`

func TestEnrich_BackfillsMissingFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)

	articles := []domain.Article{{
		Title:   "Provider title",
		Summary: domain.FieldUnavailable,
		URL:     srv.URL + "/story/1",
	}}

	s := NewScraper(nil, nil, 0)
	out := s.Enrich(context.Background(), articles)

	require.Len(t, out, 1)
	// The provider title is authoritative; only gaps are filled.
	assert.Equal(t, "Provider title", out[0].Title)
	assert.Equal(t, "Full description from the page.", out[0].Summary)
	assert.Equal(t, srv.URL+"/images/apple.jpg", out[0].Thumbnail)
}

func TestEnrich_SkipsCompleteAndUnlinkedArticles(t *testing.T) {
	t.Parallel()

	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(articlePage))
	}))
	t.Cleanup(srv.Close)

	articles := []domain.Article{
		{Title: "Complete", Summary: "Has one", Thumbnail: "x", URL: srv.URL},
		{Title: "No link", Summary: domain.FieldUnavailable, URL: domain.FieldUnavailable},
	}

	s := NewScraper(nil, nil, 0)
	out := s.Enrich(context.Background(), articles)

	assert.Equal(t, articles, out)
	assert.Zero(t, calls)
}

func TestEnrich_FetchFailureLeavesArticleUnchanged(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	articles := []domain.Article{{
		Title:   "Still here",
		Summary: domain.FieldUnavailable,
		URL:     srv.URL + "/story/2",
	}}

	s := NewScraper(nil, nil, 0)
	out := s.Enrich(context.Background(), articles)

	require.Len(t, out, 1)
	assert.Equal(t, articles[0], out[0])
}

func TestParseMeta(t *testing.T) {
	t.Parallel()

	meta, err := parseMeta([]byte(articlePage))
	require.NoError(t, err)
	assert.Equal(t, "Apple unveils new chip", meta.Title)
	assert.Equal(t, "Full description from the page.", meta.Description)
	assert.Equal(t, "/images/apple.jpg", meta.ImageURL)
}

func TestResolveURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.example.com/img.jpg",
		resolveURL("https://a.example.com/img.jpg", "https://b.example.com/story"))
	assert.Equal(t, "https://b.example.com/img.jpg",
		resolveURL("/img.jpg", "https://b.example.com/story"))
	assert.Equal(t, "", resolveURL("", "https://b.example.com/story"))
}
