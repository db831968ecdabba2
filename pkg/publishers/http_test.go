package publishers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhruvkm/tickerbrief/internal/domain"
)

func httpSinkConfig(url string) PublisherConfig {
	return sanitizePublisherConfig(PublisherConfig{
		ID:   "webhook",
		Type: TypeHTTP,
		HTTP: &HTTPPublisherConfig{URL: url},
	})
}

func sampleEvent() Event {
	return NewEvent(&domain.UnifiedResult{
		Ticker:        "AAPL",
		Sources:       []string{"yahoo", "tipranks"},
		Articles:      []domain.Article{},
		BySource:      map[string]domain.SourceReport{},
		TotalArticles: 3,
		Timestamp:     "2025-06-02T10:00:00Z",
	})
}

func TestHTTPPublisher_PostsEventJSON(t *testing.T) {
	t.Parallel()

	var received Event
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	pub, err := newHTTPPublisher(context.Background(), httpSinkConfig(srv.URL), nil)
	require.NoError(t, err)
	assert.Equal(t, "webhook", pub.ID())
	assert.Equal(t, TypeHTTP, pub.Type())

	require.NoError(t, pub.Publish(context.Background(), sampleEvent()))
	assert.Equal(t, "AAPL", received.Ticker)
	assert.Equal(t, 3, received.TotalArticles)
	assert.Equal(t, "2025-06-02T10:00:00Z", received.GeneratedAt)
}

func TestHTTPPublisher_NonSuccessStatusIsError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "teapot", http.StatusTeapot)
	}))
	t.Cleanup(srv.Close)

	pub, err := newHTTPPublisher(context.Background(), httpSinkConfig(srv.URL), nil)
	require.NoError(t, err)

	err = pub.Publish(context.Background(), sampleEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 418")
}

func TestBuilders_BuildAll(t *testing.T) {
	t.Parallel()

	builders := DefaultBuilders()

	_, err := builders.BuildAll(context.Background(), []PublisherConfig{{ID: "x", Type: "smoke-signal"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no builder for publisher type")

	_, err = builders.BuildAll(context.Background(), []PublisherConfig{{ID: "x"}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no type configured")

	// Types match case-insensitively.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	pubs, err := builders.BuildAll(context.Background(), []PublisherConfig{{
		ID:   "webhook",
		Type: "HTTP",
		HTTP: &HTTPPublisherConfig{URL: srv.URL},
	}}, nil)
	require.NoError(t, err)
	require.Len(t, pubs, 1)
	assert.Equal(t, "webhook", pubs[0].ID())
}
