package aggregator

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dhruvkm/tickerbrief/internal/domain"
	"github.com/dhruvkm/tickerbrief/internal/logger"
	"github.com/dhruvkm/tickerbrief/internal/report"
	"github.com/dhruvkm/tickerbrief/pkg/providers"
)

// UnknownSourceError reports a source name that is not configured.
type UnknownSourceError struct {
	Source    string
	Available []string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("unknown source: %s. Available sources: %s", e.Source, strings.Join(e.Available, ", "))
}

// Aggregator queries every configured source adapter, normalizes their raw
// records into canonical articles and merges the outcome with per-source
// accounting. It holds no per-call state and is safe for reuse.
type Aggregator struct {
	registry *providers.Registry
	log      logger.Logger
}

// New builds an Aggregator over the given source registry. A nil registry
// selects the default sources; a nil logger discards log output.
func New(registry *providers.Registry, log logger.Logger) *Aggregator {
	if registry == nil {
		registry = providers.DefaultRegistry(nil)
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Aggregator{registry: registry, log: log}
}

// sourceOutcome is the result of one adapter's fetch+normalize pass.
type sourceOutcome struct {
	articles []domain.Article
	err      error
}

// GetUnifiedNews fetches news for ticker from every configured source.
// Sources are queried independently: one source failing is recorded on its
// by_source entry and never fails the call. Merged articles are sorted by
// published date, newest first, with undated articles last; ties keep source
// order then intra-source order. limitPerSource <= 0 means no limit.
func (a *Aggregator) GetUnifiedNews(ctx context.Context, ticker string, limitPerSource int) (*domain.UnifiedResult, error) {
	ticker, err := providers.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	ids := a.registry.IDs()
	outcomes := make([]sourceOutcome, len(ids))

	var wg sync.WaitGroup
	for i, id := range ids {
		src, ok := a.registry.SourceFor(id)
		if !ok {
			continue
		}
		wg.Add(1)
		go func(i int, src providers.Source) {
			defer wg.Done()
			outcomes[i] = a.fetchOne(ctx, src, ticker, limitPerSource)
		}(i, src)
	}
	wg.Wait()

	result := &domain.UnifiedResult{
		Ticker:    ticker,
		Sources:   ids,
		Articles:  []domain.Article{},
		BySource:  make(map[string]domain.SourceReport, len(ids)),
		Timestamp: time.Now().Format(time.RFC3339),
	}

	// Merge in registration order so the pre-sort concatenation, and with it
	// tie-breaking, is deterministic regardless of fetch completion order.
	for i, id := range ids {
		outcome := outcomes[i]
		entry := domain.SourceReport{Articles: []domain.Article{}}

		if outcome.err != nil {
			entry.Error = outcome.err.Error()
			a.log.WarnObj("source fetch failed", "aggregate_source_error", map[string]any{
				"source": id,
				"ticker": ticker,
				"error":  outcome.err.Error(),
			})
		} else {
			entry.Articles = outcome.articles
			entry.Count = len(outcome.articles)
			result.Articles = append(result.Articles, outcome.articles...)
		}

		result.BySource[id] = entry
	}

	// The canonical date layout is fixed-width and zero-padded, so plain
	// string comparison sorts parseable dates chronologically. Empty dates
	// are the minimum and sink to the end.
	sort.SliceStable(result.Articles, func(i, j int) bool {
		return result.Articles[i].PublishedDate > result.Articles[j].PublishedDate
	})

	result.TotalArticles = len(result.Articles)
	return result, nil
}

// fetchOne runs a single adapter and normalizes its raw records.
func (a *Aggregator) fetchOne(ctx context.Context, src providers.Source, ticker string, limit int) sourceOutcome {
	raws, err := src.FetchNews(ctx, ticker, limit)
	if err != nil {
		return sourceOutcome{err: err}
	}

	articles := make([]domain.Article, 0, len(raws))
	for _, raw := range raws {
		art := providers.Normalize(raw)
		art.Ticker = ticker
		articles = append(articles, art)
	}
	return sourceOutcome{articles: articles}
}

// GetNewsBySource fetches normalized articles from a single named source.
// The name is matched case-insensitively; an unconfigured name yields an
// UnknownSourceError. Adapter failures propagate to the caller.
func (a *Aggregator) GetNewsBySource(ctx context.Context, ticker, source string, limit int) ([]domain.Article, error) {
	src, ok := a.registry.SourceFor(source)
	if !ok {
		return nil, &UnknownSourceError{Source: source, Available: a.registry.IDs()}
	}

	ticker, err := providers.NormalizeTicker(ticker)
	if err != nil {
		return nil, err
	}

	outcome := a.fetchOne(ctx, src, ticker, limit)
	if outcome.err != nil {
		return nil, outcome.err
	}
	return outcome.articles, nil
}

// GetNewsSummary renders a textual report of the unified news for ticker.
// It never fails: residual errors come back as a descriptive string.
func (a *Aggregator) GetNewsSummary(ctx context.Context, ticker string, limitPerSource int) string {
	result, err := a.GetUnifiedNews(ctx, ticker, limitPerSource)
	if err != nil {
		return fmt.Sprintf("Error fetching news summary for %s: %v", ticker, err)
	}
	return report.Unified(result)
}

// Headlines returns the merged article titles, skipping placeholder titles.
func (a *Aggregator) Headlines(ctx context.Context, ticker string, limitPerSource int) ([]string, error) {
	result, err := a.GetUnifiedNews(ctx, ticker, limitPerSource)
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(result.Articles))
	for _, art := range result.Articles {
		if art.Title != domain.FieldUnavailable {
			titles = append(titles, art.Title)
		}
	}
	return titles, nil
}

// SearchByKeyword returns merged articles whose title or summary contains
// keyword, matched case-insensitively. An empty keyword matches every
// article.
func (a *Aggregator) SearchByKeyword(ctx context.Context, ticker, keyword string, limitPerSource int) ([]domain.Article, error) {
	result, err := a.GetUnifiedNews(ctx, ticker, limitPerSource)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return result.Articles, nil
	}

	matches := make([]domain.Article, 0, len(result.Articles))
	for _, art := range result.Articles {
		if strings.Contains(strings.ToLower(art.Title), needle) ||
			strings.Contains(strings.ToLower(art.Summary), needle) {
			matches = append(matches, art)
		}
	}
	return matches, nil
}
