// Package report renders aggregation results as plain text. Rendering is
// pure and never fails; malformed input comes back as an error-describing
// string instead.
package report

import (
	"fmt"
	"strings"

	"github.com/dhruvkm/tickerbrief/internal/domain"
)

const (
	// unifiedSummaryLimit caps the summary field in the unified report.
	unifiedSummaryLimit = 150
	// sourceSummaryLimit caps the summary field in a single-source report.
	sourceSummaryLimit = 200
	// maxListedArticles caps how many merged articles the unified report shows.
	maxListedArticles = 10

	rule = "=================================================="
)

// Unified renders the multi-source aggregation report: a header, one line
// per source with its count and error, then the newest articles.
func Unified(result *domain.UnifiedResult) string {
	if result == nil {
		return "Error rendering news summary: no result"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Unified News Summary for %s\n", result.Ticker)
	b.WriteString(rule + "\n\n")

	fmt.Fprintf(&b, "Total Articles: %d\n", result.TotalArticles)
	fmt.Fprintf(&b, "Sources: %s\n", strings.Join(result.Sources, ", "))
	fmt.Fprintf(&b, "Generated: %s\n\n", result.Timestamp)

	// Iterate Sources, not the map, so output order is deterministic.
	for _, source := range result.Sources {
		entry := result.BySource[source]
		fmt.Fprintf(&b, "%s: %d articles", strings.ToUpper(source), entry.Count)
		if entry.Error != "" {
			fmt.Fprintf(&b, " (Error: %s)", entry.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + rule + "\n\n")

	for i, art := range result.Articles {
		if i >= maxListedArticles {
			break
		}
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, strings.ToUpper(art.Source), art.Title)
		fmt.Fprintf(&b, "   Publisher: %s\n", art.Publisher)
		if art.PublishedDate != "" {
			fmt.Fprintf(&b, "   Date: %s\n", art.PublishedDate)
		}
		if art.Sentiment != domain.SentimentNeutral {
			fmt.Fprintf(&b, "   Sentiment: %s\n", art.Sentiment)
		}
		if art.Summary != "" && art.Summary != domain.FieldUnavailable {
			fmt.Fprintf(&b, "   Summary: %s\n", truncate(art.Summary, unifiedSummaryLimit))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Articles renders a single-source article list under the given heading.
func Articles(heading string, articles []domain.Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", heading)
	b.WriteString(rule + "\n\n")

	if len(articles) == 0 {
		b.WriteString("No recent news found\n")
		return b.String()
	}

	for i, art := range articles {
		fmt.Fprintf(&b, "%d. %s\n", i+1, art.Title)
		fmt.Fprintf(&b, "   Publisher: %s\n", art.Publisher)
		if art.PublishedDate != "" {
			fmt.Fprintf(&b, "   Date: %s\n", art.PublishedDate)
		}
		if art.Summary != "" && art.Summary != domain.FieldUnavailable {
			fmt.Fprintf(&b, "   Summary: %s\n", truncate(art.Summary, sourceSummaryLimit))
		}
		if art.URL != "" && art.URL != domain.FieldUnavailable {
			fmt.Fprintf(&b, "   Link: %s\n", art.URL)
		}
		b.WriteString("\n")
	}

	return b.String()
}

// truncate cuts s after limit characters and appends an ellipsis.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
