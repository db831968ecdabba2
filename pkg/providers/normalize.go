package providers

import (
	"strings"
	"time"

	"github.com/dhruvkm/tickerbrief/internal/domain"
)

// Normalize maps a raw provider record to the canonical Article. It never
// fails: missing optional fields become their documented defaults. The
// aggregator stamps Ticker and may override nothing else.
func Normalize(raw RawArticle) domain.Article {
	switch raw.Schema {
	case SchemaYahoo:
		return normalizeYahoo(raw.Yahoo)
	case SchemaTipRanks:
		return normalizeTipRanks(raw.TipRanks)
	default:
		return emptyArticle("")
	}
}

func normalizeYahoo(rec *YahooRecord) domain.Article {
	if rec == nil {
		return emptyArticle(SourceYahoo)
	}

	art := emptyArticle(SourceYahoo)
	art.Title = orUnavailable(rec.Title)
	art.Summary = orUnavailable(firstNonEmpty(rec.Summary, rec.Description))
	art.URL = resolveYahooLink(rec)
	if rec.Provider != nil {
		art.Publisher = orUnavailable(rec.Provider.DisplayName)
	}
	art.PublishedDate = normalizeDate(firstNonEmpty(rec.PubDate, rec.DisplayTime))
	if rec.ContentType != "" {
		art.ContentType = rec.ContentType
	}
	art.Thumbnail = resolveYahooThumbnail(rec.Thumbnail)
	art.RawData = rec.Raw
	return art
}

func normalizeTipRanks(rec *TipRanksRecord) domain.Article {
	if rec == nil {
		return emptyArticle(SourceTipRanks)
	}

	art := emptyArticle(SourceTipRanks)
	art.Title = orUnavailable(rec.Title)
	art.URL = orUnavailable(firstNonEmpty(rec.URL, rec.URLString))
	art.Publisher = orUnavailable(rec.SiteName)
	art.PublishedDate = normalizeDate(rec.Date)
	if rec.Sentiment != "" {
		art.Sentiment = rec.Sentiment
	}
	art.CompanyName = rec.CompanyName
	art.RawData = rec.Raw
	return art
}

// emptyArticle is the all-defaults canonical article for a source.
func emptyArticle(source string) domain.Article {
	return domain.Article{
		Title:       domain.FieldUnavailable,
		Summary:     domain.FieldUnavailable,
		URL:         domain.FieldUnavailable,
		Publisher:   domain.FieldUnavailable,
		Sentiment:   domain.SentimentNeutral,
		Source:      source,
		ContentType: domain.ContentTypeArticle,
	}
}

// resolveYahooLink prefers the click-through URL, then the canonical URL.
func resolveYahooLink(rec *YahooRecord) string {
	if rec.ClickThroughURL != nil && rec.ClickThroughURL.URL != "" {
		return rec.ClickThroughURL.URL
	}
	if rec.CanonicalURL != nil && rec.CanonicalURL.URL != "" {
		return rec.CanonicalURL.URL
	}
	return domain.FieldUnavailable
}

// resolveYahooThumbnail reads the first entry of the resolutions list.
func resolveYahooThumbnail(thumb *YahooThumbnail) string {
	if thumb == nil || len(thumb.Resolutions) == 0 {
		return ""
	}
	return thumb.Resolutions[0].URL
}

// dateLayouts are the accepted ISO-8601 variants, tried in order. RFC3339
// covers the trailing-Z UTC designator and numeric offsets.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	domain.DateLayout,
	"2006-01-02",
}

// normalizeDate reformats a parseable ISO-8601 timestamp to the fixed-width
// canonical layout. Unparseable input passes through raw so no provider
// information is lost; empty input stays empty.
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(domain.DateLayout)
		}
	}
	return raw
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func orUnavailable(v string) string {
	if strings.TrimSpace(v) == "" {
		return domain.FieldUnavailable
	}
	return v
}
