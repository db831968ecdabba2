package publishers

import (
	"context"

	"github.com/dhruvkm/tickerbrief/internal/domain"
	"github.com/dhruvkm/tickerbrief/internal/logger"
)

// Logger aliases the module logger so builders accept any implementation.
type Logger = logger.Logger

func ensureLogger(log Logger) Logger {
	if log == nil {
		return logger.NopLogger{}
	}
	return log
}

// Event is the delivery envelope for one aggregation result.
type Event struct {
	Ticker        string                `json:"ticker"`
	TotalArticles int                   `json:"total_articles"`
	Sources       []string              `json:"sources"`
	GeneratedAt   string                `json:"generated_at"`
	Result        *domain.UnifiedResult `json:"result"`
}

// NewEvent wraps an aggregation result for delivery.
func NewEvent(result *domain.UnifiedResult) Event {
	if result == nil {
		return Event{}
	}
	return Event{
		Ticker:        result.Ticker,
		TotalArticles: result.TotalArticles,
		Sources:       result.Sources,
		GeneratedAt:   result.Timestamp,
		Result:        result,
	}
}

// Publisher delivers aggregation events to an external sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}
