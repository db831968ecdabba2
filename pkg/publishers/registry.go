package publishers

import (
	"context"
	"fmt"
	"strings"
)

// Builder constructs a Publisher from one config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Builders maps publisher types to their constructors. Types are matched
// case-insensitively.
type Builders map[string]Builder

// DefaultBuilders returns the constructors for the built-in publisher types.
func DefaultBuilders() Builders {
	return Builders{
		TypeHTTP:  newHTTPPublisher,
		TypeQueue: newQueuePublisher,
	}
}

// For returns the constructor for the config's type.
func (b Builders) For(cfg PublisherConfig) (Builder, error) {
	typ := strings.ToLower(strings.TrimSpace(cfg.Type))
	if typ == "" {
		return nil, fmt.Errorf("publisher %q has no type configured", cfg.ID)
	}
	builder, ok := b[typ]
	if !ok || builder == nil {
		return nil, fmt.Errorf("no builder for publisher type %q", cfg.Type)
	}
	return builder, nil
}

// BuildAll instantiates a publisher for every config entry. It fails on the
// first entry with an unknown type or a failing constructor.
func (b Builders) BuildAll(ctx context.Context, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	log = ensureLogger(log)

	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		builder, err := b.For(cfg)
		if err != nil {
			return nil, err
		}
		pub, err := builder(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}
