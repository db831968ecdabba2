package providers

import (
	"strings"
	"sync"

	"github.com/dhruvkm/tickerbrief/pkg/httpclient"
)

// Registry holds the configured source adapters keyed by lower-cased ID,
// preserving registration order for deterministic iteration.
type Registry struct {
	mu      sync.RWMutex
	sources map[string]Source
	order   []string
}

// NewRegistry builds a registry for the provided source implementations.
func NewRegistry(sources ...Source) *Registry {
	reg := &Registry{
		sources: make(map[string]Source, len(sources)),
	}

	for _, s := range sources {
		if s == nil {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(s.ID()))
		if _, exists := reg.sources[key]; !exists {
			reg.order = append(reg.order, s.ID())
		}
		reg.sources[key] = s
	}

	return reg
}

// SourceFor selects the source registered under name, matched
// case-insensitively.
func (r *Registry) SourceFor(name string) (Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.sources[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// IDs returns the source identifiers in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// DefaultRegistry wires up the known source adapters.
func DefaultRegistry(client httpclient.Client) *Registry {
	if client == nil {
		client = DefaultHTTPClient()
	}

	return NewRegistry(
		NewYahooSource(client, ""),
		NewTipRanksSource(client, ""),
	)
}
