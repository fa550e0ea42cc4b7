// Package provider holds one client per upstream data source, each pairing
// a request builder with a response normalizer, plus the registry that
// dispatches on provider name. Adding a source means registering one entry;
// no dispatch code changes.
package provider

import (
	"context"
	"fmt"

	"ai-crypto-pulse/internal/domain"
)

// Registered provider names.
const (
	ProviderVideoSearch = "video-search"
	ProviderChannelRSS  = "channel-rss"
	ProviderTicker      = "ticker-24hr"
	ProviderMarketList  = "market-list"
	ProviderTrending    = "trending"
)

// Params is the union of per-provider request parameters. Each provider
// reads only the fields its request shape needs and rejects requests where
// they are missing.
type Params struct {
	Query     string
	ChannelID string
	Symbols   []string
	Order     string
	Limit     int
}

// Result carries the normalized records of one fetch. Exactly one of the
// two slices is populated, matching the provider's category.
type Result struct {
	Videos  []domain.VideoRecord
	Markets []domain.MarketRecord
}

// Empty reports whether the fetch yielded no records at all.
func (r Result) Empty() bool {
	return len(r.Videos) == 0 && len(r.Markets) == 0
}

// FetchFunc performs one bounded-timeout upstream call and returns the
// normalized result or a typed failure. No caching, no retries.
type FetchFunc func(ctx context.Context, p Params) (Result, error)

// Registry maps provider names to their fetch strategies.
type Registry struct {
	providers map[string]FetchFunc
}

func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]FetchFunc)}
}

func (r *Registry) Register(name string, fn FetchFunc) {
	r.providers[name] = fn
}

// Fetch dispatches to the named provider. An unknown name is a caller bug
// and surfaces as an invalid request, not an upstream failure.
func (r *Registry) Fetch(ctx context.Context, name string, p Params) (Result, error) {
	fn, ok := r.providers[name]
	if !ok {
		return Result{}, domain.NewInvalidRequest(fmt.Sprintf("unknown provider %q", name))
	}
	return fn(ctx, p)
}
