package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"ai-crypto-pulse/internal/cache"
	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100

	// Thresholds behind the rule-based indicator labels.
	overboughtPct   = 10.0
	oversoldPct     = -10.0
	highVolume      = 1_000_000.0
	moderateVolume  = 100_000.0
	nearHighFactor  = 0.95
	nearLowFactor   = 1.05
	strongSignalPct = 5.0
	momentumPct     = 2.0
	maxSearchTopics = 5
)

// PriceResult is the envelope every market read returns. Failures carry the
// upstream error text and an empty data slice, never a partial one.
type PriceResult struct {
	Success   bool                  `json:"success"`
	Data      []domain.MarketRecord `json:"data"`
	Error     string                `json:"error,omitempty"`
	FetchedAt time.Time             `json:"fetched_at,omitempty"`
}

// FeedResult is the envelope for category feeds.
type FeedResult struct {
	Success   bool                  `json:"success"`
	Category  string                `json:"category"`
	Data      []domain.MarketRecord `json:"data"`
	Error     string                `json:"error,omitempty"`
	FetchedAt time.Time             `json:"fetched_at,omitempty"`
}

// MarketService aggregates ticker, feed, and analysis reads. Unlike the
// video side there is no fallback tier: a broken upstream surfaces as a
// failed envelope so callers never mistake stale or fabricated prices for
// live ones.
type MarketService struct {
	tracer   trace.Tracer
	registry *provider.Registry
	store    cache.Store
	now      func() time.Time
}

func NewMarketService(tracer trace.Tracer, registry *provider.Registry, store cache.Store) *MarketService {
	return &MarketService{
		tracer:   tracer,
		registry: registry,
		store:    store,
		now:      time.Now,
	}
}

// FetchPrices returns 24h ticker data for the given symbols. Symbols are
// normalized (trimmed, uppercased, deduplicated by the cache key) before the
// upstream sees them.
func (s *MarketService) FetchPrices(ctx context.Context, symbols []string, marketType string) PriceResult {
	ctx, span := s.tracer.Start(ctx, "market-service.fetch-prices")
	defer span.End()

	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return PriceResult{Success: false, Error: "symbols list is empty", Data: []domain.MarketRecord{}}
	}
	if marketType == "" {
		marketType = "spot"
	}

	key := cache.Key(provider.ProviderTicker, marketType, cache.SymbolsKey(symbols))
	if entry, ok := s.store.Get(ctx, key); ok {
		return PriceResult{Success: true, Data: entry.Markets, FetchedAt: entry.FetchedAt}
	}

	result, err := s.registry.Fetch(ctx, provider.ProviderTicker, provider.Params{Symbols: symbols})
	if err != nil {
		return PriceResult{Success: false, Error: err.Error(), Data: []domain.MarketRecord{}}
	}

	fetchedAt := s.now()
	s.store.Put(ctx, key, cache.Entry{Markets: result.Markets, FetchedAt: fetchedAt})
	return PriceResult{Success: true, Data: result.Markets, FetchedAt: fetchedAt}
}

// FetchFeed returns a ranked market list for a feed category. The trending
// category maps to its own upstream; every other category is a market-list
// ordering, unknown ones defaulting to market-cap order.
func (s *MarketService) FetchFeed(ctx context.Context, category string, limit int) FeedResult {
	ctx, span := s.tracer.Start(ctx, "market-service.fetch-feed")
	defer span.End()

	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		category = "trending"
	}
	if limit <= 0 {
		limit = defaultFeedLimit
	}
	if limit > maxFeedLimit {
		limit = maxFeedLimit
	}

	key := cache.Key("feed", category, strconv.Itoa(limit))
	if entry, ok := s.store.Get(ctx, key); ok {
		return FeedResult{Success: true, Category: category, Data: entry.Markets, FetchedAt: entry.FetchedAt}
	}

	providerName := provider.ProviderMarketList
	params := provider.Params{Order: provider.OrderForCategory(category), Limit: limit}
	if category == "trending" {
		providerName = provider.ProviderTrending
		params = provider.Params{Limit: limit}
	}

	result, err := s.registry.Fetch(ctx, providerName, params)
	if err != nil {
		return FeedResult{Success: false, Category: category, Error: err.Error(), Data: []domain.MarketRecord{}}
	}

	fetchedAt := s.now()
	s.store.Put(ctx, key, cache.Entry{Markets: result.Markets, FetchedAt: fetchedAt})
	return FeedResult{Success: true, Category: category, Data: result.Markets, FetchedAt: fetchedAt}
}

// Analyze bundles the latest snapshot for one symbol with rule-derived
// indicator labels, a recommendation, and suggested video search topics.
func (s *MarketService) Analyze(ctx context.Context, symbol, timeframe, analysisType string) (domain.AnalysisRecord, error) {
	ctx, span := s.tracer.Start(ctx, "market-service.analyze")
	defer span.End()

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return domain.AnalysisRecord{}, domain.NewInvalidRequest("analysis symbol is empty")
	}
	if timeframe == "" {
		timeframe = "24h"
	}
	if analysisType == "" {
		analysisType = "technical"
	}

	prices := s.FetchPrices(ctx, []string{symbol}, "spot")
	if !prices.Success {
		return domain.AnalysisRecord{}, domain.NewUpstreamError(provider.ProviderTicker, fmt.Errorf("%s", prices.Error))
	}
	if len(prices.Data) == 0 {
		return domain.AnalysisRecord{}, fmt.Errorf("symbol %s: %w", symbol, domain.ErrNoData)
	}
	snapshot := prices.Data[0]

	return domain.AnalysisRecord{
		Symbol:         symbol,
		Timeframe:      timeframe,
		AnalysisType:   analysisType,
		Price:          snapshot.Price,
		Change24h:      snapshot.Change24h,
		Change24hPct:   snapshot.Change24hPct,
		Volume:         snapshot.Volume,
		High24h:        snapshot.High24h,
		Low24h:         snapshot.Low24h,
		Trend:          snapshot.Trend,
		Indicators:     deriveIndicators(snapshot),
		Recommendation: deriveRecommendation(snapshot),
		SearchTopics:   deriveSearchTopics(symbol, snapshot),
	}, nil
}

func deriveIndicators(m domain.MarketRecord) domain.TechnicalIndicators {
	ind := domain.TechnicalIndicators{
		RSISignal:     "neutral",
		VolumeTrend:   "low",
		PricePosition: "middle",
	}
	switch {
	case m.Change24hPct > overboughtPct:
		ind.RSISignal = "overbought"
	case m.Change24hPct < oversoldPct:
		ind.RSISignal = "oversold"
	}
	switch {
	case m.Volume > highVolume:
		ind.VolumeTrend = "high"
	case m.Volume > moderateVolume:
		ind.VolumeTrend = "moderate"
	}
	switch {
	case m.Price > m.High24h*nearHighFactor:
		ind.PricePosition = "near_high"
	case m.Price < m.Low24h*nearLowFactor:
		ind.PricePosition = "near_low"
	}
	return ind
}

func deriveRecommendation(m domain.MarketRecord) string {
	switch {
	case m.Change24hPct > strongSignalPct && m.Volume > highVolume:
		return "Strong buy signal - High volume with significant price increase"
	case m.Change24hPct > momentumPct:
		return "Buy signal - Positive momentum"
	case m.Change24hPct < -strongSignalPct && m.Volume > highVolume:
		return "Strong sell signal - High volume with significant price decrease"
	case m.Change24hPct < -momentumPct:
		return "Sell signal - Negative momentum"
	default:
		return "Hold - Sideways movement"
	}
}

func deriveSearchTopics(symbol string, m domain.MarketRecord) []string {
	topics := []string{
		symbol + " price analysis",
		symbol + " trading strategy",
	}
	if m.Trend == domain.TrendBullish {
		topics = append(topics, symbol+" bull run analysis", symbol+" price prediction 2024")
	} else {
		topics = append(topics, symbol+" bear market analysis", symbol+" support levels")
	}
	if m.Volume > highVolume {
		topics = append(topics, symbol+" high volume trading", symbol+" whale activity")
	}
	if m.MarketCapRank != nil && *m.MarketCapRank <= 10 {
		topics = append(topics, symbol+" top 10 cryptocurrency", symbol+" institutional adoption")
	}
	if len(topics) > maxSearchTopics {
		topics = topics[:maxSearchTopics]
	}
	return topics
}

func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		sym = strings.ToUpper(strings.TrimSpace(sym))
		if sym == "" {
			continue
		}
		out = append(out, sym)
	}
	return out
}
