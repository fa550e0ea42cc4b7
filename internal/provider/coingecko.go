package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"ai-crypto-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// Feed category to CoinGecko market ordering.
var feedOrders = map[string]string{
	"gainers":    "price_change_percentage_24h_desc",
	"losers":     "price_change_percentage_24h_asc",
	"volume":     "volume_desc",
	"market_cap": "market_cap_desc",
}

// CoinGeckoProvider fetches ranked market lists and the trending coin feed
// from the CoinGecko free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a new provider with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchMarkets is the registry entry for the market-list provider.
func (p *CoinGeckoProvider) FetchMarkets(ctx context.Context, params Params) (Result, error) {
	markets, err := p.fetchMarketList(ctx, params.Order, params.Limit)
	if err != nil {
		return Result{}, err
	}
	return Result{Markets: markets}, nil
}

// FetchTrending is the registry entry for the trending provider.
func (p *CoinGeckoProvider) FetchTrending(ctx context.Context, params Params) (Result, error) {
	markets, err := p.fetchTrending(ctx, params.Limit)
	if err != nil {
		return Result{}, err
	}
	return Result{Markets: markets}, nil
}

// OrderForCategory maps a feed category onto a CoinGecko ordering; unknown
// categories fall back to market-cap order.
func OrderForCategory(category string) string {
	if order, ok := feedOrders[category]; ok {
		return order
	}
	return feedOrders["market_cap"]
}

func (p *CoinGeckoProvider) fetchMarketList(ctx context.Context, order string, limit int) ([]domain.MarketRecord, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-markets")
	defer span.End()

	if limit <= 0 || limit > 250 {
		limit = 20
	}
	if order == "" {
		order = feedOrders["market_cap"]
	}

	q := url.Values{}
	q.Set("vs_currency", "usd")
	q.Set("order", order)
	q.Set("per_page", strconv.Itoa(limit))

	body, err := p.doRequest(ctx, p.baseURL+"/coins/markets?"+q.Encode())
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderMarketList, err)
	}

	var raw []struct {
		ID             string   `json:"id"`
		Name           string   `json:"name"`
		Symbol         string   `json:"symbol"`
		MarketCapRank  *int     `json:"market_cap_rank"`
		Image          string   `json:"image"`
		ChangePct24h   *float64 `json:"price_change_percentage_24h"`
		CurrentPrice   float64  `json:"current_price"`
		High24h        float64  `json:"high_24h"`
		Low24h         float64  `json:"low_24h"`
		TotalVolume    float64  `json:"total_volume"`
		PriceChange24h float64  `json:"price_change_24h"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewUpstreamError(ProviderMarketList, fmt.Errorf("parse markets response: %w", err))
	}

	markets := make([]domain.MarketRecord, 0, len(raw))
	for _, row := range raw {
		if row.Symbol == "" {
			continue
		}
		changePct := 0.0
		if row.ChangePct24h != nil {
			changePct = *row.ChangePct24h
		}
		markets = append(markets, domain.MarketRecord{
			Symbol:        strings.ToUpper(row.Symbol),
			Name:          row.Name,
			Price:         row.CurrentPrice,
			Change24h:     row.PriceChange24h,
			Change24hPct:  changePct,
			Volume:        row.TotalVolume,
			High24h:       row.High24h,
			Low24h:        row.Low24h,
			MarketCapRank: row.MarketCapRank,
			ImageURL:      row.Image,
			Trend:         domain.DeriveTrend(changePct),
		})
	}

	return markets, nil
}

// fetchTrending returns the trending coin list. The endpoint carries rank
// and identity only; price fields stay zero.
func (p *CoinGeckoProvider) fetchTrending(ctx context.Context, limit int) ([]domain.MarketRecord, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-trending")
	defer span.End()

	if limit <= 0 {
		limit = 20
	}

	body, err := p.doRequest(ctx, p.baseURL+"/search/trending")
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderTrending, err)
	}

	var raw struct {
		Coins []struct {
			Item struct {
				ID            string `json:"id"`
				Name          string `json:"name"`
				Symbol        string `json:"symbol"`
				MarketCapRank *int   `json:"market_cap_rank"`
				Thumb         string `json:"thumb"`
			} `json:"item"`
		} `json:"coins"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewUpstreamError(ProviderTrending, fmt.Errorf("parse trending response: %w", err))
	}

	markets := make([]domain.MarketRecord, 0, min(limit, len(raw.Coins)))
	for _, coin := range raw.Coins {
		if len(markets) >= limit {
			break
		}
		if coin.Item.Symbol == "" {
			continue
		}
		markets = append(markets, domain.MarketRecord{
			Symbol:        strings.ToUpper(coin.Item.Symbol),
			Name:          coin.Item.Name,
			MarketCapRank: coin.Item.MarketCapRank,
			ImageURL:      coin.Item.Thumb,
			Trend:         domain.DeriveTrend(0),
		})
	}

	return markets, nil
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
