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

const binanceBaseURL = "https://api.binance.com/api/v3"

// BinanceProvider fetches 24hr ticker statistics. Market data has no
// fallback tier: a failure here surfaces to the caller instead of being
// papered over with fabricated prices.
type BinanceProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewBinanceProvider creates the ticker client. Binance allows a generous
// request weight; 20 calls per 3s keeps us well inside it.
func NewBinanceProvider(tracer trace.Tracer) *BinanceProvider {
	return &BinanceProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: binanceBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(20, 3*time.Second),
	}
}

// Fetch is the registry entry for the ticker-24hr provider.
func (p *BinanceProvider) Fetch(ctx context.Context, params Params) (Result, error) {
	markets, err := p.FetchTicker24h(ctx, params.Symbols)
	if err != nil {
		return Result{}, err
	}
	return Result{Markets: markets}, nil
}

// FetchTicker24h fetches one batched ticker call for the given symbols and
// normalizes the rows. Rows with an unparsable price or missing symbol are
// dropped silently.
func (p *BinanceProvider) FetchTicker24h(ctx context.Context, symbols []string) ([]domain.MarketRecord, error) {
	_, span := p.tracer.Start(ctx, "binance.fetch-ticker-24hr")
	defer span.End()

	if len(symbols) == 0 {
		return nil, domain.NewInvalidRequest("ticker requires a non-empty symbol list")
	}

	upper := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if t := strings.ToUpper(strings.TrimSpace(s)); t != "" {
			upper = append(upper, t)
		}
	}
	if len(upper) == 0 {
		return nil, domain.NewInvalidRequest("ticker requires a non-empty symbol list")
	}

	// Binance expects the symbol list as a JSON array in the query string.
	symbolsJSON, err := json.Marshal(upper)
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderTicker, err)
	}
	q := url.Values{}
	q.Set("symbols", string(symbolsJSON))

	body, err := p.doRequest(ctx, p.baseURL+"/ticker/24hr?"+q.Encode())
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderTicker, err)
	}

	var raw []struct {
		Symbol             string `json:"symbol"`
		LastPrice          string `json:"lastPrice"`
		PriceChange        string `json:"priceChange"`
		PriceChangePercent string `json:"priceChangePercent"`
		Volume             string `json:"volume"`
		HighPrice          string `json:"highPrice"`
		LowPrice           string `json:"lowPrice"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewUpstreamError(ProviderTicker, fmt.Errorf("parse ticker response: %w", err))
	}

	markets := make([]domain.MarketRecord, 0, len(raw))
	for _, row := range raw {
		if row.Symbol == "" {
			continue
		}
		price, err := strconv.ParseFloat(row.LastPrice, 64)
		if err != nil {
			continue
		}
		changePct, _ := strconv.ParseFloat(row.PriceChangePercent, 64)
		change, _ := strconv.ParseFloat(row.PriceChange, 64)
		volume, _ := strconv.ParseFloat(row.Volume, 64)
		high, _ := strconv.ParseFloat(row.HighPrice, 64)
		low, _ := strconv.ParseFloat(row.LowPrice, 64)

		markets = append(markets, domain.MarketRecord{
			Symbol:       row.Symbol,
			Price:        price,
			Change24h:    change,
			Change24hPct: changePct,
			Volume:       volume,
			High24h:      high,
			Low24h:       low,
			Trend:        domain.DeriveTrend(changePct),
		})
	}

	return markets, nil
}

func (p *BinanceProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
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
		return nil, fmt.Errorf("binance API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
