package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ai-crypto-pulse/internal/cache"
	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/provider"
	"ai-crypto-pulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

func newTestRouter(t *testing.T, apiKey string, register func(*provider.Registry)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tracer := trace.NewNoopTracerProvider().Tracer("handler-test")
	registry := provider.NewRegistry()
	if register != nil {
		register(registry)
	}
	store := cache.NewMemoryStore(time.Minute)

	h := New(tracer,
		service.NewVideoService(tracer, registry, store),
		service.NewMarketService(tracer, registry, store))

	r := gin.New()
	h.RegisterRoutes(r, apiKey)
	return r
}

func TestHealth(t *testing.T) {
	r := newTestRouter(t, "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "healthy") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestGetVideos(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderVideoSearch, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{Videos: []domain.VideoRecord{{
				VideoID:     "v1",
				Title:       "Bitcoin Update",
				Channel:     "Coin Bureau",
				PublishedAt: time.Now().Add(-time.Hour),
				Tier:        domain.Tier1,
			}}}, nil
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/videos?channels=ch-a&limit=5", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body struct {
		Videos []domain.VideoRecord `json:"videos"`
		Count  int                  `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Count != 1 || body.Videos[0].VideoID != "v1" {
		t.Fatalf("unexpected payload: %+v", body)
	}
	if body.Videos[0].TimeAgo != "1h ago" {
		t.Fatalf("expected time_ago in payload, got %q", body.Videos[0].TimeAgo)
	}
}

func TestGetVideosNeverEmpty(t *testing.T) {
	// No providers registered at all: both upstream tiers fail with unknown
	// provider, leaving the seed catalogue.
	r := newTestRouter(t, "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/videos", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Count == 0 {
		t.Fatal("video feed must never be empty")
	}
}

func TestSearchVideosMissingQuery(t *testing.T) {
	r := newTestRouter(t, "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/search", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetTopics(t *testing.T) {
	r := newTestRouter(t, "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body struct {
		Topics []domain.TrendingTopic `json:"topics"`
		Count  int                    `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Count != 8 || body.Topics[0].Tag != "#Bittensor" {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestPostPrices(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderTicker, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{Markets: []domain.MarketRecord{{Symbol: "BTCUSDT", Price: 97000, Trend: domain.TrendBullish}}}, nil
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prices", strings.NewReader(`{"symbols":["BTCUSDT"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body service.PriceResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !body.Success || len(body.Data) != 1 || body.Data[0].Symbol != "BTCUSDT" {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestPostPricesEmptySymbols(t *testing.T) {
	r := newTestRouter(t, "", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prices", strings.NewReader(`{"symbols":[]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestPostPricesUpstreamFailure(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderTicker, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{}, domain.NewUpstreamError(provider.ProviderTicker, errors.New("exchange down"))
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/prices", strings.NewReader(`{"symbols":["BTCUSDT"]}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
	var body service.PriceResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Success || body.Error == "" || len(body.Data) != 0 {
		t.Fatalf("expected failed envelope, got %+v", body)
	}
}

func TestPostFeed(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderTrending, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{Markets: []domain.MarketRecord{{Symbol: "TAO"}}}, nil
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/feed", strings.NewReader(`{"category":"trending","limit":5}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body service.FeedResult
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if !body.Success || body.Category != "trending" || len(body.Data) != 1 {
		t.Fatalf("unexpected payload: %+v", body)
	}
}

func TestPostAnalysisNoData(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderTicker, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{}, nil
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(`{"symbol":"NOPEUSDT"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestPostAnalysis(t *testing.T) {
	r := newTestRouter(t, "", func(reg *provider.Registry) {
		reg.Register(provider.ProviderTicker, func(ctx context.Context, p provider.Params) (provider.Result, error) {
			return provider.Result{Markets: []domain.MarketRecord{{
				Symbol:       "BTCUSDT",
				Price:        97000,
				Change24hPct: 3.0,
				Volume:       45_000_000_000,
				High24h:      98000,
				Low24h:       94000,
				Trend:        domain.TrendBullish,
			}}}, nil
		})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/analysis", strings.NewReader(`{"symbol":"BTCUSDT"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var body domain.AnalysisRecord
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if body.Recommendation != "Buy signal - Positive momentum" {
		t.Fatalf("unexpected recommendation: %q", body.Recommendation)
	}
	if len(body.SearchTopics) == 0 {
		t.Fatal("expected youtube_topics in payload")
	}
}

func TestAPIKeyAuth(t *testing.T) {
	r := newTestRouter(t, "secret", nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-API-Key", "wrong")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with wrong key, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/topics", nil)
	req.Header.Set("X-API-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid key, got %d", w.Code)
	}

	// Health stays open regardless of the key.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected open health endpoint, got %d", w.Code)
	}
}
