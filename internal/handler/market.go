package handler

import (
	"errors"
	"net/http"

	"ai-crypto-pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type pricesRequest struct {
	Symbols    []string `json:"symbols"`
	MarketType string   `json:"market_type"`
}

type feedRequest struct {
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

type analysisRequest struct {
	Symbol       string `json:"symbol" binding:"required"`
	Timeframe    string `json:"timeframe"`
	AnalysisType string `json:"analysis_type"`
}

// PostPrices godoc
// @Summary      24h ticker data for a symbol list
// @Description  Returns live prices with 24h stats. Failures surface in the envelope, never as fabricated data.
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body  pricesRequest  true  "Symbols to quote"
// @Success      200  {object}  service.PriceResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  service.PriceResult
// @Router       /api/prices [post]
func (h *Handler) PostPrices(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-prices")
	defer span.End()

	var req pricesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	if len(req.Symbols) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbols list is empty"})
		return
	}
	span.SetAttributes(attribute.Int("symbols", len(req.Symbols)))

	result := h.marketService.FetchPrices(ctx, req.Symbols, req.MarketType)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PostFeed godoc
// @Summary      Ranked market feed
// @Description  Returns a market list for a feed category (trending, gainers, losers, volume, market_cap)
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body  feedRequest  true  "Feed category and limit"
// @Success      200  {object}  service.FeedResult
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  service.FeedResult
// @Router       /api/feed [post]
func (h *Handler) PostFeed(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-feed")
	defer span.End()

	var req feedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(attribute.String("category", req.Category))

	result := h.marketService.FetchFeed(ctx, req.Category, req.Limit)
	if !result.Success {
		c.JSON(http.StatusBadGateway, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

// PostAnalysis godoc
// @Summary      Technical analysis for one symbol
// @Description  Bundles the latest market snapshot with rule-derived indicators, a recommendation, and suggested video search topics
// @Tags         market
// @Accept       json
// @Produce      json
// @Param        request  body  analysisRequest  true  "Symbol and analysis options"
// @Success      200  {object}  domain.AnalysisRecord
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/analysis [post]
func (h *Handler) PostAnalysis(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.post-analysis")
	defer span.End()

	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}
	span.SetAttributes(attribute.String("symbol", req.Symbol))

	analysis, err := h.marketService.Analyze(ctx, req.Symbol, req.Timeframe, req.AnalysisType)
	if err != nil {
		switch {
		case domain.IsInvalidRequest(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNoData):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, analysis)
}
