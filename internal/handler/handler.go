package handler

import (
	"ai-crypto-pulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer        trace.Tracer
	videoService  *service.VideoService
	marketService *service.MarketService
}

func New(tracer trace.Tracer, videoService *service.VideoService, marketService *service.MarketService) *Handler {
	return &Handler{
		tracer:        tracer,
		videoService:  videoService,
		marketService: marketService,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/videos", h.GetVideos)
	api.GET("/search", h.SearchVideos)
	api.GET("/topics", h.GetTopics)
	api.POST("/prices", h.PostPrices)
	api.POST("/feed", h.PostFeed)
	api.POST("/analysis", h.PostAnalysis)
}
