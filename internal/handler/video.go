package handler

import (
	"net/http"
	"strconv"
	"strings"

	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/service"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetVideos godoc
// @Summary      Latest videos across tracked channels
// @Description  Returns the newest videos from the given channels, newest first. Degrades through RSS and a curated catalogue, so the list is never empty.
// @Tags         videos
// @Produce      json
// @Param        channels  query  string  false  "Comma-separated channel IDs (default: curated channel list)"
// @Param        limit     query  int     false  "Max videos (default 12, max 50)"  default(12)
// @Success      200  {object}  map[string]interface{}
// @Router       /api/videos [get]
func (h *Handler) GetVideos(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-videos")
	defer span.End()

	var channelIDs []string
	if raw := c.Query("channels"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				channelIDs = append(channelIDs, id)
			}
		}
	}
	limit := queryInt(c, "limit", 0)
	span.SetAttributes(attribute.Int("channels", len(channelIDs)))

	videos := h.videoService.FetchVideos(ctx, channelIDs, limit)
	c.JSON(http.StatusOK, gin.H{
		"videos": videos,
		"count":  len(videos),
	})
}

// SearchVideos godoc
// @Summary      Search videos
// @Description  Free-text video search with the same degradation guarantees as the feed
// @Tags         videos
// @Produce      json
// @Param        q      query  string  true   "Search query"
// @Param        limit  query  int     false  "Max videos (default 12, max 50)"  default(12)
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /api/search [get]
func (h *Handler) SearchVideos(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.search-videos")
	defer span.End()

	query := c.Query("q")
	span.SetAttributes(attribute.String("query", query))

	videos, err := h.videoService.SearchVideos(ctx, query, queryInt(c, "limit", 0))
	if err != nil {
		if domain.IsInvalidRequest(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":  query,
		"videos": videos,
		"count":  len(videos),
	})
}

// GetTopics godoc
// @Summary      Trending AI crypto topics
// @Description  Returns the curated hashtag board with approximate mention counts
// @Tags         videos
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /api/topics [get]
func (h *Handler) GetTopics(c *gin.Context) {
	topics := service.TrendingTopics()
	c.JSON(http.StatusOK, gin.H{
		"topics": topics,
		"count":  len(topics),
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
