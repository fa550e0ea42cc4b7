package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-crypto-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const youtubeBaseURL = "https://www.googleapis.com/youtube/v3"

// YouTubeProvider queries the YouTube Data API v3 search endpoint. It is
// the primary tier of the video fallback chain and requires an API key.
type YouTubeProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
}

func NewYouTubeProvider(apiKey string, tracer trace.Tracer) *YouTubeProvider {
	return &YouTubeProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: youtubeBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
	}
}

// Fetch is the registry entry for the video-search provider.
func (p *YouTubeProvider) Fetch(ctx context.Context, params Params) (Result, error) {
	videos, err := p.Search(ctx, params.Query, params.ChannelID, params.Limit)
	if err != nil {
		return Result{}, err
	}
	return Result{Videos: videos}, nil
}

// Search runs one Data API search and normalizes the snippet items. A
// missing API key is an upstream failure, not a crash: the caller's
// fallback chain handles it like any other outage.
func (p *YouTubeProvider) Search(ctx context.Context, query, channelID string, maxResults int) ([]domain.VideoRecord, error) {
	_, span := p.tracer.Start(ctx, "youtube.search")
	defer span.End()

	if query == "" && channelID == "" {
		return nil, domain.NewInvalidRequest("video search needs a query or a channel id")
	}
	if p.apiKey == "" {
		return nil, domain.NewUpstreamError(ProviderVideoSearch, errors.New("YOUTUBE_API_KEY not set"))
	}
	if maxResults <= 0 || maxResults > 50 {
		maxResults = 10
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("type", "video")
	q.Set("order", "date")
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("key", p.apiKey)
	if query != "" {
		q.Set("q", query)
	}
	if channelID != "" {
		q.Set("channelId", channelID)
	}

	body, err := p.doRequest(ctx, p.baseURL+"/search?"+q.Encode())
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderVideoSearch, err)
	}

	var raw struct {
		Items []struct {
			ID struct {
				VideoID string `json:"videoId"`
			} `json:"id"`
			Snippet struct {
				Title        string `json:"title"`
				ChannelTitle string `json:"channelTitle"`
				Description  string `json:"description"`
				PublishedAt  string `json:"publishedAt"`
				Thumbnails   struct {
					Medium struct {
						URL string `json:"url"`
					} `json:"medium"`
				} `json:"thumbnails"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, domain.NewUpstreamError(ProviderVideoSearch, fmt.Errorf("parse search response: %w", err))
	}

	videos := make([]domain.VideoRecord, 0, len(raw.Items))
	for _, item := range raw.Items {
		if item.ID.VideoID == "" {
			continue
		}
		publishedAt, _ := time.Parse(time.RFC3339, item.Snippet.PublishedAt)
		thumbnail := item.Snippet.Thumbnails.Medium.URL
		if thumbnail == "" {
			thumbnail = domain.ThumbnailURL(item.ID.VideoID)
		}
		videos = append(videos, domain.VideoRecord{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Channel:      item.Snippet.ChannelTitle,
			Description:  domain.TruncateDescription(item.Snippet.Description),
			ThumbnailURL: thumbnail,
			VideoURL:     domain.WatchURL(item.ID.VideoID),
			PublishedAt:  publishedAt,
			Tier:         domain.ClassifyTier(item.Snippet.ChannelTitle),
		})
	}

	return videos, nil
}

func (p *YouTubeProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
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
		return nil, fmt.Errorf("youtube API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
