package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-crypto-pulse/internal/domain"

	"github.com/mmcdole/gofeed"
	"go.opentelemetry.io/otel/trace"
)

const channelFeedBaseURL = "https://www.youtube.com/feeds/videos.xml"

// RSSProvider scrapes a channel's public Atom feed. It needs no credential
// and backs up the Data API when the key is missing or the quota is gone.
type RSSProvider struct {
	client  *http.Client
	baseURL string
	parser  *gofeed.Parser
	tracer  trace.Tracer
}

func NewRSSProvider(tracer trace.Tracer) *RSSProvider {
	return &RSSProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: channelFeedBaseURL,
		parser:  gofeed.NewParser(),
		tracer:  tracer,
	}
}

// Fetch is the registry entry for the channel-rss provider.
func (p *RSSProvider) Fetch(ctx context.Context, params Params) (Result, error) {
	videos, err := p.FetchChannel(ctx, params.ChannelID, params.Limit)
	if err != nil {
		return Result{}, err
	}
	return Result{Videos: videos}, nil
}

// FetchChannel pulls one channel feed and normalizes its entries. Entries
// without a video ID are dropped; partial results are fine.
func (p *RSSProvider) FetchChannel(ctx context.Context, channelID string, maxItems int) ([]domain.VideoRecord, error) {
	_, span := p.tracer.Start(ctx, "rss.fetch-channel")
	defer span.End()

	if channelID == "" {
		return nil, domain.NewInvalidRequest("channel id is required")
	}
	if maxItems <= 0 {
		maxItems = 10
	}

	feedURL := p.baseURL + "?channel_id=" + channelID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderChannelRSS, err)
	}
	req.Header.Set("Accept", "application/atom+xml, application/xml, text/xml")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderChannelRSS, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, domain.NewUpstreamError(ProviderChannelRSS,
			fmt.Errorf("feed error %d: %s", resp.StatusCode, string(body)))
	}

	feed, err := p.parser.Parse(resp.Body)
	if err != nil {
		return nil, domain.NewUpstreamError(ProviderChannelRSS, fmt.Errorf("parse feed: %w", err))
	}

	videos := make([]domain.VideoRecord, 0, min(maxItems, len(feed.Items)))
	for _, item := range feed.Items {
		if len(videos) >= maxItems {
			break
		}
		videoID := extensionValue(item, "yt", "videoId")
		if videoID == "" {
			continue
		}

		channel := itemAuthor(item)
		if channel == "" {
			channel = feed.Title
		}

		description := mediaDescription(item)
		if description == "" {
			description = "AI cryptocurrency content: " + item.Title
		}

		thumbnail := mediaThumbnail(item)
		if thumbnail == "" {
			thumbnail = domain.ThumbnailURL(videoID)
		}

		var publishedAt time.Time
		if item.PublishedParsed != nil {
			publishedAt = item.PublishedParsed.UTC()
		}

		videos = append(videos, domain.VideoRecord{
			VideoID:      videoID,
			Title:        item.Title,
			Channel:      channel,
			Description:  domain.TruncateDescription(description),
			ThumbnailURL: thumbnail,
			VideoURL:     domain.WatchURL(videoID),
			PublishedAt:  publishedAt,
			Tier:         domain.ClassifyTier(channel),
		})
	}

	return videos, nil
}

func itemAuthor(item *gofeed.Item) string {
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	if item.Author != nil {
		return item.Author.Name
	}
	return ""
}

// extensionValue reads a namespaced child value, e.g. yt:videoId.
func extensionValue(item *gofeed.Item, space, name string) string {
	if item.Extensions == nil {
		return ""
	}
	values := item.Extensions[space][name]
	if len(values) == 0 {
		return ""
	}
	return values[0].Value
}

// mediaDescription digs media:group/media:description out of the feed entry.
func mediaDescription(item *gofeed.Item) string {
	if item.Extensions == nil {
		return ""
	}
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	descs := groups[0].Children["description"]
	if len(descs) == 0 {
		return ""
	}
	return descs[0].Value
}

func mediaThumbnail(item *gofeed.Item) string {
	if item.Extensions == nil {
		return ""
	}
	groups := item.Extensions["media"]["group"]
	if len(groups) == 0 {
		return ""
	}
	thumbs := groups[0].Children["thumbnail"]
	if len(thumbs) == 0 {
		return ""
	}
	return thumbs[0].Attrs["url"]
}
