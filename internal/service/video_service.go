// Package service holds the aggregators that sit between the provider
// registry and the delivery surfaces. Services own the cache-aside logic and
// the fallback chains; providers stay single-source and stateless.
package service

import (
	"context"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"ai-crypto-pulse/internal/cache"
	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

const (
	defaultVideoLimit = 12
	maxVideoLimit     = 50
)

// VideoService aggregates the video feed across channels. Its reads never
// fail: when the search API is down it degrades to RSS, and when RSS is down
// too it serves the curated seed list.
type VideoService struct {
	tracer   trace.Tracer
	registry *provider.Registry
	store    cache.Store
	now      func() time.Time
}

func NewVideoService(tracer trace.Tracer, registry *provider.Registry, store cache.Store) *VideoService {
	return &VideoService{
		tracer:   tracer,
		registry: registry,
		store:    store,
		now:      time.Now,
	}
}

// FetchVideos returns the newest videos across the given channels, falling
// back through RSS and the seed tier so the result is never empty. An empty
// channel list means the default channel set.
func (s *VideoService) FetchVideos(ctx context.Context, channelIDs []string, limit int) []domain.VideoRecord {
	ctx, span := s.tracer.Start(ctx, "video-service.fetch-videos")
	defer span.End()

	limit = clampVideoLimit(limit)
	if len(channelIDs) == 0 {
		channelIDs = domain.DefaultChannelIDs()
	}

	key := cache.Key(provider.ProviderVideoSearch, strings.Join(channelIDs, "_"), strconv.Itoa(limit))
	if entry, ok := s.store.Get(ctx, key); ok {
		return s.withTimeAgo(entry.Videos)
	}

	videos := s.fanOut(ctx, provider.ProviderVideoSearch, channelIDs, limit)
	if len(videos) == 0 {
		log.Printf("video search yielded nothing for %d channels, trying RSS", len(channelIDs))
		videos = s.fanOut(ctx, provider.ProviderChannelRSS, channelIDs, limit)
	}
	if len(videos) == 0 {
		log.Printf("all video sources failed, serving seed catalogue")
		return SeedVideos(s.now(), limit)
	}

	videos = sortAndTrim(videos, limit)
	s.store.Put(ctx, key, cache.Entry{Videos: videos, FetchedAt: s.now()})
	return s.withTimeAgo(videos)
}

// SearchVideos runs a free-text search with the same fallback discipline as
// FetchVideos. An empty query is the caller's error.
func (s *VideoService) SearchVideos(ctx context.Context, query string, limit int) ([]domain.VideoRecord, error) {
	ctx, span := s.tracer.Start(ctx, "video-service.search-videos")
	defer span.End()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.NewInvalidRequest("search query is empty")
	}
	limit = clampVideoLimit(limit)

	key := cache.Key(provider.ProviderVideoSearch, "q", strings.ToLower(query), strconv.Itoa(limit))
	if entry, ok := s.store.Get(ctx, key); ok {
		return s.withTimeAgo(entry.Videos), nil
	}

	result, err := s.registry.Fetch(ctx, provider.ProviderVideoSearch, provider.Params{Query: query, Limit: limit})
	if err != nil && domain.IsInvalidRequest(err) {
		return nil, err
	}
	videos := result.Videos
	if err != nil || len(videos) == 0 {
		if err != nil {
			log.Printf("video search for %q failed: %v, trying RSS", query, err)
		}
		videos = s.fanOut(ctx, provider.ProviderChannelRSS, domain.DefaultChannelIDs(), limit)
	}
	if len(videos) == 0 {
		log.Printf("search fallback exhausted for %q, serving seed catalogue", query)
		return SeedVideos(s.now(), limit), nil
	}

	videos = sortAndTrim(videos, limit)
	s.store.Put(ctx, key, cache.Entry{Videos: videos, FetchedAt: s.now()})
	return s.withTimeAgo(videos), nil
}

// fanOut queries one provider per channel concurrently and pools whatever
// succeeded. Per-channel failures are logged and skipped; a single healthy
// channel keeps the feed alive.
func (s *VideoService) fanOut(ctx context.Context, providerName string, channelIDs []string, limit int) []domain.VideoRecord {
	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		pooled []domain.VideoRecord
	)
	for _, channelID := range channelIDs {
		wg.Add(1)
		go func(channelID string) {
			defer wg.Done()
			result, err := s.registry.Fetch(ctx, providerName, provider.Params{ChannelID: channelID, Limit: limit})
			if err != nil {
				log.Printf("%s fetch for channel %s failed: %v", providerName, channelID, err)
				return
			}
			mu.Lock()
			pooled = append(pooled, result.Videos...)
			mu.Unlock()
		}(channelID)
	}
	wg.Wait()
	return pooled
}

func (s *VideoService) withTimeAgo(videos []domain.VideoRecord) []domain.VideoRecord {
	now := s.now()
	out := make([]domain.VideoRecord, len(videos))
	for i, v := range videos {
		v.TimeAgo = domain.TimeAgo(v.PublishedAt, now)
		out[i] = v
	}
	return out
}

func sortAndTrim(videos []domain.VideoRecord, limit int) []domain.VideoRecord {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].PublishedAt.After(videos[j].PublishedAt)
	})
	if len(videos) > limit {
		videos = videos[:limit]
	}
	return videos
}

func clampVideoLimit(limit int) int {
	if limit <= 0 {
		return defaultVideoLimit
	}
	if limit > maxVideoLimit {
		return maxVideoLimit
	}
	return limit
}
