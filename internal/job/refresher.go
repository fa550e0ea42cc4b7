// Package job holds the background cache warmer. It exists so dashboard
// reads almost always hit a warm cache instead of paying an upstream round
// trip on the request path.
package job

import (
	"context"
	"log"
	"time"

	"ai-crypto-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// VideoWarmer is the slice of VideoService the refresher needs.
type VideoWarmer interface {
	FetchVideos(ctx context.Context, channelIDs []string, limit int) []domain.VideoRecord
}

// Refresher periodically re-fetches the default video feed and the default
// price set so their cache entries stay warm.
type Refresher struct {
	tracer       trace.Tracer
	videos       VideoWarmer
	prices       PriceWarmFunc
	pollInterval time.Duration
}

// PriceWarmFunc warms the default price set and reports whether the upstream
// answered. Failures are logged and retried on the next tick, never fatal.
type PriceWarmFunc func(ctx context.Context) bool

func NewRefresher(tracer trace.Tracer, videos VideoWarmer, prices PriceWarmFunc, pollIntervalSecs int) *Refresher {
	return &Refresher{
		tracer:       tracer,
		videos:       videos,
		prices:       prices,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start launches the warm loops. Blocks until ctx is cancelled.
func (r *Refresher) Start(ctx context.Context) {
	log.Println("Cache refresher starting...")

	go r.pollLoop(ctx, "videos", 0, func(ctx context.Context) {
		videos := r.videos.FetchVideos(ctx, nil, 0)
		log.Printf("refresher warmed %d videos", len(videos))
	})

	// Stagger the price loop so both warms do not hit their upstreams in the
	// same instant.
	go r.pollLoop(ctx, "prices", 5*time.Second, func(ctx context.Context) {
		if !r.prices(ctx) {
			log.Println("refresher price warm failed, will retry next tick")
		}
	})

	<-ctx.Done()
	log.Println("Cache refresher stopped")
}

func (r *Refresher) pollLoop(ctx context.Context, name string, startDelay time.Duration, fn func(context.Context)) {
	if startDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(startDelay):
		}
	}

	// Run immediately on start.
	r.run(ctx, name, fn)

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.run(ctx, name, fn)
		}
	}
}

func (r *Refresher) run(ctx context.Context, name string, fn func(context.Context)) {
	ctx, span := r.tracer.Start(ctx, "refresher."+name)
	defer span.End()
	fn(ctx)
}
