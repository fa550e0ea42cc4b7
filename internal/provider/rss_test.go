package provider

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"ai-crypto-pulse/internal/domain"
)

const channelFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:yt="http://www.youtube.com/xml/schemas/2015" xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
 <title>Crypto Daily</title>
 <entry>
  <id>yt:video:vidA</id>
  <yt:videoId>vidA</yt:videoId>
  <title>Bitcoin Market Update</title>
  <link rel="alternate" href="https://www.youtube.com/watch?v=vidA"/>
  <author><name>Crypto Daily</name></author>
  <published>2025-06-01T10:00:00+00:00</published>
  <media:group>
   <media:title>Bitcoin Market Update</media:title>
   <media:thumbnail url="https://i.ytimg.com/vi/vidA/hqdefault.jpg" width="480" height="360"/>
   <media:description>Daily BTC market breakdown and AI token roundup.</media:description>
  </media:group>
 </entry>
 <entry>
  <id>no-video-id</id>
  <title>Broken entry</title>
  <author><name>Crypto Daily</name></author>
  <published>2025-06-01T09:00:00+00:00</published>
 </entry>
 <entry>
  <id>yt:video:vidB</id>
  <yt:videoId>vidB</yt:videoId>
  <title>Altcoin Watch</title>
  <author><name>Crypto Daily</name></author>
  <published>2025-05-31T08:30:00+00:00</published>
 </entry>
</feed>`

func TestRSSFetchChannel(t *testing.T) {
	t.Parallel()

	p := NewRSSProvider(testTracer)
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if got := req.URL.Query().Get("channel_id"); got != "UCqECaJ8Gagnn7YCbPEzWH6g" {
			t.Fatalf("unexpected channel_id: %s", got)
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(channelFeedXML)),
			Header:     make(http.Header),
		}, nil
	})}

	videos, err := p.FetchChannel(context.Background(), "UCqECaJ8Gagnn7YCbPEzWH6g", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos (entry without videoId dropped), got %d", len(videos))
	}

	first := videos[0]
	if first.VideoID != "vidA" || first.Channel != "Crypto Daily" {
		t.Fatalf("unexpected record: %+v", first)
	}
	if first.Tier != domain.Tier1 {
		t.Fatalf("expected Tier 1 for channel with crypto/daily keywords, got %s", first.Tier)
	}
	if first.Description != "Daily BTC market breakdown and AI token roundup." {
		t.Fatalf("unexpected description: %q", first.Description)
	}
	if first.ThumbnailURL != "https://i.ytimg.com/vi/vidA/hqdefault.jpg" {
		t.Fatalf("expected media thumbnail, got %s", first.ThumbnailURL)
	}
	want := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	if !first.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published_at: %v", first.PublishedAt)
	}

	// Entry without media:description falls back to a derived blurb.
	second := videos[1]
	if !strings.HasPrefix(second.Description, "AI cryptocurrency content: ") {
		t.Fatalf("expected fallback description, got %q", second.Description)
	}
	if second.ThumbnailURL != "https://img.youtube.com/vi/vidB/mqdefault.jpg" {
		t.Fatalf("expected derived thumbnail, got %s", second.ThumbnailURL)
	}
}

func TestRSSFetchChannelLimit(t *testing.T) {
	t.Parallel()

	p := NewRSSProvider(testTracer)
	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString(channelFeedXML)),
			Header:     make(http.Header),
		}, nil
	})}

	videos, err := p.FetchChannel(context.Background(), "UC123", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected limit to apply, got %d", len(videos))
	}
}

func TestRSSFetchChannelFailures(t *testing.T) {
	t.Parallel()

	p := NewRSSProvider(testTracer)
	if _, err := p.FetchChannel(context.Background(), "", 5); !domain.IsInvalidRequest(err) {
		t.Fatalf("expected invalid request for empty channel id, got %v", err)
	}

	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusNotFound,
			Body:       io.NopCloser(bytes.NewBufferString("not found")),
			Header:     make(http.Header),
		}, nil
	})}
	if _, err := p.FetchChannel(context.Background(), "UC404", 5); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error for 404, got %v", err)
	}

	p.client = &http.Client{Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(bytes.NewBufferString("<<< definitely not xml")),
			Header:     make(http.Header),
		}, nil
	})}
	if _, err := p.FetchChannel(context.Background(), "UCbad", 5); !domain.IsUpstream(err) {
		t.Fatalf("expected upstream error for malformed feed, got %v", err)
	}
}
