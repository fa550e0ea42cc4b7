package domain

import (
	"fmt"
	"strings"
	"time"
)

// Tier is a coarse content-quality classification for a video channel,
// Tier 1 being the highest.
type Tier string

const (
	Tier1 Tier = "Tier 1"
	Tier2 Tier = "Tier 2"
	Tier3 Tier = "Tier 3"
)

// Trend labels the 24h price direction of a market record.
type Trend string

const (
	TrendBullish Trend = "bullish"
	TrendBearish Trend = "bearish"
)

const (
	// MaxDescriptionLen is the cutoff applied to video descriptions.
	MaxDescriptionLen = 200

	watchURLPrefix     = "https://www.youtube.com/watch?v="
	thumbnailURLFormat = "https://img.youtube.com/vi/%s/mqdefault.jpg"
)

// VideoRecord is the canonical shape every video provider normalizes into.
// Records are stateless snapshots, rebuilt wholesale on each fetch.
type VideoRecord struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	Channel      string    `json:"channel"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail_url"`
	VideoURL     string    `json:"video_url"`
	PublishedAt  time.Time `json:"published_at"`
	TimeAgo      string    `json:"time_ago,omitempty"`
	Tier         Tier      `json:"tier"`
}

// MarketRecord is the canonical shape every market provider normalizes into.
// Numeric fields come straight from the provider, no unit conversion.
type MarketRecord struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	Change24h     float64 `json:"change_24h"`
	Change24hPct  float64 `json:"change_24h_pct"`
	Volume        float64 `json:"volume"`
	High24h       float64 `json:"high_24h"`
	Low24h        float64 `json:"low_24h"`
	MarketCapRank *int    `json:"market_cap_rank"`
	ImageURL      string  `json:"image_url,omitempty"`
	Trend         Trend   `json:"trend"`
}

// TechnicalIndicators holds the rule-derived indicator labels for Analyze.
type TechnicalIndicators struct {
	RSISignal     string `json:"rsi_signal"`
	VolumeTrend   string `json:"volume_trend"`
	PricePosition string `json:"price_position"`
}

// AnalysisRecord bundles the latest market snapshot with rule-derived labels,
// a recommendation string, and suggested search topics.
type AnalysisRecord struct {
	Symbol         string              `json:"symbol"`
	Timeframe      string              `json:"timeframe"`
	AnalysisType   string              `json:"analysis_type"`
	Price          float64             `json:"current_price"`
	Change24h      float64             `json:"change_24h"`
	Change24hPct   float64             `json:"change_24h_pct"`
	Volume         float64             `json:"volume"`
	High24h        float64             `json:"high_24h"`
	Low24h         float64             `json:"low_24h"`
	Trend          Trend               `json:"trend"`
	Indicators     TechnicalIndicators `json:"technical_indicators"`
	Recommendation string              `json:"recommendation"`
	SearchTopics   []string            `json:"youtube_topics"`
}

// TrendingTopic is a curated hashtag with an approximate mention count.
type TrendingTopic struct {
	Tag      string `json:"tag"`
	Mentions string `json:"mentions"`
}

var (
	tier1Keywords = []string{"explained", "daily", "news", "official", "crypto", "bitcoin"}
	tier2Keywords = []string{"analysis", "review", "tech", "ai", "blockchain"}
)

// ClassifyTier assigns a tier from keyword matches over the channel name.
// Tier 1 keywords are checked first; no match means Tier 3.
func ClassifyTier(channelName string) Tier {
	name := strings.ToLower(channelName)
	for _, kw := range tier1Keywords {
		if strings.Contains(name, kw) {
			return Tier1
		}
	}
	for _, kw := range tier2Keywords {
		if strings.Contains(name, kw) {
			return Tier2
		}
	}
	return Tier3
}

// DeriveTrend maps a 24h percent change onto a trend label.
// Only a strictly positive change is bullish; zero is bearish.
func DeriveTrend(change24hPct float64) Trend {
	if change24hPct > 0 {
		return TrendBullish
	}
	return TrendBearish
}

// TruncateDescription cuts a description at MaxDescriptionLen runes and
// appends an ellipsis marker. Shorter descriptions pass through unchanged.
func TruncateDescription(desc string) string {
	runes := []rune(desc)
	if len(runes) <= MaxDescriptionLen {
		return desc
	}
	return string(runes[:MaxDescriptionLen]) + "..."
}

// WatchURL derives the canonical video URL from a video ID.
func WatchURL(videoID string) string {
	return watchURLPrefix + videoID
}

// ThumbnailURL derives the default thumbnail URL from a video ID.
func ThumbnailURL(videoID string) string {
	return fmt.Sprintf(thumbnailURLFormat, videoID)
}

// TimeAgo renders a rough human-readable age for dashboard display.
func TimeAgo(publishedAt, now time.Time) string {
	if publishedAt.IsZero() || publishedAt.After(now) {
		return "Just now"
	}
	diff := now.Sub(publishedAt)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	case diff >= time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff >= time.Minute:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	default:
		return "Just now"
	}
}

// Channel is a known YouTube channel tracked by the aggregator.
type Channel struct {
	ID   string
	Name string
}

// DefaultChannels is the curated AI/crypto channel list used when a caller
// does not name its own sources, and by the RSS fallback tier.
var DefaultChannels = []Channel{
	{ID: "UCBJycsmduvYEL83R_U4JriQ", Name: "Coin Bureau"},
	{ID: "UCqECaJ8Gagnn7YCbPEzWH6g", Name: "Crypto Daily"},
	{ID: "UCY1kMZp36IQ_SNujkT4z2bQ", Name: "Benjamin Cowen"},
	{ID: "UC7TdZkL1lcQvVpfRf5W1o9A", Name: "Crypto Banter"},
	{ID: "UC2rH7Y4Lx7p6f1AQt3X9m-A", Name: "Crypto Tips"},
}

// DefaultChannelIDs returns the IDs of DefaultChannels in order.
func DefaultChannelIDs() []string {
	ids := make([]string, 0, len(DefaultChannels))
	for _, ch := range DefaultChannels {
		ids = append(ids, ch.ID)
	}
	return ids
}

// DefaultSymbols is the ticker set fetched when a price request names none.
var DefaultSymbols = []string{"BTCUSDT", "ETHUSDT", "ADAUSDT", "SOLUSDT", "BNBUSDT"}

// FeedCategories are the supported market feed orderings.
var FeedCategories = []string{"trending", "gainers", "losers", "volume", "market_cap"}

func IsFeedCategory(category string) bool {
	for _, c := range FeedCategories {
		if c == category {
			return true
		}
	}
	return false
}
