package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	HTTPPort         int
	APIKey           string
	YouTubeAPIKey    string
	RedisURL         string
	TelegramBotToken string

	CacheTTLSecs    int
	RefreshPollSecs int
}

func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("API_KEY"),
		YouTubeAPIKey:    os.Getenv("YOUTUBE_API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	if cfg.YouTubeAPIKey == "" {
		log.Println("Warning: YOUTUBE_API_KEY not set, video feed will rely on RSS and the seed catalogue")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, using the in-memory cache")
	}
	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot disabled")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("HTTP_PORT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.CacheTTLSecs = 60
	if v := strings.TrimSpace(os.Getenv("CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheTTLSecs = n
		}
	}

	cfg.RefreshPollSecs = 55
	if v := strings.TrimSpace(os.Getenv("REFRESH_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RefreshPollSecs = n
		}
	}

	return cfg
}
