package bot

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/service"

	tele "gopkg.in/telebot.v3"
)

func StartTelegramBot(videoService *service.VideoService, marketService *service.MarketService) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("TELEGRAM_BOT_TOKEN not set, skipping Telegram bot startup")
		return
	}
	pref := tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}
	b, err := tele.NewBot(pref)
	if err != nil {
		log.Fatalf("failed to create Telegram bot: %v", err)
	}

	b.Handle("/ping", func(c tele.Context) error {
		return c.Send("pong")
	})

	b.Handle("/price", func(c tele.Context) error {
		args := c.Args()
		if len(args) == 0 {
			return c.Send(fmt.Sprintf("Usage: /price BTCUSDT\nDefaults: %s", strings.Join(domain.DefaultSymbols, ", ")))
		}
		symbol := strings.ToUpper(args[0])
		result := marketService.FetchPrices(context.Background(), []string{symbol}, "spot")
		if !result.Success {
			return c.Send(fmt.Sprintf("Error fetching price for %s: %s", symbol, result.Error))
		}
		if len(result.Data) == 0 {
			return c.Send(fmt.Sprintf("No data found for %s", symbol))
		}
		return c.Send(formatPrice(result.Data[0]))
	})

	b.Handle("/videos", func(c tele.Context) error {
		videos := videoService.FetchVideos(context.Background(), nil, 5)
		return c.Send(formatVideos(videos))
	})

	b.Handle("/feed", func(c tele.Context) error {
		category := "trending"
		if args := c.Args(); len(args) > 0 {
			category = strings.ToLower(args[0])
		}
		result := marketService.FetchFeed(context.Background(), category, 5)
		if !result.Success {
			return c.Send(fmt.Sprintf("Error fetching %s feed: %s", category, result.Error))
		}
		return c.Send(formatFeed(result))
	})

	log.Println("Telegram bot started")
	go b.Start()
}

func formatPrice(m domain.MarketRecord) string {
	return fmt.Sprintf(
		"%s (%s)\nPrice: $%.2f\n24h Change: %.2f%%\n24h Volume: $%.0f",
		m.Symbol, m.Trend, m.Price, m.Change24hPct, m.Volume,
	)
}

func formatVideos(videos []domain.VideoRecord) string {
	if len(videos) == 0 {
		return "No videos available right now"
	}
	var sb strings.Builder
	sb.WriteString("Latest AI crypto videos:\n")
	for _, v := range videos {
		fmt.Fprintf(&sb, "\n%s — %s (%s)\n%s\n", v.Title, v.Channel, v.TimeAgo, v.VideoURL)
	}
	return sb.String()
}

func formatFeed(result service.FeedResult) string {
	if len(result.Data) == 0 {
		return fmt.Sprintf("No entries in the %s feed", result.Category)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Top %s:\n", result.Category)
	for i, m := range result.Data {
		if m.Price > 0 {
			fmt.Fprintf(&sb, "%d. %s $%.2f (%+.2f%%)\n", i+1, m.Symbol, m.Price, m.Change24hPct)
		} else {
			fmt.Fprintf(&sb, "%d. %s %s\n", i+1, m.Symbol, m.Name)
		}
	}
	return sb.String()
}
