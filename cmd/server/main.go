package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ai-crypto-pulse/internal/bot"
	"ai-crypto-pulse/internal/cache"
	"ai-crypto-pulse/internal/config"
	"ai-crypto-pulse/internal/domain"
	"ai-crypto-pulse/internal/handler"
	"ai-crypto-pulse/internal/job"
	"ai-crypto-pulse/internal/provider"
	"ai-crypto-pulse/internal/service"
	"ai-crypto-pulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	_ "ai-crypto-pulse/docs"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	connectRedisFunc       = cache.ConnectRedis
	initTracerFunc         = tracing.InitTracer
	newRefresherFunc       = job.NewRefresher
	startRefresherFunc     = func(r *job.Refresher, ctx context.Context) { go r.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           AI Crypto Pulse API
// @version         1.0
// @description     Aggregated AI crypto video and market data.

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init tracing
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	// Result cache: Redis when configured and reachable, in-process otherwise.
	ttl := time.Duration(cfg.CacheTTLSecs) * time.Second
	var store cache.Store = cache.NewMemoryStore(ttl)
	if client := connectRedisFunc(ctx, cfg.RedisURL); client != nil {
		store = cache.NewRedisStore(client, ttl)
		log.Println("Using Redis result cache")
	}

	// Upstream providers behind the registry.
	youtube := provider.NewYouTubeProvider(cfg.YouTubeAPIKey, tracer)
	rss := provider.NewRSSProvider(tracer)
	binance := provider.NewBinanceProvider(tracer)
	coingecko := provider.NewCoinGeckoProvider(tracer)

	registry := provider.NewRegistry()
	registry.Register(provider.ProviderVideoSearch, youtube.Fetch)
	registry.Register(provider.ProviderChannelRSS, rss.Fetch)
	registry.Register(provider.ProviderTicker, binance.Fetch)
	registry.Register(provider.ProviderMarketList, coingecko.FetchMarkets)
	registry.Register(provider.ProviderTrending, coingecko.FetchTrending)

	videoService := service.NewVideoService(tracer, registry, store)
	marketService := service.NewMarketService(tracer, registry, store)

	// Background cache warmer (stopped by ctx cancel).
	refresher := newRefresherFunc(tracer, videoService, func(ctx context.Context) bool {
		return marketService.FetchPrices(ctx, domain.DefaultSymbols, "spot").Success
	}, cfg.RefreshPollSecs)
	startRefresherFunc(refresher, ctx)

	// Start Telegram bot
	os.Setenv("TELEGRAM_BOT_TOKEN", cfg.TelegramBotToken)
	startTelegramBotFunc(videoService, marketService)

	// Create handlers and routes
	h := handler.New(tracer, videoService, marketService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("ai-crypto-pulse"))

	h.RegisterRoutes(r, cfg.APIKey)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
