package main

import (
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/jacobbvfx/instagram-scraper/internal/config"
	"github.com/jacobbvfx/instagram-scraper/internal/domain"
	"github.com/jacobbvfx/instagram-scraper/internal/infra/cache"
	"github.com/jacobbvfx/instagram-scraper/internal/infra/upstream"
	"github.com/jacobbvfx/instagram-scraper/internal/logging"
	"github.com/jacobbvfx/instagram-scraper/internal/transport/eventbus"
	"github.com/jacobbvfx/instagram-scraper/internal/transport/httpapi"
	"github.com/jacobbvfx/instagram-scraper/internal/usecase"
)

func main() {
	cfg := config.FromEnv()

	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	var fc domain.FeedCache
	if cfg.CacheBackend == "redis" {
		fc = cache.NewRedisCache(cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPass,
			DB:       cfg.RedisDB,
			UseTLS:   cfg.RedisTLS,
		})
	} else {
		fc = cache.NewMemoryCache()
	}

	source := upstream.NewClient(upstream.Config{
		BaseURL:   cfg.UpstreamURL,
		QueryHash: cfg.QueryHash,
		Timeout:   cfg.HTTPTimeout,
	})
	inliner := upstream.NewInliner(&http.Client{Timeout: cfg.HTTPTimeout})

	uc := usecase.NewFeedPipeline(source, inliner, fc, cfg.CacheTTL, cfg.ImageConcurrency, nil)

	// Wired for the external bus binding.
	warmup := eventbus.NewConsumer(uc)
	_ = warmup

	handler := httpapi.FeedHandler(uc)
	mux := http.NewServeMux()
	mux.HandleFunc("/posts", handler)
	mux.HandleFunc("/", handler)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	zap.L().Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := srv.ListenAndServe(); err != nil {
		zap.L().Fatal("server error", zap.Error(err))
	}
}
