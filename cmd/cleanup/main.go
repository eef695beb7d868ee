package main

import (
	"context"
	"log"

	"go.uber.org/zap"

	"github.com/jacobbvfx/instagram-scraper/internal/config"
	"github.com/jacobbvfx/instagram-scraper/internal/infra/cache"
	"github.com/jacobbvfx/instagram-scraper/internal/logging"
)

// Prunes Redis cache entries older than the freshness window. Meant to run
// as a periodic job; the in-memory backend needs no cleanup.
func main() {
	cfg := config.FromEnv()

	logger, err := logging.Init(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	rc := cache.NewRedisCache(cache.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
		UseTLS:   cfg.RedisTLS,
	})

	zap.L().Info("starting cache cleanup", zap.Duration("older_than", cfg.CacheTTL))

	if err := rc.DeleteOlderThan(context.Background(), cfg.CacheTTL); err != nil {
		zap.L().Fatal("cleanup failed", zap.Error(err))
	}

	zap.L().Info("cache cleanup completed")
}
