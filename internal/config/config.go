package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

type Config struct {
	// HTTP server
	ListenAddr  string        // e.g. ":8080"
	HTTPTimeout time.Duration // for the upstream query

	// Upstream provider
	UpstreamURL string // e.g. https://www.instagram.com
	QueryHash   string // fixed GraphQL query selector

	// Cache
	CacheBackend string        // "memory" or "redis"
	CacheTTL     time.Duration // freshness window, default 24h
	RedisAddr    string
	RedisPass    string
	RedisDB      int
	RedisTLS     bool

	// Pipeline
	ImageConcurrency int

	LogLevel string
}

func FromEnv() Config {
	c := Config{}

	if addr := strings.TrimSpace(os.Getenv("ADDR")); addr != "" {
		c.ListenAddr = addr
	} else {
		host := getenv("HOST", "0.0.0.0")
		port := strings.TrimPrefix(getenv("PORT", "8080"), ":")
		c.ListenAddr = host + ":" + port
	}

	if d, err := time.ParseDuration(getenv("HTTP_TIMEOUT", "10s")); err == nil {
		c.HTTPTimeout = d
	} else {
		c.HTTPTimeout = 10 * time.Second
	}

	c.UpstreamURL = getenv("UPSTREAM_URL", "https://www.instagram.com")
	c.QueryHash = getenv("QUERY_HASH", "")

	c.CacheBackend = getenv("CACHE_BACKEND", "memory")
	if d, err := time.ParseDuration(getenv("CACHE_TTL", "24h")); err == nil {
		c.CacheTTL = d
	} else {
		c.CacheTTL = 24 * time.Hour
	}
	c.RedisAddr = getenv("REDIS_ADDR", "localhost:6379")
	c.RedisPass = getenv("REDIS_PASSWORD", "")
	c.RedisDB = getenvi("REDIS_DB", 0)
	c.RedisTLS = getenv("REDIS_TLS", "false") == "true"

	c.ImageConcurrency = getenvi("IMAGE_CONCURRENCY", 4)

	c.LogLevel = getenv("LOG_LEVEL", "info")

	return c
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func getenvi(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		var iv int
		_, err := fmt.Sscanf(v, "%d", &iv)
		if err == nil {
			return iv
		}
	}
	return def
}
