package cache

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

const timestampIndex = "feed_timestamps"

// RedisCache is a FeedCache backed by Redis, for deployments where the cache
// should survive a process restart. Payloads are stored gzip-compressed, and
// every write is indexed in a sorted set so DeleteOlderThan can prune aged
// entries without scanning the keyspace.
type RedisCache struct {
	client *redis.Client
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	UseTLS   bool
}

func NewRedisCache(cfg RedisConfig) *RedisCache {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	if cfg.UseTLS {
		opts.TLSConfig = &tls.Config{
			MinVersion: tls.VersionTLS12,
		}
	}

	return &RedisCache{client: redis.NewClient(opts)}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*domain.CacheEntry, error) {
	val, err := r.client.Get(ctx, "feed:"+key).Bytes()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, err
	}

	decompressed, err := decompress(val)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if decompressed == nil {
		return nil, nil
	}

	entry := &domain.CacheEntry{}
	if err := json.Unmarshal(decompressed, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *RedisCache) Set(ctx context.Context, key string, entry *domain.CacheEntry) error {
	val, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	compressed, err := compress(val)
	if err != nil {
		return fmt.Errorf("failed to compress: %w", err)
	}

	redisKey := "feed:" + key
	if err := r.client.Set(ctx, redisKey, compressed, 0).Err(); err != nil {
		return err
	}

	return r.client.ZAdd(ctx, timestampIndex, redis.Z{
		Score:  float64(entry.CapturedAt.Unix()),
		Member: redisKey,
	}).Err()
}

// DeleteOlderThan removes every entry written more than olderThan ago,
// along with its index member. Used by cmd/cleanup.
func (r *RedisCache) DeleteOlderThan(ctx context.Context, olderThan time.Duration) error {
	cutoff := time.Now().Add(-olderThan).Unix()

	keys, err := r.client.ZRangeByScore(ctx, timestampIndex, &redis.ZRangeBy{
		Min: "-inf",
		Max: fmt.Sprintf("%d", cutoff),
	}).Result()

	if err != nil {
		return err
	}

	if len(keys) == 0 {
		return nil
	}

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return err
	}

	return r.client.ZRem(ctx, timestampIndex, keys).Err()
}

func compress(data []byte) ([]byte, error) {
	var b bytes.Buffer
	w := gzip.NewWriter(&b)
	_, err := w.Write(data)
	if err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

var _ domain.FeedCache = (*RedisCache)(nil)
