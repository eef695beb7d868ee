package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

const (
	// DefaultFirst is used when a request does not specify a post count.
	DefaultFirst = 10
	// DefaultFreshness is how long a cached payload is served without
	// refetching.
	DefaultFreshness = 24 * time.Hour

	defaultImageConcurrency = 4
)

type FeedUseCase interface {
	GetFeed(ctx context.Context, profileID string, first *int) (*domain.FeedPayload, error)
}

type feedPipeline struct {
	source      domain.FeedSource
	inliner     domain.ImageInliner
	cache       domain.FeedCache
	freshness   time.Duration
	concurrency int
	now         func() time.Time
}

// NewFeedPipeline wires the request pipeline. cache may be nil, in which case
// every request goes upstream. now may be nil for the wall clock.
func NewFeedPipeline(source domain.FeedSource, inliner domain.ImageInliner, cache domain.FeedCache, freshness time.Duration, concurrency int, now func() time.Time) FeedUseCase {
	if freshness <= 0 {
		freshness = DefaultFreshness
	}
	if concurrency <= 0 {
		concurrency = defaultImageConcurrency
	}
	if now == nil {
		now = time.Now
	}
	return &feedPipeline{
		source:      source,
		inliner:     inliner,
		cache:       cache,
		freshness:   freshness,
		concurrency: concurrency,
		now:         now,
	}
}

func (p *feedPipeline) GetFeed(ctx context.Context, profileID string, first *int) (*domain.FeedPayload, error) {
	if profileID == "" {
		return nil, domain.ErrMissingProfileID
	}

	count := DefaultFirst
	if first != nil && *first > 0 {
		count = *first
	}

	key := domain.CacheKey(profileID, count)

	if p.cache != nil {
		entry, err := p.cache.Get(ctx, key)
		if err != nil {
			zap.L().Warn("cache get failed", zap.String("key", key), zap.Error(err))
		} else if entry != nil && p.now().Sub(entry.CapturedAt) < p.freshness {
			zap.L().Debug("cache hit", zap.String("key", key))
			payload := entry.Payload
			return &payload, nil
		}
	}

	page, err := p.source.FetchPosts(ctx, profileID, count)
	if err != nil {
		return nil, err
	}

	n := len(page.Descriptors)
	posts := make([]domain.Post, n)

	// Inlining is fanned out with a bound, but each result lands at its
	// descriptor's index so completion order never changes the output.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, d := range page.Descriptors {
		g.Go(func() error {
			encoded, err := p.inliner.Inline(gctx, d.ImageURL)
			if err != nil {
				return err
			}
			posts[i] = domain.Post{
				ID:        i,
				Caption:   d.Caption,
				Thumbnail: d.Thumbnail,
				ImageURL:  d.ImageURL,
				Shortcode: d.Shortcode,
				Image:     encoded,
				Date:      domain.FormatPostDate(d.TakenAt),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// The provider delivers oldest-fetched-first; the contract is the exact
	// reverse, with each post keeping its original index as ID.
	result := make([]domain.Post, 0, n)
	for i := n - 1; i >= 0; i-- {
		result = append(result, posts[i])
	}

	payload := &domain.FeedPayload{
		First:  n,
		Total:  page.Total,
		Result: result,
	}

	if p.cache != nil {
		entry := &domain.CacheEntry{CapturedAt: p.now(), Payload: *payload}
		if err := p.cache.Set(ctx, key, entry); err != nil {
			zap.L().Warn("cache set failed", zap.String("key", key), zap.Error(err))
		}
	}

	return payload, nil
}
