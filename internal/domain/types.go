package domain

import (
	"context"
)

// PostDescriptor is the provider-shaped representation of one post before it
// is normalized into a Post.
type PostDescriptor struct {
	Caption   string
	Thumbnail string
	ImageURL  string
	Shortcode string
	TakenAt   int64
}

// FeedPage is the parsed first page of a profile's timeline. Total is the
// provider-reported number of posts available, which may exceed
// len(Descriptors).
type FeedPage struct {
	Total       int
	Descriptors []PostDescriptor
}

type FeedSource interface {
	FetchPosts(ctx context.Context, profileID string, first int) (*FeedPage, error)
}

type ImageInliner interface {
	Inline(ctx context.Context, url string) (string, error)
}

// FeedCache stores whole payloads keyed by CacheKey. Get returns the entry
// regardless of its age; callers decide freshness. Set unconditionally
// overwrites. A nil entry with a nil error means a miss.
type FeedCache interface {
	Get(ctx context.Context, key string) (*CacheEntry, error)
	Set(ctx context.Context, key string, entry *CacheEntry) error
}
