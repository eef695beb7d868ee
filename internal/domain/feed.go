package domain

import (
	"strconv"
	"time"
)

// Post is one feed item as surfaced to API consumers. ID is the post's
// zero-based position in the batch as the provider delivered it, not its
// position in Result.
type Post struct {
	ID        int    `json:"id"`
	Caption   string `json:"caption"`
	Thumbnail string `json:"thumbnail"`
	ImageURL  string `json:"image_url"`
	Shortcode string `json:"shortcode"`
	Image     string `json:"image"`
	Date      string `json:"date"`
}

// FeedPayload is the response body for a feed request. Result is ordered
// newest-first, the reverse of the provider's delivery order.
type FeedPayload struct {
	First  int    `json:"first"`
	Total  int    `json:"total"`
	Result []Post `json:"result"`
}

// CacheEntry is a memoized payload together with its capture time. Freshness
// is decided by the reader, not the store.
type CacheEntry struct {
	CapturedAt time.Time   `json:"captured_at"`
	Payload    FeedPayload `json:"payload"`
}

// CacheKey builds the cache line identifier for a profile/count pair.
// Different counts for the same profile never share an entry.
func CacheKey(profileID string, first int) string {
	return profileID + ":" + strconv.Itoa(first)
}

// FormatPostDate renders a provider Unix timestamp as a calendar date in UTC.
func FormatPostDate(ts int64) string {
	return time.Unix(ts, 0).UTC().Format("2006-01-02")
}
