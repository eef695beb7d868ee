package eventbus

import (
	"context"
	"testing"

	"github.com/jacobbvfx/instagram-scraper/internal/domain"
)

type recordingFeed struct {
	profileID string
	first     *int
	calls     int
}

func (r *recordingFeed) GetFeed(ctx context.Context, profileID string, first *int) (*domain.FeedPayload, error) {
	r.calls++
	r.profileID = profileID
	r.first = first
	return &domain.FeedPayload{}, nil
}

func TestHandleMessageWarmsFeed(t *testing.T) {
	uc := &recordingFeed{}
	c := NewConsumer(uc)

	if err := c.HandleMessage([]byte(`{"profile_id": "abc", "first": 5}`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if uc.calls != 1 || uc.profileID != "abc" {
		t.Fatalf("expected one warmup call for abc, got %d for %q", uc.calls, uc.profileID)
	}
	if uc.first == nil || *uc.first != 5 {
		t.Fatalf("expected first=5, got %v", uc.first)
	}
}

func TestHandleMessageBadPayload(t *testing.T) {
	c := NewConsumer(&recordingFeed{})
	if err := c.HandleMessage([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error, got nil")
	}
}
