package eventbus

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/jacobbvfx/instagram-scraper/internal/usecase"
)

// FeedWarmupEvent asks the service to prefill the cache for a profile before
// any client hits the endpoint.
type FeedWarmupEvent struct {
	ProfileID string `json:"profile_id"`
	First     *int   `json:"first"`
}

type Consumer struct {
	uc usecase.FeedUseCase
}

func NewConsumer(uc usecase.FeedUseCase) *Consumer {
	return &Consumer{uc: uc}
}

func (c *Consumer) HandleMessage(msg []byte) error {
	var event FeedWarmupEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	zap.L().Info("warming up feed", zap.String("profile_id", event.ProfileID))

	_, err := c.uc.GetFeed(context.Background(), event.ProfileID, event.First)
	return err
}
