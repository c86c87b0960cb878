package events

import (
	"context"
	"fmt"

	redisx "patio-slots/internal/common/redis"

	"github.com/go-redis/redis/v8"
)

// StreamPublisher appends events to a Redis stream.
type StreamPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewStreamPublisher(client *redis.Client, stream string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{client: client, stream: stream, maxLen: maxLen}
}

func (p *StreamPublisher) Publish(ctx context.Context, e SlotEvent) error {
	if _, err := redisx.PublishJSONToStream(ctx, p.client, p.stream, e, p.maxLen); err != nil {
		return fmt.Errorf("failed to publish slot event to %s: %w", p.stream, err)
	}
	return nil
}
