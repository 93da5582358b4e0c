package repository

import (
	"context"

	"github.com/complaint-map/internal/domain"
)

// StreamRepository wraps Redis Streams
type StreamRepository interface {
	// ConsumeStream reads messages for a consumer group until ctx is done
	ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error)

	AckMessage(ctx context.Context, stream, group, messageID string) error

	// CreateConsumerGroup is idempotent
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// PublishToStream marshals data to JSON and appends it to the stream
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
