package redis

import (
	"context"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
)

// noopStreamRepository stands in when Redis is not configured. Published
// events are logged and dropped.
type noopStreamRepository struct {
	logger *zap.Logger
}

func NewNoopStreamRepository(logger *zap.Logger) repository.StreamRepository {
	return &noopStreamRepository{logger: logger}
}

func (r *noopStreamRepository) ConsumeStream(ctx context.Context, stream, group, consumer string) (<-chan domain.StreamMessage, error) {
	ch := make(chan domain.StreamMessage)
	close(ch)
	return ch, nil
}

func (r *noopStreamRepository) AckMessage(context.Context, string, string, string) error {
	return nil
}

func (r *noopStreamRepository) CreateConsumerGroup(context.Context, string, string) error {
	return nil
}

func (r *noopStreamRepository) PublishToStream(ctx context.Context, stream string, data interface{}) error {
	r.logger.Info("Stream disabled, event dropped", zap.String("stream", stream))
	return nil
}
