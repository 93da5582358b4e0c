package escalation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/complaint-map/internal/domain"
	"github.com/complaint-map/internal/domain/repository"
	"github.com/complaint-map/internal/worker"
)

// DefaultRetryDelay is the base backoff between notification attempts
const DefaultRetryDelay = 2 * time.Second

// Worker mails the responsible authority for every escalation event
type Worker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	notifier     repository.Notifier
	consumerName string
	maxRetries   int
	retryDelay   time.Duration
}

func NewWorker(
	streamRepo repository.StreamRepository,
	notifier repository.Notifier,
	consumerGroup string,
	maxRetries int,
	logger *zap.Logger,
) *Worker {
	hostname, _ := os.Hostname()
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &Worker{
		BaseWorker:   worker.NewBaseWorker("complaint-escalation", consumerGroup, logger),
		streamRepo:   streamRepo,
		notifier:     notifier,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		retryDelay:   DefaultRetryDelay,
	}
}

// WithRetryDelay overrides DefaultRetryDelay
func (w *Worker) WithRetryDelay(d time.Duration) *Worker {
	w.retryDelay = d
	return w
}

// Start joins the consumer group and handles messages until Stop or ctx
// cancellation.
func (w *Worker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting escalation worker",
		zap.String("stream", domain.StreamComplaintEscalation),
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("max_retries", w.maxRetries))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamComplaintEscalation, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	messages, err := w.streamRepo.ConsumeStream(ctx, domain.StreamComplaintEscalation, w.ConsumerGroup(), w.consumerName)
	if err != nil {
		return fmt.Errorf("failed to consume stream: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil

		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()

		case msg, ok := <-messages:
			if !ok {
				logger.Info("Stream closed")
				return nil
			}
			w.handle(ctx, msg)
		}
	}
}

// handle acks a message once its email is sent. Unparseable payloads are
// acked and dropped; messages still failing after the retries stay pending.
func (w *Worker) handle(ctx context.Context, msg domain.StreamMessage) {
	logger := w.Logger().With(zap.String("message_id", msg.ID))

	var event domain.EscalationEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		logger.Warn("Failed to parse escalation event, dropping", zap.Error(err))
		w.MarkFailed()
		w.ack(ctx, msg.ID)
		return
	}

	logger = logger.With(
		zap.String("event_id", event.EventID.String()),
		zap.String("category", string(event.Category)))

	if err := w.notify(ctx, event); err != nil {
		logger.Error("Escalation not delivered, leaving message pending",
			zap.Int("attempts", w.maxRetries+1),
			zap.Error(err))
		w.MarkFailed()
		return
	}

	w.MarkProcessed()
	w.ack(ctx, msg.ID)
	logger.Info("Escalation delivered", zap.Int("complaints", event.Count))
}

func (w *Worker) notify(ctx context.Context, event domain.EscalationEvent) error {
	var err error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 {
			delay := w.retryDelay * time.Duration(attempt)
			w.Logger().Warn("Retrying escalation notification",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(err))

			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			case <-w.StopChan():
				return err
			}
		}

		if err = w.notifier.NotifyEscalation(ctx, event); err == nil {
			return nil
		}
	}
	return err
}

func (w *Worker) ack(ctx context.Context, id string) {
	if err := w.streamRepo.AckMessage(ctx, domain.StreamComplaintEscalation, w.ConsumerGroup(), id); err != nil {
		w.Logger().Error("Failed to ack message", zap.String("message_id", id), zap.Error(err))
	}
}
