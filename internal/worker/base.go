package worker

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// Stats counts the messages a worker finished with
type Stats struct {
	Processed int64
	Failed    int64
}

// BaseWorker holds the stop signal, identity and counters shared by all
// workers.
type BaseWorker struct {
	name          string
	logger        *zap.Logger
	stopChan      chan struct{}
	stopped       bool
	mu            sync.Mutex
	consumerGroup string
	processed     atomic.Int64
	failed        atomic.Int64
}

func NewBaseWorker(name, consumerGroup string, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:          name,
		logger:        logger.With(zap.String("worker", name)),
		stopChan:      make(chan struct{}),
		consumerGroup: consumerGroup,
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

// Stop closes the stop channel; repeated calls are no-ops
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	stats := w.Stats()
	w.logger.Info("Stopping worker",
		zap.Int64("processed", stats.Processed),
		zap.Int64("failed", stats.Failed))
	close(w.stopChan)
	w.stopped = true

	return nil
}

func (w *BaseWorker) IsStopped() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stopped
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) ConsumerGroup() string {
	return w.consumerGroup
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// MarkProcessed records a message handled successfully
func (w *BaseWorker) MarkProcessed() {
	w.processed.Add(1)
}

// MarkFailed records a message given up on
func (w *BaseWorker) MarkFailed() {
	w.failed.Add(1)
}

func (w *BaseWorker) Stats() Stats {
	return Stats{Processed: w.processed.Load(), Failed: w.failed.Load()}
}
