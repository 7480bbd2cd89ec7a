// Package workers contains the long-lived background processes of the export
// pipeline.
package workers

import (
	"context"
	"fmt"
	"time"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/pkg/observability"

	"go.uber.org/zap"
)

// HandlerFunc processes one queue message body. Returning true acknowledges
// the message; returning false or an error retains it for the queue's
// redelivery mechanism. The poller does no retry counting beyond that.
type HandlerFunc func(ctx context.Context, body string) (bool, error)

// PollerConfig tunes the receive loop.
type PollerConfig struct {
	// DefaultPollInterval is the delay after an empty receive.
	DefaultPollInterval time.Duration

	// AfterMessagePollInterval is the shorter delay after a message was
	// received, so backlogs drain quickly.
	AfterMessagePollInterval time.Duration

	// WaitSeconds is the queue long-poll duration per receive.
	WaitSeconds int32

	// VisibilityTimeout is how long a delivered message stays hidden from
	// other consumers. It is the only per-chunk timeout in the system.
	VisibilityTimeout int32
}

// Poller is a single-flight consumer of the work queue: it receives at most
// one message at a time, hands it to the handler, deletes it only on
// confirmed success, then schedules its next cycle. Chunks of one export are
// strictly ordered because each chunk's completion is a precondition for the
// next chunk's enqueue, and maxMessages=1 keeps a second in-flight message
// out of this process.
type Poller struct {
	queue   ports.MessageQueue
	handler HandlerFunc
	config  PollerConfig
	metrics *observability.WorkerMetrics
	logger  *zap.Logger

	stopChan    chan struct{}
	stoppedChan chan struct{}
}

// NewPoller creates a poller bound to a queue and handler.
func NewPoller(
	queue ports.MessageQueue,
	handler HandlerFunc,
	config PollerConfig,
	metrics *observability.WorkerMetrics,
	logger *zap.Logger,
) *Poller {
	return &Poller{
		queue:       queue,
		handler:     handler,
		config:      config,
		metrics:     metrics,
		logger:      logger,
		stopChan:    make(chan struct{}),
		stoppedChan: make(chan struct{}),
	}
}

// Start begins the poll loop in the background. There is no terminal state;
// the loop runs until Stop or context cancellation.
func (p *Poller) Start(ctx context.Context) {
	p.logger.Info("Starting queue poller",
		zap.Duration("pollInterval", p.config.DefaultPollInterval),
		zap.Duration("afterMessageInterval", p.config.AfterMessagePollInterval),
		zap.Int32("visibilityTimeout", p.config.VisibilityTimeout),
	)

	go p.loop(ctx)
}

// Stop blocks until the current cycle finishes and the loop exits.
func (p *Poller) Stop() {
	p.logger.Info("Stopping queue poller")
	close(p.stopChan)
	<-p.stoppedChan
	p.logger.Info("Queue poller stopped")
}

func (p *Poller) loop(ctx context.Context) {
	defer close(p.stoppedChan)

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Context cancelled, stopping queue poller")
			return
		case <-p.stopChan:
			return
		case <-timer.C:
		}

		handled := p.pollOnce(ctx)

		delay := p.config.DefaultPollInterval
		if handled {
			delay = p.config.AfterMessagePollInterval
		}
		timer.Reset(delay)
	}
}

// pollOnce runs one receive/handle/delete cycle. No failure escapes: an
// isolated bad cycle must never terminate the poller. Returns whether a
// message was received, which selects the shorter reschedule delay.
func (p *Poller) pollOnce(ctx context.Context) (received bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered panic in poll cycle", zap.Any("panic", r))
		}
	}()

	p.metrics.PollCycles.Inc()

	// maxMessages must stay 1: chunks of a single export are strictly
	// ordered, and concurrent handling would break the chain.
	messages, err := p.queue.Receive(ctx, 1, p.config.WaitSeconds, p.config.VisibilityTimeout)
	if err != nil {
		p.logger.Error("Queue receive failed", zap.Error(err))
		return false
	}
	if len(messages) == 0 {
		return false
	}

	msg := messages[0]
	ok, err := p.handle(ctx, msg.Body)
	if err != nil || !ok {
		// Message retained; the visibility timeout will represent it.
		p.metrics.MessagesHandled.WithLabelValues("retained").Inc()
		p.logger.Warn("Message handling failed, leaving for redelivery",
			zap.Bool("handled", ok),
			zap.Error(err),
		)
		return true
	}

	if err := p.queue.Delete(ctx, msg.ReceiptHandle); err != nil {
		// A duplicate delivery is preferable to a stuck poller.
		p.metrics.MessagesHandled.WithLabelValues("delete_failed").Inc()
		p.logger.Error("Failed to delete handled message", zap.Error(err))
		return true
	}

	p.metrics.MessagesHandled.WithLabelValues("acked").Inc()
	return true
}

// handle isolates handler panics so they count as a failed cycle rather than
// killing the loop.
func (p *Poller) handle(ctx context.Context, body string) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok = false
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return p.handler(ctx, body)
}
