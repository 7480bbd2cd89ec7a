package workers

import (
	"context"
	"time"

	"listkeeper-backend/application/services"
	"listkeeper-backend/pkg/observability"
	"listkeeper-backend/pkg/utils"

	"go.uber.org/zap"
)

// ExportHandler adapts the export service to the poller's HandlerFunc: one
// queue message in, one processed chunk out.
type ExportHandler struct {
	exports *services.ExportService
	metrics *observability.WorkerMetrics
	logger  *zap.Logger
}

// NewExportHandler creates the worker-side message handler.
func NewExportHandler(exports *services.ExportService, metrics *observability.WorkerMetrics, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{
		exports: exports,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle decodes and processes one chunk. False retains the message for the
// queue's redelivery; a message that can never decode relies on the queue's
// dead-letter policy to leave rotation.
func (h *ExportHandler) Handle(ctx context.Context, body string) (bool, error) {
	job, err := DecodeJob(body)
	if err != nil {
		h.logger.Error("Undecodable export message", zap.Error(err))
		return false, err
	}

	if err := utils.ValidateStruct(job); err != nil {
		h.logger.Error("Invalid export job",
			zap.String("requestId", job.RequestID),
			zap.Error(err),
		)
		return false, err
	}

	start := time.Now()
	terminal, err := h.exports.ProcessChunk(ctx, job)
	if err != nil {
		h.logger.Error("Export chunk failed",
			zap.String("requestId", job.RequestID),
			zap.Int64("cursor", job.Cursor),
			zap.Int("part", job.Part),
			zap.Error(err),
		)
		return false, err
	}

	h.metrics.ChunksProcessed.Inc()
	h.metrics.ChunkDuration.Observe(time.Since(start).Seconds())
	if terminal {
		h.metrics.ExportsCompleted.Inc()
	}
	return true, nil
}
