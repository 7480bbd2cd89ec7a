package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/domain"
	"listkeeper-backend/domain/events"

	"go.uber.org/zap"
)

// ExportService drives one chunk of a resumable export per invocation. A
// chunk fetches a bounded page of the user's items, enriches and writes them,
// then either enqueues the follow-up chunk or publishes the completion event.
//
// The page's last write and the follow-up enqueue are not atomic: a crash
// between them leaves the chunk's data written but the export stalled. That
// window is accepted and monitored operationally; rewrites on redelivery are
// harmless because object keys are stable and content derives from the source
// rows alone.
type ExportService struct {
	source    ports.ExportSource
	queue     ports.MessageQueue
	publisher ports.EventPublisher
	logger    *zap.Logger
	pageSize  int
}

// NewExportService creates an export service with the given chunk page size.
func NewExportService(
	source ports.ExportSource,
	queue ports.MessageQueue,
	publisher ports.EventPublisher,
	pageSize int,
	logger *zap.Logger,
) *ExportService {
	return &ExportService{
		source:    source,
		queue:     queue,
		publisher: publisher,
		pageSize:  pageSize,
		logger:    logger,
	}
}

// ProcessChunk fetches, formats and writes one page of the export described
// by job, then advances or completes it. It reports whether this was the
// export's terminal chunk. Any error propagates to the caller, which retains
// the triggering message for redelivery.
func (s *ExportService) ProcessChunk(ctx context.Context, job domain.ExportJob) (bool, error) {
	// Over-fetch by one to detect whether more data remains without a
	// separate count query.
	items, err := s.source.FetchPage(ctx, job.UserID, job.Cursor, s.pageSize+1)
	if err != nil {
		return false, fmt.Errorf("fetch page at cursor %d: %w", job.Cursor, err)
	}

	terminal := len(items) <= s.pageSize
	if !terminal {
		items = items[:s.pageSize]
	}

	if len(items) > 0 {
		records, err := s.source.Format(ctx, items)
		if err != nil {
			return false, fmt.Errorf("format %d items: %w", len(items), err)
		}

		if err := s.source.Write(ctx, job, records, PartName(job.Part)); err != nil {
			return false, fmt.Errorf("write part %d: %w", job.Part, err)
		}
	}

	if !terminal {
		next := job.Next(items[len(items)-1].ID)
		body, err := json.Marshal(next)
		if err != nil {
			return false, fmt.Errorf("marshal next chunk: %w", err)
		}
		if err := s.queue.Send(ctx, string(body)); err != nil {
			return false, fmt.Errorf("enqueue next chunk: %w", err)
		}

		s.logger.Info("Export chunk written, continuing",
			zap.String("requestId", job.RequestID),
			zap.Int("part", job.Part),
			zap.Int64("nextCursor", next.Cursor),
			zap.Int("items", len(items)),
		)
		return false, nil
	}

	// Terminal chunk: the whole dataset has been written, including the
	// zero-row case, which still completes with no output files.
	event := events.NewExportReady(job.RequestID, job.UserID, time.Now())
	if err := s.publisher.Publish(ctx, event); err != nil {
		// Completion delivery failures are logged, not retried here.
		s.logger.Error("Failed to publish export completion",
			zap.String("requestId", job.RequestID),
			zap.Error(err),
		)
	}

	s.logger.Info("Export complete",
		zap.String("requestId", job.RequestID),
		zap.Int("parts", job.Part+1),
		zap.Int("lastChunkItems", len(items)),
	)
	return true, nil
}

// PartName formats a part sequence number as a fixed-width file name
// component so written objects sort in chunk order.
func PartName(part int) string {
	return fmt.Sprintf("%06d", part)
}
