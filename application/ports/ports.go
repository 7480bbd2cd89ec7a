// Package ports defines the interfaces the application layer depends on.
// Infrastructure packages implement them; the application never imports
// infrastructure directly.
package ports

import (
	"context"

	"listkeeper-backend/domain"
	"listkeeper-backend/domain/events"
)

// ListItemRepository is the relational row source behind both the paginated
// list API and the export pipeline.
type ListItemRepository interface {
	// CountByList returns the full unpaginated item count for a list.
	CountByList(ctx context.Context, listExternalID string) (int, error)

	// SliceByList returns up to limit items for a list starting at offset,
	// in a stable order (sort_order, then id).
	SliceByList(ctx context.Context, listExternalID string, offset, limit int) ([]domain.ListItem, error)

	// FetchFrom returns up to limit of the user's items with id >= cursor,
	// ordered ascending by id. Export chunking depends on the >= contract.
	FetchFrom(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error)

	// HighlightsByItem returns all highlights attached to one item.
	HighlightsByItem(ctx context.Context, itemID int64) ([]domain.Highlight, error)

	// PutItem inserts an item and returns its assigned id.
	PutItem(ctx context.Context, item domain.ListItem) (int64, error)

	// PutHighlight inserts a highlight for an item.
	PutHighlight(ctx context.Context, h domain.Highlight) error
}

// Message is one unit received from the work queue. The receipt handle is the
// queue's token for deleting exactly this delivery.
type Message struct {
	Body          string
	ReceiptHandle string
}

// MessageQueue is the work queue driving export chunks. The queue is the sole
// authority on message lifecycle; consumers delete a message only after its
// work is durably complete.
type MessageQueue interface {
	// Receive returns up to maxMessages messages, long-polling for up to
	// waitSeconds and hiding delivered messages for visibilityTimeout seconds.
	Receive(ctx context.Context, maxMessages int32, waitSeconds int32, visibilityTimeout int32) ([]Message, error)

	// Delete acknowledges a delivered message.
	Delete(ctx context.Context, receiptHandle string) error

	// Send enqueues a new message body.
	Send(ctx context.Context, body string) error
}

// BlobStore persists export output, one object per record.
type BlobStore interface {
	WriteObject(ctx context.Context, key string, content []byte) error
}

// EventPublisher delivers domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}

// ExportSource is the data side of a chunked export: fetching a bounded page
// of parent rows, enriching them into exportable records, and writing those
// records to blob storage. The orchestration in the export service stays the
// same for any implementation.
type ExportSource interface {
	// FetchPage returns up to limit of the user's rows with key >= cursor,
	// ordered ascending by key.
	FetchPage(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error)

	// Format enriches fetched rows into export records. It may perform
	// additional reads per row; a failure fails the whole chunk.
	Format(ctx context.Context, items []domain.ListItem) ([]domain.ExportRecord, error)

	// Write durably persists the records for one chunk. part is the zero
	// padded chunk sequence used to order output files.
	Write(ctx context.Context, job domain.ExportJob, records []domain.ExportRecord, part string) error
}
