package services

import (
	"context"
	"encoding/json"
	"fmt"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/domain"
)

// ListExportSource exports a user's saved items: fetch pages from the
// relational store, enrich each item with its highlights, and write one JSON
// object per item to blob storage.
type ListExportSource struct {
	items  ports.ListItemRepository
	blobs  ports.BlobStore
	prefix string
}

// NewListExportSource creates the item export source. prefix is the root of
// all export object keys, typically the export area of the bucket.
func NewListExportSource(items ports.ListItemRepository, blobs ports.BlobStore, prefix string) *ListExportSource {
	return &ListExportSource{items: items, blobs: blobs, prefix: prefix}
}

// FetchPage returns up to limit items with id >= cursor, ascending.
func (s *ListExportSource) FetchPage(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error) {
	return s.items.FetchFrom(ctx, userID, cursor, limit)
}

// Format joins each item's highlights. One extra read per item; any failure
// fails the chunk so the queue redelivers it whole.
func (s *ListExportSource) Format(ctx context.Context, items []domain.ListItem) ([]domain.ExportRecord, error) {
	records := make([]domain.ExportRecord, len(items))
	for i, item := range items {
		highlights, err := s.items.HighlightsByItem(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("load highlights for item %d: %w", item.ID, err)
		}
		records[i] = domain.ExportRecord{
			Slug:       item.Slug(),
			Title:      item.Title,
			URL:        item.URL,
			Excerpt:    item.Excerpt,
			Note:       item.Note,
			Highlights: highlights,
			SavedAt:    item.CreatedAt,
		}
	}
	return records, nil
}

// Write persists one object per record. Keys are stable, so a redelivered
// chunk overwrites its own objects with identical content rather than
// duplicating them.
func (s *ListExportSource) Write(ctx context.Context, job domain.ExportJob, records []domain.ExportRecord, part string) error {
	for _, record := range records {
		content, err := json.MarshalIndent(record, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal record %q: %w", record.Slug, err)
		}

		key := fmt.Sprintf("%s/%s/items/%s-%s.json", s.prefix, job.EncodedID, part, record.Slug)
		if err := s.blobs.WriteObject(ctx, key, content); err != nil {
			return fmt.Errorf("write object %q: %w", key, err)
		}
	}
	return nil
}
