package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/domain"
	"listkeeper-backend/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeSource serves items out of memory and records every write.
type fakeSource struct {
	items     []domain.ListItem
	written   []domain.ExportRecord
	parts     []string
	fetchErr  error
	writeErr  error
	formatErr error
}

func (f *fakeSource) FetchPage(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []domain.ListItem
	for _, it := range f.items {
		if it.UserID == userID && it.ID >= cursor {
			out = append(out, it)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSource) Format(ctx context.Context, items []domain.ListItem) ([]domain.ExportRecord, error) {
	if f.formatErr != nil {
		return nil, f.formatErr
	}
	records := make([]domain.ExportRecord, len(items))
	for i, it := range items {
		records[i] = domain.ExportRecord{Slug: it.Slug(), Title: it.Title, URL: it.URL, SavedAt: it.CreatedAt}
	}
	return records, nil
}

func (f *fakeSource) Write(ctx context.Context, job domain.ExportJob, records []domain.ExportRecord, part string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, records...)
	f.parts = append(f.parts, part)
	return nil
}

type fakePublisher struct {
	published []events.DomainEvent
	err       error
}

func (p *fakePublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	if p.err != nil {
		return p.err
	}
	p.published = append(p.published, event)
	return nil
}

func itemsForUser(userID string, n int) []domain.ListItem {
	items := make([]domain.ListItem, n)
	for i := range items {
		items[i] = domain.ListItem{
			ID:     int64(i + 1),
			UserID: userID,
			Title:  fmt.Sprintf("Article %d", i+1),
			URL:    fmt.Sprintf("https://example.com/%d", i+1),
		}
	}
	return items
}

// runExport drains an export job to completion the way the worker would:
// process a chunk, then decode and process whatever the service enqueued.
// Returns the number of ProcessChunk invocations.
func runExport(t *testing.T, svc *ExportService, queue *simpleQueue, job domain.ExportJob) int {
	t.Helper()
	ctx := context.Background()

	invocations := 0
	for {
		invocations++
		_, err := svc.ProcessChunk(ctx, job)
		require.NoError(t, err)

		if len(queue.sent) == 0 {
			return invocations
		}
		body := queue.sent[0]
		queue.sent = queue.sent[1:]
		require.NoError(t, json.Unmarshal([]byte(body), &job))
		require.Less(t, invocations, 1000, "export did not terminate")
	}
}

// simpleQueue implements ports.MessageQueue for the service tests; Receive is
// unused by ProcessChunk.
type simpleQueue struct {
	sent []string
}

func (q *simpleQueue) Receive(ctx context.Context, maxMessages, waitSeconds, visibilityTimeout int32) ([]ports.Message, error) {
	return nil, nil
}

func (q *simpleQueue) Send(ctx context.Context, body string) error {
	q.sent = append(q.sent, body)
	return nil
}

func (q *simpleQueue) Delete(ctx context.Context, receiptHandle string) error { return nil }

func TestProcessChunkEmptyDataset(t *testing.T) {
	// Zero rows: one invocation, zero writes, one completion event.
	source := &fakeSource{}
	queue := &simpleQueue{}
	publisher := &fakePublisher{}
	svc := NewExportService(source, queue, publisher, 10, zap.NewNop())

	job := domain.NewExportJob("user-1", "enc-1", "req-1")
	invocations := runExport(t, svc, queue, job)

	assert.Equal(t, 1, invocations)
	assert.Empty(t, source.written)
	assert.Empty(t, queue.sent)
	require.Len(t, publisher.published, 1)
	assert.Equal(t, events.ExportReadyType, publisher.published[0].GetEventType())
	assert.Equal(t, "req-1", publisher.published[0].GetAggregateID())
}

func TestProcessChunkTwentyFiveRows(t *testing.T) {
	// 25 rows, pageSize 10: three invocations of 10, 10 and 5 rows, two
	// re-enqueues, one completion event.
	source := &fakeSource{items: itemsForUser("user-1", 25)}
	queue := &simpleQueue{}
	publisher := &fakePublisher{}
	svc := NewExportService(source, queue, publisher, 10, zap.NewNop())

	ctx := context.Background()
	job := domain.NewExportJob("user-1", "enc-1", "req-1")

	sends := 0
	invocations := 0
	for {
		invocations++
		_, err := svc.ProcessChunk(ctx, job)
		require.NoError(t, err)
		if len(queue.sent) == 0 {
			break
		}
		sends++
		body := queue.sent[0]
		queue.sent = queue.sent[1:]
		require.NoError(t, json.Unmarshal([]byte(body), &job))
	}

	assert.Equal(t, 3, invocations)
	assert.Equal(t, 2, sends)
	assert.Len(t, source.written, 25)
	assert.Len(t, publisher.published, 1)
	assert.Equal(t, []string{"000000", "000001", "000002"}, source.parts)
}

func TestProcessChunkBoundaries(t *testing.T) {
	// ceil(M/p) chunks; the union of written records is the full dataset with
	// no duplicates and no omissions.
	const p = 5
	for _, m := range []int{0, 1, p - 1, p, p + 1, 3*p + 2} {
		t.Run(fmt.Sprintf("rows_%d", m), func(t *testing.T) {
			source := &fakeSource{items: itemsForUser("user-1", m)}
			queue := &simpleQueue{}
			publisher := &fakePublisher{}
			svc := NewExportService(source, queue, publisher, p, zap.NewNop())

			job := domain.NewExportJob("user-1", "enc-1", "req-1")
			invocations := runExport(t, svc, queue, job)

			wantChunks := m / p
			if m%p > 0 {
				wantChunks++
			}
			if m == 0 {
				wantChunks = 1
			}
			assert.Equal(t, wantChunks, invocations)
			assert.Len(t, publisher.published, 1)

			require.Len(t, source.written, m)
			seen := make(map[string]bool, m)
			for _, rec := range source.written {
				assert.False(t, seen[rec.URL], "duplicate record %s", rec.URL)
				seen[rec.URL] = true
			}
		})
	}
}

func TestProcessChunkAdvancesCursorPastLastRow(t *testing.T) {
	source := &fakeSource{items: itemsForUser("user-1", 12)}
	queue := &simpleQueue{}
	svc := NewExportService(source, queue, &fakePublisher{}, 10, zap.NewNop())

	job := domain.NewExportJob("user-1", "enc-1", "req-1")
	terminal, err := svc.ProcessChunk(context.Background(), job)
	require.NoError(t, err)
	assert.False(t, terminal)

	require.Len(t, queue.sent, 1)
	var next domain.ExportJob
	require.NoError(t, json.Unmarshal([]byte(queue.sent[0]), &next))

	// Last processed row has id 10; the continuation fetches id >= 11.
	assert.Equal(t, int64(11), next.Cursor)
	assert.Equal(t, 1, next.Part)
	assert.Equal(t, "req-1", next.RequestID)
}

func TestProcessChunkFetchErrorPropagates(t *testing.T) {
	source := &fakeSource{fetchErr: errors.New("db down")}
	svc := NewExportService(source, &simpleQueue{}, &fakePublisher{}, 10, zap.NewNop())

	_, err := svc.ProcessChunk(context.Background(), domain.NewExportJob("u", "e", "r"))
	assert.Error(t, err)
}

func TestProcessChunkWriteErrorPropagates(t *testing.T) {
	source := &fakeSource{items: itemsForUser("user-1", 3), writeErr: errors.New("storage down")}
	queue := &simpleQueue{}
	publisher := &fakePublisher{}
	svc := NewExportService(source, queue, publisher, 10, zap.NewNop())

	_, err := svc.ProcessChunk(context.Background(), domain.NewExportJob("user-1", "e", "r"))
	assert.Error(t, err)
	assert.Empty(t, queue.sent)
	assert.Empty(t, publisher.published)
}

func TestProcessChunkCompletionPublishFailureIsNotFatal(t *testing.T) {
	// A failed completion publish is logged, not surfaced: the chunk's work
	// is durably done and the message must still be deleted.
	source := &fakeSource{items: itemsForUser("user-1", 2)}
	publisher := &fakePublisher{err: errors.New("bus unavailable")}
	svc := NewExportService(source, &simpleQueue{}, publisher, 10, zap.NewNop())

	terminal, err := svc.ProcessChunk(context.Background(), domain.NewExportJob("user-1", "e", "r"))
	assert.NoError(t, err)
	assert.True(t, terminal)
}
