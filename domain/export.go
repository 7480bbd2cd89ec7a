package domain

import "time"

// InitialExportCursor is the cursor value carried by the very first chunk of
// an export. Item IDs are positive, so every row satisfies id >= -1.
const InitialExportCursor int64 = -1

// ExportJob is the unit of work carried by one queue message. Cursor is the
// next item id to fetch (inclusive), not a page index; Part is a monotonically
// increasing sequence number used to order output files.
type ExportJob struct {
	UserID    string `json:"userId" validate:"required"`
	EncodedID string `json:"encodedId" validate:"required"`
	RequestID string `json:"requestId" validate:"required"`
	Cursor    int64  `json:"cursor"`
	Part      int    `json:"part" validate:"gte=0"`
}

// NewExportJob creates the first chunk of a fresh export request.
func NewExportJob(userID, encodedID, requestID string) ExportJob {
	return ExportJob{
		UserID:    userID,
		EncodedID: encodedID,
		RequestID: requestID,
		Cursor:    InitialExportCursor,
		Part:      0,
	}
}

// Next returns the follow-up job for the chunk after this one. lastKey is the
// primary key of the last row processed in the current chunk; the next fetch
// uses id >= lastKey+1 so concurrent inserts never cause skips or duplicates
// across chunk boundaries.
func (j ExportJob) Next(lastKey int64) ExportJob {
	j.Cursor = lastKey + 1
	j.Part++
	return j
}

// ExportRecord is the final exportable shape of one list item, enriched with
// its highlights. One blob object is written per record.
type ExportRecord struct {
	Slug       string      `json:"slug"`
	Title      string      `json:"title"`
	URL        string      `json:"url"`
	Excerpt    string      `json:"excerpt,omitempty"`
	Note       string      `json:"note,omitempty"`
	Highlights []Highlight `json:"highlights,omitempty"`
	SavedAt    time.Time   `json:"saved_at"`
}
