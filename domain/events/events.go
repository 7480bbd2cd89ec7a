package events

import "time"

// DomainEvent is the base interface for all domain events
// Events represent something that has happened in the past
type DomainEvent interface {
	GetAggregateID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetVersion() int
}

// BaseEvent provides common event fields
type BaseEvent struct {
	AggregateID string    `json:"aggregate_id"`
	EventType   string    `json:"event_type"`
	Timestamp   time.Time `json:"timestamp"`
	Version     int       `json:"version"`
}

func (e BaseEvent) GetAggregateID() string  { return e.AggregateID }
func (e BaseEvent) GetEventType() string    { return e.EventType }
func (e BaseEvent) GetTimestamp() time.Time { return e.Timestamp }
func (e BaseEvent) GetVersion() int         { return e.Version }

// ExportReadyType is the event type emitted when an export's terminal chunk
// has been written.
const ExportReadyType = "export_ready"

// ExportReady is raised when the last chunk of an export has been written and
// the exported files are complete.
type ExportReady struct {
	BaseEvent
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
}

// NewExportReady creates an ExportReady event for a finished export request.
func NewExportReady(requestID, userID string, timestamp time.Time) ExportReady {
	return ExportReady{
		BaseEvent: BaseEvent{
			AggregateID: requestID,
			EventType:   ExportReadyType,
			Timestamp:   timestamp,
			Version:     1,
		},
		RequestID: requestID,
		UserID:    userID,
	}
}
