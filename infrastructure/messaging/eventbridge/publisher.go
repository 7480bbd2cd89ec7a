// Package eventbridge implements the event publisher port on AWS EventBridge.
package eventbridge

import (
	"context"
	"encoding/json"
	"fmt"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/domain/events"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"go.uber.org/zap"
)

// EventSource identifies this service on the event bus.
const EventSource = "listkeeper.backend"

// Publisher implements ports.EventPublisher using AWS EventBridge.
type Publisher struct {
	client       *eventbridge.Client
	eventBusName string
	logger       *zap.Logger
}

// NewPublisher creates an EventBridge publisher for the given bus.
func NewPublisher(client *eventbridge.Client, eventBusName string, logger *zap.Logger) ports.EventPublisher {
	return &Publisher{
		client:       client,
		eventBusName: eventBusName,
		logger:       logger,
	}
}

// Publish sends a single event to EventBridge.
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) error {
	detail, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event %s: %w", event.GetEventType(), err)
	}

	input := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(p.eventBusName),
				Source:       aws.String(EventSource),
				DetailType:   aws.String(event.GetEventType()),
				Detail:       aws.String(string(detail)),
				Time:         aws.Time(event.GetTimestamp()),
			},
		},
	}

	result, err := p.client.PutEvents(ctx, input)
	if err != nil {
		return fmt.Errorf("publish event to EventBridge: %w", err)
	}

	if result.FailedEntryCount > 0 {
		entry := result.Entries[0]
		p.logger.Error("EventBridge rejected event",
			zap.String("eventType", event.GetEventType()),
			zap.String("errorCode", aws.ToString(entry.ErrorCode)),
			zap.String("errorMessage", aws.ToString(entry.ErrorMessage)),
		)
		return fmt.Errorf("event %s failed to publish", event.GetEventType())
	}

	p.logger.Debug("Event published",
		zap.String("eventType", event.GetEventType()),
		zap.String("eventBus", p.eventBusName),
	)
	return nil
}
