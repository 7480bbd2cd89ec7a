// Package sqs implements the work queue port on AWS SQS.
package sqs

import (
	"context"
	"fmt"
	"strconv"

	"listkeeper-backend/application/ports"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	sqstypes "github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"
)

// Queue implements ports.MessageQueue against one SQS queue URL. SQS owns the
// message lifecycle: a received message stays invisible for the visibility
// timeout and is redelivered unless deleted in time.
type Queue struct {
	client   *sqs.Client
	queueURL string
	logger   *zap.Logger
}

// NewQueue creates a queue bound to an SQS queue URL.
func NewQueue(client *sqs.Client, queueURL string, logger *zap.Logger) *Queue {
	return &Queue{
		client:   client,
		queueURL: queueURL,
		logger:   logger,
	}
}

// Receive long-polls for up to maxMessages messages.
func (q *Queue) Receive(ctx context.Context, maxMessages, waitSeconds, visibilityTimeout int32) ([]ports.Message, error) {
	out, err := q.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
		QueueUrl:            aws.String(q.queueURL),
		MaxNumberOfMessages: maxMessages,
		WaitTimeSeconds:     waitSeconds,
		VisibilityTimeout:   visibilityTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("receive from queue: %w", err)
	}

	messages := make([]ports.Message, 0, len(out.Messages))
	for _, m := range out.Messages {
		messages = append(messages, ports.Message{
			Body:          aws.ToString(m.Body),
			ReceiptHandle: aws.ToString(m.ReceiptHandle),
		})
	}
	return messages, nil
}

// Delete acknowledges a delivered message.
func (q *Queue) Delete(ctx context.Context, receiptHandle string) error {
	_, err := q.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      aws.String(q.queueURL),
		ReceiptHandle: aws.String(receiptHandle),
	})
	if err != nil {
		return fmt.Errorf("delete from queue: %w", err)
	}
	return nil
}

// Send enqueues a new message body.
func (q *Queue) Send(ctx context.Context, body string) error {
	_, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(body),
	})
	if err != nil {
		return fmt.Errorf("send to queue: %w", err)
	}

	q.logger.Debug("Message enqueued", zap.Int("bytes", len(body)))
	return nil
}

// Depth returns the approximate number of visible messages on the queue.
func (q *Queue) Depth(ctx context.Context) (int, error) {
	out, err := q.client.GetQueueAttributes(ctx, &sqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(q.queueURL),
		AttributeNames: []sqstypes.QueueAttributeName{sqstypes.QueueAttributeNameApproximateNumberOfMessages},
	})
	if err != nil {
		return 0, fmt.Errorf("get queue attributes: %w", err)
	}

	raw := out.Attributes[string(sqstypes.QueueAttributeNameApproximateNumberOfMessages)]
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parse queue depth %q: %w", raw, err)
	}
	return n, nil
}
