package di

import (
	"net/http"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/application/services"
	"listkeeper-backend/application/workers"
	"listkeeper-backend/infrastructure/config"
	sqsqueue "listkeeper-backend/infrastructure/messaging/sqs"
	"listkeeper-backend/infrastructure/persistence/sqlite"
	"listkeeper-backend/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	Store          *sqlite.Store
	ItemRepository ports.ListItemRepository
	Queue          *sqsqueue.Queue
	MessageQueue   ports.MessageQueue
	BlobStore      ports.BlobStore
	EventPublisher ports.EventPublisher
	ExportSource   ports.ExportSource
	ExportService  *services.ExportService
	ListService    *services.ListService
	Metrics        *observability.WorkerMetrics
	ExportHandler  *workers.ExportHandler
	Poller         *workers.Poller
	Router         http.Handler
}

// Close releases the container's resources.
func (c *Container) Close() error {
	return c.Store.Close()
}
