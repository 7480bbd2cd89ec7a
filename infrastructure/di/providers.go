package di

import (
	"context"
	"net/http"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/application/services"
	"listkeeper-backend/application/workers"
	"listkeeper-backend/infrastructure/config"
	ebpublisher "listkeeper-backend/infrastructure/messaging/eventbridge"
	sqsqueue "listkeeper-backend/infrastructure/messaging/sqs"
	"listkeeper-backend/infrastructure/persistence/sqlite"
	s3store "listkeeper-backend/infrastructure/storage/s3"
	"listkeeper-backend/interfaces/http/rest"
	"listkeeper-backend/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"go.uber.org/zap"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideSQSClient creates an SQS client
func ProvideSQSClient(awsCfg aws.Config) *awssqs.Client {
	return awssqs.NewFromConfig(awsCfg)
}

// ProvideS3Client creates an S3 client
func ProvideS3Client(awsCfg aws.Config) *awss3.Client {
	return awss3.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideStore opens the SQLite store
func ProvideStore(cfg *config.Config) (*sqlite.Store, error) {
	return sqlite.Open(cfg.DatabasePath)
}

// ProvideItemRepository creates the list item repository
func ProvideItemRepository(store *sqlite.Store) ports.ListItemRepository {
	return sqlite.NewItemRepository(store)
}

// ProvideQueue creates the export work queue
func ProvideQueue(client *awssqs.Client, cfg *config.Config, logger *zap.Logger) *sqsqueue.Queue {
	return sqsqueue.NewQueue(client, cfg.QueueURL, logger)
}

// ProvideMessageQueue exposes the queue through its port
func ProvideMessageQueue(queue *sqsqueue.Queue) ports.MessageQueue {
	return queue
}

// ProvideBlobStore creates the export blob store
func ProvideBlobStore(client *awss3.Client, cfg *config.Config, logger *zap.Logger) ports.BlobStore {
	return s3store.NewBlobStore(client, cfg.ExportBucket, logger)
}

// ProvideEventPublisher creates the completion event publisher
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	return ebpublisher.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideExportSource creates the list item export source
func ProvideExportSource(items ports.ListItemRepository, blobs ports.BlobStore, cfg *config.Config) ports.ExportSource {
	return services.NewListExportSource(items, blobs, cfg.ExportPrefix)
}

// ProvideExportService creates the chunked export service
func ProvideExportService(
	source ports.ExportSource,
	queue ports.MessageQueue,
	publisher ports.EventPublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *services.ExportService {
	return services.NewExportService(source, queue, publisher, cfg.ExportPageSize, logger)
}

// ProvideListService creates the paginated list read service
func ProvideListService(items ports.ListItemRepository, logger *zap.Logger) *services.ListService {
	return services.NewListService(items, logger)
}

// ProvideWorkerMetrics creates the worker metric set
func ProvideWorkerMetrics() *observability.WorkerMetrics {
	return observability.NewWorkerMetrics()
}

// ProvideExportHandler creates the worker-side message handler
func ProvideExportHandler(exports *services.ExportService, metrics *observability.WorkerMetrics, logger *zap.Logger) *workers.ExportHandler {
	return workers.NewExportHandler(exports, metrics, logger)
}

// ProvidePoller creates the queue poller for the export worker
func ProvidePoller(
	queue ports.MessageQueue,
	handler *workers.ExportHandler,
	cfg *config.Config,
	metrics *observability.WorkerMetrics,
	logger *zap.Logger,
) *workers.Poller {
	return workers.NewPoller(
		queue,
		handler.Handle,
		workers.PollerConfig{
			DefaultPollInterval:      cfg.DefaultPollInterval,
			AfterMessagePollInterval: cfg.AfterMessagePollInterval,
			WaitSeconds:              int32(cfg.ReceiveWaitSeconds),
			VisibilityTimeout:        int32(cfg.VisibilityTimeoutSeconds),
		},
		metrics,
		logger,
	)
}

// ProvideRouter builds the API server's HTTP handler
func ProvideRouter(
	cfg *config.Config,
	lists *services.ListService,
	queue ports.MessageQueue,
	store *sqlite.Store,
	logger *zap.Logger,
) http.Handler {
	return rest.NewRouter(cfg, lists, queue, store, logger).Setup()
}
