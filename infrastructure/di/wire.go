//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"listkeeper-backend/infrastructure/config"

	"github.com/google/wire"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideSQSClient,
	ProvideS3Client,
	ProvideEventBridgeClient,
	ProvideStore,
	ProvideItemRepository,
	ProvideQueue,
	ProvideMessageQueue,
	ProvideBlobStore,
	ProvideEventPublisher,
	ProvideExportSource,
	ProvideExportService,
	ProvideListService,
	ProvideWorkerMetrics,
	ProvideExportHandler,
	ProvidePoller,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil
}
