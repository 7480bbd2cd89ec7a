package services

import (
	"context"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/domain"
	"listkeeper-backend/pkg/pagination"

	"go.uber.org/zap"
)

// ListService serves paginated reads over a shareable list's items.
type ListService struct {
	items  ports.ListItemRepository
	logger *zap.Logger
}

// NewListService creates a list read service.
func NewListService(items ports.ListItemRepository, logger *zap.Logger) *ListService {
	return &ListService{items: items, logger: logger}
}

// listRowSource scopes the repository to one list for the paginator. The
// repository applies the stable (sort_order, id) ordering.
type listRowSource struct {
	items          ports.ListItemRepository
	listExternalID string
}

func (s listRowSource) Count(ctx context.Context) (int, error) {
	return s.items.CountByList(ctx, s.listExternalID)
}

func (s listRowSource) Slice(ctx context.Context, offset, limit int) ([]domain.ListItem, error) {
	return s.items.SliceByList(ctx, s.listExternalID, offset, limit)
}

// Items returns one Relay connection page of the list's items.
func (s *ListService) Items(ctx context.Context, listExternalID string, req pagination.Request) (*pagination.Connection[domain.ListItem], error) {
	conn, err := pagination.Paginate[domain.ListItem](ctx, req, listRowSource{
		items:          s.items,
		listExternalID: listExternalID,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Paginated list items",
		zap.String("listId", listExternalID),
		zap.Int("edges", len(conn.Edges)),
		zap.Int("totalCount", conn.TotalCount),
	)
	return conn, nil
}
