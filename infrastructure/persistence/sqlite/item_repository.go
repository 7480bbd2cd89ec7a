package sqlite

import (
	"context"
	"database/sql"

	"listkeeper-backend/domain"
	apperrors "listkeeper-backend/pkg/errors"
)

// ItemRepository implements ports.ListItemRepository over the SQLite store.
type ItemRepository struct {
	db *sql.DB
}

// NewItemRepository creates a repository on an open store.
func NewItemRepository(store *Store) *ItemRepository {
	return &ItemRepository{db: store.db}
}

// CountByList returns the full unpaginated item count for a list.
func (r *ItemRepository) CountByList(ctx context.Context, listExternalID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM list_items WHERE list_external_id = ?`,
		listExternalID,
	).Scan(&count)
	if err != nil {
		return 0, apperrors.NewDatabase("count list items", err)
	}
	return count, nil
}

// SliceByList returns up to limit items starting at offset. Ordering is
// stable (sort_order, then id) so offset cursors stay meaningful between the
// paginator's two queries.
func (r *ItemRepository) SliceByList(ctx context.Context, listExternalID string, offset, limit int) ([]domain.ListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, list_external_id, title, url, excerpt, note, sort_order, created_at
		FROM list_items
		WHERE list_external_id = ?
		ORDER BY sort_order, id
		LIMIT ? OFFSET ?`,
		listExternalID, limit, offset,
	)
	if err != nil {
		return nil, apperrors.NewDatabase("slice list items", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// FetchFrom returns up to limit of the user's items with id >= cursor,
// ascending by id. The inclusive comparison is load-bearing for export
// chunking: the continuation cursor is lastKey+1, so chunk boundaries
// tolerate concurrent inserts without skips or duplicates.
func (r *ItemRepository) FetchFrom(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, list_external_id, title, url, excerpt, note, sort_order, created_at
		FROM list_items
		WHERE user_id = ? AND id >= ?
		ORDER BY id ASC
		LIMIT ?`,
		userID, cursor, limit,
	)
	if err != nil {
		return nil, apperrors.NewDatabase("fetch items from cursor", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// HighlightsByItem returns all highlights for one item.
func (r *ItemRepository) HighlightsByItem(ctx context.Context, itemID int64) ([]domain.Highlight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, item_id, quote, created_at
		FROM item_highlights
		WHERE item_id = ?
		ORDER BY id`,
		itemID,
	)
	if err != nil {
		return nil, apperrors.NewDatabase("load highlights", err)
	}
	defer rows.Close()

	var highlights []domain.Highlight
	for rows.Next() {
		var h domain.Highlight
		if err := rows.Scan(&h.ID, &h.ItemID, &h.Quote, &h.CreatedAt); err != nil {
			return nil, apperrors.NewDatabase("scan highlight", err)
		}
		highlights = append(highlights, h)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabase("iterate highlights", err)
	}
	return highlights, nil
}

// PutItem inserts an item and returns its assigned id.
func (r *ItemRepository) PutItem(ctx context.Context, item domain.ListItem) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO list_items (user_id, list_external_id, title, url, excerpt, note, sort_order, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.UserID, item.ListExternalID, item.Title, item.URL, item.Excerpt, item.Note, item.SortOrder, item.CreatedAt,
	)
	if err != nil {
		return 0, apperrors.NewDatabase("insert list item", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, apperrors.NewDatabase("read inserted id", err)
	}
	return id, nil
}

// PutHighlight inserts a highlight for an item.
func (r *ItemRepository) PutHighlight(ctx context.Context, h domain.Highlight) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO item_highlights (item_id, quote, created_at)
		VALUES (?, ?, ?)`,
		h.ItemID, h.Quote, h.CreatedAt,
	)
	if err != nil {
		return apperrors.NewDatabase("insert highlight", err)
	}
	return nil
}

func scanItems(rows *sql.Rows) ([]domain.ListItem, error) {
	var items []domain.ListItem
	for rows.Next() {
		var it domain.ListItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.ListExternalID, &it.Title, &it.URL, &it.Excerpt, &it.Note, &it.SortOrder, &it.CreatedAt); err != nil {
			return nil, apperrors.NewDatabase("scan list item", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDatabase("iterate list items", err)
	}
	return items, nil
}
