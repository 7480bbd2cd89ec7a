package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"listkeeper-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func seedItems(t *testing.T, repo *ItemRepository, userID, listID string, n int) []int64 {
	t.Helper()
	ctx := context.Background()
	ids := make([]int64, n)
	for i := 0; i < n; i++ {
		id, err := repo.PutItem(ctx, domain.ListItem{
			UserID:         userID,
			ListExternalID: listID,
			Title:          fmt.Sprintf("Article %d", i+1),
			URL:            fmt.Sprintf("https://example.com/%d", i+1),
			SortOrder:      i,
			CreatedAt:      time.Now().UTC(),
		})
		require.NoError(t, err)
		ids[i] = id
	}
	return ids
}

func TestCountAndSliceByList(t *testing.T) {
	store := openTestStore(t)
	repo := NewItemRepository(store)
	ctx := context.Background()

	seedItems(t, repo, "user-1", "list-a", 7)
	seedItems(t, repo, "user-2", "list-b", 3)

	count, err := repo.CountByList(ctx, "list-a")
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	items, err := repo.SliceByList(ctx, "list-a", 2, 3)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Article 3", items[0].Title)
	assert.Equal(t, "Article 5", items[2].Title)

	// Offset past the end yields an empty slice, not an error.
	items, err = repo.SliceByList(ctx, "list-a", 10, 3)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchFromIsInclusive(t *testing.T) {
	store := openTestStore(t)
	repo := NewItemRepository(store)
	ctx := context.Background()

	ids := seedItems(t, repo, "user-1", "list-a", 5)

	// id >= cursor includes the row at the cursored key.
	items, err := repo.FetchFrom(ctx, "user-1", ids[2], 10)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, ids[2], items[0].ID)

	// The initial sentinel fetches from the beginning.
	items, err = repo.FetchFrom(ctx, "user-1", domain.InitialExportCursor, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, ids[0], items[0].ID)
}

func TestFetchFromScopedToUser(t *testing.T) {
	store := openTestStore(t)
	repo := NewItemRepository(store)
	ctx := context.Background()

	seedItems(t, repo, "user-1", "list-a", 4)
	seedItems(t, repo, "user-2", "list-b", 4)

	items, err := repo.FetchFrom(ctx, "user-1", domain.InitialExportCursor, 100)
	require.NoError(t, err)
	require.Len(t, items, 4)
	for _, it := range items {
		assert.Equal(t, "user-1", it.UserID)
	}
}

func TestHighlightsByItem(t *testing.T) {
	store := openTestStore(t)
	repo := NewItemRepository(store)
	ctx := context.Background()

	ids := seedItems(t, repo, "user-1", "list-a", 2)

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.PutHighlight(ctx, domain.Highlight{
			ItemID:    ids[0],
			Quote:     fmt.Sprintf("quote %d", i+1),
			CreatedAt: time.Now().UTC(),
		}))
	}

	highlights, err := repo.HighlightsByItem(ctx, ids[0])
	require.NoError(t, err)
	assert.Len(t, highlights, 3)

	highlights, err = repo.HighlightsByItem(ctx, ids[1])
	require.NoError(t, err)
	assert.Empty(t, highlights)
}
