package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"listkeeper-backend/application/services"
	"listkeeper-backend/domain"
	"listkeeper-backend/pkg/pagination"
)

// fakeItemRepo serves a fixed in-memory list for handler tests.
type fakeItemRepo struct {
	items []domain.ListItem
}

func newFakeItemRepo(listID string, count int) *fakeItemRepo {
	items := make([]domain.ListItem, count)
	for i := range items {
		items[i] = domain.ListItem{
			ID:             int64(i + 1),
			UserID:         "user-1",
			ListExternalID: listID,
			Title:          fmt.Sprintf("Item %d", i+1),
			URL:            fmt.Sprintf("https://example.com/%d", i+1),
			SortOrder:      i,
			CreatedAt:      time.Now().UTC(),
		}
	}
	return &fakeItemRepo{items: items}
}

func (r *fakeItemRepo) CountByList(ctx context.Context, listExternalID string) (int, error) {
	n := 0
	for _, it := range r.items {
		if it.ListExternalID == listExternalID {
			n++
		}
	}
	return n, nil
}

func (r *fakeItemRepo) SliceByList(ctx context.Context, listExternalID string, offset, limit int) ([]domain.ListItem, error) {
	var scoped []domain.ListItem
	for _, it := range r.items {
		if it.ListExternalID == listExternalID {
			scoped = append(scoped, it)
		}
	}
	if offset >= len(scoped) {
		return nil, nil
	}
	end := offset + limit
	if end > len(scoped) {
		end = len(scoped)
	}
	return scoped[offset:end], nil
}

func (r *fakeItemRepo) FetchFrom(ctx context.Context, userID string, cursor int64, limit int) ([]domain.ListItem, error) {
	return nil, nil
}

func (r *fakeItemRepo) HighlightsByItem(ctx context.Context, itemID int64) ([]domain.Highlight, error) {
	return nil, nil
}

func (r *fakeItemRepo) PutItem(ctx context.Context, item domain.ListItem) (int64, error) {
	return 0, nil
}

func (r *fakeItemRepo) PutHighlight(ctx context.Context, h domain.Highlight) error {
	return nil
}

func newListRouter(repo *fakeItemRepo) http.Handler {
	lists := services.NewListService(repo, zap.NewNop())
	h := NewListHandler(lists, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/lists/{listID}/items", h.Items)
	return r
}

type connectionResponse struct {
	Success bool `json:"success"`
	Data    struct {
		Edges []struct {
			Cursor string          `json:"cursor"`
			Node   domain.ListItem `json:"node"`
		} `json:"edges"`
		PageInfo   pagination.PageInfo `json:"pageInfo"`
		TotalCount int                 `json:"totalCount"`
	} `json:"data"`
}

func getConnection(t *testing.T, router http.Handler, url string) (int, connectionResponse) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp connectionResponse
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	}
	return rec.Code, resp
}

func TestListItemsFirstPage(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, resp := getConnection(t, router, "/lists/list-1/items?first=10")
	require.Equal(t, http.StatusOK, code)

	assert.Len(t, resp.Data.Edges, 10)
	assert.Equal(t, 25, resp.Data.TotalCount)
	assert.True(t, resp.Data.PageInfo.HasNextPage)
	assert.False(t, resp.Data.PageInfo.HasPreviousPage)
	assert.Equal(t, "Item 1", resp.Data.Edges[0].Node.Title)
}

func TestListItemsWalkForward(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, page1 := getConnection(t, router, "/lists/list-1/items?first=10")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, page1.Data.PageInfo.EndCursor)

	code, page2 := getConnection(t, router, "/lists/list-1/items?first=10&after="+*page1.Data.PageInfo.EndCursor)
	require.Equal(t, http.StatusOK, code)

	assert.Len(t, page2.Data.Edges, 10)
	assert.Equal(t, "Item 11", page2.Data.Edges[0].Node.Title)
	assert.True(t, page2.Data.PageInfo.HasPreviousPage)
}

func TestListItemsLastPage(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, resp := getConnection(t, router, "/lists/list-1/items?last=10")
	require.Equal(t, http.StatusOK, code)

	assert.Len(t, resp.Data.Edges, 10)
	assert.Equal(t, "Item 16", resp.Data.Edges[0].Node.Title)
	assert.False(t, resp.Data.PageInfo.HasNextPage)
	assert.True(t, resp.Data.PageInfo.HasPreviousPage)
}

func TestListItemsNoDirection(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, resp := getConnection(t, router, "/lists/list-1/items")
	require.Equal(t, http.StatusOK, code)

	assert.Empty(t, resp.Data.Edges)
	assert.Zero(t, resp.Data.TotalCount)
}

func TestListItemsRejectsFirstAndLast(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, _ := getConnection(t, router, "/lists/list-1/items?first=5&last=5")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListItemsRejectsNegativeFirst(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, _ := getConnection(t, router, "/lists/list-1/items?first=-1")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListItemsRejectsMalformedCursor(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, _ := getConnection(t, router, "/lists/list-1/items?first=5&after=not-a-cursor")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestListItemsUnknownListIsEmpty(t *testing.T) {
	router := newListRouter(newFakeItemRepo("list-1", 25))

	code, resp := getConnection(t, router, "/lists/other-list/items?first=10")
	require.Equal(t, http.StatusOK, code)

	assert.Empty(t, resp.Data.Edges)
	assert.Zero(t, resp.Data.TotalCount)
	assert.False(t, resp.Data.PageInfo.HasNextPage)
}
