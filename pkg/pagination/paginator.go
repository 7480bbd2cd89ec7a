package pagination

import (
	"context"
	"fmt"
)

// Request carries Relay connection arguments. Exactly one direction should be
// populated: First/After for forward pagination, Last/Before for backward.
// When neither First nor Last is set the paginator returns a defined empty
// connection rather than an error.
type Request struct {
	First  *int
	After  *string
	Last   *int
	Before *string
}

// RowSource is the query abstraction the paginator runs against. The caller
// must apply a stable ordering before pagination; the paginator never
// re-orders rows.
type RowSource[T any] interface {
	// Count returns the size of the full filtered, unpaginated result set.
	Count(ctx context.Context) (int, error)

	// Slice returns up to limit rows starting at offset.
	Slice(ctx context.Context, offset, limit int) ([]T, error)
}

// Edge is one node of a connection together with its position cursor.
type Edge[T any] struct {
	Cursor string `json:"cursor"`
	Node   T      `json:"node"`
}

// PageInfo is the Relay connection page metadata. StartCursor and EndCursor
// are nil exactly when the page is empty.
type PageInfo struct {
	HasNextPage     bool    `json:"hasNextPage"`
	HasPreviousPage bool    `json:"hasPreviousPage"`
	StartCursor     *string `json:"startCursor"`
	EndCursor       *string `json:"endCursor"`
}

// Connection is a Relay-style page of results. TotalCount reflects the full
// result set at query time, not the page.
type Connection[T any] struct {
	Edges      []Edge[T] `json:"edges"`
	PageInfo   PageInfo  `json:"pageInfo"`
	TotalCount int       `json:"totalCount"`
}

// lastPageOffset marks a backward request with no Before cursor, meaning "the
// last page of the whole set". The real offset is resolved from the total
// count once it is known.
const lastPageOffset = -1

// Paginate resolves a Request against a RowSource into a Connection. It
// issues exactly two queries: a count over the unpaginated set, then a single
// over-fetch-by-one slice that detects whether a further page exists.
//
// Cursors encode raw offsets, so they are only valid relative to a stable,
// unmutated ordering; concurrent inserts or deletes between requests can skip
// or repeat rows. That is an accepted limitation of this design.
func Paginate[T any](ctx context.Context, req Request, source RowSource[T]) (*Connection[T], error) {
	if req.First == nil && req.Last == nil {
		return emptyConnection[T](), nil
	}

	offset, limit, err := resolveWindow(req)
	if err != nil {
		return nil, err
	}

	totalCount, err := source.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count rows: %w", err)
	}

	if offset == lastPageOffset {
		offset = totalCount - limit
		if offset < 0 {
			offset = 0
		}
	}

	rows, err := source.Slice(ctx, offset, limit+1)
	if err != nil {
		return nil, fmt.Errorf("slice rows at offset %d: %w", offset, err)
	}

	hasNextPage := false
	if len(rows) > limit {
		rows = rows[:limit]
		hasNextPage = true
	}
	hasPreviousPage := offset > 0
	if req.Last != nil {
		hasPreviousPage = len(rows) > 0 && offset > 0
	}

	edges := make([]Edge[T], len(rows))
	for i, row := range rows {
		edges[i] = Edge[T]{Cursor: EncodeCursor(offset + i), Node: row}
	}

	conn := &Connection[T]{
		Edges:      edges,
		TotalCount: totalCount,
		PageInfo: PageInfo{
			HasNextPage:     hasNextPage,
			HasPreviousPage: hasPreviousPage,
		},
	}
	if len(edges) > 0 {
		conn.PageInfo.StartCursor = &edges[0].Cursor
		conn.PageInfo.EndCursor = &edges[len(edges)-1].Cursor
	}

	return conn, nil
}

// resolveWindow computes the offset/limit window for the request. Backward
// requests without a Before cursor yield the lastPageOffset sentinel, to be
// resolved against the total count.
func resolveWindow(req Request) (offset, limit int, err error) {
	if req.First != nil {
		limit = *req.First
		if req.After != nil {
			after, err := DecodeCursor(*req.After)
			if err != nil {
				return 0, 0, err
			}
			offset = after + 1
		}
		return offset, limit, nil
	}

	limit = *req.Last
	if req.Before == nil {
		return lastPageOffset, limit, nil
	}

	before, err := DecodeCursor(*req.Before)
	if err != nil {
		return 0, 0, err
	}
	// Never fetch past the position marked by Before.
	if before < limit {
		limit = before
	}
	offset = before - *req.Last
	if offset < 0 {
		offset = 0
	}
	return offset, limit, nil
}

func emptyConnection[T any]() *Connection[T] {
	return &Connection[T]{
		Edges:      []Edge[T]{},
		TotalCount: 0,
		PageInfo: PageInfo{
			HasNextPage:     false,
			HasPreviousPage: false,
		},
	}
}
