package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"listkeeper-backend/application/services"
	"listkeeper-backend/pkg/common"
	apperrors "listkeeper-backend/pkg/errors"
	"listkeeper-backend/pkg/pagination"
)

// ListHandler serves paginated reads of a shareable list.
type ListHandler struct {
	lists  *services.ListService
	logger *zap.Logger
}

// NewListHandler creates a list handler.
func NewListHandler(lists *services.ListService, logger *zap.Logger) *ListHandler {
	return &ListHandler{lists: lists, logger: logger}
}

// Items handles GET /lists/{listID}/items.
func (h *ListHandler) Items(w http.ResponseWriter, r *http.Request) {
	listID := chi.URLParam(r, "listID")
	if listID == "" {
		common.RespondError(w, http.StatusBadRequest, "VALIDATION", "list id is required")
		return
	}

	req, err := parsePaginationRequest(r)
	if err != nil {
		common.RespondAppError(w, err)
		return
	}

	conn, err := h.lists.Items(r.Context(), listID, req)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			common.RespondError(w, http.StatusBadRequest, "VALIDATION", "invalid cursor")
			return
		}
		h.logger.Error("Failed to paginate list items",
			zap.String("listId", listID),
			zap.Error(err),
		)
		common.RespondAppError(w, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, conn)
}

// parsePaginationRequest reads Relay connection arguments from the query
// string. First and last are mutually exclusive; cursors are passed through
// opaque and validated by the paginator.
func parsePaginationRequest(r *http.Request) (pagination.Request, error) {
	var req pagination.Request
	q := r.URL.Query()

	if raw := q.Get("first"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, apperrors.NewValidation("first must be a non-negative integer")
		}
		req.First = &n
	}
	if raw := q.Get("last"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return req, apperrors.NewValidation("last must be a non-negative integer")
		}
		req.Last = &n
	}
	if req.First != nil && req.Last != nil {
		return req, apperrors.NewValidation("first and last are mutually exclusive")
	}

	if after := q.Get("after"); after != "" {
		req.After = &after
	}
	if before := q.Get("before"); before != "" {
		req.Before = &before
	}

	return req, nil
}
