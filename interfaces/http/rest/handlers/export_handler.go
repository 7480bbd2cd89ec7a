package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"listkeeper-backend/application/ports"
	"listkeeper-backend/application/workers"
	"listkeeper-backend/pkg/common"
)

// ExportHandler accepts export requests and enqueues the initial trigger
// message. The export itself runs asynchronously in the worker.
type ExportHandler struct {
	queue  ports.MessageQueue
	logger *zap.Logger
}

// NewExportHandler creates an export request handler.
func NewExportHandler(queue ports.MessageQueue, logger *zap.Logger) *ExportHandler {
	return &ExportHandler{queue: queue, logger: logger}
}

// exportAcceptedResponse is the 202 body returned on enqueue.
type exportAcceptedResponse struct {
	RequestID string `json:"requestId"`
	Status    string `json:"status"`
}

// Request handles POST /exports.
func (h *ExportHandler) Request(w http.ResponseWriter, r *http.Request) {
	userID, ok := common.GetUserID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return
	}
	encodedID, ok := common.GetEncodedID(r.Context())
	if !ok {
		common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing public id in token")
		return
	}

	requestID := uuid.New().String()
	body, err := workers.WrapInitial(workers.ExportRequested{
		UserID:    userID,
		EncodedID: encodedID,
		RequestID: requestID,
	})
	if err != nil {
		h.logger.Error("Failed to encode export trigger", zap.Error(err))
		common.RespondError(w, http.StatusInternalServerError, "INTERNAL", "failed to start export")
		return
	}

	if err := h.queue.Send(r.Context(), body); err != nil {
		h.logger.Error("Failed to enqueue export trigger",
			zap.String("requestId", requestID),
			zap.Error(err),
		)
		common.RespondError(w, http.StatusServiceUnavailable, "EXTERNAL", "export queue unavailable")
		return
	}

	h.logger.Info("Export requested",
		zap.String("requestId", requestID),
		zap.String("userId", userID),
	)
	common.RespondJSON(w, http.StatusAccepted, exportAcceptedResponse{
		RequestID: requestID,
		Status:    "queued",
	})
}
