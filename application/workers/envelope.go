package workers

import (
	"encoding/json"
	"fmt"

	"listkeeper-backend/domain"
)

// ExportRequested is the body of the very first message in an export's life.
// It arrives wrapped in a transport envelope; continuation chunks are raw
// ExportJob JSON.
type ExportRequested struct {
	UserID    string `json:"userId" validate:"required"`
	EncodedID string `json:"encodedId" validate:"required"`
	RequestID string `json:"requestId" validate:"required"`
}

// transportEnvelope is the one-level wrapper around the initial trigger. The
// Message field holds the inner payload as a JSON string.
type transportEnvelope struct {
	Message *string `json:"Message"`
}

// WrapInitial produces the enveloped body for a fresh export request.
func WrapInitial(req ExportRequested) (string, error) {
	inner, err := json.Marshal(req)
	if err != nil {
		return "", err
	}
	s := string(inner)
	body, err := json.Marshal(transportEnvelope{Message: &s})
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// DecodeJob turns a queue message body into the chunk it describes. Envelope
// decode is attempted first; on fallback the body must be a direct ExportJob.
// Both shapes are known exactly, anything else is a decode error.
func DecodeJob(body string) (domain.ExportJob, error) {
	var env transportEnvelope
	if err := json.Unmarshal([]byte(body), &env); err == nil && env.Message != nil {
		var req ExportRequested
		if err := json.Unmarshal([]byte(*env.Message), &req); err != nil {
			return domain.ExportJob{}, fmt.Errorf("decode enveloped export request: %w", err)
		}
		return domain.NewExportJob(req.UserID, req.EncodedID, req.RequestID), nil
	}

	var job domain.ExportJob
	if err := json.Unmarshal([]byte(body), &job); err != nil {
		return domain.ExportJob{}, fmt.Errorf("decode export job: %w", err)
	}
	return job, nil
}
