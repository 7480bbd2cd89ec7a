package workers

import (
	"encoding/json"
	"testing"

	"listkeeper-backend/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJobEnvelopedInitialRequest(t *testing.T) {
	body, err := WrapInitial(ExportRequested{
		UserID:    "user-1",
		EncodedID: "enc-1",
		RequestID: "req-1",
	})
	require.NoError(t, err)

	job, err := DecodeJob(body)
	require.NoError(t, err)

	assert.Equal(t, "user-1", job.UserID)
	assert.Equal(t, "enc-1", job.EncodedID)
	assert.Equal(t, "req-1", job.RequestID)
	assert.Equal(t, domain.InitialExportCursor, job.Cursor)
	assert.Equal(t, 0, job.Part)
}

func TestDecodeJobDirectContinuation(t *testing.T) {
	chunk := domain.ExportJob{
		UserID:    "user-1",
		EncodedID: "enc-1",
		RequestID: "req-1",
		Cursor:    101,
		Part:      4,
	}
	body, err := json.Marshal(chunk)
	require.NoError(t, err)

	job, err := DecodeJob(string(body))
	require.NoError(t, err)
	assert.Equal(t, chunk, job)
}

func TestDecodeJobMalformed(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", "not json at all"},
		{"envelope with bad inner", `{"Message": "{nope"}`},
		{"wrong types", `{"userId": 7, "cursor": "x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJob(tt.body)
			assert.Error(t, err)
		})
	}
}
