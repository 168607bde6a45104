package shared

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	RespondWithJSON(rec, req, http.StatusAccepted, map[string]string{"jobId": "abc"})

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"jobId": "abc"}`, rec.Body.String())
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes the trace ID when present", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries", nil)
		req = req.WithContext(SetTraceID(req.Context()))
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusBadRequest, "Invalid request format")

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Invalid request format", resp.Error)
		assert.Equal(t, GetTraceID(req.Context()), resp.TraceID)
	})

	t.Run("omits the trace ID when absent", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/api/itineraries", nil)
		rec := httptest.NewRecorder()

		RespondWithError(rec, req, http.StatusInternalServerError, "Failed to create job")

		assert.NotContains(t, rec.Body.String(), "trace_id")
	})
}
