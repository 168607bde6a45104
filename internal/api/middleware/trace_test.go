package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahiid-dev/VoyageCraft/internal/api/shared"
)

func TestTrace(t *testing.T) {
	t.Parallel()

	var seenTraceID string
	handler := Trace(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenTraceID = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/itineraries", nil))

	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.NotEmpty(t, seenTraceID, "handlers must see the trace ID in their context")

	// A second request gets its own trace ID.
	first := seenTraceID
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/itineraries", nil))
	assert.NotEqual(t, first, seenTraceID)
}
