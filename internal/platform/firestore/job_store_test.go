package firestore

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/store"
)

// recordedRequest captures what the client put on the wire for one call.
type recordedRequest struct {
	method string
	path   string
	query  map[string][]string
	fields map[string]Value
}

// newTestClient wires a Client at a fake Firestore endpoint and records
// every request it receives. The handler answers with the given status.
func newTestClient(t *testing.T, status int, body string) (*Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Fields map[string]Value `json:"fields"`
		}
		raw, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, &payload))

		requests = append(requests, recordedRequest{
			method: r.Method,
			path:   r.URL.Path,
			query:  r.URL.Query(),
			fields: payload.Fields,
		})

		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	client := &Client{
		httpClient: server.Client(),
		baseURL:    server.URL,
		projectID:  "test-project",
		collection: "itineraries",
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return client, &requests
}

func stringField(t *testing.T, fields map[string]Value, key string) string {
	t.Helper()
	require.Contains(t, fields, key)
	require.NotNil(t, fields[key].StringValue, "field %q must be a stringValue", key)
	return *fields[key].StringValue
}

func TestCreateJob(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{}`)

	job, err := domain.NewJob("Kyoto", 5)
	require.NoError(t, err)

	require.NoError(t, client.CreateJob(context.Background(), job))

	require.Len(t, *requests, 1)
	req := (*requests)[0]

	assert.Equal(t, http.MethodPost, req.method)
	assert.Equal(t, "/projects/test-project/databases/(default)/documents/itineraries", req.path)
	assert.Equal(t, []string{job.ID.String()}, req.query["documentId"],
		"the documentId parameter makes the create a strict insert")

	assert.Equal(t, "Kyoto", stringField(t, req.fields, "destination"))
	assert.Equal(t, "processing", stringField(t, req.fields, "status"))

	require.NotNil(t, req.fields["durationDays"].IntegerValue)
	assert.Equal(t, "5", *req.fields["durationDays"].IntegerValue)

	require.NotNil(t, req.fields["createdAt"].TimestampValue)

	// The record shape is stable from the first write: result fields are
	// present as explicit nulls.
	for _, key := range []string{"itinerary", "error", "completedAt"} {
		require.Contains(t, req.fields, key)
		assert.NotNil(t, req.fields[key].NullValue, "field %q must be an explicit null", key)
	}
}

func TestCreateJob_DuplicateID(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.StatusConflict, `{"error": {"status": "ALREADY_EXISTS"}}`)

	job, err := domain.NewJob("Kyoto", 5)
	require.NoError(t, err)

	err = client.CreateJob(context.Background(), job)
	assert.ErrorIs(t, err, store.ErrJobAlreadyExists)
}

func TestCompleteJob(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{}`)

	id := uuid.New()
	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	itinerary := &domain.Itinerary{
		Days: []domain.DayPlan{
			{
				Day:   1,
				Theme: "Temples",
				Activities: []domain.Activity{
					{Time: "Morning", Description: "Visit Kinkaku-ji.", Location: "Kinkaku-ji"},
				},
			},
		},
	}

	require.NoError(t, client.CompleteJob(context.Background(), id, itinerary, completedAt))

	require.Len(t, *requests, 1)
	req := (*requests)[0]

	assert.Equal(t, http.MethodPatch, req.method)
	assert.Equal(t, "/projects/test-project/databases/(default)/documents/itineraries/"+id.String(), req.path)

	// The patch is a strict update: the precondition keeps Firestore from
	// creating a phantom record when the document was deleted externally.
	assert.Equal(t, []string{"true"}, req.query["currentDocument.exists"])

	// Only the changed fields appear in the update mask; the immutable
	// submission fields must never be rewritten.
	assert.ElementsMatch(t,
		[]string{"completedAt", "itinerary", "status"},
		req.query["updateMask.fieldPaths"])

	assert.Equal(t, "completed", stringField(t, req.fields, "status"))
	assert.NotContains(t, req.fields, "destination")
	assert.NotContains(t, req.fields, "durationDays")
	assert.NotContains(t, req.fields, "createdAt")
	assert.NotContains(t, req.fields, "error")

	require.NotNil(t, req.fields["completedAt"].TimestampValue)
	assert.Equal(t, "2025-06-01T12:00:00Z", *req.fields["completedAt"].TimestampValue)

	// The itinerary persists as a nested document with integer day numbers.
	require.NotNil(t, req.fields["itinerary"].MapValue)
	days := req.fields["itinerary"].MapValue.Fields["itinerary"]
	require.NotNil(t, days.ArrayValue)
	require.Len(t, days.ArrayValue.Values, 1)
	day := days.ArrayValue.Values[0]
	require.NotNil(t, day.MapValue)
	require.NotNil(t, day.MapValue.Fields["day"].IntegerValue)
	assert.Equal(t, "1", *day.MapValue.Fields["day"].IntegerValue)
}

func TestFailJob(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK, `{}`)

	id := uuid.New()
	completedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, client.FailJob(context.Background(), id, "generation backend request failed", completedAt))

	require.Len(t, *requests, 1)
	req := (*requests)[0]

	assert.Equal(t, http.MethodPatch, req.method)
	assert.Equal(t, []string{"true"}, req.query["currentDocument.exists"])
	assert.ElementsMatch(t,
		[]string{"completedAt", "error", "status"},
		req.query["updateMask.fieldPaths"])

	assert.Equal(t, "failed", stringField(t, req.fields, "status"))
	assert.Equal(t, "generation backend request failed", stringField(t, req.fields, "error"))
	assert.NotContains(t, req.fields, "itinerary")
}

func TestPatch_MissingDocument(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.StatusNotFound, `{"error": {"status": "NOT_FOUND"}}`)

	err := client.FailJob(context.Background(), uuid.New(), "boom", time.Now().UTC())
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

func TestStoreUnavailable(t *testing.T) {
	t.Parallel()

	t.Run("server error maps to ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()

		client, _ := newTestClient(t, http.StatusInternalServerError, `{"error": {"status": "INTERNAL"}}`)

		job, err := domain.NewJob("Kyoto", 5)
		require.NoError(t, err)

		err = client.CreateJob(context.Background(), job)
		assert.ErrorIs(t, err, store.ErrStoreUnavailable)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("unreachable endpoint maps to ErrStoreUnavailable", func(t *testing.T) {
		t.Parallel()

		client := &Client{
			httpClient: &http.Client{Timeout: 100 * time.Millisecond},
			baseURL:    "http://127.0.0.1:1", // nothing listens here
			projectID:  "test-project",
			collection: "itineraries",
			logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		}

		err := client.FailJob(context.Background(), uuid.New(), "boom", time.Now().UTC())
		assert.ErrorIs(t, err, store.ErrStoreUnavailable)
	})
}
