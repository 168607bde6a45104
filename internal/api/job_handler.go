package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/nahiid-dev/VoyageCraft/internal/api/shared"
	"github.com/nahiid-dev/VoyageCraft/internal/service"
)

// CreateItineraryRequest represents the request body for submitting a new
// itinerary generation job.
type CreateItineraryRequest struct {
	Destination  string `json:"destination"  validate:"required,min=1"`
	DurationDays int    `json:"durationDays" validate:"required,gte=1,lte=14"`
}

// CreateItineraryResponse acknowledges an accepted job. The identifier is
// the caller's only handle on the outcome; everything else is observed
// through the job record.
type CreateItineraryResponse struct {
	JobID string `json:"jobId"`
}

// JobHandler handles itinerary job HTTP requests.
type JobHandler struct {
	jobService service.JobService
	validator  *validator.Validate
	logger     *slog.Logger
}

// NewJobHandler creates a new JobHandler.
func NewJobHandler(jobService service.JobService, logger *slog.Logger) *JobHandler {
	return &JobHandler{
		jobService: jobService,
		validator:  validator.New(),
		logger:     logger.With("component", "job_handler"),
	}
}

// CreateItinerary handles POST /api/itineraries requests. On success the
// response is written as soon as the job record exists and its background
// task is registered. Generation itself happens after this handler
// returns, and its outcome is never reported on this connection.
func (h *JobHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req CreateItineraryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	job, err := h.jobService.SubmitJob(r.Context(), req.Destination, req.DurationDays)
	if err != nil {
		h.respondSubmitError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, CreateItineraryResponse{
		JobID: job.ID.String(),
	})
}

// respondSubmitError maps service errors onto the HTTP surface. Validation
// problems are the client's; everything else is reported as a server
// failure without leaking the underlying error text.
func (h *JobHandler) respondSubmitError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Error("failed to submit job",
		"error", err,
		"trace_id", shared.GetTraceID(r.Context()))

	switch {
	case errors.Is(err, service.ErrJobCreationFailed):
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to create job")
	case errors.Is(err, service.ErrJobNotScheduled):
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to schedule job")
	default:
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to submit job")
	}
}
