package firestore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
	"github.com/nahiid-dev/VoyageCraft/internal/store"
)

// Compile-time assurance the client satisfies the store port
var _ store.JobStore = (*Client)(nil)

// CreateJob inserts the initial processing record for a job. The itinerary,
// error and completedAt fields are written as explicit nulls so observers
// can subscribe to a stable document shape from the first read.
func (c *Client) CreateJob(ctx context.Context, job *domain.Job) error {
	doc := map[string]any{
		"destination":  job.Destination,
		"durationDays": job.DurationDays,
		"status":       string(job.Status),
		"itinerary":    nil,
		"error":        nil,
		"createdAt":    job.CreatedAt,
		"completedAt":  nil,
	}

	c.logger.Debug("creating job document", "job_id", job.ID)
	return c.createDocument(ctx, job.ID.String(), doc)
}

// CompleteJob moves an existing record to completed in a single partial
// update. Only status, itinerary and completedAt appear in the update mask;
// the immutable submission fields are never rewritten.
func (c *Client) CompleteJob(
	ctx context.Context,
	id uuid.UUID,
	itinerary *domain.Itinerary,
	completedAt time.Time,
) error {
	doc := map[string]any{
		"status":      string(domain.JobStatusCompleted),
		"itinerary":   itineraryDocument(itinerary),
		"completedAt": completedAt,
	}

	c.logger.Debug("completing job document", "job_id", id)
	return c.patchDocument(ctx, id.String(), doc)
}

// FailJob moves an existing record to failed in a single partial update
// carrying only status, error and completedAt.
func (c *Client) FailJob(ctx context.Context, id uuid.UUID, errorMessage string, completedAt time.Time) error {
	doc := map[string]any{
		"status":      string(domain.JobStatusFailed),
		"error":       errorMessage,
		"completedAt": completedAt,
	}

	c.logger.Debug("failing job document", "job_id", id)
	return c.patchDocument(ctx, id.String(), doc)
}

// itineraryDocument converts the domain itinerary into the plain document
// shape the codec encodes. Day numbers stay integers all the way to the
// wire's integerValue.
func itineraryDocument(itinerary *domain.Itinerary) map[string]any {
	days := make([]any, 0, len(itinerary.Days))
	for _, day := range itinerary.Days {
		activities := make([]any, 0, len(day.Activities))
		for _, act := range day.Activities {
			activities = append(activities, map[string]any{
				"time":        act.Time,
				"description": act.Description,
				"location":    act.Location,
			})
		}
		days = append(days, map[string]any{
			"day":        day.Day,
			"theme":      day.Theme,
			"activities": activities,
		})
	}
	return map[string]any{"itinerary": days}
}
