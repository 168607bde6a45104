package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validItinerary() *Itinerary {
	return &Itinerary{
		Days: []DayPlan{
			{
				Day:   1,
				Theme: "Arrival and old town",
				Activities: []Activity{
					{Time: "Morning", Description: "Walk the old town", Location: "Old Town"},
					{Time: "Evening", Description: "Dinner by the river", Location: "Riverside"},
				},
			},
		},
	}
}

func TestNewJob(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.Equal(t, "Kyoto", job.Destination)
	assert.Equal(t, 5, job.DurationDays)
	assert.Equal(t, JobStatusProcessing, job.Status)
	assert.Nil(t, job.Itinerary)
	assert.Empty(t, job.Error)
	assert.False(t, job.CreatedAt.IsZero())
	assert.Nil(t, job.CompletedAt)
}

func TestNewJob_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		destination  string
		durationDays int
		wantErr      error
	}{
		{"empty destination", "", 3, ErrEmptyDestination},
		{"zero duration", "Kyoto", 0, ErrInvalidDurationDays},
		{"negative duration", "Kyoto", -1, ErrInvalidDurationDays},
		{"duration above bound", "Kyoto", MaxDurationDays + 1, ErrInvalidDurationDays},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			job, err := NewJob(tc.destination, tc.durationDays)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Nil(t, job, "no job must escape a rejected submission")
		})
	}
}

func TestNewJob_AcceptsDurationBounds(t *testing.T) {
	t.Parallel()

	for _, days := range []int{1, MaxDurationDays} {
		job, err := NewJob("Lisbon", days)
		require.NoError(t, err)
		assert.Equal(t, days, job.DurationDays)
	}
}

func TestJobValidate(t *testing.T) {
	t.Parallel()

	now := time.Now().UTC()

	base := func() Job {
		return Job{
			ID:           uuid.New(),
			Destination:  "Lisbon",
			DurationDays: 3,
			Status:       JobStatusProcessing,
			CreatedAt:    now,
		}
	}

	t.Run("valid processing job", func(t *testing.T) {
		t.Parallel()
		job := base()
		assert.NoError(t, job.Validate())
	})

	t.Run("nil ID", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.ID = uuid.Nil
		assert.ErrorIs(t, job.Validate(), ErrEmptyJobID)
	})

	t.Run("unknown status", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Status = JobStatus("pending")
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)
	})

	t.Run("processing job must not carry a result", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Itinerary = validItinerary()
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)

		job = base()
		job.Error = "boom"
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)

		job = base()
		job.CompletedAt = &now
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)
	})

	t.Run("completed job requires itinerary and timestamp", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Status = JobStatusCompleted
		job.CompletedAt = &now
		assert.ErrorIs(t, job.Validate(), ErrMissingItinerary)

		job.Itinerary = validItinerary()
		job.CompletedAt = nil
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)

		job.CompletedAt = &now
		assert.NoError(t, job.Validate())
	})

	t.Run("completed job must not carry an error", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Status = JobStatusCompleted
		job.Itinerary = validItinerary()
		job.CompletedAt = &now
		job.Error = "leftover"
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)
	})

	t.Run("failed job requires error message and timestamp", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Status = JobStatusFailed
		job.CompletedAt = &now
		assert.ErrorIs(t, job.Validate(), ErrMissingErrorMessage)

		job.Error = "backend unavailable"
		job.CompletedAt = nil
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)

		job.CompletedAt = &now
		assert.NoError(t, job.Validate())
	})

	t.Run("failed job must not carry an itinerary", func(t *testing.T) {
		t.Parallel()
		job := base()
		job.Status = JobStatusFailed
		job.Error = "backend unavailable"
		job.CompletedAt = &now
		job.Itinerary = validItinerary()
		assert.ErrorIs(t, job.Validate(), ErrInvalidJobStatus)
	})
}

func TestJobComplete(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)

	at := time.Now()
	itinerary := validItinerary()
	require.NoError(t, job.Complete(itinerary, at))

	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Same(t, itinerary, job.Itinerary)
	assert.Empty(t, job.Error)
	require.NotNil(t, job.CompletedAt)
	assert.Equal(t, at.UTC(), *job.CompletedAt)
	assert.True(t, job.IsTerminal())
	assert.NoError(t, job.Validate())

	// A terminal job cannot transition again.
	assert.ErrorIs(t, job.Complete(itinerary, at), ErrJobAlreadyTerminal)
	assert.ErrorIs(t, job.Fail("late failure", at), ErrJobAlreadyTerminal)
}

func TestJobComplete_RequiresItinerary(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)

	assert.ErrorIs(t, job.Complete(nil, time.Now()), ErrMissingItinerary)
	assert.Equal(t, JobStatusProcessing, job.Status)
}

func TestJobFail(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)

	at := time.Now()
	require.NoError(t, job.Fail("generation backend request failed", at))

	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, "generation backend request failed", job.Error)
	assert.Nil(t, job.Itinerary)
	require.NotNil(t, job.CompletedAt)
	assert.True(t, job.IsTerminal())
	assert.NoError(t, job.Validate())

	assert.ErrorIs(t, job.Fail("again", at), ErrJobAlreadyTerminal)
	assert.ErrorIs(t, job.Complete(validItinerary(), at), ErrJobAlreadyTerminal)
}

func TestJobFail_RequiresMessage(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)

	assert.ErrorIs(t, job.Fail("", time.Now()), ErrMissingErrorMessage)
	assert.Equal(t, JobStatusProcessing, job.Status)
}

func TestJobIsTerminal(t *testing.T) {
	t.Parallel()

	job, err := NewJob("Kyoto", 5)
	require.NoError(t, err)
	assert.False(t, job.IsTerminal())
}
