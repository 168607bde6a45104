package generation

import (
	"context"

	"github.com/nahiid-dev/VoyageCraft/internal/domain"
)

// Generator defines the interface for producing a travel itinerary from job
// parameters. It is the boundary between the orchestration core and the
// external LLM backend: implementations build one deterministic prompt,
// make exactly one network round trip, and parse the structured response.
// They do not retry, paginate or stream; a failed attempt is surfaced to
// the caller, which records it on the job.
type Generator interface {
	// GenerateItinerary creates a multi-day itinerary for the destination.
	// The returned itinerary is structurally validated; a response that
	// cannot be parsed into the expected shape fails with ErrInvalidResponse
	// rather than leaking a malformed document.
	GenerateItinerary(ctx context.Context, destination string, durationDays int) (*domain.Itinerary, error)
}
