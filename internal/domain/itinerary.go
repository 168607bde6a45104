package domain

import (
	"errors"
	"fmt"
)

// Common validation errors for Itinerary
var (
	ErrEmptyItinerary   = errors.New("itinerary must contain at least one day")
	ErrInvalidDayNumber = errors.New("itinerary day number must be positive")
)

// Activity is a single scheduled entry within a day plan.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// DayPlan is one day of a generated itinerary: a day number, a theme,
// and an ordered list of activities.
type DayPlan struct {
	Day        int        `json:"day"`
	Theme      string     `json:"theme"`
	Activities []Activity `json:"activities"`
}

// Itinerary is the generated travel plan, an ordered sequence of day plans.
// The JSON shape matches the structured output the generation backend is
// instructed to produce: {"itinerary": [{"day": 1, ...}, ...]}.
type Itinerary struct {
	Days []DayPlan `json:"itinerary"`
}

// Validate checks that the itinerary is structurally well formed: at least
// one day, and every day carries a positive day number. Content beyond the
// structure is deliberately not judged here.
func (i *Itinerary) Validate() error {
	if len(i.Days) == 0 {
		return ErrEmptyItinerary
	}

	for idx, day := range i.Days {
		if day.Day < 1 {
			return fmt.Errorf("%w: entry %d has day %d", ErrInvalidDayNumber, idx, day.Day)
		}
	}

	return nil
}
