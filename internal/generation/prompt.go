package generation

import "fmt"

// promptFormat instructs the backend to answer with machine-parseable JSON
// only. The embedded example pins the exact document shape the rest of the
// system parses and persists.
const promptFormat = `You are a travel planning assistant. Create a detailed travel itinerary for a %d-day trip to %s.
Your response MUST be a valid JSON object. Do not include any text, notes, or explanations outside of the JSON object itself.
The JSON object must follow this exact structure, including all specified fields for each activity:
{
  "itinerary": [
    {
      "day": 1,
      "theme": "Theme of the day",
      "activities": [
        {
          "time": "Morning",
          "description": "Activity description.",
          "location": "Location name"
        },
        {
          "time": "Afternoon",
          "description": "Activity description.",
          "location": "Location name"
        },
        {
          "time": "Evening",
          "description": "Activity description.",
          "location": "Location name"
        }
      ]
    }
  ]
}

Generate the complete itinerary for all %d days.`

// BuildPrompt renders the generation prompt for a destination and trip
// length. The prompt is a pure function of its inputs so a given submission
// always asks the backend the same question.
func BuildPrompt(destination string, durationDays int) string {
	return fmt.Sprintf(promptFormat, durationDays, destination, durationDays)
}
