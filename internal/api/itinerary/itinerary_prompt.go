package itinerary

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	MinActivitiesPerDay = 4
	MaxActivitiesPerDay = 6
)

const systemPrompt = `You are an expert travel planner. You design realistic, well paced day-by-day itineraries using real places. You always answer with a single valid JSON object and never add prose, markdown or code fences.`

// BuildPrompt renders the generation prompt. It is a pure function of its
// arguments: identical input gives an identical prompt.
func BuildPrompt(plan types.TripPlan, attractions []types.Attraction, forecast []types.WeatherDay, attractionLimit int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a detailed %d-day travel itinerary for %s.\n\n", plan.Duration, plan.Destination)
	b.WriteString("Trip details:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", plan.Destination)
	fmt.Fprintf(&b, "- Start date: %s\n", plan.StartDate.Format(dateLayout))
	fmt.Fprintf(&b, "- End date: %s\n", plan.EndDate.Format(dateLayout))
	fmt.Fprintf(&b, "- Duration: %d days\n", plan.Duration)
	if plan.Preferences != "" {
		fmt.Fprintf(&b, "- Traveler preferences: %s\n", plan.Preferences)
	} else {
		b.WriteString("- Traveler preferences: none given, plan a balanced mix of sights, culture and food\n")
	}

	b.WriteString("\nAvailable attractions (prefer these real places):\n")
	names := attractionNames(attractions, attractionLimit)
	if len(names) == 0 {
		b.WriteString("- No attraction list available, use well known places in the destination\n")
	}
	for _, name := range names {
		fmt.Fprintf(&b, "- %s\n", name)
	}

	b.WriteString("\nWeather forecast:\n")
	if len(forecast) == 0 {
		b.WriteString("- Forecast unavailable, mix indoor and outdoor activities\n")
	}
	for _, d := range forecast {
		fmt.Fprintf(&b, "- %s: %s, %d-%d°C, %d%% chance of rain\n",
			d.Date, d.Condition, int(math.Round(d.MinTempC)), int(math.Round(d.MaxTempC)), d.ChanceOfRain)
	}

	fmt.Fprintf(&b, `
Requirements:
- Return exactly %d days numbered 1 to %d, one object per day, dates starting at %s.
- Each day has between %d and %d activities in chronological order.
- Prefer indoor activities on rainy days and outdoor activities on clear days.
- Every activity names a concrete location.

Return ONLY a JSON object with this exact structure, no other text:
{
  "destination": %s,
  "days": [
    {
      "day": 1,
      "date": "YYYY-MM-DD",
      "title": "Short theme of the day",
      "activities": [
        {
          "time": "09:00",
          "activity": "What to do",
          "location": "Name of the place",
          "duration": "2 hours",
          "image_search": "one or two keywords to find a photo"
        }
      ]
    }
  ]
}
`, plan.Duration, plan.Duration, plan.StartDate.Format(dateLayout), MinActivitiesPerDay, MaxActivitiesPerDay, jsonString(plan.Destination))

	return b.String()
}

func attractionNames(attractions []types.Attraction, limit int) []string {
	names := make([]string, 0, len(attractions))
	for _, a := range attractions {
		if limit > 0 && len(names) == limit {
			break
		}
		if name := strings.TrimSpace(a.Name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// promptMessages pairs the system instruction with the trip prompt.
func promptMessages(prompt string) []types.ChatMessage {
	return []types.ChatMessage{
		{Role: types.ChatRoleSystem, Content: systemPrompt},
		{Role: types.ChatRoleUser, Content: prompt},
	}
}

// jsonString quotes s as a JSON string literal.
func jsonString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(b)
}
