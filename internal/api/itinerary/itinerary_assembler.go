package itinerary

import (
	"time"

	"github.com/google/uuid"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

// Assemble builds the success envelope. Lists are never nil so they always
// serialize as arrays.
func Assemble(plan types.TripPlan, interp Interpretation, bundle Bundle, opts Options, generatedAt time.Time) *types.ItineraryResponse {
	weather := bundle.Weather
	if weather == nil {
		weather = []types.WeatherDay{}
	}
	return &types.ItineraryResponse{
		Success:     true,
		Itinerary:   interp.Itinerary,
		Attractions: prefix(bundle.Attractions, opts.DisplayAttractions),
		Images:      prefix(bundle.Photos, opts.DisplayImages),
		Weather:     weather,
		Metadata: types.ItineraryMetadata{
			ItineraryID:  uuid.New(),
			Destination:  plan.Destination,
			Duration:     plan.Duration,
			StartDate:    plan.StartDate.Format(dateLayout),
			EndDate:      plan.EndDate.Format(dateLayout),
			GeneratedAt:  generatedAt.UTC(),
			Source:       interp.Source,
			RepairedDays: interp.RepairedDays,
		},
	}
}

func prefix[T any](items []T, n int) []T {
	if n >= 0 && len(items) > n {
		items = items[:n]
	}
	out := make([]T, len(items))
	copy(out, items)
	return out
}
