package itinerary

import (
	"fmt"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

// Synthesize builds a complete itinerary from the attraction list alone. It
// has no failure path.
func Synthesize(plan types.TripPlan, attractions []types.Attraction) types.Itinerary {
	days := plan.Duration
	if days < 1 {
		days = 1
	}
	it := types.Itinerary{
		Destination: plan.Destination,
		Days:        make([]types.DayPlan, 0, days),
	}
	for day := 1; day <= days; day++ {
		it.Days = append(it.Days, fallbackDay(plan, attractions, day))
	}
	return it
}

// fallbackDay fills a single 1-based day. Attractions are cycled two per day,
// so day d uses indexes 2(d-1) and 2(d-1)+1 modulo the list length.
func fallbackDay(plan types.TripPlan, attractions []types.Attraction, day int) types.DayPlan {
	dest := plan.Destination
	named := namedAttractions(attractions)

	var morning, afternoon types.Activity
	if len(named) == 0 {
		morning = types.Activity{
			Time:        "09:00",
			Activity:    fmt.Sprintf("Explore the historic center of %s", dest),
			Location:    dest,
			Duration:    "3 hours",
			ImageSearch: dest + " old town",
		}
		afternoon = types.Activity{
			Time:        "14:30",
			Activity:    fmt.Sprintf("Discover the neighborhoods and viewpoints of %s", dest),
			Location:    dest,
			Duration:    "3 hours",
			ImageSearch: dest + " landmark",
		}
	} else {
		first := named[(2*(day-1))%len(named)]
		second := named[(2*(day-1)+1)%len(named)]
		morning = types.Activity{
			Time:        "09:00",
			Activity:    "Visit " + first.Name,
			Location:    first.Name,
			Duration:    "2-3 hours",
			ImageSearch: first.Name,
		}
		afternoon = types.Activity{
			Time:        "14:30",
			Activity:    "Explore " + second.Name,
			Location:    second.Name,
			Duration:    "2-3 hours",
			ImageSearch: second.Name,
		}
	}

	return types.DayPlan{
		Day:   day,
		Date:  dayDate(plan, day),
		Title: fmt.Sprintf("Day %d in %s", day, dest),
		Activities: []types.Activity{
			morning,
			{
				Time:        "12:30",
				Activity:    "Lunch with local cuisine",
				Location:    dest,
				Duration:    "1 hour",
				ImageSearch: dest + " food",
			},
			afternoon,
			{
				Time:        "19:00",
				Activity:    "Dinner at a traditional restaurant",
				Location:    dest,
				Duration:    "2 hours",
				ImageSearch: dest + " restaurant",
			},
		},
	}
}

func namedAttractions(attractions []types.Attraction) []types.Attraction {
	named := make([]types.Attraction, 0, len(attractions))
	for _, a := range attractions {
		if a.Name != "" {
			named = append(named, a)
		}
	}
	return named
}
