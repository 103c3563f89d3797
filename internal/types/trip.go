package types

import (
	"time"

	"github.com/google/uuid"
)

// TripRequest is the JSON body accepted by the itinerary generation endpoint.
type TripRequest struct {
	Destination string `json:"destination" example:"Paris, France"`
	StartDate   string `json:"startDate" example:"2024-06-01"`
	EndDate     string `json:"endDate" example:"2024-06-03"`
	Preferences string `json:"preferences,omitempty" example:"museums and food"`
	Duration    *int   `json:"duration,omitempty" example:"3"` // Optional override of the date-derived day count.
}

// TripPlan is a validated TripRequest.
type TripPlan struct {
	Destination string
	StartDate   time.Time
	EndDate     time.Time
	Duration    int
	Preferences string
}

// Activity is a single slot of a DayPlan. MapLink and Image are only ever
// populated by the enrichment pass.
type Activity struct {
	Time        string `json:"time"`
	Activity    string `json:"activity"`
	Location    string `json:"location"`
	Duration    string `json:"duration,omitempty"`
	ImageSearch string `json:"image_search,omitempty"`
	MapLink     string `json:"map_link,omitempty"`
	Image       string `json:"image,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date"`
	Title      string     `json:"title"`
	Activities []Activity `json:"activities"`
}

type Itinerary struct {
	Destination string    `json:"destination"`
	Days        []DayPlan `json:"days"`
}

// ItinerarySource tells the client which stage produced the plan.
type ItinerarySource string

const (
	ItinerarySourceAI         ItinerarySource = "ai"
	ItinerarySourceAIRepaired ItinerarySource = "ai_repaired"
	ItinerarySourceFallback   ItinerarySource = "fallback"
)

type ItineraryMetadata struct {
	ItineraryID  uuid.UUID       `json:"itinerary_id"`
	Destination  string          `json:"destination"`
	Duration     int             `json:"duration"`
	StartDate    string          `json:"start_date"`
	EndDate      string          `json:"end_date"`
	GeneratedAt  time.Time       `json:"generated_at"`
	Source       ItinerarySource `json:"source"`
	RepairedDays int             `json:"repaired_days"`
}

// ItineraryResponse is the success envelope of POST /api/generate-itinerary.
type ItineraryResponse struct {
	Success     bool              `json:"success"`
	Itinerary   Itinerary         `json:"itinerary"`
	Attractions []Attraction      `json:"attractions"`
	Images      []PhotoAsset      `json:"images"`
	Weather     []WeatherDay      `json:"weather"`
	Metadata    ItineraryMetadata `json:"metadata"`
}
