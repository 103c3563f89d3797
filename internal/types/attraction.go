package types

// Coordinates is a WGS84 lat/lon pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeoLocation is a destination resolved by the geocoding provider.
type GeoLocation struct {
	Name        string  `json:"name"`
	Country     string  `json:"country,omitempty"`
	CountryCode string  `json:"country_code,omitempty"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type Attraction struct {
	ID       string       `json:"id"`
	Name     string       `json:"name"`
	Category string       `json:"category"`
	Position *Coordinates `json:"position,omitempty"` // nil when the provider returned no coordinates
	Address  string       `json:"address,omitempty"`
	Phone    string       `json:"phone,omitempty"`
	URL      string       `json:"url,omitempty"`
}

// AttractionsResponse is returned by GET /api/attractions/{location}.
type AttractionsResponse struct {
	Success     bool         `json:"success"`
	Attractions []Attraction `json:"attractions"`
}
