package types

import "encoding/json"

type FlightQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departure_date"`
	ReturnDate    string `json:"return_date,omitempty"`
	Currency      string `json:"currency"`
}

type HotelQuery struct {
	Location string `json:"location"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
	Currency string `json:"currency"`
}

// FlightsResponse passes the partner payload through untouched; prices and
// deep links stay owned by the partner.
type FlightsResponse struct {
	Success bool            `json:"success"`
	Flights json.RawMessage `json:"flights"`
}

type HotelsResponse struct {
	Success bool            `json:"success"`
	Hotels  json.RawMessage `json:"hotels"`
}
