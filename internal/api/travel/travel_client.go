package travel

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	providerFlights = "travelpayouts_flights"
	providerHotels  = "travelpayouts_hotels"

	DefaultCurrency = "USD"
	hotelLimit      = "10"
)

var _ Client = (*TravelpayoutsClient)(nil)

// Client looks up partner prices. Payloads are passed through unchanged; the
// partner owns the prices and booking deep links.
type Client interface {
	Flights(ctx context.Context, q types.FlightQuery) (json.RawMessage, error)
	Hotels(ctx context.Context, q types.HotelQuery) (json.RawMessage, error)
}

type TravelpayoutsClient struct {
	flightsURL string
	hotelsURL  string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTravelpayoutsClient(flightsURL, hotelsURL, token string, httpClient *http.Client, logger *slog.Logger) *TravelpayoutsClient {
	return &TravelpayoutsClient{
		flightsURL: strings.TrimRight(flightsURL, "/"),
		hotelsURL:  strings.TrimRight(hotelsURL, "/"),
		token:      token,
		httpClient: httpClient,
		logger:     logger,
	}
}

func (c *TravelpayoutsClient) Flights(ctx context.Context, q types.FlightQuery) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("origin", q.Origin)
	params.Set("destination", q.Destination)
	params.Set("departure_date", q.DepartureDate)
	if q.ReturnDate != "" {
		params.Set("return_date", q.ReturnDate)
	}
	params.Set("currency", currencyOrDefault(q.Currency))
	params.Set("token", c.token)

	var raw json.RawMessage
	if err := api.FetchJSON(ctx, c.httpClient, providerFlights, c.flightsURL+"/aviasales/v3/prices_for_dates?"+params.Encode(), &raw); err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "Flight prices fetched", slog.String("origin", q.Origin), slog.String("destination", q.Destination))
	return raw, nil
}

func (c *TravelpayoutsClient) Hotels(ctx context.Context, q types.HotelQuery) (json.RawMessage, error) {
	params := url.Values{}
	params.Set("location", q.Location)
	params.Set("currency", currencyOrDefault(q.Currency))
	params.Set("checkIn", q.CheckIn)
	params.Set("checkOut", q.CheckOut)
	params.Set("limit", hotelLimit)
	params.Set("token", c.token)

	var raw json.RawMessage
	if err := api.FetchJSON(ctx, c.httpClient, providerHotels, c.hotelsURL+"/api/v2/cache.json?"+params.Encode(), &raw); err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "Hotel prices fetched", slog.String("location", q.Location))
	return raw, nil
}

func currencyOrDefault(currency string) string {
	if currency = strings.TrimSpace(currency); currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(currency)
}
