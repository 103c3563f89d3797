package itinerary

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

func testMetrics(t *testing.T) *metrics.AppMetrics {
	t.Helper()
	m, err := metrics.New(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)
	return m
}

type MockAttractions struct {
	mock.Mock
}

func (m *MockAttractions) Geocode(ctx context.Context, query string) (*types.GeoLocation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeoLocation), args.Error(1)
}

func (m *MockAttractions) SearchAttractions(ctx context.Context, query string, near *types.Coordinates, limit int) ([]types.Attraction, error) {
	args := m.Called(ctx, query, near, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

type MockWeather struct {
	mock.Mock
}

func (m *MockWeather) Forecast(ctx context.Context, query string, days int) (*types.WeatherForecast, error) {
	args := m.Called(ctx, query, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.WeatherForecast), args.Error(1)
}

func (m *MockWeather) MaxDays() int { return 10 }

type MockImages struct {
	mock.Mock
}

func (m *MockImages) SearchPhotos(ctx context.Context, query string, perPage int) ([]types.PhotoAsset, error) {
	args := m.Called(ctx, query, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.PhotoAsset), args.Error(1)
}

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, messages []types.ChatMessage, opts generativeAI.GenerateOptions) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

func (m *MockGenerator) Model() string { return "test-model" }

var parisAttractions = []types.Attraction{
	{ID: "1", Name: "Louvre Museum", Category: "museum", Position: &types.Coordinates{Lat: 48.8606, Lon: 2.3376}},
	{ID: "2", Name: "Eiffel Tower", Category: "monument", Position: &types.Coordinates{Lat: 48.8584, Lon: 2.2945}},
	{ID: "3", Name: "Musée d'Orsay", Category: "museum", Position: &types.Coordinates{Lat: 48.86, Lon: 2.3266}},
}

var parisPhotos = []types.PhotoAsset{
	{ID: 11, URL: "https://cdn.example.com/eiffel.jpg", Preview: "https://cdn.example.com/eiffel_s.jpg", Tags: "eiffel tower, paris, france", User: "ana"},
	{ID: 12, URL: "https://cdn.example.com/louvre.jpg", Preview: "https://cdn.example.com/louvre_s.jpg", Tags: "louvre, museum, pyramid", User: "rui"},
}

// modelResponse renders a model answer with days*perDay activities.
func modelResponse(t *testing.T, destination string, days, perDay int) string {
	t.Helper()
	type act struct {
		Time        string `json:"time"`
		Activity    string `json:"activity"`
		Location    string `json:"location"`
		Duration    string `json:"duration"`
		ImageSearch string `json:"image_search"`
	}
	type day struct {
		Day        int    `json:"day"`
		Date       string `json:"date"`
		Title      string `json:"title"`
		Activities []act  `json:"activities"`
	}
	out := struct {
		Destination string `json:"destination"`
		Days        []day  `json:"days"`
	}{Destination: destination}
	for d := 1; d <= days; d++ {
		dp := day{Day: d, Date: "1999-01-01", Title: fmt.Sprintf("Theme %d", d)}
		for a := 0; a < perDay; a++ {
			dp.Activities = append(dp.Activities, act{
				Time:        fmt.Sprintf("%02d:00", 9+2*a),
				Activity:    fmt.Sprintf("Stop %d of day %d", a+1, d),
				Location:    fmt.Sprintf("Place %d-%d", d, a+1),
				Duration:    "1 hour",
				ImageSearch: "street",
			})
		}
		out.Days = append(out.Days, dp)
	}
	b, err := json.Marshal(out)
	require.NoError(t, err)
	return string(b)
}
