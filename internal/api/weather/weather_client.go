package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	providerName = "weatherapi"

	// DefaultMaxForecastDays is the forecast horizon of the free WeatherAPI plan.
	DefaultMaxForecastDays = 10
)

var _ Client = (*WeatherAPIClient)(nil)

type Client interface {
	// Forecast returns at most days daily forecasts, capped at MaxDays.
	Forecast(ctx context.Context, query string, days int) (*types.WeatherForecast, error)
	MaxDays() int
}

type WeatherAPIClient struct {
	baseURL    string
	apiKey     string
	maxDays    int
	httpClient *http.Client
	logger     *slog.Logger
}

func NewWeatherAPIClient(baseURL, apiKey string, maxDays int, httpClient *http.Client, logger *slog.Logger) *WeatherAPIClient {
	if maxDays <= 0 {
		maxDays = DefaultMaxForecastDays
	}
	return &WeatherAPIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		maxDays:    maxDays,
		httpClient: httpClient,
		logger:     logger,
	}
}

// CoordinatesQuery formats a lat/lon pair the way WeatherAPI expects in q.
func CoordinatesQuery(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

type forecastResponse struct {
	Location struct {
		Name    string `json:"name"`
		Region  string `json:"region"`
		Country string `json:"country"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64 `json:"maxtemp_c"`
				MinTempC          float64 `json:"mintemp_c"`
				DailyChanceOfRain float64 `json:"daily_chance_of_rain"`
				Condition         struct {
					Text string `json:"text"`
					Icon string `json:"icon"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

func (c *WeatherAPIClient) MaxDays() int { return c.maxDays }

func (c *WeatherAPIClient) Forecast(ctx context.Context, query string, days int) (*types.WeatherForecast, error) {
	days = c.clampDays(days)
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", query)
	params.Set("days", strconv.Itoa(days))
	params.Set("aqi", "no")
	params.Set("alerts", "no")

	var resp forecastResponse
	if err := api.FetchJSON(ctx, c.httpClient, providerName, c.baseURL+"/v1/forecast.json?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	forecast := &types.WeatherForecast{
		Location: resp.Location.Name,
		Region:   resp.Location.Region,
		Country:  resp.Location.Country,
		Forecast: make([]types.WeatherDay, 0, len(resp.Forecast.ForecastDay)),
	}
	for _, fd := range resp.Forecast.ForecastDay {
		if len(forecast.Forecast) == days {
			break
		}
		forecast.Forecast = append(forecast.Forecast, types.WeatherDay{
			Date:          fd.Date,
			Condition:     fd.Day.Condition.Text,
			ConditionIcon: fd.Day.Condition.Icon,
			MaxTempC:      fd.Day.MaxTempC,
			MinTempC:      fd.Day.MinTempC,
			ChanceOfRain:  int(math.Round(fd.Day.DailyChanceOfRain)),
		})
	}
	c.logger.DebugContext(ctx, "Weather forecast fetched", slog.String("query", query), slog.Int("days", len(forecast.Forecast)))
	return forecast, nil
}

func (c *WeatherAPIClient) clampDays(days int) int {
	if days < 1 {
		return 1
	}
	if days > c.maxDays {
		return c.maxDays
	}
	return days
}
