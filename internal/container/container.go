package container

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	appMiddleware "github.com/FACorreiaa/go-travel-consultant/app/middleware"
	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-consultant/config"
	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/chat"
	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/images"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/itinerary"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/travel"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/weather"
	"github.com/FACorreiaa/go-travel-consultant/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config             *config.Config
	Logger             *slog.Logger
	Generator          generativeAI.TextGenerator
	RateLimiter        *appMiddleware.RateLimiter
	ItineraryHandler   *itinerary.Handler
	ChatHandler        *chat.Handler
	AttractionsHandler *attractions.Handler
	ImagesHandler      *images.Handler
	WeatherHandler     *weather.Handler
	TravelHandler      *travel.Handler
}

// NewContainer initializes and returns a new dependency container.
// A missing LLM key does not stop the service: itinerary requests are then
// served by the fallback synthesizer and chat answers with an error.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, m *metrics.AppMetrics) (*Container, error) {
	p := cfg.Providers
	exposeDetails := !cfg.IsProduction()

	poi := attractions.NewTomTomClient(p.TomTom.BaseURL, p.TomTom.APIKey,
		api.NewProviderHTTPClient(p.TomTom.Timeout), logger)
	forecast := weather.NewWeatherAPIClient(p.Weather.BaseURL, p.Weather.APIKey, p.Weather.MaxForecastDays,
		api.NewProviderHTTPClient(p.Weather.Timeout), logger)
	photos := images.NewPixabayClient(p.Pixabay.BaseURL, p.Pixabay.APIKey,
		api.NewProviderHTTPClient(p.Pixabay.Timeout), logger)
	prices := travel.NewCachedClient(
		travel.NewTravelpayoutsClient(p.Travelpayouts.FlightsURL, p.Travelpayouts.HotelsURL, p.Travelpayouts.APIKey,
			api.NewProviderHTTPClient(p.Travelpayouts.Timeout), logger),
		cfg.Cache.TTL, cfg.Cache.Cleanup, logger)

	generator, err := generativeAI.NewTextGenerator(ctx, cfg, logger)
	if err != nil && !errors.Is(err, generativeAI.ErrMissingAPIKey) {
		return nil, fmt.Errorf("failed to initialize text generator: %w", err)
	}
	if err != nil {
		logger.Warn("Text generation unavailable, itineraries will use the fallback template",
			slog.String("provider", cfg.LLM.Provider), slog.Any("error", err))
		generator = &generativeAI.UnavailableGenerator{Err: err}
	}
	genOpts := generativeAI.GenerateOptions{
		MaxTokens:   cfg.LLM.MaxTokens,
		Temperature: cfg.LLM.Temperature,
	}

	opts := itinerary.OptionsFromConfig(cfg)
	itineraryService := itinerary.NewServiceImpl(
		poi,
		itinerary.NewAggregator(poi, forecast, photos, opts, logger, m),
		itinerary.NewInterpreter(generator, genOpts, logger, m).WithTokenBudget(cfg.LLM.TokensPerDay, cfg.LLM.TokenCeiling),
		opts, logger, m)

	return &Container{
		Config:             cfg,
		Logger:             logger,
		Generator:          generator,
		RateLimiter:        appMiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst),
		ItineraryHandler:   itinerary.NewHandler(itineraryService, logger, exposeDetails),
		ChatHandler:        chat.NewHandler(chat.NewServiceImpl(generator, genOpts, logger), logger, exposeDetails),
		AttractionsHandler: attractions.NewHandler(poi, logger, exposeDetails),
		ImagesHandler:      images.NewHandler(photos, logger, exposeDetails),
		WeatherHandler:     weather.NewHandler(forecast, logger, exposeDetails),
		TravelHandler:      travel.NewHandler(prices, logger, exposeDetails),
	}, nil
}

// RouterConfig hands the wired handlers to the router.
func (c *Container) RouterConfig(metricsHandler http.Handler) *router.Config {
	return &router.Config{
		ItineraryHandler:   c.ItineraryHandler,
		ChatHandler:        c.ChatHandler,
		AttractionsHandler: c.AttractionsHandler,
		ImagesHandler:      c.ImagesHandler,
		WeatherHandler:     c.WeatherHandler,
		TravelHandler:      c.TravelHandler,
		RateLimiter:        c.RateLimiter,
		MetricsHandler:     metricsHandler,
		AllowedOrigins:     c.Config.CORS.AllowedOrigins,
	}
}

// Close releases all resources held by the container
func (c *Container) Close() {
	if c.RateLimiter != nil {
		c.RateLimiter.Stop()
	}
}
