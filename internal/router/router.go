package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-travel-consultant/docs"

	appMiddleware "github.com/FACorreiaa/go-travel-consultant/app/middleware"
	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/chat"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/images"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/itinerary"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/travel"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/weather"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler   *itinerary.Handler
	ChatHandler        *chat.Handler
	AttractionsHandler *attractions.Handler
	ImagesHandler      *images.Handler
	WeatherHandler     *weather.Handler
	TravelHandler      *travel.Handler
	RateLimiter        *appMiddleware.RateLimiter
	MetricsHandler     http.Handler
	AllowedOrigins     []string
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (like logger, requestID, recoverer) are expected
// to be applied *before* mounting this router in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Retry-After"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any major browsers
	}))

	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", Health)

		r.Get("/attractions/{location}", cfg.AttractionsHandler.GetAttractions)
		r.Get("/images/{query}", cfg.ImagesHandler.SearchImages)
		r.Get("/weather/{location}", cfg.WeatherHandler.GetWeather)
		r.Get("/flights", cfg.TravelHandler.GetFlights)
		r.Get("/hotels", cfg.TravelHandler.GetHotels)

		// Generation calls are billed per request upstream.
		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Limit)
			}
			r.Post("/chat", cfg.ChatHandler.Chat)
			r.Post("/generate-itinerary", cfg.ItineraryHandler.GenerateItinerary)
		})
	})

	return r
}

// Health godoc
// @Summary      Liveness probe
// @Tags         Health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Router       /api/health [get]
func Health(w http.ResponseWriter, r *http.Request) {
	api.WriteJSONResponse(w, r, http.StatusOK, types.HealthResponse{
		Status:  "OK",
		Message: "Travel Consultant API is running",
	})
}
