package weather

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

type Handler struct {
	client        Client
	logger        *slog.Logger
	exposeDetails bool
}

func NewHandler(client Client, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{client: client, logger: logger, exposeDetails: exposeDetails}
}

// GetWeather godoc
// @Summary      Weather forecast
// @Description  Daily forecast for a location, capped at the provider horizon.
// @Tags         Weather
// @Produce      json
// @Param        location path string true "Free-text location or lat,lon"
// @Param        days query int false "Forecast days (default 7)"
// @Success      200 {object} types.WeatherResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/weather/{location} [get]
func (h *Handler) GetWeather(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("WeatherHandler").Start(r.Context(), "GetWeather", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/weather/{location}"),
	))
	defer span.End()

	location := chi.URLParam(r, "location")
	if location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Location is required")
		return
	}
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'days' must be an integer")
			return
		}
		days = parsed
	}

	forecast, err := h.client.Forecast(ctx, location, days)
	if err != nil {
		h.logger.ErrorContext(ctx, "WeatherAPI error", slog.String("location", location), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider error")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to fetch weather data", err, h.exposeDetails)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.WeatherResponse{Success: true, Weather: *forecast})
}
