package attractions

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
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

// GetAttractions godoc
// @Summary      Search attractions
// @Description  Searches tourist attractions, museums, monuments and restaurants for a location.
// @Tags         Attractions
// @Produce      json
// @Param        location path string true "Free-text location"
// @Param        limit query int false "Maximum results (default 10)"
// @Success      200 {object} types.AttractionsResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/attractions/{location} [get]
func (h *Handler) GetAttractions(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AttractionsHandler").Start(r.Context(), "GetAttractions", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/attractions/{location}"),
	))
	defer span.End()

	location := chi.URLParam(r, "location")
	if location == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Location is required")
		return
	}
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'limit' must be an integer")
			return
		}
		limit = clampLimit(parsed)
	}
	span.SetAttributes(attribute.String("app.location", location), attribute.Int("app.limit", limit))
	l := h.logger.With(slog.String("handler", "GetAttractions"), slog.String("location", location))

	attractions, err := h.client.SearchAttractions(ctx, location, nil, limit)
	if err != nil {
		l.ErrorContext(ctx, "TomTom API error", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider error")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to fetch attractions", err, h.exposeDetails)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.AttractionsResponse{Success: true, Attractions: attractions})
}
