package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

type Handler struct {
	service       Service
	logger        *slog.Logger
	exposeDetails bool
}

func NewHandler(service Service, logger *slog.Logger, exposeDetails bool) *Handler {
	return &Handler{service: service, logger: logger, exposeDetails: exposeDetails}
}

// GenerateItinerary godoc
// @Summary      Generate a travel itinerary
// @Description  Resolves the destination, gathers attractions, weather and photos, and returns a day-by-day plan. The day count is inclusive of both dates.
// @Tags         Itinerary
// @Accept       json
// @Produce      json
// @Param        request body types.TripRequest true "Trip parameters"
// @Success      200 {object} types.ItineraryResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/generate-itinerary [post]
func (h *Handler) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/generate-itinerary"),
	))
	defer span.End()
	l := h.logger.With(slog.String("handler", "GenerateItinerary"))

	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic: %v", rec)
			l.ErrorContext(ctx, "Itinerary generation panicked", slog.Any("error", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, "panic")
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to generate itinerary", err, h.exposeDetails)
		}
	}()

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, "Invalid request body", err, h.exposeDetails)
		return
	}

	// Provider calls are metered whether or not the client waits, so a
	// disconnect does not cancel them.
	resp, err := h.service.GenerateItinerary(context.WithoutCancel(ctx), req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			api.ErrorResponse(w, r, http.StatusBadRequest, verr.Message)
		case errors.Is(err, attractions.ErrLocationNotFound):
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Location not found")
		case errors.Is(err, ErrGeocodingFailed):
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to resolve destination", err, h.exposeDetails)
		default:
			l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
			api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to generate itinerary", err, h.exposeDetails)
		}
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
