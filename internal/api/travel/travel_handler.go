package travel

import (
	"log/slog"
	"net/http"
	"strings"

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

// GetFlights godoc
// @Summary      Search flight prices
// @Description  Returns partner flight prices for the given route and dates. Booking happens on the partner site.
// @Tags         Travel
// @Produce      json
// @Param        origin query string true "Origin IATA code"
// @Param        destination query string true "Destination IATA code"
// @Param        departure_date query string true "Departure date (YYYY-MM or YYYY-MM-DD)"
// @Param        return_date query string false "Return date"
// @Param        currency query string false "Currency (default USD)"
// @Success      200 {object} types.FlightsResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/flights [get]
func (h *Handler) GetFlights(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GetFlights", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/flights"),
	))
	defer span.End()

	qs := r.URL.Query()
	q := types.FlightQuery{
		Origin:        strings.TrimSpace(qs.Get("origin")),
		Destination:   strings.TrimSpace(qs.Get("destination")),
		DepartureDate: strings.TrimSpace(qs.Get("departure_date")),
		ReturnDate:    strings.TrimSpace(qs.Get("return_date")),
		Currency:      currencyOrDefault(qs.Get("currency")),
	}
	if q.Origin == "" || q.Destination == "" || q.DepartureDate == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required parameters: origin, destination, departure_date")
		return
	}

	flights, err := h.client.Flights(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "Travelpayouts API error", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider error")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to fetch flight data", err, h.exposeDetails)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.FlightsResponse{Success: true, Flights: flights})
}

// GetHotels godoc
// @Summary      Search hotel prices
// @Description  Returns cached partner hotel prices for a location and stay.
// @Tags         Travel
// @Produce      json
// @Param        location query string true "City or location"
// @Param        check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param        check_out query string true "Check-out date (YYYY-MM-DD)"
// @Param        currency query string false "Currency (default USD)"
// @Success      200 {object} types.HotelsResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/hotels [get]
func (h *Handler) GetHotels(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TravelHandler").Start(r.Context(), "GetHotels", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/hotels"),
	))
	defer span.End()

	qs := r.URL.Query()
	q := types.HotelQuery{
		Location: strings.TrimSpace(qs.Get("location")),
		CheckIn:  strings.TrimSpace(qs.Get("check_in")),
		CheckOut: strings.TrimSpace(qs.Get("check_out")),
		Currency: currencyOrDefault(qs.Get("currency")),
	}
	if q.Location == "" || q.CheckIn == "" || q.CheckOut == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Missing required parameters: location, check_in, check_out")
		return
	}

	hotels, err := h.client.Hotels(ctx, q)
	if err != nil {
		h.logger.ErrorContext(ctx, "Travelpayouts Hotels API error", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider error")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to fetch hotel data", err, h.exposeDetails)
		return
	}
	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.HotelsResponse{Success: true, Hotels: hotels})
}
