package images

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

// SearchImages godoc
// @Summary      Search travel photos
// @Tags         Images
// @Produce      json
// @Param        query path string true "Search query"
// @Param        per_page query int false "Results per page (default 9)"
// @Success      200 {object} types.ImagesResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/images/{query} [get]
func (h *Handler) SearchImages(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ImagesHandler").Start(r.Context(), "SearchImages", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/images/{query}"),
	))
	defer span.End()

	query := chi.URLParam(r, "query")
	if query == "" {
		api.ErrorResponse(w, r, http.StatusBadRequest, "Query is required")
		return
	}
	perPage := 9
	if raw := r.URL.Query().Get("per_page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Query parameter 'per_page' must be an integer")
			return
		}
		perPage = parsed
	}

	photos, err := h.client.SearchPhotos(ctx, query, perPage)
	if err != nil {
		h.logger.ErrorContext(ctx, "Pixabay API error", slog.String("query", query), slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "provider error")
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to fetch images", err, h.exposeDetails)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ImagesResponse{Success: true, Images: photos})
}
