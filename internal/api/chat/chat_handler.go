package chat

import (
	"errors"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
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

// Chat godoc
// @Summary      Ask the travel assistant
// @Description  Sends a message, with optional prior conversation, to the travel consultant assistant.
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request body types.ChatRequest true "Message and conversation"
// @Success      200 {object} types.ChatResponse
// @Failure      400 {object} types.ErrorResponse
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/chat [post]
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ChatHandler").Start(r.Context(), "Chat", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/chat"),
	))
	defer span.End()

	var req types.ChatRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponseWithDetails(w, r, http.StatusBadRequest, "Invalid request body", err, h.exposeDetails)
		return
	}

	reply, err := h.service.Reply(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reply failed")
		if errors.Is(err, ErrEmptyMessage) {
			api.ErrorResponse(w, r, http.StatusBadRequest, "Message is required")
			return
		}
		h.logger.ErrorContext(ctx, "OpenRouter API error", slog.Any("error", err))
		api.ErrorResponseWithDetails(w, r, http.StatusInternalServerError, "Failed to get AI response", err, h.exposeDetails)
		return
	}

	span.SetStatus(codes.Ok, "")
	api.WriteJSONResponse(w, r, http.StatusOK, types.ChatResponse{Success: true, Message: reply})
}
