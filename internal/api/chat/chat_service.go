package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	systemPrompt = "You are a helpful travel consultant AI assistant. Provide detailed, accurate travel advice, destination recommendations, and help users plan their trips. Be friendly, informative, and focus on practical travel information."

	// maxHistory caps the conversation turns forwarded to the model.
	maxHistory = 20
)

var ErrEmptyMessage = errors.New("message is required")

var _ Service = (*ServiceImpl)(nil)

type Service interface {
	Reply(ctx context.Context, req types.ChatRequest) (string, error)
}

type ServiceImpl struct {
	generator generativeAI.TextGenerator
	opts      generativeAI.GenerateOptions
	logger    *slog.Logger
}

func NewServiceImpl(generator generativeAI.TextGenerator, opts generativeAI.GenerateOptions, logger *slog.Logger) *ServiceImpl {
	opts.JSON = false
	return &ServiceImpl{generator: generator, opts: opts, logger: logger}
}

func (s *ServiceImpl) Reply(ctx context.Context, req types.ChatRequest) (string, error) {
	ctx, span := otel.Tracer("ChatService").Start(ctx, "Reply", trace.WithAttributes(
		attribute.Int("chat.history", len(req.Conversation)),
	))
	defer span.End()

	message := strings.TrimSpace(req.Message)
	if message == "" {
		span.SetStatus(codes.Error, "empty message")
		return "", ErrEmptyMessage
	}

	reply, err := s.generator.Generate(ctx, buildMessages(req.Conversation, message), s.opts)
	if err != nil {
		s.logger.ErrorContext(ctx, "Chat completion failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		return "", fmt.Errorf("chat reply: %w", err)
	}
	span.SetStatus(codes.Ok, "")
	return reply, nil
}

// buildMessages puts the system prompt first and keeps the latest user and
// assistant turns. Client supplied system messages are dropped.
func buildMessages(history []types.ChatMessage, message string) []types.ChatMessage {
	turns := make([]types.ChatMessage, 0, len(history))
	for _, m := range history {
		if m.Role != types.ChatRoleUser && m.Role != types.ChatRoleAssistant {
			continue
		}
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		turns = append(turns, m)
	}
	if len(turns) > maxHistory {
		turns = turns[len(turns)-maxHistory:]
	}

	out := make([]types.ChatMessage, 0, len(turns)+2)
	out = append(out, types.ChatMessage{Role: types.ChatRoleSystem, Content: systemPrompt})
	out = append(out, turns...)
	return append(out, types.ChatMessage{Role: types.ChatRoleUser, Content: message})
}
