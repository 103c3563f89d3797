package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

var _ TextGenerator = (*OpenRouterClient)(nil)

// OpenRouterClient talks to OpenRouter's OpenAI compatible chat completions API.
type OpenRouterClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewOpenRouterClient(baseURL, apiKey, model string, timeout time.Duration, httpClient *http.Client, logger *slog.Logger) (*OpenRouterClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openrouter: %w", ErrMissingAPIKey)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &OpenRouterClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		timeout: timeout,
		logger:  logger,
	}, nil
}

func (c *OpenRouterClient) Model() string { return c.model }

func (c *OpenRouterClient) Generate(ctx context.Context, messages []types.ChatMessage, opts GenerateOptions) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "OpenRouter.Generate", trace.WithAttributes(
		attribute.String("llm.model", c.model),
		attribute.Int("llm.messages", len(messages)),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	opts = normalizeOptions(opts)
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    make([]openai.ChatCompletionMessage, 0, len(messages)),
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	}
	if opts.JSON {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject}
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{Role: openAIRole(m.Role), Content: m.Content})
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", fmt.Errorf("openrouter: status %d: %w", apiErr.HTTPStatusCode, err)
		}
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", fmt.Errorf("openrouter: %w", ErrEmptyResponse)
	}

	content := resp.Choices[0].Message.Content
	span.SetAttributes(
		attribute.Int("llm.response.length", len(content)),
		attribute.Int("llm.usage.total_tokens", resp.Usage.TotalTokens),
	)
	span.SetStatus(codes.Ok, "")
	c.logger.DebugContext(ctx, "OpenRouter completion received",
		slog.String("model", c.model),
		slog.Duration("latency", time.Since(start)),
		slog.Int("total_tokens", resp.Usage.TotalTokens))
	return content, nil
}

func openAIRole(role types.ChatRole) string {
	switch role {
	case types.ChatRoleSystem:
		return openai.ChatMessageRoleSystem
	case types.ChatRoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}
