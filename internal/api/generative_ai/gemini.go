package generativeAI

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/genai"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

var _ TextGenerator = (*GeminiClient)(nil)

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
	logger  *slog.Logger
}

func NewGeminiClient(ctx context.Context, apiKey, model string, timeout time.Duration, httpClient *http.Client, logger *slog.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: failed to create client: %w", err)
	}
	if model == "" {
		model = defaultGeminiModel
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &GeminiClient{client: client, model: model, timeout: timeout, logger: logger}, nil
}

func (g *GeminiClient) Model() string { return g.model }

func (g *GeminiClient) Generate(ctx context.Context, messages []types.ChatMessage, opts GenerateOptions) (string, error) {
	ctx, span := otel.Tracer("GenerativeAI").Start(ctx, "Gemini.Generate", trace.WithAttributes(
		attribute.String("llm.model", g.model),
		attribute.Int("llm.messages", len(messages)),
	))
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	opts = normalizeOptions(opts)
	system, contents := toGeminiContents(messages)
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](opts.Temperature),
		MaxOutputTokens: int32(opts.MaxTokens),
	}
	if system != "" {
		cfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	if opts.JSON {
		cfg.ResponseMIMEType = "application/json"
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, contents, cfg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return "", fmt.Errorf("gemini: %w", err)
	}
	txt := result.Text()
	if strings.TrimSpace(txt) == "" {
		span.SetStatus(codes.Error, "empty completion")
		return "", fmt.Errorf("gemini: %w", ErrEmptyResponse)
	}
	span.SetAttributes(attribute.Int("llm.response.length", len(txt)))
	span.SetStatus(codes.Ok, "")
	return txt, nil
}

// toGeminiContents folds system messages into one system instruction and maps
// the rest onto user/model turns.
func toGeminiContents(messages []types.ChatMessage) (string, []*genai.Content) {
	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case types.ChatRoleSystem:
			system = append(system, m.Content)
		case types.ChatRoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return strings.Join(system, "\n\n"), contents
}
