package generativeAI

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/FACorreiaa/go-travel-consultant/config"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"

	defaultTimeout   = 15 * time.Second
	defaultMaxTokens = 2000
)

var (
	ErrEmptyResponse  = errors.New("empty completion from model")
	ErrMissingAPIKey  = errors.New("llm api key is not configured")
	ErrUnknownBackend = errors.New("unknown llm provider")
)

// GenerateOptions bounds a single completion.
type GenerateOptions struct {
	MaxTokens   int
	Temperature float32
	// JSON asks the backend for a JSON-only response where it supports it.
	JSON bool
}

// TextGenerator turns role-tagged messages into a free-text completion.
type TextGenerator interface {
	Generate(ctx context.Context, messages []types.ChatMessage, opts GenerateOptions) (string, error)
	Model() string
}

// NewTextGenerator builds the generator selected by cfg.LLM.Provider.
func NewTextGenerator(ctx context.Context, cfg *config.Config, logger *slog.Logger) (TextGenerator, error) {
	timeout := cfg.LLM.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	// the context deadline is the real bound; the client timeout only backs it up
	httpClient := &http.Client{Timeout: timeout + 2*time.Second}

	switch strings.ToLower(cfg.LLM.Provider) {
	case "", ProviderOpenRouter:
		return NewOpenRouterClient(cfg.LLM.OpenRouter.BaseURL, cfg.LLM.OpenRouter.APIKey, cfg.LLM.OpenRouter.Model, timeout, httpClient, logger)
	case ProviderGemini:
		return NewGeminiClient(ctx, cfg.LLM.Gemini.APIKey, cfg.LLM.Gemini.Model, timeout, httpClient, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.LLM.Provider)
	}
}

func normalizeOptions(opts GenerateOptions) GenerateOptions {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = defaultMaxTokens
	}
	return opts
}

var _ TextGenerator = (*UnavailableGenerator)(nil)

// UnavailableGenerator fails every call with Err. It stands in when no backend
// is configured, so itineraries still come back from the fallback path.
type UnavailableGenerator struct {
	Err error
}

func (u *UnavailableGenerator) Generate(context.Context, []types.ChatMessage, GenerateOptions) (string, error) {
	return "", u.Err
}

func (u *UnavailableGenerator) Model() string { return "unavailable" }
