package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrProviderStatus marks a non-2xx answer from an upstream provider.
var ErrProviderStatus = errors.New("unexpected provider status")

// ProviderError is the failure every provider client returns. A timeout is a
// ProviderError like any other.
type ProviderError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NewProviderHTTPClient returns a pooled client with a hard upper bound per call.
func NewProviderHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConns:        50,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}

// FetchJSON issues a GET against rawURL and decodes a 2xx JSON body into dst.
func FetchJSON(ctx context.Context, client *http.Client, provider, rawURL string, dst interface{}) error {
	ctx, span := otel.Tracer("ProviderClient").Start(ctx, provider, trace.WithAttributes(
		attribute.String("provider.name", provider),
	))
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return &ProviderError{Provider: provider, Err: fmt.Errorf("failed to build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return &ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()
	span.SetAttributes(attribute.Int("http.response.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		span.SetStatus(codes.Error, "unexpected status")
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Body: string(body), Err: ErrProviderStatus}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "decode failed")
		return &ProviderError{Provider: provider, StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	span.SetStatus(codes.Ok, "")
	return nil
}
