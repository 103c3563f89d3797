package metrics

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryRequestsTotal   metric.Int64Counter
	ItineraryDurationSeconds metric.Float64Histogram
	ProviderFailuresTotal    metric.Int64Counter
	ItineraryFallbackTotal   metric.Int64Counter
	LLMDurationSeconds       metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := New(otel.GetMeterProvider().Meter("TravelConsultant"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the global AppMetrics, initializing it against the global
// MeterProvider on first use.
func Get() *AppMetrics {
	if appMetrics == nil {
		InitAppMetrics()
	}
	return appMetrics
}

// New creates the instruments on meter.
func New(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ItineraryRequestsTotal, err = meter.Int64Counter(
		"itinerary_requests_total",
		metric.WithDescription("Total number of itinerary generation requests by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	m.ItineraryDurationSeconds, err = meter.Float64Histogram(
		"itinerary_duration_seconds",
		metric.WithDescription("End to end duration of itinerary generation in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	m.ProviderFailuresTotal, err = meter.Int64Counter(
		"provider_failures_total",
		metric.WithDescription("Provider calls absorbed as empty results"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	m.ItineraryFallbackTotal, err = meter.Int64Counter(
		"itinerary_fallback_total",
		metric.WithDescription("Itineraries built wholly or partly by the fallback synthesizer"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, err
	}

	m.LLMDurationSeconds, err = meter.Float64Histogram(
		"llm_duration_seconds",
		metric.WithDescription("Duration of text generation calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (m *AppMetrics) RecordItinerary(ctx context.Context, outcome string, elapsed time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.ItineraryRequestsTotal.Add(ctx, 1, attrs)
	m.ItineraryDurationSeconds.Record(ctx, elapsed.Seconds(), attrs)
}

func (m *AppMetrics) RecordProviderFailure(ctx context.Context, provider string) {
	m.ProviderFailuresTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("provider", provider)))
}

func (m *AppMetrics) RecordFallback(ctx context.Context, reason string) {
	m.ItineraryFallbackTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (m *AppMetrics) RecordLLM(ctx context.Context, model string, elapsed time.Duration, err error) {
	m.LLMDurationSeconds.Record(ctx, elapsed.Seconds(), metric.WithAttributes(
		attribute.String("model", model),
		attribute.Bool("error", err != nil),
	))
}
