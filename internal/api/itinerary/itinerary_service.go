package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-consultant/config"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

// ErrGeocodingFailed wraps a geocoding provider failure other than an empty result.
var ErrGeocodingFailed = errors.New("failed to resolve destination")

const (
	outcomeSuccess  = "success"
	outcomeInvalid  = "invalid"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// Options are the bounds applied to a single itinerary request.
type Options struct {
	AttractionLimit       int
	PromptAttractionLimit int
	PhotoLimit            int
	DisplayAttractions    int
	DisplayImages         int
	MaxTripDays           int
	AggregatorTimeout     time.Duration
}

func DefaultOptions() Options {
	return Options{
		AttractionLimit:       20,
		PromptAttractionLimit: 15,
		PhotoLimit:            12,
		DisplayAttractions:    10,
		DisplayImages:         9,
		MaxTripDays:           30,
		AggregatorTimeout:     12 * time.Second,
	}
}

// OptionsFromConfig falls back to DefaultOptions for every unset value.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	c := cfg.Itinerary
	if c.AttractionLimit > 0 {
		opts.AttractionLimit = c.AttractionLimit
	}
	if c.PromptAttractionLimit > 0 {
		opts.PromptAttractionLimit = c.PromptAttractionLimit
	}
	if c.PhotoLimit > 0 {
		opts.PhotoLimit = c.PhotoLimit
	}
	if c.DisplayAttractions > 0 {
		opts.DisplayAttractions = c.DisplayAttractions
	}
	if c.DisplayImages > 0 {
		opts.DisplayImages = c.DisplayImages
	}
	if c.MaxTripDays > 0 {
		opts.MaxTripDays = c.MaxTripDays
	}
	if c.AggregatorTimeout > 0 {
		opts.AggregatorTimeout = c.AggregatorTimeout
	}
	return opts
}

var _ Service = (*ServiceImpl)(nil)

// Service generates complete itineraries.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.ItineraryResponse, error)
}

type ServiceImpl struct {
	geocoder    attractions.Client
	aggregator  *Aggregator
	interpreter *Interpreter
	opts        Options
	logger      *slog.Logger
	metrics     *metrics.AppMetrics
	now         func() time.Time
}

func NewServiceImpl(geocoder attractions.Client, aggregator *Aggregator, interpreter *Interpreter, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *ServiceImpl {
	return &ServiceImpl{
		geocoder:    geocoder,
		aggregator:  aggregator,
		interpreter: interpreter,
		opts:        opts,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

// GenerateItinerary returns a *ValidationError for bad input,
// attractions.ErrLocationNotFound or ErrGeocodingFailed when the destination
// cannot be resolved. Every later stage degrades instead of failing.
func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.ItineraryResponse, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("destination", req.Destination),
	))
	defer span.End()
	started := s.now()
	l := s.logger.With(slog.String("method", "GenerateItinerary"), slog.String("destination", req.Destination))

	plan, err := ParseTripRequest(req, s.opts.MaxTripDays)
	if err != nil {
		s.metrics.RecordItinerary(ctx, outcomeInvalid, time.Since(started))
		span.SetStatus(codes.Error, "invalid request")
		return nil, err
	}
	span.SetAttributes(attribute.Int("trip.duration", plan.Duration))

	loc, err := s.geocoder.Geocode(ctx, plan.Destination)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, attractions.ErrLocationNotFound) {
			l.WarnContext(ctx, "Destination not found")
			s.metrics.RecordItinerary(ctx, outcomeNotFound, time.Since(started))
			span.SetStatus(codes.Error, "location not found")
			return nil, err
		}
		l.ErrorContext(ctx, "Geocoding failed", slog.Any("error", err))
		s.metrics.RecordItinerary(ctx, outcomeError, time.Since(started))
		span.SetStatus(codes.Error, "geocoding failed")
		return nil, fmt.Errorf("%w: %w", ErrGeocodingFailed, err)
	}
	l.DebugContext(ctx, "Destination resolved",
		slog.Float64("lat", loc.Latitude),
		slog.Float64("lon", loc.Longitude))

	bundle := s.aggregator.Collect(ctx, loc, plan.Destination, plan.Duration)
	prompt := BuildPrompt(plan, bundle.Attractions, bundle.Weather, s.opts.PromptAttractionLimit)
	interp := s.interpreter.Generate(ctx, plan, prompt, bundle.Attractions)
	interp.Itinerary = Enrich(interp.Itinerary, bundle.Attractions, bundle.Photos)

	resp := Assemble(plan, interp, bundle, s.opts, s.now())
	s.metrics.RecordItinerary(ctx, outcomeSuccess, time.Since(started))
	span.SetAttributes(
		attribute.String("itinerary.source", string(interp.Source)),
		attribute.Int("itinerary.repaired_days", interp.RepairedDays),
	)
	span.SetStatus(codes.Ok, "")
	l.InfoContext(ctx, "Itinerary generated",
		slog.Int("days", len(resp.Itinerary.Days)),
		slog.String("source", string(interp.Source)),
		slog.Int("attractions", len(bundle.Attractions)),
		slog.Int("weather_days", len(bundle.Weather)),
		slog.Int("photos", len(bundle.Photos)))
	return resp, nil
}
