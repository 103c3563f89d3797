package itinerary

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/images"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/weather"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	providerPOI     = "poi"
	providerWeather = "weather"
	providerPhotos  = "photos"
)

// Bundle is the composite data gathered for one trip. Every list is non-nil;
// a failed provider leaves its list empty.
type Bundle struct {
	Attractions []types.Attraction
	Weather     []types.WeatherDay
	Photos      []types.PhotoAsset
}

// Aggregator queries the POI, weather and photo providers concurrently and
// waits for all of them, whatever their outcome.
type Aggregator struct {
	attractions     attractions.Client
	weather         weather.Client
	images          images.Client
	attractionLimit int
	photoLimit      int
	timeout         time.Duration
	logger          *slog.Logger
	metrics         *metrics.AppMetrics
}

func NewAggregator(poi attractions.Client, forecast weather.Client, photos images.Client, opts Options, logger *slog.Logger, m *metrics.AppMetrics) *Aggregator {
	return &Aggregator{
		attractions:     poi,
		weather:         forecast,
		images:          photos,
		attractionLimit: opts.AttractionLimit,
		photoLimit:      opts.PhotoLimit,
		timeout:         opts.AggregatorTimeout,
		logger:          logger,
		metrics:         m,
	}
}

// Collect never returns an error: provider failures, timeouts and panics are
// logged and turned into empty lists.
func (a *Aggregator) Collect(ctx context.Context, loc *types.GeoLocation, destination string, days int) Bundle {
	ctx, span := otel.Tracer("ItineraryAggregator").Start(ctx, "Collect", trace.WithAttributes(
		attribute.String("destination", destination),
		attribute.Int("trip.days", days),
	))
	defer span.End()

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	near := &types.Coordinates{Lat: loc.Latitude, Lon: loc.Longitude}
	bundle := Bundle{
		Attractions: []types.Attraction{},
		Weather:     []types.WeatherDay{},
		Photos:      []types.PhotoAsset{},
	}

	// Each goroutine owns one field. A zero Group has no shared context, so a
	// failing provider never cancels its siblings and Wait joins all of them.
	var g errgroup.Group
	g.Go(func() error {
		return a.absorb(ctx, providerPOI, func() error {
			found, err := a.attractions.SearchAttractions(ctx, destination, near, a.attractionLimit)
			if err != nil {
				return err
			}
			if len(found) > a.attractionLimit && a.attractionLimit > 0 {
				found = found[:a.attractionLimit]
			}
			if found != nil {
				bundle.Attractions = found
			}
			return nil
		})
	})
	g.Go(func() error {
		return a.absorb(ctx, providerWeather, func() error {
			forecast, err := a.weather.Forecast(ctx, weather.CoordinatesQuery(loc.Latitude, loc.Longitude), forecastDays(days, a.weather.MaxDays()))
			if err != nil {
				return err
			}
			if forecast != nil && forecast.Forecast != nil {
				bundle.Weather = forecast.Forecast
			}
			return nil
		})
	})
	g.Go(func() error {
		return a.absorb(ctx, providerPhotos, func() error {
			found, err := a.images.SearchPhotos(ctx, destination+" travel", a.photoLimit)
			if err != nil {
				return err
			}
			if found != nil {
				bundle.Photos = found
			}
			return nil
		})
	})
	if err := g.Wait(); err != nil {
		span.SetAttributes(attribute.Bool("bundle.partial", true))
		span.SetStatus(codes.Error, "provider failed")
	}

	span.SetAttributes(
		attribute.Int("bundle.attractions", len(bundle.Attractions)),
		attribute.Int("bundle.weather_days", len(bundle.Weather)),
		attribute.Int("bundle.photos", len(bundle.Photos)),
	)
	return bundle
}

// absorb runs fn, turning a panic into an error, and logs and meters any
// failure. The caller's list is left untouched on failure.
func (a *Aggregator) absorb(ctx context.Context, provider string, fn func() error) error {
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("provider panicked: %v", r)
			}
		}()
		err = fn()
	}()
	if err == nil {
		return nil
	}
	a.logger.WarnContext(ctx, "Provider failed, continuing with empty result",
		slog.String("provider", provider),
		slog.Any("error", err))
	trace.SpanFromContext(ctx).AddEvent("provider_failed", trace.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("error", err.Error()),
	))
	a.metrics.RecordProviderFailure(ctx, provider)
	return fmt.Errorf("%s: %w", provider, err)
}

func forecastDays(days, providerMax int) int {
	if providerMax > 0 && days > providerMax {
		return providerMax
	}
	if days < 1 {
		return 1
	}
	return days
}
