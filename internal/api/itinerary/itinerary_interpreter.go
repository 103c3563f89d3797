package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-consultant/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

var (
	ErrUnparseable  = errors.New("model output is not an itinerary JSON object")
	ErrNoUsableDays = errors.New("model output has no usable days")
)

// Fallback reasons reported in metrics and logs.
const (
	ReasonGenerationError = "generation_error"
	ReasonParseError      = "parse_error"
	ReasonRepairedDays    = "repaired_days"
)

// Completion budget for a trip: a fixed overhead plus a per-day allowance,
// never below the configured MaxTokens and never above the ceiling.
const (
	DefaultTokensPerDay = 450
	DefaultTokenCeiling = 16000
	promptTokenOverhead = 300
)

// slotLabels name activities the model left without a time.
var slotLabels = []string{"Morning", "Late Morning", "Lunch", "Afternoon", "Evening", "Night"}

// Interpretation is the itinerary chosen for a trip and how it was obtained.
type Interpretation struct {
	Itinerary    types.Itinerary
	Source       types.ItinerarySource
	RepairedDays int
	Reason       string
}

// Interpreter asks the text generator for an itinerary and turns whatever comes
// back into a complete one.
type Interpreter struct {
	generator    generativeAI.TextGenerator
	opts         generativeAI.GenerateOptions
	tokensPerDay int
	tokenCeiling int
	logger       *slog.Logger
	metrics      *metrics.AppMetrics
}

func NewInterpreter(generator generativeAI.TextGenerator, opts generativeAI.GenerateOptions, logger *slog.Logger, m *metrics.AppMetrics) *Interpreter {
	opts.JSON = true
	return &Interpreter{
		generator:    generator,
		opts:         opts,
		tokensPerDay: DefaultTokensPerDay,
		tokenCeiling: DefaultTokenCeiling,
		logger:       logger,
		metrics:      m,
	}
}

// WithTokenBudget overrides the per-day allowance and the ceiling. Zero keeps
// the current value.
func (i *Interpreter) WithTokenBudget(perDay, ceiling int) *Interpreter {
	if perDay > 0 {
		i.tokensPerDay = perDay
	}
	if ceiling > 0 {
		i.tokenCeiling = ceiling
	}
	return i
}

// maxTokens sizes the completion so that long trips are not cut off mid JSON.
func (i *Interpreter) maxTokens(days int) int {
	budget := promptTokenOverhead + days*i.tokensPerDay
	if budget < i.opts.MaxTokens {
		budget = i.opts.MaxTokens
	}
	if i.tokenCeiling > 0 && budget > i.tokenCeiling {
		budget = i.tokenCeiling
	}
	return budget
}

// Generate never fails. Generation errors and unusable output both end in the
// fallback itinerary.
func (i *Interpreter) Generate(ctx context.Context, plan types.TripPlan, prompt string, attractions []types.Attraction) Interpretation {
	ctx, span := otel.Tracer("ItineraryInterpreter").Start(ctx, "Generate", trace.WithAttributes(
		attribute.String("llm.model", i.generator.Model()),
		attribute.Int("prompt.length", len(prompt)),
	))
	defer span.End()
	l := i.logger.With(slog.String("destination", plan.Destination), slog.Int("duration", plan.Duration))

	opts := i.opts
	opts.MaxTokens = i.maxTokens(plan.Duration)
	span.SetAttributes(attribute.Int("llm.max_tokens", opts.MaxTokens))

	start := time.Now()
	raw, err := i.generator.Generate(ctx, promptMessages(prompt), opts)
	i.metrics.RecordLLM(ctx, i.generator.Model(), time.Since(start), err)
	if err != nil {
		l.WarnContext(ctx, "Itinerary generation failed, using fallback", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		return i.fallback(ctx, plan, attractions, ReasonGenerationError)
	}

	it, repaired, err := Interpret(raw, plan, attractions)
	if err != nil {
		l.WarnContext(ctx, "Model output rejected, using fallback",
			slog.Any("error", err),
			slog.Int("response_length", len(raw)))
		span.RecordError(err)
		span.SetStatus(codes.Error, "unusable output")
		return i.fallback(ctx, plan, attractions, ReasonParseError)
	}

	span.SetAttributes(attribute.Int("itinerary.repaired_days", repaired))
	span.SetStatus(codes.Ok, "")
	if repaired > 0 {
		l.InfoContext(ctx, "Model itinerary repaired", slog.Int("repaired_days", repaired))
		i.metrics.RecordFallback(ctx, ReasonRepairedDays)
		return Interpretation{Itinerary: it, Source: types.ItinerarySourceAIRepaired, RepairedDays: repaired, Reason: ReasonRepairedDays}
	}
	return Interpretation{Itinerary: it, Source: types.ItinerarySourceAI}
}

func (i *Interpreter) fallback(ctx context.Context, plan types.TripPlan, attractions []types.Attraction, reason string) Interpretation {
	i.metrics.RecordFallback(ctx, reason)
	return Interpretation{
		Itinerary:    Synthesize(plan, attractions),
		Source:       types.ItinerarySourceFallback,
		RepairedDays: plan.Duration,
		Reason:       reason,
	}
}

// flexInt accepts 3, 3.0 and "3". Valid is false when the value was absent,
// null or not a number.
type flexInt struct {
	Value int
	Valid bool
}

func (f *flexInt) UnmarshalJSON(b []byte) error {
	*f = flexInt{}
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// "Day 2" and similar labels carry no usable ordinal
		return nil
	}
	*f = flexInt{Value: int(n), Valid: true}
	return nil
}

// flexString accepts strings and numbers, e.g. "duration": 2.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexString(s)
		return nil
	}
	trimmed := strings.TrimSpace(string(b))
	if trimmed == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", trimmed)
	}
	*f = flexString(n.String())
	return nil
}

type rawActivity struct {
	Time             flexString `json:"time"`
	Activity         flexString `json:"activity"`
	Name             flexString `json:"name"`
	Location         flexString `json:"location"`
	Duration         flexString `json:"duration"`
	ImageSearch      flexString `json:"image_search"`
	ImageSearchCamel flexString `json:"imageSearch"`
}

type rawDay struct {
	Day        flexInt       `json:"day"`
	Title      flexString    `json:"title"`
	Activities []rawActivity `json:"activities"`
}

type rawItinerary struct {
	Destination flexString    `json:"destination"`
	Days        []rawDay      `json:"days"`
	Itinerary   *rawItinerary `json:"itinerary"`
}

// Interpret parses raw model output and repairs it day by day against plan.
//
// Zero-based day numbering is shifted to start at 1. Days outside
// 1..Duration or repeated are dropped. Activities without a
// description are dropped, a missing time gets a slot label, a missing location
// gets the destination and anything past MaxActivitiesPerDay is cut. A day
// that is missing or left with fewer than MinActivitiesPerDay activities is
// replaced with the fallback day for that ordinal and counted as repaired.
// Dates always follow plan.StartDate. The output is rejected when it does not
// parse or when no day survives.
func Interpret(raw string, plan types.TripPlan, attractions []types.Attraction) (types.Itinerary, int, error) {
	cleaned := cleanJSONResponse(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return types.Itinerary{}, 0, ErrUnparseable
	}

	var parsed rawItinerary
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		return types.Itinerary{}, 0, fmt.Errorf("%w: %w", ErrUnparseable, err)
	}
	if len(parsed.Days) == 0 && parsed.Itinerary != nil {
		parsed = *parsed.Itinerary
	}

	shift := ordinalShift(parsed.Days)
	kept := make(map[int]types.DayPlan, plan.Duration)
	for idx, d := range parsed.Days {
		ordinal := idx + 1
		if d.Day.Valid {
			ordinal = d.Day.Value + shift
		}
		if ordinal < 1 || ordinal > plan.Duration {
			continue
		}
		if _, dup := kept[ordinal]; dup {
			continue
		}
		activities := repairActivities(d.Activities, plan.Destination)
		if len(activities) < MinActivitiesPerDay {
			continue
		}
		title := strings.TrimSpace(string(d.Title))
		if title == "" {
			title = fmt.Sprintf("Day %d in %s", ordinal, plan.Destination)
		}
		kept[ordinal] = types.DayPlan{
			Day:        ordinal,
			Date:       dayDate(plan, ordinal),
			Title:      title,
			Activities: activities,
		}
	}
	if len(kept) == 0 {
		return types.Itinerary{}, 0, ErrNoUsableDays
	}

	it := types.Itinerary{
		Destination: plan.Destination,
		Days:        make([]types.DayPlan, 0, plan.Duration),
	}
	repaired := 0
	for day := 1; day <= plan.Duration; day++ {
		if dp, ok := kept[day]; ok {
			it.Days = append(it.Days, dp)
			continue
		}
		it.Days = append(it.Days, fallbackDay(plan, attractions, day))
		repaired++
	}
	return it, repaired, nil
}

// ordinalShift is 1 when the model numbered its days from zero.
func ordinalShift(days []rawDay) int {
	for _, d := range days {
		if d.Day.Valid && d.Day.Value == 0 {
			return 1
		}
	}
	return 0
}

func repairActivities(raw []rawActivity, destination string) []types.Activity {
	out := make([]types.Activity, 0, len(raw))
	for _, a := range raw {
		if len(out) == MaxActivitiesPerDay {
			break
		}
		desc := strings.TrimSpace(string(a.Activity))
		if desc == "" {
			desc = strings.TrimSpace(string(a.Name))
		}
		if desc == "" {
			continue
		}
		act := types.Activity{
			Time:        strings.TrimSpace(string(a.Time)),
			Activity:    desc,
			Location:    strings.TrimSpace(string(a.Location)),
			Duration:    strings.TrimSpace(string(a.Duration)),
			ImageSearch: strings.TrimSpace(string(a.ImageSearch)),
		}
		if act.Time == "" {
			act.Time = slotLabels[len(out)]
		}
		if act.Location == "" {
			act.Location = destination
		}
		if act.ImageSearch == "" {
			act.ImageSearch = strings.TrimSpace(string(a.ImageSearchCamel))
		}
		out = append(out, act)
	}
	return out
}

// cleanJSONResponse strips code fences and any prose around the outermost
// JSON object.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	firstBrace := strings.Index(response, "{")
	if firstBrace == -1 {
		return response
	}
	lastBrace := strings.LastIndex(response, "}")
	if lastBrace <= firstBrace {
		return response
	}
	return strings.TrimSpace(response[firstBrace : lastBrace+1])
}
