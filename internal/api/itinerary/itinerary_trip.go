package itinerary

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const dateLayout = "2006-01-02"

// ErrInvalidRequest is matched by every ValidationError.
var ErrInvalidRequest = errors.New("invalid itinerary request")

// ValidationError carries the client-facing message of a rejected TripRequest.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrInvalidRequest }

func invalid(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ParseTripRequest validates req and resolves the trip length.
//
// The day count is inclusive: a trip from 2024-06-01 to 2024-06-03 lasts three
// days. A positive Duration overrides the dates, and EndDate is then moved to
// match it.
func ParseTripRequest(req types.TripRequest, maxDays int) (types.TripPlan, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" || strings.TrimSpace(req.StartDate) == "" || strings.TrimSpace(req.EndDate) == "" {
		return types.TripPlan{}, invalid("Missing required fields")
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return types.TripPlan{}, invalid("Invalid startDate %q, expected YYYY-MM-DD", req.StartDate)
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return types.TripPlan{}, invalid("Invalid endDate %q, expected YYYY-MM-DD", req.EndDate)
	}
	if end.Before(start) {
		return types.TripPlan{}, invalid("endDate must not be before startDate")
	}

	duration := TripDuration(start, end)
	if req.Duration != nil {
		if *req.Duration <= 0 {
			return types.TripPlan{}, invalid("duration must be a positive number of days")
		}
		duration = *req.Duration
		end = start.AddDate(0, 0, duration-1)
	}
	if maxDays > 0 && duration > maxDays {
		return types.TripPlan{}, invalid("Trips are limited to %d days", maxDays)
	}

	return types.TripPlan{
		Destination: destination,
		StartDate:   start,
		EndDate:     end,
		Duration:    duration,
		Preferences: strings.TrimSpace(req.Preferences),
	}, nil
}

// TripDuration counts the calendar days from start to end, both included, with
// a minimum of one.
func TripDuration(start, end time.Time) int {
	days := int(end.Sub(start).Hours()/24) + 1
	if days < 1 {
		return 1
	}
	return days
}

// parseDate accepts YYYY-MM-DD or an RFC 3339 timestamp, keeping only its date.
func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func dayDate(plan types.TripPlan, day int) string {
	return plan.StartDate.AddDate(0, 0, day-1).Format(dateLayout)
}
