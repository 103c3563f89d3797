package itinerary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const mapSearchURL = "https://www.google.com/maps/search/?api=1&query=%s,%s"

// Enrich returns a copy of it with map links and images attached where an
// activity matches an attraction or a photo. Unmatched activities are kept as
// they are.
func Enrich(it types.Itinerary, attractions []types.Attraction, photos []types.PhotoAsset) types.Itinerary {
	out := types.Itinerary{
		Destination: it.Destination,
		Days:        make([]types.DayPlan, len(it.Days)),
	}
	for d, day := range it.Days {
		day.Activities = append([]types.Activity(nil), day.Activities...)
		if day.Activities == nil {
			day.Activities = []types.Activity{}
		}
		for a := range day.Activities {
			act := &day.Activities[a]
			if act.MapLink == "" {
				if attr, ok := matchAttraction(*act, it.Destination, attractions); ok {
					act.MapLink = MapLink(*attr.Position)
				}
			}
			if act.Image == "" {
				if photo, ok := matchPhoto(imageKeyword(*act), photos); ok {
					act.Image = photo.URL
				}
			}
		}
		out.Days[d] = day
	}
	return out
}

func MapLink(c types.Coordinates) string {
	return fmt.Sprintf(mapSearchURL, strconv.FormatFloat(c.Lat, 'f', -1, 64), strconv.FormatFloat(c.Lon, 'f', -1, 64))
}

// matchAttraction takes the first attraction, in provider order, whose name
// matches the activity location or description. A location equal to the
// destination itself is too generic to match on.
func matchAttraction(act types.Activity, destination string, attractions []types.Attraction) (types.Attraction, bool) {
	location := act.Location
	if strings.EqualFold(strings.TrimSpace(location), strings.TrimSpace(destination)) {
		location = ""
	}
	for _, attr := range attractions {
		if attr.Position == nil {
			continue
		}
		if containsEither(location, attr.Name) || containsEither(act.Activity, attr.Name) {
			return attr, true
		}
	}
	return types.Attraction{}, false
}

func matchPhoto(keyword string, photos []types.PhotoAsset) (types.PhotoAsset, bool) {
	for _, p := range photos {
		if p.URL == "" {
			continue
		}
		for _, tag := range strings.Split(p.Tags, ",") {
			if containsEither(keyword, tag) {
				return p, true
			}
		}
	}
	return types.PhotoAsset{}, false
}

// imageKeyword is the image search hint, or the first word of the description.
func imageKeyword(act types.Activity) string {
	if kw := strings.TrimSpace(act.ImageSearch); kw != "" {
		return kw
	}
	if fields := strings.Fields(act.Activity); len(fields) > 0 {
		return fields[0]
	}
	return ""
}

// containsEither reports case-insensitive substring containment in either
// direction. Empty strings never match.
func containsEither(a, b string) bool {
	a = strings.ToLower(strings.TrimSpace(a))
	b = strings.ToLower(strings.TrimSpace(b))
	if a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
