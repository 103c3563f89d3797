package attractions

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	providerName = "tomtom"

	// Tourist attractions, restaurants, museums, monuments, historic sites.
	CategorySet     = "7318,7315,7317,7376,7377"
	DefaultCategory = "attraction"
	searchRadiusM   = 20000
	maxLimit        = 100
)

// ErrLocationNotFound is returned when geocoding yields zero candidates.
var ErrLocationNotFound = errors.New("location not found")

var _ Client = (*TomTomClient)(nil)

// Client resolves destinations and searches points of interest near them.
type Client interface {
	Geocode(ctx context.Context, query string) (*types.GeoLocation, error)
	SearchAttractions(ctx context.Context, query string, near *types.Coordinates, limit int) ([]types.Attraction, error)
}

type TomTomClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewTomTomClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *TomTomClient {
	return &TomTomClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type tomtomAddress struct {
	FreeformAddress string `json:"freeformAddress"`
	Municipality    string `json:"municipality"`
	Country         string `json:"country"`
	CountryCode     string `json:"countryCode"`
}

type tomtomResult struct {
	ID       string             `json:"id"`
	Type     string             `json:"type"`
	Position *types.Coordinates `json:"position"`
	Address  tomtomAddress      `json:"address"`
	POI      *struct {
		Name       string   `json:"name"`
		Phone      string   `json:"phone"`
		URL        string   `json:"url"`
		Categories []string `json:"categories"`
	} `json:"poi"`
}

type tomtomSearchResponse struct {
	Results []tomtomResult `json:"results"`
}

func (c *TomTomClient) Geocode(ctx context.Context, query string) (*types.GeoLocation, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("limit", "1")
	endpoint := fmt.Sprintf("%s/search/2/geocode/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	var resp tomtomSearchResponse
	if err := api.FetchJSON(ctx, c.httpClient, providerName+".geocode", endpoint, &resp); err != nil {
		return nil, err
	}
	for _, r := range resp.Results {
		if r.Position == nil {
			continue
		}
		name := r.Address.Municipality
		if name == "" {
			name = r.Address.FreeformAddress
		}
		if name == "" {
			name = query
		}
		return &types.GeoLocation{
			Name:        name,
			Country:     r.Address.Country,
			CountryCode: r.Address.CountryCode,
			Latitude:    r.Position.Lat,
			Longitude:   r.Position.Lon,
		}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrLocationNotFound, query)
}

func (c *TomTomClient) SearchAttractions(ctx context.Context, query string, near *types.Coordinates, limit int) ([]types.Attraction, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("categorySet", CategorySet)
	params.Set("limit", strconv.Itoa(clampLimit(limit)))
	params.Set("typeahead", "false")
	if near != nil {
		params.Set("lat", strconv.FormatFloat(near.Lat, 'f', 6, 64))
		params.Set("lon", strconv.FormatFloat(near.Lon, 'f', 6, 64))
		params.Set("radius", strconv.Itoa(searchRadiusM))
	}
	endpoint := fmt.Sprintf("%s/search/2/search/%s.json?%s", c.baseURL, url.PathEscape(query), params.Encode())

	var resp tomtomSearchResponse
	if err := api.FetchJSON(ctx, c.httpClient, providerName+".search", endpoint, &resp); err != nil {
		return nil, err
	}

	attractions := normalizeResults(resp.Results)
	c.logger.DebugContext(ctx, "TomTom search completed",
		slog.String("query", query),
		slog.Int("raw_results", len(resp.Results)),
		slog.Int("attractions", len(attractions)))
	return attractions, nil
}

// normalizeResults maps provider results onto Attraction, preserving relevance
// order and discarding entries without a usable name.
func normalizeResults(results []tomtomResult) []types.Attraction {
	attractions := make([]types.Attraction, 0, len(results))
	for _, r := range results {
		a := types.Attraction{
			ID:       r.ID,
			Category: DefaultCategory,
			Position: r.Position,
			Address:  r.Address.FreeformAddress,
		}
		if r.POI != nil {
			a.Name = strings.TrimSpace(r.POI.Name)
			a.Phone = r.POI.Phone
			a.URL = r.POI.URL
			if len(r.POI.Categories) > 0 && r.POI.Categories[0] != "" {
				a.Category = r.POI.Categories[0]
			}
		}
		if a.Name == "" {
			a.Name = strings.TrimSpace(r.Address.FreeformAddress)
		}
		if a.Name == "" {
			continue
		}
		attractions = append(attractions, a)
	}
	return attractions
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 10
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}
