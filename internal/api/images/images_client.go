package images

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/FACorreiaa/go-travel-consultant/internal/api"
	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

const (
	providerName = "pixabay"

	minPerPage  = 3
	maxPerPage  = 200
	maxQueryLen = 100
)

var _ Client = (*PixabayClient)(nil)

type Client interface {
	SearchPhotos(ctx context.Context, query string, perPage int) ([]types.PhotoAsset, error)
}

type PixabayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewPixabayClient(baseURL, apiKey string, httpClient *http.Client, logger *slog.Logger) *PixabayClient {
	return &PixabayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type pixabayResponse struct {
	Total int `json:"total"`
	Hits  []struct {
		ID           int    `json:"id"`
		WebformatURL string `json:"webformatURL"`
		PreviewURL   string `json:"previewURL"`
		Tags         string `json:"tags"`
		User         string `json:"user"`
	} `json:"hits"`
}

func (c *PixabayClient) SearchPhotos(ctx context.Context, query string, perPage int) ([]types.PhotoAsset, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("q", truncateQuery(query))
	params.Set("image_type", "photo")
	params.Set("orientation", "horizontal")
	params.Set("category", "travel")
	params.Set("min_width", "640")
	params.Set("per_page", strconv.Itoa(ClampPerPage(perPage)))
	params.Set("safesearch", "true")

	var resp pixabayResponse
	if err := api.FetchJSON(ctx, c.httpClient, providerName, c.baseURL+"/api/?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	photos := make([]types.PhotoAsset, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		if hit.WebformatURL == "" && hit.PreviewURL == "" {
			continue
		}
		photos = append(photos, types.PhotoAsset{
			ID:      hit.ID,
			URL:     hit.WebformatURL,
			Preview: hit.PreviewURL,
			Tags:    hit.Tags,
			User:    hit.User,
		})
	}
	c.logger.DebugContext(ctx, "Pixabay search completed", slog.String("query", query), slog.Int("photos", len(photos)))
	return photos, nil
}

// ClampPerPage keeps per_page inside the range Pixabay accepts.
func ClampPerPage(perPage int) int {
	if perPage < minPerPage {
		return minPerPage
	}
	if perPage > maxPerPage {
		return maxPerPage
	}
	return perPage
}

func truncateQuery(q string) string {
	q = strings.TrimSpace(q)
	if len(q) <= maxQueryLen {
		return q
	}
	cut := maxQueryLen
	for cut > 0 && !utf8.RuneStart(q[cut]) {
		cut--
	}
	return strings.TrimSpace(q[:cut])
}
