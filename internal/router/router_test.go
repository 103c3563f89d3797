package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appMiddleware "github.com/FACorreiaa/go-travel-consultant/app/middleware"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/attractions"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/chat"
	generativeAI "github.com/FACorreiaa/go-travel-consultant/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/images"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/itinerary"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/travel"
	"github.com/FACorreiaa/go-travel-consultant/internal/api/weather"
)

var testLogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

// testRouter wires handlers whose collaborators are never reached: every
// request below is rejected before a provider would be called.
func testRouter(t *testing.T) http.Handler {
	t.Helper()
	rl := appMiddleware.NewRateLimiter(60, 1)
	t.Cleanup(rl.Stop)

	unavailable := &generativeAI.UnavailableGenerator{Err: generativeAI.ErrMissingAPIKey}
	return SetupRouter(&Config{
		ItineraryHandler:   itinerary.NewHandler(nil, testLogger, false),
		ChatHandler:        chat.NewHandler(chat.NewServiceImpl(unavailable, generativeAI.GenerateOptions{}, testLogger), testLogger, false),
		AttractionsHandler: attractions.NewHandler(nil, testLogger, false),
		ImagesHandler:      images.NewHandler(nil, testLogger, false),
		WeatherHandler:     weather.NewHandler(nil, testLogger, false),
		TravelHandler:      travel.NewHandler(nil, testLogger, false),
		RateLimiter:        rl,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("# metrics"))
		}),
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func TestRouter_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"OK","message":"Travel Consultant API is running"}`, rr.Body.String())
}

func TestRouter_Metrics(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "# metrics", rr.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/generate-itinerary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, req)

	assert.Equal(t, "http://localhost:3000", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_GenerationIsRateLimited(t *testing.T) {
	h := testRouter(t)
	post := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{"message":""}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "10.1.1.1:1234"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusBadRequest, post())
	assert.Equal(t, http.StatusTooManyRequests, post())
}

func TestRouter_MissingTravelParams(t *testing.T) {
	for _, path := range []string{"/api/flights", "/api/hotels"} {
		rr := httptest.NewRecorder()
		testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code, path)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	rr := httptest.NewRecorder()
	testRouter(t).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/bookings", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}
