package attractions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Geocode(ctx context.Context, query string) (*types.GeoLocation, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.GeoLocation), args.Error(1)
}

func (m *MockClient) SearchAttractions(ctx context.Context, query string, near *types.Coordinates, limit int) ([]types.Attraction, error) {
	args := m.Called(ctx, query, near, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]types.Attraction), args.Error(1)
}

func serve(h *Handler, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.Get("/api/attractions/{location}", h.GetAttractions)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestHandler_GetAttractions(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := new(MockClient)
		client.On("SearchAttractions", mock.Anything, "Lisbon", (*types.Coordinates)(nil), 5).
			Return([]types.Attraction{{ID: "1", Name: "Belem Tower", Category: "monument"}}, nil).Once()

		w := serve(NewHandler(client, testLogger, false), "/api/attractions/Lisbon?limit=5")

		assert.Equal(t, http.StatusOK, w.Code)
		var body types.AttractionsResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.True(t, body.Success)
		require.Len(t, body.Attractions, 1)
		assert.Equal(t, "Belem Tower", body.Attractions[0].Name)
		client.AssertExpectations(t)
	})

	t.Run("invalid limit", func(t *testing.T) {
		client := new(MockClient)
		w := serve(NewHandler(client, testLogger, false), "/api/attractions/Lisbon?limit=abc")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		client.AssertNotCalled(t, "SearchAttractions")
	})

	t.Run("provider error", func(t *testing.T) {
		client := new(MockClient)
		client.On("SearchAttractions", mock.Anything, "Lisbon", (*types.Coordinates)(nil), 10).
			Return(nil, errors.New("upstream down")).Once()

		w := serve(NewHandler(client, testLogger, true), "/api/attractions/Lisbon")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Failed to fetch attractions", body.Error)
		assert.Equal(t, "upstream down", body.Details)
	})
}
