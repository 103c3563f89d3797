package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-travel-consultant/internal/types"
)

func TestErrorResponseWithDetails(t *testing.T) {
	t.Run("details exposed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		ErrorResponseWithDetails(w, req, http.StatusInternalServerError, "Failed", errors.New("boom"), true)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var body types.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, "Failed", body.Error)
		assert.Equal(t, "boom", body.Details)
	})

	t.Run("details hidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		ErrorResponseWithDetails(w, req, http.StatusInternalServerError, "Failed", errors.New("boom"), false)

		assert.NotContains(t, w.Body.String(), "details")
	})
}

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "valid", body: `{"message":"hi"}`},
		{name: "empty", body: ``, wantErr: "body must not be empty"},
		{name: "malformed", body: `{"message":`, wantErr: "badly-formed JSON"},
		{name: "wrong type", body: `{"message":1}`, wantErr: `incorrect JSON type for field "message"`},
		{name: "two values", body: `{"message":"a"}{"message":"b"}`, wantErr: "single JSON value"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			var dst types.ChatRequest

			err := DecodeJSONBody(w, req, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "hi", dst.Message)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
