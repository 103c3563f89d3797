package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"value":"hello"}`))
		case "/bad":
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte(`{"message":"invalid key"}`))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{}`))
		default:
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	client := NewProviderHTTPClient(50 * time.Millisecond)
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		var dst struct {
			Value string `json:"value"`
		}
		require.NoError(t, FetchJSON(ctx, client, "test", srv.URL+"/ok", &dst))
		assert.Equal(t, "hello", dst.Value)
	})

	t.Run("non 2xx", func(t *testing.T) {
		var dst struct{}
		err := FetchJSON(ctx, client, "test", srv.URL+"/bad", &dst)
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, http.StatusForbidden, perr.StatusCode)
		assert.Contains(t, perr.Body, "invalid key")
		assert.True(t, errors.Is(err, ErrProviderStatus))
	})

	t.Run("timeout", func(t *testing.T) {
		var dst struct{}
		err := FetchJSON(ctx, client, "test", srv.URL+"/slow", &dst)
		var perr *ProviderError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "test", perr.Provider)
	})

	t.Run("bad body", func(t *testing.T) {
		var dst struct{}
		err := FetchJSON(ctx, client, "test", srv.URL+"/junk", &dst)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}
