package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/complaint-map/internal/config"
	"github.com/complaint-map/internal/infrastructure/httpx"
	"github.com/complaint-map/internal/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestClient(baseURL string) *client {
	c := NewClient(&config.NominatimConfig{
		BaseURL:   baseURL,
		UserAgent: "complaint-map-test",
		Timeout:   2 * time.Second,
	}, "FR", zap.NewNop()).(*client)
	c.retry = httpx.RetryPolicy{MaxAttempts: 2, BaseDelay: time.Millisecond}
	return c
}

func TestClient_Search(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/search", r.URL.Path)
			assert.Equal(t, "place bellecour", r.URL.Query().Get("q"))
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))
			assert.Equal(t, "fr", r.URL.Query().Get("countrycodes"))
			assert.Equal(t, "complaint-map-test", r.Header.Get("User-Agent"))

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[
				{"display_name": "Place Bellecour, Lyon", "lat": "45.7578", "lon": "4.8320"},
				{"display_name": "Broken", "lat": "n/a", "lon": "4.8"},
				{"display_name": "Bellecour metro", "lat": "45.7580", "lon": "4.8330"}
			]`))
		}))
		defer server.Close()

		places, err := newTestClient(server.URL).Search(context.Background(), "place bellecour", 2)
		require.NoError(t, err)
		require.Len(t, places, 2)
		assert.Equal(t, "Place Bellecour, Lyon", places[0].DisplayName)
		assert.Equal(t, 45.7578, places[0].Lat)
		assert.Equal(t, 4.8320, places[0].Lon)
		assert.Equal(t, "Bellecour metro", places[1].DisplayName)
	})

	t.Run("short query skips the request", func(t *testing.T) {
		var calls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
		}))
		defer server.Close()

		places, err := newTestClient(server.URL).Search(context.Background(), " ly ", 5)
		require.NoError(t, err)
		assert.NotNil(t, places)
		assert.Empty(t, places)
		assert.Zero(t, atomic.LoadInt32(&calls))
	})

	t.Run("upstream error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		_, err := newTestClient(server.URL).Search(context.Background(), "lyon", 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrExternalService))
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		c := newTestClient(server.URL)
		c.httpClient.Timeout = 50 * time.Millisecond

		_, err := c.Search(context.Background(), "lyon", 5)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errors.ErrExternalService))
	})
}
