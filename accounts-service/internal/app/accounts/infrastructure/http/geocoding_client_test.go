package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestClient(handler http.HandlerFunc) (*GeocodingClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	client := NewGeocodingClient(server.URL, 5*time.Second)
	return client, server
}

func TestReverseGeocode_CityPreferred(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reverse", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "43.238949", r.URL.Query().Get("lat"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"display_name": "Almaty, Kazakhstan",
			"address": {"city": "Almaty", "town": "Ignored", "county": "Almaty Region"}
		}`))
	})
	defer server.Close()

	locality, err := client.ReverseGeocode(context.Background(), 43.238949, 76.889709)

	assert.NoError(t, err)
	assert.Equal(t, "Almaty", locality)
}

func TestReverseGeocode_FallsBackToVillage(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Somewhere", "address": {"village": "Kaskelen"}}`))
	})
	defer server.Close()

	locality, err := client.ReverseGeocode(context.Background(), 43.2, 76.6)

	assert.NoError(t, err)
	assert.Equal(t, "Kaskelen", locality)
}

func TestReverseGeocode_FallsBackToDisplayName(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "Middle of nowhere", "address": {}}`))
	})
	defer server.Close()

	locality, err := client.ReverseGeocode(context.Background(), 0, 0)

	assert.NoError(t, err)
	assert.Equal(t, "Middle of nowhere", locality)
}

func TestReverseGeocode_NotFound(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name": "", "address": {}}`))
	})
	defer server.Close()

	_, err := client.ReverseGeocode(context.Background(), 0, 0)

	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestReverseGeocode_UpstreamError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	defer server.Close()

	_, err := client.ReverseGeocode(context.Background(), 43.2, 76.6)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrLocationNotFound)
}
