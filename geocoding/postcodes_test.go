// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postcodesServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	return srv
}

func TestPostcodesGeocode(t *testing.T) {
	var path string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.EscapedPath()
		_, _ = w.Write([]byte(`{"status":200,"result":{"postcode":"SW1A 1AA","latitude":51.501009,"longitude":-0.141588}}`))
	}))
	defer srv.Close()

	g := NewPostcodesIOGeocoder(Options{BaseURL: srv.URL + "/"})

	res, err := g.Geocode(context.Background(), "SW1A 1AA")
	require.NoError(t, err)

	assert.Equal(t, "/postcodes/SW1A%201AA", path)
	assert.InDelta(t, 51.501009, res.Latitude, 1e-9)
	assert.InDelta(t, -0.141588, res.Longitude, 1e-9)
	assert.Equal(t, "SW1A 1AA", res.Postcode)
	assert.Equal(t, ProviderPostcodes, res.Provider)
	assert.InDelta(t, 51.501009, res.Point().Lat, 1e-9)
}

func TestPostcodesGeocodeFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   ErrorType
	}{
		{"not found", http.StatusNotFound, `{"status":404,"error":"Invalid postcode"}`, ErrorTypeInvalidPostcode},
		{"bad request", http.StatusBadRequest, `{"status":400,"error":"No postcode query submitted"}`, ErrorTypeInvalidPostcode},
		{"body status", http.StatusOK, `{"status":404,"error":"Invalid postcode"}`, ErrorTypeInvalidPostcode},
		{"server error", http.StatusInternalServerError, `oops`, ErrorTypeNetworkError},
		{"rate limited", http.StatusTooManyRequests, ``, ErrorTypeNetworkError},
		{"not json", http.StatusOK, `<html>`, ErrorTypeMalformedResponse},
		{"null result", http.StatusOK, `{"status":200,"result":null}`, ErrorTypeMalformedResponse},
		{"null latitude", http.StatusOK, `{"status":200,"result":{"postcode":"X","latitude":null,"longitude":-0.1}}`, ErrorTypeMalformedResponse},
		{"missing longitude", http.StatusOK, `{"status":200,"result":{"postcode":"X","latitude":51.5}}`, ErrorTypeMalformedResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := postcodesServer(t, tt.status, tt.body)
			g := NewPostcodesIOGeocoder(Options{BaseURL: srv.URL})

			res, err := g.Geocode(context.Background(), "ZZ99 9ZZ")
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, TypeOf(err), err.Error())
		})
	}
}

func TestPostcodesGeocodeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	g := NewPostcodesIOGeocoder(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	_, err := g.Geocode(context.Background(), "SW1A 1AA")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.True(t, IsTimeoutError(err))
}

func TestPostcodesGeocodeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	g := NewPostcodesIOGeocoder(Options{BaseURL: url})

	_, err := g.Geocode(context.Background(), "SW1A 1AA")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
}

func TestNew(t *testing.T) {
	g, err := New("", Options{})
	require.NoError(t, err)
	assert.IsType(t, &PostcodesIOGeocoder{}, g)

	_, err = New(ProviderGoogle, Options{})
	assert.Error(t, err)

	g, err = New(ProviderGoogle, Options{APIKey: "k"})
	require.NoError(t, err)
	assert.IsType(t, &GoogleMapsGeocoder{}, g)

	_, err = New("nominatim", Options{})
	assert.Error(t, err)
}
