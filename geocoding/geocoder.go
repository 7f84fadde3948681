// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package geocoding turns UK postcodes into coordinates.
package geocoding

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jcodagnone/schoolfinder/spatial"
	"github.com/jcodagnone/schoolfinder/utils/httputils"
)

// DefaultTimeout bounds a single lookup. Lookups are never retried.
const DefaultTimeout = 10 * time.Second

// Result is a geocoded postcode.
type Result struct {
	Latitude    float64
	Longitude   float64
	Postcode    string
	Provider    string
	DisplayName string
}

// Point returns the result as a spatial.Point.
func (r *Result) Point() spatial.Point {
	return spatial.Point{Lat: r.Latitude, Lng: r.Longitude}
}

// Geocoder resolves a postcode. Failures are *GeocodingError.
type Geocoder interface {
	Geocode(ctx context.Context, postcode string) (*Result, error)
}

// Provider names accepted by New.
const (
	ProviderPostcodes = "postcodes"
	ProviderGoogle    = "google"
)

// Options configures the providers.
type Options struct {
	// BaseURL overrides the provider endpoint.
	BaseURL string
	// APIKey is required by the google provider.
	APIKey    string
	Timeout   time.Duration
	Transport http.RoundTripper
	UserAgent string
	Trace     io.Writer
}

func (o Options) client() *http.Client {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return httputils.NewClient(httputils.ClientOptions{
		Timeout:   timeout,
		Transport: o.Transport,
		UserAgent: o.UserAgent,
		Trace:     o.Trace,
		TraceBody: o.Trace != nil,
	})
}

// New builds the geocoder for provider.
func New(provider string, opts Options) (Geocoder, error) {
	switch provider {
	case "", ProviderPostcodes:
		return NewPostcodesIOGeocoder(opts), nil
	case ProviderGoogle:
		if opts.APIKey == "" {
			return nil, fmt.Errorf("google geocoder requires an API key")
		}

		return NewGoogleMapsGeocoder(opts), nil
	default:
		return nil, fmt.Errorf("unknown geocoder %q (want %s or %s)", provider, ProviderPostcodes, ProviderGoogle)
	}
}
