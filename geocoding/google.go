// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// DefaultGoogleURL is the Google Maps geocoding endpoint.
const DefaultGoogleURL = "https://maps.googleapis.com/maps/api/geocode/json"

// GoogleMapsGeocoder uses the Google Maps Geocoding API restricted to GB.
type GoogleMapsGeocoder struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewGoogleMapsGeocoder creates a new Google Maps geocoder.
func NewGoogleMapsGeocoder(opts Options) *GoogleMapsGeocoder {
	endpoint := opts.BaseURL
	if endpoint == "" {
		endpoint = DefaultGoogleURL
	}

	return &GoogleMapsGeocoder{
		apiKey:     opts.APIKey,
		endpoint:   endpoint,
		httpClient: opts.client(),
	}
}

type googleMapsResponse struct {
	Results []struct {
		Geometry struct {
			Location *struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// Geocode looks up postcode.
func (g *GoogleMapsGeocoder) Geocode(ctx context.Context, postcode string) (*Result, error) {
	params := url.Values{}
	params.Set("address", postcode)
	params.Set("components", "country:GB")
	params.Set("region", "uk")
	params.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "building geocoding request", Err: err}
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPError(resp.StatusCode, "")
	}

	var gmResp googleMapsResponse
	if err := json.NewDecoder(resp.Body).Decode(&gmResp); err != nil {
		return nil, &GeocodingError{Type: ErrorTypeMalformedResponse, Message: "decoding geocoding response", Err: err}
	}

	switch gmResp.Status {
	case "OK":
	case "ZERO_RESULTS", "INVALID_REQUEST":
		return nil, &GeocodingError{Type: ErrorTypeInvalidPostcode, Message: "invalid postcode: " + strings.ToLower(gmResp.Status)}
	default:
		msg := "google maps status: " + gmResp.Status
		if gmResp.ErrorMessage != "" {
			msg += ": " + gmResp.ErrorMessage
		}

		return nil, &GeocodingError{Type: ErrorTypeNetworkError, Message: msg}
	}

	if len(gmResp.Results) == 0 || gmResp.Results[0].Geometry.Location == nil {
		return nil, &GeocodingError{Type: ErrorTypeMalformedResponse, Message: "could not retrieve coordinates"}
	}

	result := gmResp.Results[0]

	return &Result{
		Latitude:    result.Geometry.Location.Lat,
		Longitude:   result.Geometry.Location.Lng,
		Postcode:    postcode,
		Provider:    ProviderGoogle,
		DisplayName: result.FormattedAddress,
	}, nil
}
