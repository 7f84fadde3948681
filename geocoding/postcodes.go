// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// DefaultPostcodesURL is the public postcodes.io endpoint.
const DefaultPostcodesURL = "https://api.postcodes.io"

// PostcodesIOGeocoder resolves postcodes with the postcodes.io lookup API.
type PostcodesIOGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewPostcodesIOGeocoder creates a postcodes.io geocoder.
func NewPostcodesIOGeocoder(opts Options) *PostcodesIOGeocoder {
	base := opts.BaseURL
	if base == "" {
		base = DefaultPostcodesURL
	}

	return &PostcodesIOGeocoder{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: opts.client(),
	}
}

type postcodesResponse struct {
	Status int    `json:"status"`
	Error  string `json:"error"`
	Result *struct {
		Postcode  string   `json:"postcode"`
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	} `json:"result"`
}

// Geocode looks up postcode.
func (g *PostcodesIOGeocoder) Geocode(ctx context.Context, postcode string) (*Result, error) {
	reqURL := g.baseURL + "/postcodes/" + url.PathEscape(postcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, &GeocodingError{Type: ErrorTypeUnknown, Message: "building postcode request", Err: err}
	}

	req.Header.Set("Accept", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, transportError(err)
	}

	var pr postcodesResponse

	decodeErr := json.Unmarshal(body, &pr)

	if resp.StatusCode != http.StatusOK {
		return nil, ClassifyHTTPError(resp.StatusCode, pr.Error)
	}

	if decodeErr != nil {
		return nil, &GeocodingError{Type: ErrorTypeMalformedResponse, Message: "decoding postcode response", Err: decodeErr}
	}

	if pr.Status != http.StatusOK {
		return nil, &GeocodingError{
			Type:       ErrorTypeInvalidPostcode,
			Message:    "invalid postcode",
			StatusCode: pr.Status,
		}
	}

	if pr.Result == nil || pr.Result.Latitude == nil || pr.Result.Longitude == nil {
		return nil, &GeocodingError{Type: ErrorTypeMalformedResponse, Message: "could not retrieve coordinates"}
	}

	return &Result{
		Latitude:    *pr.Result.Latitude,
		Longitude:   *pr.Result.Longitude,
		Postcode:    pr.Result.Postcode,
		Provider:    ProviderPostcodes,
		DisplayName: pr.Result.Postcode,
	}, nil
}
