// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package geocoding

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// GeocodingError is returned by every Geocoder for a failed lookup.
type GeocodingError struct {
	Type       ErrorType
	Message    string
	StatusCode int
	Err        error
}

// ErrorType classifies geocoding failures.
type ErrorType int

const (
	// ErrorTypeUnknown unclassified failure.
	ErrorTypeUnknown ErrorType = iota
	// ErrorTypeInvalidPostcode the provider does not know the postcode.
	ErrorTypeInvalidPostcode
	// ErrorTypeNetworkError transport failure, timeout or upstream outage.
	ErrorTypeNetworkError
	// ErrorTypeMalformedResponse the provider answered without usable coordinates.
	ErrorTypeMalformedResponse
)

func (t ErrorType) String() string {
	switch t {
	case ErrorTypeInvalidPostcode:
		return "InvalidPostcode"
	case ErrorTypeNetworkError:
		return "NetworkError"
	case ErrorTypeMalformedResponse:
		return "MalformedResponse"
	default:
		return "Unknown"
	}
}

func (e *GeocodingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *GeocodingError) Unwrap() error {
	return e.Err
}

// TypeOf returns the ErrorType carried by err, or ErrorTypeUnknown.
func TypeOf(err error) ErrorType {
	var geoErr *GeocodingError
	if errors.As(err, &geoErr) {
		return geoErr.Type
	}

	return ErrorTypeUnknown
}

// IsInvalidPostcode reports whether the provider rejected the postcode.
func IsInvalidPostcode(err error) bool {
	return TypeOf(err) == ErrorTypeInvalidPostcode
}

// IsNetworkError reports whether err is a transport level failure.
func IsNetworkError(err error) bool {
	return TypeOf(err) == ErrorTypeNetworkError
}

// IsMalformedResponse reports whether the provider answered without coordinates.
func IsMalformedResponse(err error) bool {
	return TypeOf(err) == ErrorTypeMalformedResponse
}

// IsTimeoutError reports whether err was caused by a deadline.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPError maps a non-200 provider status to a GeocodingError.
func ClassifyHTTPError(statusCode int, detail string) *GeocodingError {
	msg := fmt.Sprintf("geocoder returned status %d", statusCode)
	if detail != "" {
		msg = fmt.Sprintf("%s: %s", msg, detail)
	}

	switch statusCode {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusUnprocessableEntity:
		return &GeocodingError{Type: ErrorTypeInvalidPostcode, Message: msg, StatusCode: statusCode}
	default:
		return &GeocodingError{Type: ErrorTypeNetworkError, Message: msg, StatusCode: statusCode}
	}
}

func transportError(err error) *GeocodingError {
	msg := "geocoding request failed"
	if IsTimeoutError(err) {
		msg = "geocoding request timed out"
	}

	return &GeocodingError{Type: ErrorTypeNetworkError, Message: msg, Err: err}
}
