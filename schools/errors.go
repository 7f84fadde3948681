// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"errors"
	"fmt"
)

// Kind classifies search and load failures.
type Kind int

const (
	KindUnknown Kind = iota
	KindDataLoad
	KindInvalidRequest
	KindGeocodingFailed
)

func (k Kind) String() string {
	switch k {
	case KindDataLoad:
		return "DataLoadFailure"
	case KindInvalidRequest:
		return "InvalidRequest"
	case KindGeocodingFailed:
		return "GeocodingFailed"
	default:
		return "Unknown"
	}
}

// SearchError is returned by Searcher.Search.
type SearchError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *SearchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *SearchError) Unwrap() error {
	return e.Err
}

func invalidRequest(format string, args ...any) *SearchError {
	return &SearchError{Kind: KindInvalidRequest, Message: fmt.Sprintf(format, args...)}
}

// LoadError reports a dataset that could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading schools from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of a SearchError or LoadError anywhere in err's chain.
func KindOf(err error) Kind {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Kind
	}

	var le *LoadError
	if errors.As(err, &le) {
		return KindDataLoad
	}

	return KindUnknown
}

// IsKind reports whether err is classified as kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
