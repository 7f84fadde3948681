// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"context"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jcodagnone/schoolfinder/geocoding"
	"github.com/jcodagnone/schoolfinder/spatial"
)

// DefaultLimit is the number of results when the caller does not ask.
const DefaultLimit = 3

// Query is one search request.
type Query struct {
	Postcode string
	Limit    int
	Filters  Filters
}

// Response is a successful search. Results may be empty.
type Response struct {
	Query    Query
	Origin   spatial.Point
	Location *geocoding.Result
	Policy   DistancePolicy
	Results  []RankedResult
	// Matched counts the schools that passed the filters, located or not.
	Matched int
}

// Searcher runs queries against a loaded table. It holds no per-request
// state and is safe for concurrent use.
type Searcher struct {
	table    *Table
	geocoder geocoding.Geocoder
	timeout  time.Duration

	filter func(*Table, Filters) []School
	rank   func([]School, spatial.Point, int, DistancePolicy) []RankedResult
}

// NewSearcher creates a Searcher. A non-positive timeout means
// geocoding.DefaultTimeout.
func NewSearcher(table *Table, geocoder geocoding.Geocoder, timeout time.Duration) *Searcher {
	if timeout <= 0 {
		timeout = geocoding.DefaultTimeout
	}

	return &Searcher{
		table:    table,
		geocoder: geocoder,
		timeout:  timeout,
		filter:   FilterTable,
		rank:     Rank,
	}
}

// Table returns the table searched.
func (s *Searcher) Table() *Table {
	return s.table
}

// Search validates q, geocodes its postcode, filters the table and ranks the
// matches. Errors are *SearchError.
func (s *Searcher) Search(ctx context.Context, q Query, policy DistancePolicy) (*Response, error) {
	q.Postcode = strings.TrimSpace(q.Postcode)
	q.Filters.Gender = strings.TrimSpace(q.Filters.Gender)
	q.Filters.Rating = strings.TrimSpace(q.Filters.Rating)

	if q.Postcode == "" {
		return nil, invalidRequest("postcode is required")
	}

	if q.Limit < 1 {
		return nil, invalidRequest("limit must be at least 1, got %d", q.Limit)
	}

	gctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	loc, err := s.geocoder.Geocode(gctx, q.Postcode)
	if err != nil {
		log.Printf("geocoding %q failed: %v", q.Postcode, err)

		return nil, &SearchError{Kind: KindGeocodingFailed, Message: geocodingMessage(err), Err: err}
	}

	candidates := s.filter(s.table, q.Filters)
	results := s.rank(candidates, loc.Point(), q.Limit, policy)

	log.Printf("search postcode=%q limit=%d matched=%d returned=%d", q.Postcode, q.Limit, len(candidates), len(results))

	return &Response{
		Query:    q,
		Origin:   loc.Point(),
		Location: loc,
		Policy:   policy,
		Results:  results,
		Matched:  len(candidates),
	}, nil
}

func geocodingMessage(err error) string {
	switch geocoding.TypeOf(err) {
	case geocoding.ErrorTypeInvalidPostcode:
		return "invalid postcode"
	case geocoding.ErrorTypeMalformedResponse:
		return "could not retrieve coordinates"
	default:
		if geocoding.IsTimeoutError(err) {
			return "geocoding service timed out"
		}

		return "geocoding service unavailable"
	}
}

// ParseLimit parses a textual limit. Blank means DefaultLimit.
func ParseLimit(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLimit, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidRequest("limit must be a whole number, got %q", raw)
	}

	if n < 1 {
		return 0, invalidRequest("limit must be at least 1, got %d", n)
	}

	return n, nil
}
