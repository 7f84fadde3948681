// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/schoolfinder/geocoding"
	"github.com/jcodagnone/schoolfinder/schools"
)

// LimitParam accepts a JSON number, a numeric string or null.
type LimitParam struct {
	raw string
	set bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *LimitParam) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = LimitParam{}

		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}

		*l = LimitParam{raw: s, set: true}

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("limit must be a number or a numeric string: %w", err)
	}

	*l = LimitParam{raw: n.String(), set: true}

	return nil
}

// Value returns the parsed limit, schools.DefaultLimit when absent.
func (l LimitParam) Value() (int, error) {
	if !l.set {
		return schools.DefaultLimit, nil
	}

	return schools.ParseLimit(l.raw)
}

type searchRequest struct {
	Postcode string     `json:"postcode"`
	Limit    LimitParam `json:"limit"`
	Gender   string     `json:"gender"`
	Rating   string     `json:"rating"`
	SENTerms string     `json:"senTerms"`
}

func (r searchRequest) query() (schools.Query, error) {
	limit, err := r.Limit.Value()
	if err != nil {
		return schools.Query{}, err
	}

	return schools.Query{
		Postcode: r.Postcode,
		Limit:    limit,
		Filters: schools.Filters{
			Gender:   r.Gender,
			Rating:   r.Rating,
			SENTerms: schools.ParseSENTerms(r.SENTerms),
		},
	}, nil
}

type resultJSON struct {
	Rank              int     `json:"rank"`
	Name              string  `json:"name"`
	Street            string  `json:"street"`
	Town              string  `json:"town"`
	Postcode          string  `json:"postcode"`
	Phone             string  `json:"phone"`
	Gender            string  `json:"gender"`
	HasSpecialClasses string  `json:"hasSpecialClasses"`
	Rating            string  `json:"rating"`
	SENCategories     string  `json:"senCategories"`
	Latitude          float64 `json:"latitude"`
	Longitude         float64 `json:"longitude"`
	Distance          float64 `json:"distance"`
}

type searchResponse struct {
	Postcode string       `json:"postcode"`
	Origin   originJSON   `json:"origin"`
	Unit     string       `json:"unit"`
	Results  []resultJSON `json:"results"`
}

type originJSON struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func newSearchResponse(resp *schools.Response) searchResponse {
	out := searchResponse{
		Postcode: resp.Query.Postcode,
		Origin:   originJSON{Lat: resp.Origin.Lat, Lng: resp.Origin.Lng},
		Unit:     string(resp.Policy.Unit),
		Results:  make([]resultJSON, 0, len(resp.Results)),
	}

	for _, r := range resp.Results {
		out.Results = append(out.Results, resultJSON{
			Rank:              r.Rank,
			Name:              r.Name,
			Street:            r.Street,
			Town:              r.Town,
			Postcode:          r.Postcode,
			Phone:             r.Phone,
			Gender:            r.Gender,
			HasSpecialClasses: r.HasSpecialClasses,
			Rating:            r.Rating,
			SENCategories:     r.SENCategories,
			Latitude:          r.Latitude,
			Longitude:         r.Longitude,
			Distance:          r.Distance,
		})
	}

	return out
}

// statusFor maps a search failure to an HTTP status.
func statusFor(err error) int {
	switch schools.KindOf(err) {
	case schools.KindInvalidRequest:
		return http.StatusBadRequest
	case schools.KindGeocodingFailed:
		if geocoding.IsInvalidPostcode(err) {
			return http.StatusBadRequest
		}

		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorMessage(err error) string {
	var se *schools.SearchError
	if errors.As(err, &se) {
		return se.Message
	}

	return err.Error()
}

func abortWithError(ctx *gin.Context, err error) {
	ctx.JSON(statusFor(err), gin.H{
		"kind":    schools.KindOf(err).String(),
		"message": errorMessage(err),
	})
}

// bindSearch decodes the request body and runs the search.
func (s *Server) bindSearch(ctx *gin.Context, policy schools.DistancePolicy) (*schools.Response, bool) {
	var req searchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{
			"kind":    schools.KindInvalidRequest.String(),
			"message": "invalid request body: " + err.Error(),
		})

		return nil, false
	}

	q, err := req.query()
	if err != nil {
		abortWithError(ctx, err)

		return nil, false
	}

	resp, err := s.searcher.Search(ctx.Request.Context(), q, policy)
	if err != nil {
		abortWithError(ctx, err)

		return nil, false
	}

	return resp, true
}

func (s *Server) apiSearch(ctx *gin.Context) {
	resp, ok := s.bindSearch(ctx, s.milesPolicy())
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, newSearchResponse(resp))
}

func (s *Server) apiMap(ctx *gin.Context) {
	resp, ok := s.bindSearch(ctx, s.milesPolicy())
	if !ok {
		return
	}

	ctx.Header("Content-Type", "application/geo+json")
	ctx.JSON(http.StatusOK, schools.BuildMap(resp.Origin, resp.Results, resp.Policy).GeoJSON())
}
