// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/schoolfinder/geocoding"
	"github.com/jcodagnone/schoolfinder/schools"
)

// legacyRequest is the body of POST /find-schools.
type legacyRequest struct {
	Postcode   string     `json:"postcode"`
	NumSchools LimitParam `json:"num_schools"`
}

type legacySchool struct {
	EstablishmentName string  `json:"EstablishmentName"`
	Address           string  `json:"Address"`
	Postcode          string  `json:"Postcode"`
	TelephoneNum      string  `json:"TelephoneNum"`
	Latitude          float64 `json:"Latitude"`
	Longitude         float64 `json:"Longitude"`
	DistanceKm        float64 `json:"distance_km"`
}

func legacyError(err error) (int, string) {
	switch {
	case schools.IsKind(err, schools.KindInvalidRequest):
		return http.StatusBadRequest, errorMessage(err)
	case geocoding.IsInvalidPostcode(err):
		return http.StatusBadRequest, "Invalid postcode"
	case geocoding.IsMalformedResponse(err):
		return http.StatusBadRequest, "Could not retrieve coordinates"
	default:
		return statusFor(err), errorMessage(err)
	}
}

// findSchools serves the JSON API used by the older single page client.
// Distances are kilometers with two decimals.
func (s *Server) findSchools(ctx *gin.Context) {
	var req legacyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})

		return
	}

	if strings.TrimSpace(req.Postcode) == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Postcode is required"})

		return
	}

	limit, err := req.NumSchools.Value()
	if err != nil {
		status, msg := legacyError(err)
		ctx.JSON(status, gin.H{"error": msg})

		return
	}

	resp, err := s.searcher.Search(ctx.Request.Context(), schools.Query{Postcode: req.Postcode, Limit: limit}, s.kilometersPolicy())
	if err != nil {
		status, msg := legacyError(err)
		ctx.JSON(status, gin.H{"error": msg})

		return
	}

	out := make([]legacySchool, 0, len(resp.Results))
	for _, r := range resp.Results {
		out = append(out, legacySchool{
			EstablishmentName: r.Name,
			Address:           r.Address(),
			Postcode:          r.Postcode,
			TelephoneNum:      r.Phone,
			Latitude:          r.Latitude,
			Longitude:         r.Longitude,
			DistanceKm:        r.Distance,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"schools": out})
}
