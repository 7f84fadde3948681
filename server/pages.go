// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package server

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jcodagnone/schoolfinder/schools"
)

const geocodeFailedMessage = "Invalid postcode or network issue. Please try again."

var templateFuncs = template.FuncMap{
	"orNA": func(s string) string {
		if strings.TrimSpace(s) == "" {
			return "N/A"
		}

		return s
	},
	"distance": schools.FormatDistance,
}

type pageData struct {
	Postcode string
	Limit    string
	Gender   string
	Ofsted   string
	SEN      string
	Error    string
	Searched bool
	Policy   schools.DistancePolicy
	Results  []schools.RankedResult
	MapJSON  template.JS
}

func (s *Server) indexView(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "index.html", pageData{Limit: "3"})
}

func (s *Server) indexSearch(ctx *gin.Context) {
	page := pageData{
		Postcode: strings.TrimSpace(ctx.PostForm("postcode")),
		Limit:    strings.TrimSpace(ctx.PostForm("limit")),
		Gender:   strings.TrimSpace(ctx.PostForm("gender")),
		Ofsted:   strings.TrimSpace(ctx.PostForm("ofsted")),
		SEN:      strings.TrimSpace(ctx.PostForm("sen")),
		Policy:   s.milesPolicy(),
	}

	limit, err := schools.ParseLimit(page.Limit)
	if err != nil {
		page.Error = errorMessage(err)
		ctx.HTML(statusFor(err), "index.html", page)

		return
	}

	q := schools.Query{
		Postcode: page.Postcode,
		Limit:    limit,
		Filters: schools.Filters{
			Gender:   page.Gender,
			Rating:   page.Ofsted,
			SENTerms: schools.ParseSENTerms(page.SEN),
		},
	}

	resp, err := s.searcher.Search(ctx.Request.Context(), q, page.Policy)
	if err != nil {
		page.Error = errorMessage(err)
		if schools.IsKind(err, schools.KindGeocodingFailed) {
			page.Error = geocodeFailedMessage
		}

		ctx.HTML(statusFor(err), "index.html", page)

		return
	}

	page.Searched = true
	page.Results = resp.Results

	if artifact := schools.BuildMap(resp.Origin, resp.Results, resp.Policy); artifact != nil {
		data, err := json.Marshal(artifact.GeoJSON())
		if err != nil {
			log.Printf("encoding map for %q: %v", q.Postcode, err)
		} else {
			// json.Marshal escapes <, > and & so the payload is safe inside <script>.
			page.MapJSON = template.JS(data)
		}
	}

	ctx.HTML(http.StatusOK, "index.html", page)
}
