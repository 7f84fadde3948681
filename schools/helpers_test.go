// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"context"
	"sync"

	"github.com/jcodagnone/schoolfinder/geocoding"
	"github.com/jcodagnone/schoolfinder/spatial"
)

// origin sits in Westminster; degreesPerMile moves a point north along its
// meridian by roughly one statute mile.
var origin = spatial.Point{Lat: 51.501009, Lng: -0.141588}

const degreesPerMile = 1 / 69.05

func northOf(p spatial.Point, miles float64) (float64, float64) {
	return p.Lat + miles*degreesPerMile, p.Lng
}

func schoolAt(name string, miles float64) School {
	lat, lng := northOf(origin, miles)

	return School{Name: name, Latitude: lat, Longitude: lng, Cell: spatial.CellOf(spatial.Point{Lat: lat, Lng: lng})}
}

type fakeGeocoder struct {
	mu       sync.Mutex
	result   *geocoding.Result
	err      error
	calls    int
	deadline bool
}

func (f *fakeGeocoder) Geocode(ctx context.Context, postcode string) (*geocoding.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	_, f.deadline = ctx.Deadline()

	if f.err != nil {
		return nil, f.err
	}

	res := *f.result
	res.Postcode = postcode

	return &res, nil
}

func resolvesTo(p spatial.Point) *fakeGeocoder {
	return &fakeGeocoder{result: &geocoding.Result{Latitude: p.Lat, Longitude: p.Lng, Provider: "fake"}}
}

func names(results []RankedResult) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}

	return out
}
