// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"math"
	"slices"

	"github.com/jcodagnone/schoolfinder/spatial"
)

// DistancePolicy fixes how an endpoint measures and reports distances.
type DistancePolicy struct {
	Method    spatial.Method
	Unit      spatial.Unit
	Precision int
}

var (
	// MilesPolicy reports whole miles.
	MilesPolicy = DistancePolicy{Method: spatial.Geodesic, Unit: spatial.Miles, Precision: 0}
	// KilometersPolicy reports kilometers with two decimals.
	KilometersPolicy = DistancePolicy{Method: spatial.Geodesic, Unit: spatial.Kilometers, Precision: 2}
)

// WithMethod returns a copy of p measuring with m.
func (p DistancePolicy) WithMethod(m spatial.Method) DistancePolicy {
	p.Method = m

	return p
}

// Measure returns the rounded distance from origin to to.
func (p DistancePolicy) Measure(origin, to spatial.Point) float64 {
	return spatial.Round(spatial.Distance(origin, to, p.Method, p.Unit), p.Precision)
}

// RankedResult is a school with its reported distance from the origin.
type RankedResult struct {
	School
	// Distance is in the policy unit, already rounded.
	Distance float64
	// Rank is 1-based.
	Rank int
}

// Rank orders the located candidates by distance from origin and keeps the
// nearest limit. Ties keep candidate order. Schools with an unknown location
// are skipped, as are schools whose distance cannot be measured.
func Rank(candidates []School, origin spatial.Point, limit int, policy DistancePolicy) []RankedResult {
	results := make([]RankedResult, 0, len(candidates))

	for _, s := range candidates {
		if !s.HasLocation() {
			continue
		}

		d := policy.Measure(origin, s.Point())
		if math.IsNaN(d) || math.IsInf(d, 0) {
			continue
		}

		results = append(results, RankedResult{School: s, Distance: d})
	}

	slices.SortStableFunc(results, func(a, b RankedResult) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		default:
			return 0
		}
	})

	if limit < 0 {
		limit = 0
	}

	if len(results) > limit {
		results = results[:limit]
	}

	for i := range results {
		results[i].Rank = i + 1
	}

	return results
}
