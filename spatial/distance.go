// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"math"

	"github.com/tidwall/geodesic"
	"github.com/umahmood/haversine"
)

// DistanceMeters returns the distance between a and b in meters.
func DistanceMeters(a, b Point, method Method) float64 {
	if method == Haversine {
		_, km := haversine.Distance(
			haversine.Coord{Lat: a.Lat, Lon: a.Lng},
			haversine.Coord{Lat: b.Lat, Lon: b.Lng},
		)

		return km * 1000
	}

	var s12 float64

	geodesic.WGS84.Inverse(a.Lat, a.Lng, b.Lat, b.Lng, &s12, nil, nil)

	return s12
}

// Distance returns the distance between a and b expressed in unit.
func Distance(a, b Point, method Method, unit Unit) float64 {
	return unit.FromMeters(DistanceMeters(a, b, method))
}

// Round rounds v to the given number of decimals, ties to even.
func Round(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.RoundToEven(v)
	}

	p := math.Pow10(decimals)

	return math.RoundToEven(v*p) / p
}
