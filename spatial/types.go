// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package spatial measures distances between WGS-84 coordinates.
package spatial

import (
	"fmt"
	"math"
	"strings"
)

// Point is a WGS-84 coordinate in decimal degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the point as "lat,lng".
func (p Point) String() string {
	return fmt.Sprintf("%f,%f", p.Lat, p.Lng)
}

// IsUnknown reports whether either axis holds the 0.0 sentinel used by the
// dataset for a missing or unparseable coordinate.
func (p Point) IsUnknown() bool {
	return p.Lat == 0 || p.Lng == 0
}

// InRange reports whether both axes are finite and within ±90 latitude and
// ±180 longitude.
func (p Point) InRange() bool {
	return !math.IsNaN(p.Lat) && !math.IsNaN(p.Lng) &&
		math.Abs(p.Lat) <= 90 && math.Abs(p.Lng) <= 180
}

// Unit is the unit a distance is reported in.
type Unit string

const (
	Miles      Unit = "miles"
	Kilometers Unit = "km"
)

const metersPerMile = 1609.344

// FromMeters converts a distance in meters to u.
func (u Unit) FromMeters(m float64) float64 {
	switch u {
	case Kilometers:
		return m / 1000
	default:
		return m / metersPerMile
	}
}

// Method selects the distance formula.
type Method string

const (
	// Geodesic is the shortest path on the WGS-84 ellipsoid.
	Geodesic Method = "geodesic"
	// Haversine treats the earth as a sphere. Faster, off by up to ~0.5%.
	Haversine Method = "haversine"
)

// ParseMethod validates a method name coming from flags or config.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "", Geodesic:
		return Geodesic, nil
	case Haversine:
		return Haversine, nil
	default:
		return "", fmt.Errorf("unknown distance method %q (want %s or %s)", s, Geodesic, Haversine)
	}
}
