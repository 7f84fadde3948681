// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"fmt"
	"strconv"

	"github.com/jcodagnone/schoolfinder/spatial"
)

// Map styling.
const (
	MapZoom      = 12
	OriginColor  = "green"
	SchoolColor  = "red"
	LineColor    = "blue"
	LineWeight   = 2
	LineOpacity  = 0.6
	OriginLabel  = "You"
	markerOrigin = "origin"
	markerSchool = "school"
)

// Marker is a labelled point on the map.
type Marker struct {
	Kind     string
	Point    spatial.Point
	Label    string
	Color    string
	Rank     int
	Distance float64
	Cell     string
}

// Line connects the origin to a school.
type Line struct {
	From    spatial.Point
	To      spatial.Point
	Color   string
	Weight  int
	Opacity float64
}

// MapArtifact describes the results map: the origin marker first, then one
// marker and one line per result.
type MapArtifact struct {
	Center  spatial.Point
	Zoom    int
	Markers []Marker
	Lines   []Line
}

// FormatDistance renders d with the policy's unit and precision.
func FormatDistance(d float64, policy DistancePolicy) string {
	return strconv.FormatFloat(d, 'f', policy.Precision, 64) + " " + string(policy.Unit)
}

// BuildMap builds the map for results, or nil when there is nothing to show.
func BuildMap(origin spatial.Point, results []RankedResult, policy DistancePolicy) *MapArtifact {
	if len(results) == 0 {
		return nil
	}

	m := &MapArtifact{
		Center:  origin,
		Zoom:    MapZoom,
		Markers: make([]Marker, 0, len(results)+1),
		Lines:   make([]Line, 0, len(results)),
	}

	m.Markers = append(m.Markers, Marker{
		Kind:  markerOrigin,
		Point: origin,
		Label: OriginLabel,
		Color: OriginColor,
		Cell:  spatial.CellString(spatial.CellOf(origin)),
	})

	for _, r := range results {
		m.Markers = append(m.Markers, Marker{
			Kind:     markerSchool,
			Point:    r.Point(),
			Label:    fmt.Sprintf("%s (%s)", r.Name, FormatDistance(r.Distance, policy)),
			Color:    SchoolColor,
			Rank:     r.Rank,
			Distance: r.Distance,
			Cell:     spatial.CellString(r.Cell),
		})

		m.Lines = append(m.Lines, Line{
			From:    origin,
			To:      r.Point(),
			Color:   LineColor,
			Weight:  LineWeight,
			Opacity: LineOpacity,
		})
	}

	return m
}

// FeatureCollection is a GeoJSON feature collection. Center and Zoom are
// foreign members read by the map page.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
	Center   []float64 `json:"center,omitempty"`
	Zoom     int       `json:"zoom,omitempty"`
}

// Feature is a GeoJSON feature.
type Feature struct {
	Type       string         `json:"type"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a GeoJSON Point or LineString.
type Geometry struct {
	Type        string `json:"type"`
	Coordinates any    `json:"coordinates"`
}

func lngLat(p spatial.Point) []float64 {
	return []float64{p.Lng, p.Lat}
}

// GeoJSON renders m. A nil artifact renders as an empty collection.
func (m *MapArtifact) GeoJSON() FeatureCollection {
	fc := FeatureCollection{Type: "FeatureCollection", Features: []Feature{}}
	if m == nil {
		return fc
	}

	fc.Center = lngLat(m.Center)
	fc.Zoom = m.Zoom

	for _, l := range m.Lines {
		fc.Features = append(fc.Features, Feature{
			Type: "Feature",
			Geometry: Geometry{
				Type:        "LineString",
				Coordinates: [][]float64{lngLat(l.From), lngLat(l.To)},
			},
			Properties: map[string]any{
				"kind":    "line",
				"color":   l.Color,
				"weight":  l.Weight,
				"opacity": l.Opacity,
			},
		})
	}

	for _, mk := range m.Markers {
		props := map[string]any{
			"kind":  mk.Kind,
			"label": mk.Label,
			"color": mk.Color,
		}

		if mk.Cell != "" {
			props["h3"] = mk.Cell
		}

		if mk.Kind == markerSchool {
			props["rank"] = mk.Rank
			props["distance"] = mk.Distance
		}

		fc.Features = append(fc.Features, Feature{
			Type:       "Feature",
			Geometry:   Geometry{Type: "Point", Coordinates: lngLat(mk.Point)},
			Properties: props,
		})
	}

	return fc
}
