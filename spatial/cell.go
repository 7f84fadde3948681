// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package spatial

import (
	"github.com/uber/h3-go/v4"
)

// CellResolution is the H3 resolution attached to schools (~0.1 km² cells).
const CellResolution = 9

// CellOf returns the H3 cell containing p, or 0 for an unknown location.
func CellOf(p Point) h3.Cell {
	if p.IsUnknown() || p.Lat < -90 || p.Lat > 90 || p.Lng < -180 || p.Lng > 180 {
		return 0
	}

	cell, err := h3.LatLngToCell(h3.NewLatLng(p.Lat, p.Lng), CellResolution)
	if err != nil {
		return 0
	}

	return cell
}

// CellString renders a cell as its hex index, or "" for the zero cell.
func CellString(c h3.Cell) string {
	if c == 0 {
		return ""
	}

	return c.String()
}
