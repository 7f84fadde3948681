// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package schools loads the school dataset and answers proximity searches
// over it.
package schools

import (
	"iter"
	"slices"
	"time"

	"github.com/jcodagnone/schoolfinder/spatial"
	"github.com/uber/h3-go/v4"
)

// School is one normalized dataset row.
type School struct {
	Name              string
	Street            string
	Town              string
	Postcode          string
	Phone             string
	Gender            string
	HeadTitle         string
	HasSpecialClasses string
	Rating            string
	SENCategories     string
	Latitude          float64
	Longitude         float64
	// Cell is the H3 cell of the school, 0 when the location is unknown.
	Cell h3.Cell
}

// Point returns the school location.
func (s School) Point() spatial.Point {
	return spatial.Point{Lat: s.Latitude, Lng: s.Longitude}
}

// HasLocation reports whether both coordinates are known and on the globe.
func (s School) HasLocation() bool {
	p := s.Point()
	return !p.IsUnknown() && p.InRange()
}

// Address joins street and town the way the legacy API renders it.
func (s School) Address() string {
	return s.Street + ", " + s.Town
}

// Table is the loaded dataset. It is never mutated after construction, so a
// single instance is shared by all concurrent searches.
type Table struct {
	schools  []School
	source   string
	loadedAt time.Time
}

// NewTable builds a table owning a copy of schools.
func NewTable(source string, schools []School) *Table {
	return &Table{
		schools:  slices.Clone(schools),
		source:   source,
		loadedAt: time.Now(),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.schools)
}

// All iterates the rows in source order.
func (t *Table) All() iter.Seq[School] {
	return slices.Values(t.schools)
}

// At returns row i.
func (t *Table) At(i int) School {
	return t.schools[i]
}

// Source is the location the table was loaded from.
func (t *Table) Source() string {
	return t.source
}

// LoadedAt is when the table was built.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// Located returns how many rows carry a usable location.
func (t *Table) Located() int {
	n := 0

	for _, s := range t.schools {
		if s.HasLocation() {
			n++
		}
	}

	return n
}
