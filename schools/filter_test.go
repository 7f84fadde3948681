// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

var filterFixture = []School{
	{Name: "A", Gender: "Mixed", Rating: "Good", SENCategories: "Autism, ADHD"},
	{Name: "B", Gender: "Girls", Rating: "Outstanding", SENCategories: "Hearing impairment"},
	{Name: "C", Gender: "Mixed", Rating: "Outstanding", SENCategories: ""},
	{Name: "D", Gender: "Boys", Rating: "Good", SENCategories: "Visual Impairment; AUTISM"},
	{Name: "E", Gender: "mixed", Rating: "Good"},
}

func filterNames(schools []School) []string {
	out := []string{}
	for _, s := range schools {
		out = append(out, s.Name)
	}

	return out
}

func TestParseSENTerms(t *testing.T) {
	assert.Equal(t, []string{"autism", "adhd"}, ParseSENTerms(" Autism , ADHD,, "))
	assert.Nil(t, ParseSENTerms(""))
	assert.Nil(t, ParseSENTerms(" , ,"))
}

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"no filters", Filters{}, []string{"A", "B", "C", "D", "E"}},
		{"gender exact", Filters{Gender: "Mixed"}, []string{"A", "C"}},
		{"rating exact", Filters{Rating: "Good"}, []string{"A", "D", "E"}},
		{"gender and rating", Filters{Gender: "Mixed", Rating: "Outstanding"}, []string{"C"}},
		{"sen case insensitive", Filters{SENTerms: []string{"autism"}}, []string{"A", "D"}},
		{"sen or", Filters{SENTerms: []string{"adhd", "hearing"}}, []string{"A", "B"}},
		{"sen and gender", Filters{Gender: "Boys", SENTerms: []string{"autism", "hearing"}}, []string{"D"}},
		{"nothing matches", Filters{Gender: "Unknown"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filterNames(tt.filters.Apply(filterFixture))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Apply() mismatch (-expected +got):\n%s", diff)
			}
		})
	}
}

func TestSENFilterMatchesAnyTerm(t *testing.T) {
	f := Filters{SENTerms: ParseSENTerms("autism")}

	assert.True(t, f.Match(School{SENCategories: "Autism, ADHD"}))
	assert.False(t, f.Match(School{SENCategories: "Hearing impairment"}))
}

func TestFilterIsIdempotent(t *testing.T) {
	for _, f := range []Filters{
		{},
		{Gender: "Mixed"},
		{Rating: "Good", SENTerms: []string{"autism"}},
	} {
		once := f.Apply(filterFixture)
		twice := f.Apply(once)

		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("filter %+v not idempotent (-once +twice):\n%s", f, diff)
		}
	}
}

func TestFilterIgnoresCoordinates(t *testing.T) {
	f := Filters{Gender: "Mixed"}
	located := School{Gender: "Mixed", Latitude: 51.5, Longitude: -0.1}
	unknown := School{Gender: "Mixed"}

	assert.True(t, f.Match(located))
	assert.True(t, f.Match(unknown))
}

func TestFilterTable(t *testing.T) {
	table := NewTable("fixture", filterFixture)

	got := filterNames(FilterTable(table, Filters{Rating: "Outstanding"}))
	assert.Equal(t, []string{"B", "C"}, got)
}
