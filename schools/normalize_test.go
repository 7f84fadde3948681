// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"nan", ""},
		{"NaN", ""},
		{"2071234567", "2071234567"},
		{"2071234567.0", "2071234567"},
		{"2.071234567E9", "2071234567"},
		{" 1234.9 ", "1234"},
		{"020 7123 4567", "020 7123 4567"},
		{"+44 20 7123 4567", "+44 20 7123 4567"},
		{"inf", "inf"},
		{"-0.4", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.raw))
		})
	}
}

func TestNormalizeCoordinate(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"51.5074", 51.5074},
		{" -0.1278 ", -0.1278},
		{"", 0},
		{"n/a", 0},
		{"NaN", 0},
		{"Inf", 0},
		{"1e400", 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, NormalizeCoordinate(tt.raw), 1e-12, "NormalizeCoordinate(%q)", tt.raw)
	}
}

func TestNormalizeDropsOffGlobeCoordinates(t *testing.T) {
	raw := &RawTable{
		Header: []string{"EstablishmentName", "Latitude", "Longitude"},
		Records: [][]string{
			{"Polar", "95", "-0.14"},
			{"Dateline", "51.5", "200"},
			{"Valid", "51.5", "-0.14"},
		},
	}

	table, err := Normalize("mem", raw)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	for i := range 2 {
		s := table.At(i)
		assert.False(t, s.HasLocation(), s.Name)
		assert.Zero(t, s.Latitude, s.Name)
		assert.Zero(t, s.Longitude, s.Name)
		assert.Zero(t, s.Cell, s.Name)
	}

	assert.True(t, table.At(2).HasLocation())
	assert.Equal(t, 1, table.Located())
}

func TestResolveColumnsLegacyHeaders(t *testing.T) {
	header := []string{
		"EstablishmentName", "Street", "Town", "Postcode", "TelephoneNum",
		"Gender (name)", "SpecialClasses (name)", "HeadTitle (name)", "OfstedRating (name)",
		"AllSEN", "Latitude", "Longitude",
	}

	cols := resolveColumns(header)

	assert.Equal(t, 5, cols[ColGender])
	assert.Equal(t, 6, cols[ColHasSpecialClasses])
	assert.Equal(t, 7, cols[ColHeadTitle])
	assert.Equal(t, 8, cols[ColRating])
	assert.Len(t, cols, len(CanonicalColumns))
}

func TestResolveColumnsCanonicalWins(t *testing.T) {
	cols := resolveColumns([]string{"Gender (name)", "Gender", "OfstedRating (name)"})

	assert.Equal(t, 1, cols[ColGender])
	assert.Equal(t, 2, cols[ColRating])
}

func TestResolveColumnsFolded(t *testing.T) {
	cols := resolveColumns([]string{" establishmentname ", "LATITUDE", "ofstedrating  (name)", "Latitude"})

	assert.Equal(t, 0, cols[ColName])
	assert.Equal(t, 3, cols[ColLatitude], "exact match beats a folded one")
	assert.Equal(t, 2, cols[ColRating])
}

func TestNormalizeFillsMissingColumns(t *testing.T) {
	raw := &RawTable{
		Header: []string{"EstablishmentName", "Latitude", "Longitude", "TelephoneNum", "Gender (name)"},
		Records: [][]string{
			{"Alpha Primary", "51.5", "-0.12", "2071234567.0", "Mixed"},
			{"Beta Academy", "", "-0.13"},
			{"", "", "", "", ""},
			{"Gamma School", "bad", "-0.14", "nan", "Girls"},
		},
	}

	table, err := Normalize("test", raw)
	require.NoError(t, err)

	want := []School{
		{Name: "Alpha Primary", Latitude: 51.5, Longitude: -0.12, Phone: "2071234567", Gender: "Mixed"},
		{Name: "Beta Academy", Longitude: -0.13},
		{Name: "Gamma School", Longitude: -0.14, Gender: "Girls"},
	}

	got := make([]School, 0, table.Len())
	for s := range table.All() {
		got = append(got, s)
	}

	if diff := cmp.Diff(want, got, cmpopts.IgnoreFields(School{}, "Cell")); diff != "" {
		t.Errorf("Normalize() mismatch (-expected +got):\n%s", diff)
	}

	assert.NotZero(t, table.At(0).Cell)
	assert.Zero(t, table.At(1).Cell)
	assert.Equal(t, 1, table.Located())
	assert.Equal(t, "test", table.Source())
}

func TestNormalizeRequiresHeader(t *testing.T) {
	_, err := Normalize("empty", &RawTable{})
	assert.ErrorIs(t, err, errNoHeader)
}
