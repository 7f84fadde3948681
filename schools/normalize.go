// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"math"
	"strconv"
	"strings"

	"github.com/jcodagnone/schoolfinder/spatial"
)

// NormalizePhone renders numeric phone cells as plain digit strings.
// Spreadsheets store numbers like 1234567890 as 1234567890.0 or 1.23456789E9;
// anything that does not parse as a finite number is kept as written.
func NormalizePhone(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" || strings.EqualFold(s, "nan") {
		return ""
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}

	t := math.Trunc(f)
	if t == 0 {
		t = 0 // drop the sign of -0
	}

	return strconv.FormatFloat(t, 'f', 0, 64)
}

// NormalizeCoordinate parses a coordinate cell. Unparseable values become the
// 0.0 unknown-location sentinel.
func NormalizeCoordinate(raw string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0
	}

	return f
}

func normalizeRow(cols columnIndex, record []string) School {
	s := School{
		Name:              cols.get(record, ColName),
		Street:            cols.get(record, ColStreet),
		Town:              cols.get(record, ColTown),
		Postcode:          cols.get(record, ColPostcode),
		Phone:             NormalizePhone(cols.get(record, ColPhone)),
		Gender:            cols.get(record, ColGender),
		HeadTitle:         cols.get(record, ColHeadTitle),
		HasSpecialClasses: cols.get(record, ColHasSpecialClasses),
		Rating:            cols.get(record, ColRating),
		SENCategories:     cols.get(record, ColSEN),
		Latitude:          NormalizeCoordinate(cols.get(record, ColLatitude)),
		Longitude:         NormalizeCoordinate(cols.get(record, ColLongitude)),
	}

	// A coordinate pair that cannot be on the globe is as good as missing.
	if !s.Point().InRange() {
		s.Latitude, s.Longitude = 0, 0
	}

	s.Cell = spatial.CellOf(s.Point())

	return s
}

// isBlank reports whether every cell of record is empty.
func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}

	return true
}
