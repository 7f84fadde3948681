// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"github.com/jcodagnone/schoolfinder/utils/textutils"
)

// SchemaVersion identifies the column mapping below. Bump it when a new
// export format needs entries in legacyColumns.
const SchemaVersion = 2

// Canonical column names.
const (
	ColName              = "EstablishmentName"
	ColStreet            = "Street"
	ColTown              = "Town"
	ColPostcode          = "Postcode"
	ColPhone             = "TelephoneNum"
	ColGender            = "Gender"
	ColHeadTitle         = "HeadTitle"
	ColHasSpecialClasses = "HasSpecialClasses"
	ColRating            = "Rating"
	ColSEN               = "AllSEN"
	ColLatitude          = "Latitude"
	ColLongitude         = "Longitude"
)

// CanonicalColumns lists the columns in the order used by exports.
var CanonicalColumns = []string{
	ColName, ColStreet, ColTown, ColPostcode, ColPhone, ColGender,
	ColHeadTitle, ColHasSpecialClasses, ColRating, ColSEN, ColLatitude, ColLongitude,
}

// legacyColumns maps the "(name)" headers of the Edubase style export to
// canonical columns.
var legacyColumns = map[string]string{
	"SpecialClasses (name)": ColHasSpecialClasses,
	"Gender (name)":         ColGender,
	"HeadTitle (name)":      ColHeadTitle,
	"OfstedRating (name)":   ColRating,
}

// columnIndex maps a canonical column to its position in a source header.
type columnIndex map[string]int

// resolveColumns matches header against the canonical and legacy names.
// Exact matches win over folded ones and canonical headers win over legacy ones.
func resolveColumns(header []string) columnIndex {
	canonical := make(map[string]string, len(CanonicalColumns))
	for _, c := range CanonicalColumns {
		canonical[c] = c
	}

	passes := []struct {
		names map[string]string
		fold  bool
	}{
		{canonical, false},
		{legacyColumns, false},
		{foldKeys(canonical), true},
		{foldKeys(legacyColumns), true},
	}

	cols := make(columnIndex, len(CanonicalColumns))

	for _, p := range passes {
		for i, h := range header {
			if p.fold {
				h = textutils.LowerASCIIFolding(h)
			}

			target, ok := p.names[h]
			if !ok {
				continue
			}

			if _, taken := cols[target]; !taken {
				cols[target] = i
			}
		}
	}

	return cols
}

func foldKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[textutils.LowerASCIIFolding(k)] = v
	}

	return out
}

// get returns the cell of record under column, or "" when the column or the
// cell is missing.
func (c columnIndex) get(record []string, column string) string {
	i, ok := c[column]
	if !ok || i >= len(record) {
		return ""
	}

	return record[i]
}
