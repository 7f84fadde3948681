// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

package schools

import (
	"strings"
)

// Filters restricts the candidate schools. Zero values do not filter.
type Filters struct {
	// Gender must equal School.Gender exactly.
	Gender string
	// Rating must equal School.Rating exactly.
	Rating string
	// SENTerms are lowercase substrings; a school matches if any of them
	// occurs in its SEN categories.
	SENTerms []string
}

// ParseSENTerms splits a comma separated list into trimmed lowercase terms.
func ParseSENTerms(raw string) []string {
	var terms []string

	for t := range strings.SplitSeq(raw, ",") {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			terms = append(terms, t)
		}
	}

	return terms
}

// Match reports whether s satisfies every active filter.
func (f Filters) Match(s School) bool {
	if f.Gender != "" && s.Gender != f.Gender {
		return false
	}

	if f.Rating != "" && s.Rating != f.Rating {
		return false
	}

	if len(f.SENTerms) == 0 {
		return true
	}

	sen := strings.ToLower(s.SENCategories)
	for _, term := range f.SENTerms {
		if strings.Contains(sen, term) {
			return true
		}
	}

	return false
}

// Apply returns the schools matching f, in input order.
func (f Filters) Apply(schools []School) []School {
	out := make([]School, 0, len(schools))

	for _, s := range schools {
		if f.Match(s) {
			out = append(out, s)
		}
	}

	return out
}

// FilterTable applies f to every row of t.
func FilterTable(t *Table, f Filters) []School {
	return f.Apply(t.schools)
}
