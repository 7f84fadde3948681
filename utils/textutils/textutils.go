// Copyright 2025 The SchoolFinder Authors
// SPDX-License-Identifier: Apache-2.0

// Package textutils holds small string helpers shared by the loaders and the CLI.
package textutils

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	foldAccents = transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)

	englishPrinter = message.NewPrinter(language.English)
)

// LowerASCIIFolding lowercases s, strips diacritics and collapses runs of
// whitespace into a single space.
func LowerASCIIFolding(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(s)), " ")

	folded, _, err := transform.String(foldAccents, s)
	if err != nil {
		return s
	}

	return folded
}

// FormatInt renders n with comma thousands separators.
func FormatInt(n int) string {
	return englishPrinter.Sprint(n)
}
