// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package names normalizes transcribed personal names for comparison.
//
// # Usage
//
// Registrations are transcribed as written ("Marie-Josée", "JOHN  Henry"), while
// the family tree stores its own spelling. Both sides are folded with [Fold]
// before given-name tokens or surnames are compared.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Fold lower-cases s and strips accents (é → e) and surrounding space.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Converts to lowercase.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, err := transform.String(t, s)
	if err != nil {
		result = s
	}
	return strings.ToLower(strings.TrimSpace(result))
}

// Tokens splits given names into folded tokens, dropping duplicates and
// initials punctuation ("John H." → john, h). Hyphenated names stay whole.
func Tokens(given string) []string {
	fields := strings.FieldsFunc(Fold(given), func(r rune) bool {
		return unicode.IsSpace(r) || r == ',' || r == '.'
	})

	tokens := make([]string, 0, len(fields))
	seen := make(map[string]bool, len(fields))
	for _, field := range fields {
		if !seen[field] {
			seen[field] = true
			tokens = append(tokens, field)
		}
	}
	return tokens
}

// LastToken returns the last whitespace-delimited word of a full name,
// which is the surname in "John Henry Smith". It returns "" for an empty name.
func LastToken(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[len(fields)-1], ",.")
}

// Overlaps reports whether any token of a appears in b.
func Overlaps(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

// isMn reports whether r is a non-spacing mark (Unicode category Mn).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
