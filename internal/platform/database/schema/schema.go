// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package schema names the tables and columns of the vitals and tree schemas.
//
// Stores build their SQL from these definitions so a renamed column is a
// one-line change. The helpers below expand column lists for the wide
// transcription tables.
package schema

import (
	"fmt"
	"strings"
)

// List joins columns for a SELECT or INSERT column list, optionally qualified
// by a table alias ("d" → "d.surname").
func List(alias string, columns ...string) string {
	if alias == "" {
		return strings.Join(columns, ", ")
	}
	qualified := make([]string, len(columns))
	for i, column := range columns {
		qualified[i] = alias + "." + column
	}
	return strings.Join(qualified, ", ")
}

// Placeholders returns "$start, $start+1, ..." for count parameters.
func Placeholders(start, count int) string {
	marks := make([]string, count)
	for i := range marks {
		marks[i] = fmt.Sprintf("$%d", start+i)
	}
	return strings.Join(marks, ", ")
}

// Excluded returns "col = EXCLUDED.col, ..." for an ON CONFLICT DO UPDATE clause.
func Excluded(columns ...string) string {
	assignments := make([]string, len(columns))
	for i, column := range columns {
		assignments[i] = column + " = EXCLUDED." + column
	}
	return strings.Join(assignments, ", ")
}
