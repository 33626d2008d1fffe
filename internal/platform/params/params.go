// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package params reads the query-string and form parameters of a record page.

Every record page accepts a known vocabulary of column names (regyear, regnum,
surname, itemno, ...). Parse lower-cases each incoming key, routes its value to
the [Rule] registered for that column and collects the outcome in [Values]:

  - Accepted values, available through typed getters.
  - Messages: rejected values. The page shows them and skips the update.
  - Warnings: keys outside the vocabulary. Shown only in debug mode.

Spreadsheet-style forms post one input per cell, named column plus row number
("surname12", "GivenNames12"). Keys of that shape are grouped into [Row]s.

A Values is built per request and is not safe for concurrent use.
*/
package params

import (
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// maxFormMemory bounds the in-memory part of a multipart form.
const maxFormMemory = 8 << 20

// rowKey splits "surname12" into column "surname" and row 12.
var rowKey = regexp.MustCompile(`^([a-z_]+?)(\d+)$`)

// Schema maps a lower-case column name to the rule validating its values.
type Schema map[string]Rule

// With returns a new Schema holding the columns of s and of every other schema.
// Later schemas win on duplicate columns.
func (s Schema) With(others ...Schema) Schema {
	merged := make(Schema, len(s))
	for column, rule := range s {
		merged[column] = rule
	}
	for _, other := range others {
		for column, rule := range other {
			merged[column] = rule
		}
	}
	return merged
}

// Common is accepted by every page.
var Common = Schema{
	"lang":  Lang(),
	"debug": Flag(),
}

// Paging is accepted by every query response page.
var Paging = Schema{
	"offset": Digits(0, 1_000_000),
	"count":  Digits(1, 1000),
	"limit":  Digits(1, 1000),
}

// # Values

// Values is the validated outcome of one request's parameters.
type Values struct {
	fields  map[string]string
	invalid map[string]string
	rows    map[int]map[string]string

	// Messages lists rejected values in the order they were read.
	Messages []apperr.FieldError
	// Warnings lists parameters outside the page vocabulary.
	Warnings []string
}

// Parse reads the request's query string and body and validates them against schema.
func Parse(request *http.Request, schema Schema) *Values {
	contentType, _, _ := mime.ParseMediaType(request.Header.Get("Content-Type"))
	if contentType == "multipart/form-data" {
		_ = request.ParseMultipartForm(maxFormMemory)
	} else {
		_ = request.ParseForm()
	}
	return ParseForm(request.Form, schema)
}

// ParseForm validates already decoded values against schema.
//
// When a key repeats, its last value wins.
func ParseForm(form url.Values, schema Schema) *Values {
	values := &Values{
		fields:  make(map[string]string),
		invalid: make(map[string]string),
		rows:    make(map[int]map[string]string),
	}

	// Deterministic order keeps messages and warnings stable between requests.
	keys := make([]string, 0, len(form))
	for key := range form {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		raw := ""
		if list := form[key]; len(list) > 0 {
			raw = strings.TrimSpace(list[len(list)-1])
		}
		values.accept(key, raw, schema)
	}

	return values
}

func (v *Values) accept(key, raw string, schema Schema) {
	column := strings.ToLower(key)

	if rule, ok := schema[column]; ok {
		if value, ok := v.check(key, raw, rule); ok {
			v.fields[column] = value
		} else {
			v.invalid[column] = raw
		}
		return
	}

	if match := rowKey.FindStringSubmatch(column); match != nil {
		if rule, ok := schema[match[1]]; ok {
			num, err := strconv.Atoi(match[2])
			if err == nil {
				value, ok := v.check(key, raw, rule)
				if !ok {
					v.invalid[column] = raw
					return
				}
				row := v.rows[num]
				if row == nil {
					row = make(map[string]string)
					v.rows[num] = row
				}
				row[match[1]] = value
				return
			}
		}
	}

	v.Warnings = append(v.Warnings, fmt.Sprintf("Unexpected parameter %s=%q", key, raw))
}

func (v *Values) check(key, raw string, rule Rule) (string, bool) {
	if raw == "" {
		return "", true
	}
	value, problem := rule(raw)
	if problem != "" {
		v.Messages = append(v.Messages, apperr.FieldError{
			Field:   key,
			Message: fmt.Sprintf("invalid value %q: %s", raw, problem),
		})
		return "", false
	}
	return value, true
}

// Has reports whether the column was supplied with an acceptable value,
// including an empty one.
func (v *Values) Has(column string) bool {
	_, ok := v.fields[column]
	return ok
}

// String returns the accepted value of column, or def when absent or empty.
func (v *Values) String(column, def string) string {
	if value := v.fields[column]; value != "" {
		return value
	}
	return def
}

// Lookup returns the accepted value of column, empty included, and whether
// it was supplied.
func (v *Values) Lookup(column string) (string, bool) {
	value, ok := v.fields[column]
	return value, ok
}

// Int returns the accepted value of column as an int, or def when absent,
// empty or rejected.
func (v *Values) Int(column string, def int) int {
	value := v.fields[column]
	if value == "" {
		return def
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return n
}

// Bool reports whether a [Flag] column was switched on.
func (v *Values) Bool(column string) bool {
	return v.fields[column] == flagOn
}

// Invalid returns the raw text of a rejected column.
func (v *Values) Invalid(column string) (string, bool) {
	raw, ok := v.invalid[column]
	return raw, ok
}

// Rows returns the row-numbered groups in ascending row order.
func (v *Values) Rows() []Row {
	nums := make([]int, 0, len(v.rows))
	for num := range v.rows {
		nums = append(nums, num)
	}
	sort.Ints(nums)

	rows := make([]Row, 0, len(nums))
	for _, num := range nums {
		rows = append(rows, Row{Num: num, values: v.rows[num]})
	}
	return rows
}

// OK reports whether every supplied value was accepted.
func (v *Values) OK() bool {
	return len(v.Messages) == 0
}

// Err returns a VALIDATION_ERROR carrying every message, or nil.
func (v *Values) Err() error {
	if v.OK() {
		return nil
	}
	return apperr.ValidationError("Invalid parameters", v.Messages...)
}

// Fail records a page-level message for column, e.g. a missing required key.
func (v *Values) Fail(column, message string) {
	v.Messages = append(v.Messages, apperr.FieldError{Field: column, Message: message})
}

// # Rows

// Row is one line of a spreadsheet-style form.
type Row struct {
	Num    int
	values map[string]string
}

// Has reports whether the row carried column.
func (r Row) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// String returns the row's value for column, or def when absent or empty.
func (r Row) String(column, def string) string {
	if value := r.values[column]; value != "" {
		return value
	}
	return def
}

// Lookup returns the row's value for column and whether it was supplied.
func (r Row) Lookup(column string) (string, bool) {
	value, ok := r.values[column]
	return value, ok
}

// Int returns the row's value for column as an int, or def.
func (r Row) Int(column string, def int) int {
	n, err := strconv.Atoi(r.values[column])
	if err != nil {
		return def
	}
	return n
}
