// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/ontvitals/internal/familytree"
)

// Baptism is one entry of a Wesleyan Methodist baptism register.
type Baptism struct {
	// IDMB is assigned when the entry is first saved; 0 for a new entry.
	IDMB   int64 `json:"idmb"`
	Volume int   `json:"volume"`
	Page   int   `json:"page"`

	District     string `json:"district"`
	Area         string `json:"area"`
	GivenName    string `json:"given_name"`
	Surname      string `json:"surname"`
	Father       string `json:"father"`
	Mother       string `json:"mother"`
	Residence    string `json:"residence"`
	BirthPlace   string `json:"birth_place"`
	BirthDate    string `json:"birth_date"`
	BaptismDate  string `json:"baptism_date"`
	BaptismPlace string `json:"baptism_place"`
	Minister     string `json:"minister"`

	IDIR int64 `json:"idir"`

	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Detail returns the citation detail of the entry, its IDMB.
func (b *Baptism) Detail() string {
	return strconv.FormatInt(b.IDMB, 10)
}

// ParseDetail reverses [Baptism.Detail].
func ParseDetail(detail string) (int64, bool) {
	idmb, err := strconv.ParseInt(strings.TrimSpace(detail), 10, 64)
	return idmb, err == nil && idmb > 0
}

var fourDigits = regexp.MustCompile(`\b(\d{4})\b`)

// ReferenceYear is the year of the baptism date, 0 when it has none.
func (b *Baptism) ReferenceYear() int {
	if match := fourDigits.FindStringSubmatch(b.BaptismDate); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year
	}
	return 0
}

// MatchQuery describes the baptized child to the family tree matcher.
//
// The register does not record the sex. The window keeps the sexed
// tolerance around the birth year, or around the baptism year when the
// birth date has none.
func (b *Baptism) MatchQuery() familytree.Query {
	return familytree.Query{
		Surname:       b.Surname,
		GivenNames:    b.GivenName,
		Father:        b.Father,
		Role:          familytree.RoleUnknown,
		BirthDate:     b.BirthDate,
		ReferenceYear: b.ReferenceYear(),
		Delta:         familytree.SexedDelta,
	}
}

// Columns are the form inputs of the detail page, lower case.
var Columns = []string{
	"volume", "page", "district", "area", "givenname", "surname", "father", "mother",
	"residence", "birthplace", "birthdate", "baptismdate", "baptismplace", "minister", "idir",
}

// Set assigns one form input. Unknown columns are ignored.
func (b *Baptism) Set(column, value string) {
	switch column {
	case "volume":
		b.Volume, _ = strconv.Atoi(value)
	case "page":
		b.Page, _ = strconv.Atoi(value)
	case "district":
		b.District = value
	case "area":
		b.Area = value
	case "givenname":
		b.GivenName = value
	case "surname":
		b.Surname = value
	case "father":
		b.Father = value
	case "mother":
		b.Mother = value
	case "residence":
		b.Residence = value
	case "birthplace":
		b.BirthPlace = value
	case "birthdate":
		b.BirthDate = value
	case "baptismdate":
		b.BaptismDate = value
	case "baptismplace":
		b.BaptismPlace = value
	case "minister":
		b.Minister = value
	case "idir":
		b.IDIR, _ = strconv.ParseInt(value, 10, 64)
	}
}

// Filter selects entries on the query page.
type Filter struct {
	Volume    int
	Page      int
	Surname   string
	Soundex   bool
	GivenName string
	District  string
}

// Field names for validation.
const (
	FieldVolume  = "volume"
	FieldPage    = "page"
	FieldSurname = "surname"
)
