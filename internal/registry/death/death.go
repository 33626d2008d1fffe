// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/ontvitals/internal/familytree"
)

// Key identifies a death registration.
type Key struct {
	Domain  string `json:"domain"`
	RegYear int    `json:"reg_year"`
	RegNum  int    `json:"reg_num"`
}

// Detail returns the citation detail of the registration ("CAON 1887-12").
func (k Key) Detail() string {
	return fmt.Sprintf("%s %d-%d", k.Domain, k.RegYear, k.RegNum)
}

var detailPattern = regexp.MustCompile(`^([A-Z]{4,5}) (\d{4})-(\d+)$`)

// ParseDetail reverses [Key.Detail].
func ParseDetail(detail string) (Key, bool) {
	match := detailPattern.FindStringSubmatch(strings.TrimSpace(detail))
	if match == nil {
		return Key{}, false
	}
	year, _ := strconv.Atoi(match[2])
	num, err := strconv.Atoi(match[3])
	if err != nil {
		return Key{}, false
	}
	return Key{Domain: match[1], RegYear: year, RegNum: num}, true
}

// Death is one transcribed death registration.
type Death struct {
	Key

	// MsVol is the archive microfilm volume the registration was read from.
	MsVol    string `json:"ms_vol"`
	County   string `json:"county"`
	Township string `json:"township"`

	Surname    string `json:"surname"`
	GivenNames string `json:"given_names"`
	// Sex is M, F or ?.
	Sex        string `json:"sex"`
	Date       string `json:"date"`
	Place      string `json:"place"`
	Age        string `json:"age"`
	BirthDate  string `json:"birth_date"`
	BirthPlace string `json:"birth_place"`
	Occupation string `json:"occupation"`
	// MarStat is S, M, W, D or empty.
	MarStat    string `json:"mar_stat"`
	Religion   string `json:"religion"`
	FatherName string `json:"father_name"`
	MotherName string `json:"mother_name"`
	Cause      string `json:"cause"`
	Duration   string `json:"duration"`
	Informant  string `json:"informant"`
	InfoRel    string `json:"info_rel"`
	Physician  string `json:"physician"`
	Registrar  string `json:"registrar"`
	RegDate    string `json:"reg_date"`
	Remarks    string `json:"remarks"`
	Image      string `json:"image"`

	// IDIR links the deceased to the family tree, 0 when unlinked.
	IDIR int64 `json:"idir"`

	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns a blank registration for key, as shown when it is not transcribed yet.
func New(key Key) *Death {
	return &Death{Key: key, Sex: "?"}
}

// Blank reports whether nothing but the key has been transcribed.
func (d *Death) Blank() bool {
	return d.Surname == "" && d.GivenNames == "" && d.Date == "" && d.IDIR == 0
}

var fourDigits = regexp.MustCompile(`\b(\d{4})\b`)

// ReferenceYear is the year the stated age refers to: the year of death when
// the date carries one, otherwise the registration year.
func (d *Death) ReferenceYear() int {
	if match := fourDigits.FindStringSubmatch(d.Date); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year
	}
	return d.RegYear
}

// MatchQuery describes the deceased to the family tree matcher.
func (d *Death) MatchQuery() familytree.Query {
	return familytree.Query{
		Surname:       d.Surname,
		GivenNames:    d.GivenNames,
		Father:        d.FatherName,
		Role:          familytree.RoleFromSex(d.Sex),
		BirthDate:     d.BirthDate,
		Age:           d.Age,
		ReferenceYear: d.ReferenceYear(),
	}
}

// Columns are the form inputs of the detail page, lower case.
var Columns = []string{
	"msvol", "county", "township", "surname", "givennames", "sex", "date", "place",
	"age", "birthdate", "birthplace", "occupation", "marstat", "religion",
	"fathername", "mothername", "cause", "duration", "informant", "inforel",
	"physician", "registrar", "regdate", "remarks", "image", "idir",
}

// Set assigns one form input. Unknown columns are ignored.
func (d *Death) Set(column, value string) {
	switch column {
	case "msvol":
		d.MsVol = value
	case "county":
		d.County = value
	case "township":
		d.Township = value
	case "surname":
		d.Surname = value
	case "givennames":
		d.GivenNames = value
	case "sex":
		d.Sex = strings.ToUpper(value)
	case "date":
		d.Date = value
	case "place":
		d.Place = value
	case "age":
		d.Age = value
	case "birthdate":
		d.BirthDate = value
	case "birthplace":
		d.BirthPlace = value
	case "occupation":
		d.Occupation = value
	case "marstat":
		d.MarStat = strings.ToUpper(value)
	case "religion":
		d.Religion = value
	case "fathername":
		d.FatherName = value
	case "mothername":
		d.MotherName = value
	case "cause":
		d.Cause = value
	case "duration":
		d.Duration = value
	case "informant":
		d.Informant = value
	case "inforel":
		d.InfoRel = value
	case "physician":
		d.Physician = value
	case "registrar":
		d.Registrar = value
	case "regdate":
		d.RegDate = value
	case "remarks":
		d.Remarks = value
	case "image":
		d.Image = value
	case "idir":
		d.IDIR, _ = strconv.ParseInt(value, 10, 64)
	}
}

// Filter selects registrations on the query page.
type Filter struct {
	Domain  string
	RegYear int
	// RegNum starts the listing at this registration number.
	RegNum     int
	Surname    string
	Soundex    bool
	GivenNames string
	County     string
	Township   string
}

// Field names for validation.
const (
	FieldDomain  = "domain"
	FieldRegYear = "regyear"
	FieldRegNum  = "regnum"
	FieldSex     = "sex"
	FieldMarStat = "marstat"
	FieldSurname = "surname"
)
