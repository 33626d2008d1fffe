// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/taibuivan/ontvitals/internal/familytree"
)

// Participant roles, in page order.
const (
	RoleGroom    = "G"
	RoleBride    = "B"
	RoleMinister = "M"
)

// Roles lists the participants of every registration in page order.
var Roles = []string{RoleGroom, RoleBride, RoleMinister}

// Key identifies a marriage registration.
type Key struct {
	Domain  string `json:"domain"`
	RegYear int    `json:"reg_year"`
	RegNum  int    `json:"reg_num"`
}

// Detail returns the citation detail of one participant ("CAON 1887-12 G").
func (k Key) Detail(role string) string {
	return fmt.Sprintf("%s %d-%d %s", k.Domain, k.RegYear, k.RegNum, role)
}

func (k Key) Label() string {
	return fmt.Sprintf("%s %d-%d", k.Domain, k.RegYear, k.RegNum)
}

var detailPattern = regexp.MustCompile(`^([A-Z]{4,5}) (\d{4})-(\d+) ([GBM])$`)

// ParseDetail reverses [Key.Detail].
func ParseDetail(detail string) (Key, string, bool) {
	match := detailPattern.FindStringSubmatch(strings.TrimSpace(detail))
	if match == nil {
		return Key{}, "", false
	}
	year, _ := strconv.Atoi(match[2])
	num, err := strconv.Atoi(match[3])
	if err != nil {
		return Key{}, "", false
	}
	return Key{Domain: match[1], RegYear: year, RegNum: num}, match[4], true
}

// Marriage is one transcribed marriage registration and its participants.
type Marriage struct {
	Key

	MsVol    string `json:"ms_vol"`
	County   string `json:"county"`
	Township string `json:"township"`
	Place    string `json:"place"`
	Date     string `json:"date"`
	// LicenseType is L (licence) or B (banns).
	LicenseType string `json:"license_type"`
	Registrar   string `json:"registrar"`
	RegDate     string `json:"reg_date"`
	Remarks     string `json:"remarks"`
	Image       string `json:"image"`

	Participants []Participant `json:"participants"`

	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Participant is the groom, the bride or the officiating minister.
type Participant struct {
	Role        string `json:"role"`
	GivenNames  string `json:"given_names"`
	Surname     string `json:"surname"`
	Age         string `json:"age"`
	BYear       int    `json:"birth_year"`
	Residence   string `json:"residence"`
	BirthPlace  string `json:"birth_place"`
	MarStat     string `json:"mar_stat"`
	Occupation  string `json:"occupation"`
	FatherName  string `json:"father_name"`
	MotherName  string `json:"mother_name"`
	Religion    string `json:"religion"`
	WitnessName string `json:"witness_name"`
	WitnessRes  string `json:"witness_res"`
	IDIR        int64  `json:"idir"`
}

// New returns a registration for key with empty groom, bride and minister rows.
func New(key Key) *Marriage {
	marriage := &Marriage{Key: key, LicenseType: "L"}
	marriage.fill()
	return marriage
}

// fill adds the missing participants and puts them in page order.
func (m *Marriage) fill() {
	ordered := make([]Participant, 0, len(Roles))
	for _, role := range Roles {
		if p := m.Participant(role); p != nil {
			ordered = append(ordered, *p)
		} else {
			ordered = append(ordered, Participant{Role: role})
		}
	}
	m.Participants = ordered
}

// Participant returns the participant with role, or nil.
func (m *Marriage) Participant(role string) *Participant {
	for i := range m.Participants {
		if m.Participants[i].Role == role {
			return &m.Participants[i]
		}
	}
	return nil
}

var fourDigits = regexp.MustCompile(`\b(\d{4})\b`)

// ReferenceYear is the year of the marriage date, or else the registration year.
func (m *Marriage) ReferenceYear() int {
	if match := fourDigits.FindStringSubmatch(m.Date); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year
	}
	return m.RegYear
}

// MatchQuery describes participant p to the family tree matcher.
func (m *Marriage) MatchQuery(p *Participant) familytree.Query {
	query := familytree.Query{
		Surname:       p.Surname,
		GivenNames:    p.GivenNames,
		Father:        p.FatherName,
		Role:          familytree.RoleFromParticipant(p.Role),
		Age:           p.Age,
		ReferenceYear: m.ReferenceYear(),
	}
	if p.BYear > 0 {
		query.BirthDate = strconv.Itoa(p.BYear)
	}
	return query
}

// Name returns "Given Surname".
func (p Participant) Name() string {
	return strings.TrimSpace(p.GivenNames + " " + p.Surname)
}

// Columns are the header inputs of the detail page, lower case.
var Columns = []string{
	"msvol", "county", "township", "place", "date", "licensetype",
	"registrar", "regdate", "remarks", "image",
}

// Set assigns one header input. Unknown columns are ignored.
func (m *Marriage) Set(column, value string) {
	switch column {
	case "msvol":
		m.MsVol = value
	case "county":
		m.County = value
	case "township":
		m.Township = value
	case "place":
		m.Place = value
	case "date":
		m.Date = value
	case "licensetype":
		m.LicenseType = strings.ToUpper(value)
	case "registrar":
		m.Registrar = value
	case "regdate":
		m.RegDate = value
	case "remarks":
		m.Remarks = value
	case "image":
		m.Image = value
	}
}

// ParticipantColumns are the per-row inputs of the detail page.
var ParticipantColumns = []string{
	"givennames", "surname", "age", "byear", "residence", "birthplace", "marstat",
	"occupation", "fathername", "mothername", "religion", "witnessname", "witnessres", "idir",
}

// Set assigns one participant input. Unknown columns are ignored.
func (p *Participant) Set(column, value string) {
	switch column {
	case "givennames":
		p.GivenNames = value
	case "surname":
		p.Surname = value
	case "age":
		p.Age = value
	case "byear":
		p.BYear, _ = strconv.Atoi(value)
	case "residence":
		p.Residence = value
	case "birthplace":
		p.BirthPlace = value
	case "marstat":
		p.MarStat = strings.ToUpper(value)
	case "occupation":
		p.Occupation = value
	case "fathername":
		p.FatherName = value
	case "mothername":
		p.MotherName = value
	case "religion":
		p.Religion = value
	case "witnessname":
		p.WitnessName = value
	case "witnessres":
		p.WitnessRes = value
	case "idir":
		p.IDIR, _ = strconv.ParseInt(value, 10, 64)
	}
}

// Filter selects registrations on the query page. Surname and GivenNames
// match either the groom or the bride.
type Filter struct {
	Domain     string
	RegYear    int
	RegNum     int
	Surname    string
	Soundex    bool
	GivenNames string
	County     string
	Township   string
}

// Field names for validation.
const (
	FieldDomain      = "domain"
	FieldRegYear     = "regyear"
	FieldRegNum      = "regnum"
	FieldLicenseType = "licensetype"
	FieldRole        = "role"
	FieldBYear       = "byear"
	FieldMarStat     = "marstat"
)
