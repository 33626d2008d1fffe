// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/taibuivan/ontvitals/pkg/names"
	"github.com/taibuivan/ontvitals/pkg/soundex"
)

// # Match Rules

// Role is what the registration says about the person being matched.
type Role int

const (
	// RoleMale is a groom, or a deceased or baptized male.
	RoleMale Role = iota
	// RoleFemale is a bride, or a deceased or baptized female.
	RoleFemale
	// RoleOfficiant is the minister of a marriage: any sex, assumed adult.
	RoleOfficiant
	// RoleUnknown is a person whose sex the registration does not state.
	RoleUnknown
)

const (
	// SexedDelta is the birth-year tolerance when the sex is known.
	SexedDelta = 2
	// UnconstrainedDelta covers the age spread of adult officiants.
	UnconstrainedDelta = 27
	// LedgerDelta is the tolerance used for employee-ledger lookups.
	LedgerDelta = 5
	// OfficiantAge is assumed for an officiant whose age is not recorded.
	OfficiantAge = 47
	// MaxCandidates bounds every search result.
	MaxCandidates = 20
	// minFatherSurname is the shortest father's surname used to widen a search.
	minFatherSurname = 3
)

var (
	explicitYear = regexp.MustCompile(`\b(\d{4})\b`)
	ageText      = regexp.MustCompile(`^\s*(\d+)\s*([A-Za-z]*)`)
)

// String returns the metrics label of the role.
func (r Role) String() string {
	switch r {
	case RoleMale:
		return "male"
	case RoleFemale:
		return "female"
	case RoleOfficiant:
		return "officiant"
	default:
		return "unknown"
	}
}

// RoleFromSex maps a transcribed sex code (M, F, ?) to a role.
func RoleFromSex(sex string) Role {
	switch strings.ToUpper(strings.TrimSpace(sex)) {
	case "M":
		return RoleMale
	case "F":
		return RoleFemale
	default:
		return RoleUnknown
	}
}

// RoleFromParticipant maps a marriage participant code to a role:
// G (groom), B (bride), M (minister).
func RoleFromParticipant(code string) Role {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "G":
		return RoleMale
	case "B":
		return RoleFemale
	case "M":
		return RoleOfficiant
	default:
		return RoleUnknown
	}
}

// ParseRole accepts a role name or a single-letter code. The letters are
// the marriage participant codes G, B and M, so M is the minister; F and ?
// are read as sex codes.
func ParseRole(text string) (Role, bool) {
	text = strings.TrimSpace(text)
	if len(text) == 1 {
		switch strings.ToUpper(text) {
		case "G", "B", "M":
			return RoleFromParticipant(text), true
		case "F":
			return RoleFemale, true
		case "?":
			return RoleUnknown, true
		}
		return RoleUnknown, false
	}

	switch strings.ToLower(text) {
	case "male", "groom":
		return RoleMale, true
	case "female", "bride":
		return RoleFemale, true
	case "officiant", "minister":
		return RoleOfficiant, true
	case "unknown", "":
		return RoleUnknown, true
	}
	return RoleUnknown, false
}

// delta returns the default birth-year tolerance of the role.
func (r Role) delta() int {
	if r == RoleMale || r == RoleFemale {
		return SexedDelta
	}
	return UnconstrainedDelta
}

// Query is what a registration page knows about a person.
type Query struct {
	Surname    string
	GivenNames string
	// Father is the father's full name as transcribed; its last word widens the surname search.
	Father string
	Role   Role

	// BirthDate is the transcribed birth date; a 4 digit year in it wins over Age.
	BirthDate string
	// Age is the transcribed age ("45", "45y", "3m", "10 days").
	Age string
	// ReferenceYear is the year the age was stated in (death, marriage or registration year).
	ReferenceYear int

	// Delta overrides the role's birth-year tolerance when positive.
	Delta int
	// Limit overrides [MaxCandidates] when positive and smaller.
	Limit int
}

// BirthYear estimates the birth year from an explicit year in birthDate, or
// from age and referenceYear. Without either it returns referenceYear, less
// [OfficiantAge] for an officiant.
func BirthYear(birthDate, age string, referenceYear int, role Role) int {
	if match := explicitYear.FindStringSubmatch(birthDate); match != nil {
		year, _ := strconv.Atoi(match[1])
		return year
	}

	if years, ok := ageInYears(age); ok && referenceYear > 0 {
		return referenceYear - years
	}

	if referenceYear > 0 && role == RoleOfficiant {
		return referenceYear - OfficiantAge
	}
	return referenceYear
}

// ageInYears converts a transcribed age to whole years. A bare number or a
// y unit means years; m, w and d mean months, weeks and days.
func ageInYears(age string) (int, bool) {
	match := ageText.FindStringSubmatch(age)
	if match == nil {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}

	unit := strings.ToLower(match[2])
	if unit == "" {
		return n, true
	}
	switch unit[0] {
	case 'y':
		return n, true
	case 'm':
		return n / 12, true
	case 'w':
		return n / 52, true
	case 'd':
		return n / 365, true
	}
	return 0, false
}

// BirthYear estimates the query's birth year, 0 when nothing dates it.
func (q Query) BirthYear() int {
	return BirthYear(q.BirthDate, q.Age, q.ReferenceYear, q.Role)
}

// Window returns the inclusive birth-year range searched, or zeros when the
// query carries no date.
func (q Query) Window() (from, to int) {
	year := q.BirthYear()
	if year <= 0 {
		return 0, 0
	}
	delta := q.Delta
	if delta <= 0 {
		delta = q.Role.delta()
	}
	return year - delta, year + delta
}

// Criteria is a Query reduced to the terms of the candidate search.
type Criteria struct {
	// Surnames are folded; the first is the transcribed surname.
	Surnames []string
	// Tokens are the folded given names; a candidate needs one in common.
	Tokens []string

	// Gender constrains candidates when SexKnown.
	SexKnown bool
	Gender   Gender

	// BirthFrom and BirthTo bound the birth year; both zero means unbounded.
	BirthFrom int
	BirthTo   int

	// Soundex of the transcribed surname, searched instead of Surnames when BySoundex.
	Soundex   string
	BySoundex bool

	Limit int
}

// Criteria builds the search terms. It reports false when the surname or the
// given names are empty, in which case no search should be made.
func (q Query) Criteria() (Criteria, bool) {
	surname := names.Fold(q.Surname)
	tokens := names.Tokens(q.GivenNames)
	if surname == "" || len(tokens) == 0 {
		return Criteria{}, false
	}

	criteria := Criteria{
		Surnames: []string{surname},
		Tokens:   tokens,
		Soundex:  soundex.Code(q.Surname),
		Limit:    MaxCandidates,
	}

	if father := names.Fold(names.LastToken(q.Father)); father != surname && len([]rune(father)) >= minFatherSurname {
		criteria.Surnames = append(criteria.Surnames, father)
	}

	switch q.Role {
	case RoleMale:
		criteria.SexKnown, criteria.Gender = true, GenderMale
	case RoleFemale:
		criteria.SexKnown, criteria.Gender = true, GenderFemale
	}

	criteria.BirthFrom, criteria.BirthTo = q.Window()

	if q.Limit > 0 && q.Limit < MaxCandidates {
		criteria.Limit = q.Limit
	}
	return criteria, true
}

// Accepts reports whether a candidate satisfies every term of the criteria.
func (c Criteria) Accepts(candidate Candidate) bool {
	if c.BySoundex {
		if soundex.Code(candidate.Surname) != c.Soundex {
			return false
		}
	} else if !contains(c.Surnames, names.Fold(candidate.Surname)) {
		return false
	}

	if c.SexKnown && candidate.Gender != c.Gender {
		return false
	}

	if c.BirthFrom != 0 || c.BirthTo != 0 {
		year := sortableYear(candidate.BirthSD)
		if year < c.BirthFrom || year > c.BirthTo {
			return false
		}
	}

	return names.Overlaps(c.Tokens, names.Tokens(candidate.GivenName))
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
