// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
)

func TestBirthYear(t *testing.T) {
	tests := []struct {
		name      string
		birthDate string
		age       string
		reference int
		role      familytree.Role
		want      int
	}{
		{"age in years", "", "45", 1900, familytree.RoleMale, 1855},
		{"age with unit", "", "45 years", 1900, familytree.RoleFemale, 1855},
		{"explicit year wins", "12 Mar 1850", "45", 1900, familytree.RoleMale, 1850},
		{"months", "", "18m", 1887, familytree.RoleUnknown, 1886},
		{"weeks", "", "3 weeks", 1887, familytree.RoleUnknown, 1887},
		{"days", "", "10d", 1887, familytree.RoleUnknown, 1887},
		{"groom without age", "", "", 1887, familytree.RoleMale, 1887},
		{"officiant without age", "", "", 1887, familytree.RoleOfficiant, 1840},
		{"officiant with age", "", "60", 1887, familytree.RoleOfficiant, 1827},
		{"unreadable age", "", "about forty", 1887, familytree.RoleMale, 1887},
		{"nothing dated", "", "", 0, familytree.RoleMale, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, familytree.BirthYear(tt.birthDate, tt.age, tt.reference, tt.role))
		})
	}
}

func TestQuery_Window(t *testing.T) {
	from, to := familytree.Query{Age: "45", ReferenceYear: 1900, Role: familytree.RoleMale}.Window()
	assert.Equal(t, [2]int{1853, 1857}, [2]int{from, to})

	from, to = familytree.Query{ReferenceYear: 1887, Role: familytree.RoleOfficiant}.Window()
	assert.Equal(t, [2]int{1813, 1867}, [2]int{from, to})

	from, to = familytree.Query{Age: "30", ReferenceYear: 1880, Role: familytree.RoleMale, Delta: familytree.LedgerDelta}.Window()
	assert.Equal(t, [2]int{1845, 1855}, [2]int{from, to})

	from, to = familytree.Query{Role: familytree.RoleMale}.Window()
	assert.Zero(t, from)
	assert.Zero(t, to)
}

func TestQuery_Criteria(t *testing.T) {
	criteria, ok := familytree.Query{
		Surname:       "Smith",
		GivenNames:    "John Henry",
		Father:        "William Smyth",
		Role:          familytree.RoleMale,
		Age:           "45",
		ReferenceYear: 1900,
	}.Criteria()
	require.True(t, ok)

	assert.Equal(t, []string{"smith", "smyth"}, criteria.Surnames)
	assert.ElementsMatch(t, []string{"john", "henry"}, criteria.Tokens)
	assert.True(t, criteria.SexKnown)
	assert.Equal(t, familytree.GenderMale, criteria.Gender)
	assert.Equal(t, 1853, criteria.BirthFrom)
	assert.Equal(t, 1857, criteria.BirthTo)
	assert.Equal(t, "S530", criteria.Soundex)
	assert.Equal(t, familytree.MaxCandidates, criteria.Limit)
}

func TestQuery_Criteria_FatherSurname(t *testing.T) {
	same, _ := familytree.Query{Surname: "Smith", GivenNames: "John", Father: "Wm. Smith"}.Criteria()
	assert.Equal(t, []string{"smith"}, same.Surnames)

	short, _ := familytree.Query{Surname: "Lee", GivenNames: "Ann", Father: "Wong Li"}.Criteria()
	assert.Equal(t, []string{"lee"}, short.Surnames)

	unknown, _ := familytree.Query{Surname: "Lee", GivenNames: "Ann", Role: familytree.RoleUnknown}.Criteria()
	assert.False(t, unknown.SexKnown)
}

func TestQuery_Criteria_Empty(t *testing.T) {
	_, ok := familytree.Query{Surname: "", GivenNames: "John"}.Criteria()
	assert.False(t, ok)

	_, ok = familytree.Query{Surname: "Smith", GivenNames: " , "}.Criteria()
	assert.False(t, ok)
}

func TestCriteria_Accepts(t *testing.T) {
	criteria, ok := familytree.Query{
		Surname:       "Smith",
		GivenNames:    "John Henry",
		Role:          familytree.RoleMale,
		Age:           "45",
		ReferenceYear: 1900,
	}.Criteria()
	require.True(t, ok)

	john := familytree.Candidate{Surname: "Smith", GivenName: "John", Gender: familytree.GenderMale, BirthSD: 18550314}
	assert.True(t, criteria.Accepts(john))

	henry := john
	henry.GivenName = "Henry James"
	assert.True(t, criteria.Accepts(henry))

	robert := john
	robert.GivenName = "Robert"
	assert.False(t, criteria.Accepts(robert))

	jane := john
	jane.Gender = familytree.GenderFemale
	assert.False(t, criteria.Accepts(jane))

	late := john
	late.BirthSD = 18600101
	assert.False(t, criteria.Accepts(late))

	undated := john
	undated.BirthSD = familytree.UnknownDate
	assert.False(t, criteria.Accepts(undated))

	smyth := john
	smyth.Surname = "Smyth"
	assert.False(t, criteria.Accepts(smyth))

	criteria.BySoundex = true
	assert.True(t, criteria.Accepts(smyth))
}

func TestRoles(t *testing.T) {
	assert.Equal(t, familytree.RoleMale, familytree.RoleFromSex("m"))
	assert.Equal(t, familytree.RoleFemale, familytree.RoleFromSex("F"))
	assert.Equal(t, familytree.RoleUnknown, familytree.RoleFromSex("?"))

	assert.Equal(t, familytree.RoleMale, familytree.RoleFromParticipant("G"))
	assert.Equal(t, familytree.RoleFemale, familytree.RoleFromParticipant("B"))
	assert.Equal(t, familytree.RoleOfficiant, familytree.RoleFromParticipant("M"))

	role, ok := familytree.ParseRole("Minister")
	assert.True(t, ok)
	assert.Equal(t, "officiant", role.String())

	for text, want := range map[string]familytree.Role{
		"G": familytree.RoleMale, "b": familytree.RoleFemale, "M": familytree.RoleOfficiant,
		"m": familytree.RoleOfficiant, "F": familytree.RoleFemale, "male": familytree.RoleMale, "?": familytree.RoleUnknown,
	} {
		role, ok := familytree.ParseRole(text)
		assert.True(t, ok, text)
		assert.Equal(t, want, role, text)
	}

	_, ok = familytree.ParseRole("cousin")
	assert.False(t, ok)
	_, ok = familytree.ParseRole("X")
	assert.False(t, ok)
}

func TestCandidate_Name(t *testing.T) {
	candidate := familytree.Candidate{
		Surname: "Smith", GivenName: "John", BirthSD: 18550314, DeathSD: familytree.UnknownDate,
		Father: "William Smith", Mother: "Mary Brown",
	}
	assert.Equal(t, "John Smith (1855–)", candidate.Name())
	assert.Equal(t, "William Smith and Mary Brown", candidate.Parents())

	candidate.BirthSD = familytree.UnknownDate
	assert.Equal(t, "John Smith", candidate.Name())
}
