// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage_test

import (
	"context"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/registry/marriage"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var key12 = marriage.Key{Domain: "CAON", RegYear: 1887, RegNum: 12}

func wedding() marriage.Marriage {
	m := marriage.New(key12)
	m.Date = "12 Jun 1887"
	m.Place = "London"
	*m.Participant(marriage.RoleGroom) = marriage.Participant{
		Role: marriage.RoleGroom, GivenNames: "John", Surname: "Smith", Age: "25", FatherName: "William Smith",
	}
	*m.Participant(marriage.RoleBride) = marriage.Participant{
		Role: marriage.RoleBride, GivenNames: "Mary Ann", Surname: "Brown", BYear: 1864,
	}
	*m.Participant(marriage.RoleMinister) = marriage.Participant{
		Role: marriage.RoleMinister, GivenNames: "Rev. James", Surname: "Gray",
	}
	return *m
}

// memoryRepository keeps registrations in a map.
type memoryRepository struct {
	rows map[marriage.Key]marriage.Marriage
}

func newRepository(marriages ...marriage.Marriage) *memoryRepository {
	repo := &memoryRepository{rows: map[marriage.Key]marriage.Marriage{}}
	for _, m := range marriages {
		repo.rows[m.Key] = copyOf(m)
	}
	return repo
}

// participant returns the stored participant of role, nil when the
// registration or the role is missing.
func (r *memoryRepository) participant(key marriage.Key, role string) *marriage.Participant {
	m, ok := r.rows[key]
	if !ok {
		return nil
	}
	return m.Participant(role)
}

func copyOf(m marriage.Marriage) marriage.Marriage {
	m.Participants = append([]marriage.Participant(nil), m.Participants...)
	return m
}

func (r *memoryRepository) Get(_ context.Context, key marriage.Key) (*marriage.Marriage, error) {
	m, ok := r.rows[key]
	if !ok {
		return nil, apperr.NotFound("Marriage registration " + key.Label())
	}
	m = copyOf(m)
	return &m, nil
}

func (r *memoryRepository) Save(_ context.Context, m *marriage.Marriage) error {
	r.rows[m.Key] = copyOf(*m)
	return nil
}

func (r *memoryRepository) SetIDIR(_ context.Context, key marriage.Key, role string, idir int64) error {
	m, ok := r.rows[key]
	if !ok {
		return apperr.NotFound("Marriage participant " + key.Detail(role))
	}
	participant := m.Participant(role)
	if participant == nil {
		return apperr.NotFound("Marriage participant " + key.Detail(role))
	}
	participant.IDIR = idir
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, key marriage.Key) error {
	if _, ok := r.rows[key]; !ok {
		return apperr.NotFound("Marriage registration " + key.Label())
	}
	delete(r.rows, key)
	return nil
}

func (r *memoryRepository) Query(_ context.Context, filter marriage.Filter, page pagination.Params) ([]marriage.Marriage, int, error) {
	matched := []marriage.Marriage{}
	for _, m := range r.rows {
		if m.Domain != filter.Domain || (filter.RegYear > 0 && m.RegYear != filter.RegYear) {
			continue
		}
		if filter.Surname != "" &&
			!strings.EqualFold(m.Participant(marriage.RoleGroom).Surname, filter.Surname) &&
			!strings.EqualFold(m.Participant(marriage.RoleBride).Surname, filter.Surname) {
			continue
		}
		matched = append(matched, copyOf(m))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].RegNum < matched[j].RegNum })

	total := len(matched)
	start := min(page.Offset, total)
	end := min(start+page.Limit, total)
	return matched[start:end], total, nil
}

// treeStub answers the family tree calls of the marriage service.
type treeStub struct {
	links      map[string]int64
	candidates map[familytree.Role][]familytree.Candidate
	queries    []familytree.Query
	unlinked   []string
}

func (s *treeStub) Find(_ context.Context, query familytree.Query) ([]familytree.Candidate, error) {
	s.queries = append(s.queries, query)
	return s.candidates[query.Role], nil
}

func (s *treeStub) FindLink(_ context.Context, _ familytree.SourceKind, detail string) (int64, error) {
	return s.links[detail], nil
}

func (s *treeStub) Unlink(_ context.Context, _ familytree.SourceKind, detail string) (int64, error) {
	s.unlinked = append(s.unlinked, detail)
	return 0, nil
}

func TestKey_Detail(t *testing.T) {
	assert.Equal(t, "CAON 1887-12 B", key12.Detail(marriage.RoleBride))
	assert.Equal(t, "CAON 1887-12", key12.Label())

	key, role, ok := marriage.ParseDetail("CAON 1887-12 M")
	require.True(t, ok)
	assert.Equal(t, key12, key)
	assert.Equal(t, marriage.RoleMinister, role)

	_, _, ok = marriage.ParseDetail("CAON 1887-12 X")
	assert.False(t, ok)
	_, _, ok = marriage.ParseDetail("CAON 1887-12")
	assert.False(t, ok)
}

func TestNew_Placeholders(t *testing.T) {
	m := marriage.New(key12)

	require.Len(t, m.Participants, 3)
	for i, role := range marriage.Roles {
		assert.Equal(t, role, m.Participants[i].Role)
		assert.Empty(t, m.Participants[i].Surname)
	}
	assert.Equal(t, "L", m.LicenseType)
}

func TestMarriage_MatchQuery(t *testing.T) {
	m := wedding()

	groom := m.MatchQuery(m.Participant(marriage.RoleGroom))
	assert.Equal(t, familytree.RoleMale, groom.Role)
	assert.Equal(t, 1862, groom.BirthYear())
	assert.Equal(t, "William Smith", groom.Father)

	bride := m.MatchQuery(m.Participant(marriage.RoleBride))
	assert.Equal(t, familytree.RoleFemale, bride.Role)
	assert.Equal(t, 1864, bride.BirthYear())

	minister := m.MatchQuery(m.Participant(marriage.RoleMinister))
	assert.Equal(t, familytree.RoleOfficiant, minister.Role)
	assert.Equal(t, 1887-familytree.OfficiantAge, minister.BirthYear())
	from, to := minister.Window()
	assert.Equal(t, 1840-familytree.UnconstrainedDelta, from)
	assert.Equal(t, 1840+familytree.UnconstrainedDelta, to)
}

func TestMarriage_ReferenceYear(t *testing.T) {
	m := marriage.New(marriage.Key{Domain: "CAON", RegYear: 1888, RegNum: 1})
	assert.Equal(t, 1888, m.ReferenceYear())

	m.Date = "30 Dec 1887"
	assert.Equal(t, 1887, m.ReferenceYear())
}

func TestParticipant_Set(t *testing.T) {
	var p marriage.Participant
	p.Set("surname", "Brown")
	p.Set("byear", "1864")
	p.Set("marstat", "w")
	p.Set("idir", "9")
	p.Set("place", "ignored")

	assert.Equal(t, "Brown", p.Surname)
	assert.Equal(t, 1864, p.BYear)
	assert.Equal(t, "W", p.MarStat)
	assert.Equal(t, int64(9), p.IDIR)
}
