// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/registry/marriage"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

func newService(repo marriage.Repository, tree familytree.Tree) *marriage.Service {
	return marriage.NewService(repo, tree, nil)
}

func TestService_Load_NewRegistration(t *testing.T) {
	tree := &treeStub{}
	view, err := newService(newRepository(), tree).Load(context.Background(), key12, true)
	require.NoError(t, err)

	assert.False(t, view.Exists)
	require.Len(t, view.Links, 3)
	assert.Equal(t, marriage.RoleGroom, view.Links[0].Role)
	assert.Equal(t, 3, view.Links[2].Num)
	assert.Empty(t, tree.queries)
	for _, link := range view.Links {
		assert.False(t, link.Searched)
	}
}

func TestService_Load_MatchesEachParticipant(t *testing.T) {
	tree := &treeStub{
		links: map[string]int64{"CAON 1887-12 M": 300},
		candidates: map[familytree.Role][]familytree.Candidate{
			familytree.RoleMale:   {{IDIR: 1, Surname: "Smith", GivenName: "John"}},
			familytree.RoleFemale: {},
		},
	}
	view, err := newService(newRepository(wedding()), tree).Load(context.Background(), key12, true)
	require.NoError(t, err)

	require.Len(t, tree.queries, 2)
	assert.Equal(t, familytree.RoleMale, tree.queries[0].Role)
	assert.Equal(t, familytree.RoleFemale, tree.queries[1].Role)

	groom, bride, minister := view.Links[0], view.Links[1], view.Links[2]
	assert.True(t, groom.Searched)
	assert.Len(t, groom.Candidates, 1)
	assert.True(t, bride.Searched)
	assert.Empty(t, bride.Candidates)
	assert.True(t, minister.Cited)
	assert.Equal(t, int64(300), view.Marriage.Participant(marriage.RoleMinister).IDIR)
	assert.Equal(t, "CAON 1887-12 B", bride.Detail)
}

func TestService_Load_Display(t *testing.T) {
	tree := &treeStub{}
	view, err := newService(newRepository(wedding()), tree).Load(context.Background(), key12, false)
	require.NoError(t, err)

	assert.True(t, view.Exists)
	assert.Empty(t, tree.queries)
	assert.Equal(t, "Smith", view.Links[0].Surname)
}

func TestService_Save(t *testing.T) {
	repo := newRepository()
	service := newService(repo, &treeStub{})

	m := wedding()
	require.NoError(t, service.Save(context.Background(), &m))
	bride := repo.participant(key12, marriage.RoleBride)
	require.NotNil(t, bride)
	assert.Equal(t, "Brown", bride.Surname)

	bad := wedding()
	bad.LicenseType = "X"
	bad.Participants[1].BYear = 1200
	bad.Participants[2].MarStat = "Q"
	err := service.Save(context.Background(), &bad)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Len(t, appError.Details, 3)
}

func TestService_Delete(t *testing.T) {
	repo := newRepository(wedding())
	tree := &treeStub{}
	service := newService(repo, tree)

	require.NoError(t, service.Delete(context.Background(), key12))
	assert.Empty(t, repo.rows)
	assert.Equal(t, []string{"CAON 1887-12 G", "CAON 1887-12 B", "CAON 1887-12 M"}, tree.unlinked)

	assert.True(t, apperr.IsNotFound(service.Delete(context.Background(), key12)))
}

func TestService_Query(t *testing.T) {
	repo := newRepository()
	for num := 1; num <= 3; num++ {
		m := wedding()
		m.RegNum = num
		repo.rows[m.Key] = m
	}

	marriages, window, err := newService(repo, &treeStub{}).Query(context.Background(),
		marriage.Filter{Domain: "CAON", Surname: "brown"}, pagination.New(1, 1))
	require.NoError(t, err)
	require.Len(t, marriages, 1)
	assert.Equal(t, 2, marriages[0].RegNum)
	assert.Equal(t, 3, window.Total)
	assert.True(t, window.HasPrev)
	assert.Equal(t, 0, window.PrevOffset)
	assert.True(t, window.HasNext)
}

func TestLinker(t *testing.T) {
	repo := newRepository(wedding())
	linker := marriage.NewLinker(repo)
	assert.Equal(t, familytree.SourceMarriage, linker.Source())

	event, err := linker.LinkRecord(context.Background(), "CAON 1887-12 B", 77)
	require.NoError(t, err)
	assert.Equal(t, familytree.EventMarriage, event)
	bride := repo.participant(key12, marriage.RoleBride)
	require.NotNil(t, bride)
	assert.Equal(t, int64(77), bride.IDIR)

	_, err = linker.LinkRecord(context.Background(), "CAON 1887-12", 77)
	assert.Error(t, err)
}
