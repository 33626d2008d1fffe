// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/registry/baptism"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

func newService(repo baptism.Repository, tree familytree.Tree) *baptism.Service {
	return baptism.NewService(repo, tree, nil)
}

func TestService_Load(t *testing.T) {
	tree := &treeStub{candidates: []familytree.Candidate{{IDIR: 3, Surname: "Elliott", GivenName: "Sarah"}}}
	service := newService(newRepository(infant()), tree)

	view, err := service.Load(context.Background(), 7, true)
	require.NoError(t, err)
	assert.True(t, view.Searched)
	assert.Len(t, view.Candidates, 1)
	require.Len(t, tree.queries, 1)
	assert.Equal(t, 1851, tree.queries[0].BirthYear())

	_, err = service.Load(context.Background(), 8, true)
	assert.True(t, apperr.IsNotFound(err))
}

func TestService_Load_Cited(t *testing.T) {
	tree := &treeStub{links: map[string]int64{"7": 55}}
	view, err := newService(newRepository(infant()), tree).Load(context.Background(), 7, true)
	require.NoError(t, err)

	assert.True(t, view.Cited)
	assert.Equal(t, int64(55), view.Baptism.IDIR)
	assert.Empty(t, tree.queries)
}

func TestService_Save_CreateThenUpdate(t *testing.T) {
	repo := newRepository()
	service := newService(repo, &treeStub{})

	b := infant()
	b.IDMB = 0
	require.NoError(t, service.Save(context.Background(), &b))
	assert.Equal(t, int64(100), b.IDMB)

	b.Minister = "Rev. John Carroll"
	require.NoError(t, service.Save(context.Background(), &b))
	assert.Equal(t, "Rev. John Carroll", repo.rows[100].Minister)
	assert.Len(t, repo.rows, 1)

	missing := infant()
	missing.IDMB = 999
	assert.True(t, apperr.IsNotFound(service.Save(context.Background(), &missing)))
}

func TestService_Save_Validation(t *testing.T) {
	service := newService(newRepository(), &treeStub{})

	err := service.Save(context.Background(), &baptism.Baptism{Surname: "Elliott"})
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Len(t, appError.Details, 2)
}

func TestService_Delete(t *testing.T) {
	repo := newRepository(infant())
	tree := &treeStub{}
	service := newService(repo, tree)

	require.NoError(t, service.Delete(context.Background(), 7))
	assert.Empty(t, repo.rows)
	assert.Equal(t, []string{"7"}, tree.unlinked)
}

func TestService_Query(t *testing.T) {
	repo := newRepository()
	for i := int64(1); i <= 4; i++ {
		b := infant()
		b.IDMB = i
		repo.rows[i] = b
	}

	baptisms, window, err := newService(repo, &treeStub{}).Query(context.Background(),
		baptism.Filter{Volume: 3, Page: 41}, pagination.New(0, 3))
	require.NoError(t, err)
	assert.Len(t, baptisms, 3)
	assert.Equal(t, 4, window.Total)
	assert.True(t, window.HasNext)
}

func TestLinker(t *testing.T) {
	repo := newRepository(infant())
	linker := baptism.NewLinker(repo)

	event, err := linker.LinkRecord(context.Background(), "7", 31)
	require.NoError(t, err)
	assert.Equal(t, familytree.EventBaptism, event)
	assert.Equal(t, int64(31), repo.rows[7].IDIR)
}
