// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry/marriage"
	"github.com/taibuivan/ontvitals/web"
)

type referenceStub struct{}

func (referenceStub) Domain(_ context.Context, code string) (*reference.Domain, error) {
	if code != "CAON" {
		return nil, apperr.NotFound("Domain " + code)
	}
	return &reference.Domain{Code: "CAON", Name: "Ontario", Lang: "en"}, nil
}

func (referenceStub) CountyName(_ context.Context, _, code string) (string, error) {
	return code, nil
}

func (referenceStub) DefaultDomain() string { return "CAON" }

func newHandler(repo marriage.Repository, tree familytree.Tree) http.Handler {
	return marriage.NewHandler(newService(repo, tree), referenceStub{}, render.New(web.Templates(), "en")).Routes()
}

func editorRequest(method, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_Detail_Display(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(wedding()), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/CAON/1887/12", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "John Smith")
	assert.Contains(t, body, "Mary Ann Brown")
	assert.NotContains(t, body, `name="Surname1"`)
}

func TestHandler_Detail_Update(t *testing.T) {
	tree := &treeStub{candidates: map[familytree.Role][]familytree.Candidate{
		familytree.RoleMale: {{IDIR: 8, Surname: "Smith", GivenName: "John"}},
	}}
	recorder := httptest.NewRecorder()

	newHandler(newRepository(wedding()), tree).ServeHTTP(recorder, editorRequest(http.MethodGet, "/CAON/1887/12", url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `name="Surname1" size="14" value="Smith"`)
	assert.Contains(t, body, `name="Role3" value="M"`)
	assert.Contains(t, body, `id="matches1"`)
	assert.Contains(t, body, `id="noMatch2"`)
	assert.Contains(t, body, `id="noMatch3"`)
}

func TestHandler_Detail_BadKey(t *testing.T) {
	for _, target := range []string{"/CAON/1850/12", "/CA/1887/12", "/CAON/1887/0"} {
		recorder := httptest.NewRecorder()
		newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}

func TestHandler_Update(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12", url.Values{
		"Place":    {"Woodstock"},
		"Role1":    {"G"},
		"Surname1": {"Smith"},
		"Role2":    {"B"},
		"Surname2": {"Brown"},
		"BYear2":   {"1864"},
	}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	saved, ok := repo.rows[key12]
	require.True(t, ok)
	assert.Equal(t, "Woodstock", saved.Place)
	require.Len(t, saved.Participants, 3)
	assert.Equal(t, "Smith", saved.Participant(marriage.RoleGroom).Surname)
	assert.Equal(t, 1864, saved.Participant(marriage.RoleBride).BYear)
	assert.Equal(t, "jcobb", saved.UpdatedBy)
}

func TestHandler_Update_MissingRole(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12", url.Values{
		"Surname1": {"Smith"},
	}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "missing participant role")
	assert.Empty(t, repo.rows)
}

func TestHandler_Delete(t *testing.T) {
	repo := newRepository(wedding())
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12/delete", url.Values{"rownum": {"7"}}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<rownum>7</rownum>")
	assert.Empty(t, repo.rows)
}

func TestHandler_Query(t *testing.T) {
	repo := newRepository()
	for num := 1; num <= 3; num++ {
		m := wedding()
		m.RegNum = num
		repo.rows[m.Key] = m
	}
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?regyear=1887&offset=1&limit=1", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "rows 2 to 2 of 3")
	assert.Contains(t, body, `id="Row2"`)
	assert.Contains(t, body, "Smith, John")
	assert.Contains(t, body, `id="prev"`)
	assert.Contains(t, body, `id="next"`)
}
