// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/registry/baptism"
	"github.com/taibuivan/ontvitals/web"
)

func newHandler(repo baptism.Repository, tree familytree.Tree) http.Handler {
	return baptism.NewHandler(newService(repo, tree), render.New(web.Templates(), "en")).Routes()
}

func editorRequest(method, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_Detail(t *testing.T) {
	recorder := httptest.NewRecorder()
	newHandler(newRepository(infant()), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/7", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), "Sarah Jane Elliott")

	recorder = httptest.NewRecorder()
	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/8", nil))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestHandler_Detail_Update(t *testing.T) {
	recorder := httptest.NewRecorder()
	newHandler(newRepository(infant()), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/7", url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `action="/baptisms/7"`)
	assert.Contains(t, body, `id="noMatch"`)
	assert.Contains(t, body, `id="Delete"`)
}

func TestHandler_Blank(t *testing.T) {
	recorder := httptest.NewRecorder()
	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/new?volume=3&page=42", url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `action="/baptisms/new"`)
	assert.Contains(t, body, `name="Page" id="Page" size="4" value="42"`)
	assert.NotContains(t, body, `id="Delete"`)

	recorder = httptest.NewRecorder()
	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/new", url.Values{}))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Create(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/new", url.Values{
		"Volume": {"3"}, "Page": {"42"}, "Surname": {"Elliott"}, "GivenName": {"Robert"},
	}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	assert.Equal(t, "/baptisms/100?lang=en", recorder.Header().Get("Location"))
	assert.Equal(t, "Robert", repo.rows[100].GivenName)
	assert.Equal(t, "jcobb", repo.rows[100].UpdatedBy)
}

func TestHandler_Update(t *testing.T) {
	repo := newRepository(infant())
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/7", url.Values{"Minister": {"Rev. Wm. Case"}}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	assert.Equal(t, "Rev. Wm. Case", repo.rows[7].Minister)
	assert.Equal(t, "Elliott", repo.rows[7].Surname)
}

func TestHandler_Delete(t *testing.T) {
	repo := newRepository(infant())
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/7/delete", url.Values{"rownum": {"2"}}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<idmb>7</idmb>")
	assert.Contains(t, recorder.Body.String(), "<rownum>2</rownum>")
	assert.Empty(t, repo.rows)
}

func TestHandler_Query(t *testing.T) {
	recorder := httptest.NewRecorder()
	newHandler(newRepository(infant()), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/?volume=3&page=41", url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "Elliott, Sarah Jane")
	assert.Contains(t, body, `id="newEntry"`)
	assert.Contains(t, body, `class="delete"`)
}
