// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death_test

import (
	"context"
	"encoding/xml"
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
	"github.com/taibuivan/ontvitals/internal/platform/sheet"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry/death"
	"github.com/taibuivan/ontvitals/web"
)

// referenceStub knows the Ontario domain and Middlesex county.
type referenceStub struct{}

func (referenceStub) Domain(_ context.Context, code string) (*reference.Domain, error) {
	if code != "CAON" {
		return nil, apperr.NotFound("Domain " + code)
	}
	return &reference.Domain{Code: "CAON", Name: "Ontario", Lang: "en"}, nil
}

func (referenceStub) CountyName(_ context.Context, _, code string) (string, error) {
	if code == "Msx" {
		return "Middlesex", nil
	}
	return "", apperr.NotFound("County " + code)
}

func (referenceStub) DefaultDomain() string { return "CAON" }

func newHandler(repo death.Repository, tree familytree.Tree) http.Handler {
	service := newService(repo, tree)
	return death.NewHandler(service, referenceStub{}, render.New(web.Templates(), "en")).Routes()
}

func editorRequest(method, target string, form url.Values) *http.Request {
	var request *http.Request
	if form == nil {
		request = httptest.NewRequest(method, target, nil)
	} else {
		request = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_Detail_Display(t *testing.T) {
	tree := &treeStub{}
	recorder := httptest.NewRecorder()

	newHandler(newRepository(smith()), tree).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/CAON/1887/12", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "Smith")
	assert.NotContains(t, body, `name="Surname"`)
	assert.Empty(t, tree.queries)
}

func TestHandler_Detail_UpdateWithCandidates(t *testing.T) {
	tree := &treeStub{candidates: []familytree.Candidate{{IDIR: 5, Surname: "Smith", GivenName: "John"}}}
	recorder := httptest.NewRecorder()

	newHandler(newRepository(smith()), tree).ServeHTTP(recorder, editorRequest(http.MethodGet, "/CAON/1887/12", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `name="Surname"`)
	assert.Contains(t, body, `id="matches"`)
	assert.Contains(t, body, `value="5"`)
	assert.NotContains(t, body, `id="noMatch"`)
	assert.NotContains(t, body, `id="new"`)
}

func TestHandler_Detail_NewRegistration(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/CAON/1890/3", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), `id="new"`)
}

func TestHandler_Detail_BadKey(t *testing.T) {
	for _, target := range []string{"/CAON/1700/3", "/CA9N/1890/3", "/CANADA/1890/3"} {
		recorder := httptest.NewRecorder()
		newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, target, nil))
		assert.Equal(t, http.StatusBadRequest, recorder.Code, target)
	}
}

func TestHandler_Update(t *testing.T) {
	repo := newRepository(smith())
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12", url.Values{
		"Cause": {"Typhoid"}, "Place": {"London"}, "lang": {"en"},
	}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	assert.Equal(t, "/deaths/CAON/1887/12?lang=en", recorder.Header().Get("Location"))

	saved := repo.rows[key12]
	assert.Equal(t, "Typhoid", saved.Cause)
	assert.Equal(t, "London", saved.Place)
	assert.Equal(t, "Smith", saved.Surname)
	assert.Equal(t, "jcobb", saved.UpdatedBy)
}

func TestHandler_Update_RejectedField(t *testing.T) {
	repo := newRepository(smith())
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12", url.Values{
		"Sex": {"X"}, "Cause": {"Typhoid"},
	}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `id="msgs"`)
	assert.Empty(t, repo.rows[key12].Cause)
}

func TestHandler_Update_RequiresEditor(t *testing.T) {
	repo := newRepository(smith())
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/CAON/1887/12", strings.NewReader("Cause=Typhoid"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, repo.rows[key12].Cause)
}

func TestHandler_Delete(t *testing.T) {
	repo := newRepository(smith())
	tree := &treeStub{}
	recorder := httptest.NewRecorder()

	newHandler(repo, tree).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12/delete", url.Values{"rownum": {"3"}}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	var decoded struct {
		XMLName xml.Name `xml:"deleted"`
		RegNum  string   `xml:"parms>regnum"`
		Rownum  string   `xml:"parms>rownum"`
		Msg     string   `xml:"msg"`
	}
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &decoded))
	assert.Equal(t, "12", decoded.RegNum)
	assert.Equal(t, "3", decoded.Rownum)
	assert.Empty(t, decoded.Msg)
	assert.Empty(t, repo.rows)
	assert.Equal(t, []string{"CAON 1887-12"}, tree.unlinked)
}

func TestHandler_Delete_Missing(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/1887/12/delete", url.Values{"rownum": {"3"}}))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<msg>")
}

func TestHandler_Query(t *testing.T) {
	repo := newRepository()
	for num := 1; num <= 25; num++ {
		d := smith()
		d.RegNum = num
		repo.rows[d.Key] = d
	}
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?domain=CAON&regyear=1887", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "rows 1 to 20 of 25")
	assert.Contains(t, body, `id="Row20"`)
	assert.NotContains(t, body, `id="Row21"`)
	assert.Contains(t, body, `id="next"`)
	assert.NotContains(t, body, `id="prev"`)
	assert.NotContains(t, body, `class="delete"`)
}

func TestHandler_Query_NoRecords(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?regyear=1901", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `id="noRecords"`)
}

func TestHandler_Query_BadParameter(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?regyear=18x7", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Query_Export(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(smith()), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?regyear=1887&format=xlsx", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, sheet.ContentType, recorder.Header().Get("Content-Type"))
	assert.Contains(t, recorder.Header().Get("Content-Disposition"), "deaths-CAON-1887.xlsx")
}
