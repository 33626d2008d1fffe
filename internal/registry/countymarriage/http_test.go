// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package countymarriage_test

import (
	"encoding/xml"
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
	"github.com/taibuivan/ontvitals/internal/registry/countymarriage"
	"github.com/taibuivan/ontvitals/web"
)

func newHandler(repo countymarriage.Repository, tree familytree.Tree) http.Handler {
	return countymarriage.NewHandler(newService(repo, tree), referenceStub{}, render.New(web.Templates(), "en")).Routes()
}

func editorRequest(method, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func TestHandler_Detail_Display(t *testing.T) {
	repo := newRepository().with(minister(), couple(1, "Smith", "Jones")...)
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/CAON/12/3", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "County Marriage Report 12-3")
	assert.Contains(t, body, "Rev. James Gray")
	assert.Contains(t, body, "John Smith")
	assert.NotContains(t, body, `name="Surname1"`)
}

func TestHandler_Detail_Placeholders(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodGet, "/CAON/12/3.5", url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `id="new"`)
	assert.Contains(t, body, `name="GivenNames1" size="20" value="New Groom"`)
	assert.Contains(t, body, `name="GivenNames20" size="20" value="New Bride"`)
	assert.Contains(t, body, "/countymarriages/CAON/12/3.5/items/10/B/delete")
}

func TestHandler_Detail_BadReportNo(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/CAON/12/3.7", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Update(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/12/3.5", url.Values{
		"Surname":      {"Gray"},
		"Faith":        {"Baptist"},
		"ItemNo1":      {"1"},
		"Role1":        {"G"},
		"GivenNames1":  {"John"},
		"Surname1":     {"Smith"},
		"ItemNo2":      {"1"},
		"Role2":        {"B"},
		"GivenNames2":  {"Mary"},
		"Surname2":     {"Jones"},
		"LicenseType2": {"b"},
		"ItemNo3":      {"2"},
		"Role3":        {"G"},
		"GivenNames3":  {"New Groom"},
	}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	assert.Equal(t, "/countymarriages/CAON/12/3.5?lang=en", recorder.Header().Get("Location"))

	key := countymarriage.Key{Domain: "CAON", Volume: 12, ReportNo: 3.5}
	assert.Equal(t, "Baptist", repo.reports[key].Faith)
	assert.Equal(t, "jcobb", repo.reports[key].UpdatedBy)
	items := repo.items[key]
	require.Len(t, items, 2)
	assert.Equal(t, "Smith", items[0].Surname)
	assert.Equal(t, "B", items[1].LicenseType)
}

func TestHandler_Update_MissingItemNo(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/12/3", url.Values{
		"Surname1": {"Smith"},
	}))

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "missing item number or role")
	assert.Empty(t, repo.reports)
}

func TestHandler_Update_RequiresEditor(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/CAON/12/3", strings.NewReader("Surname=Gray"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestHandler_DeleteItem(t *testing.T) {
	repo := newRepository().with(minister(), couple(1, "Smith", "Jones")...)
	tree := &treeStub{}
	recorder := httptest.NewRecorder()

	newHandler(repo, tree).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/12/3/items/1/G/delete",
		url.Values{"rownum": {"1"}}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var reply struct {
		XMLName xml.Name `xml:"deleted"`
		ItemNo  string   `xml:"parms>itemno"`
		Role    string   `xml:"parms>role"`
		Rownum  string   `xml:"parms>rownum"`
		Msg     string   `xml:"msg"`
	}
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Equal(t, "1", reply.ItemNo)
	assert.Equal(t, "G", reply.Role)
	assert.Equal(t, "1", reply.Rownum)
	assert.Empty(t, reply.Msg)
	assert.Len(t, repo.items[key3], 1)
	assert.Equal(t, []string{"CAON 12-3-1 G"}, tree.unlinked)
}

func TestHandler_DeleteItem_BadRole(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/12/3/items/1/M/delete",
		url.Values{"rownum": {"4"}}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<rownum>4</rownum>")
	assert.Contains(t, recorder.Body.String(), "<msg>")
}

func TestHandler_Query(t *testing.T) {
	repo := newRepository().with(minister(), couple(1, "Smith", "Jones")...)
	recorder := httptest.NewRecorder()

	newHandler(repo, &treeStub{}).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/?domain=CAON&volume=12", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "Volume 12")
	assert.Contains(t, body, `href="/countymarriages/CAON/12/3"`)
	assert.Contains(t, body, "rows 1 to 1 of 1")
}

func TestHandler_Query_OpensReport(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), &treeStub{}).ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/?Domain=caon&Volume=12&ReportNo=3.5", nil))

	assert.Equal(t, http.StatusSeeOther, recorder.Code)
	assert.Equal(t, "/countymarriages/CAON/12/3.5?lang=en", recorder.Header().Get("Location"))
}
