// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grave_test

import (
	"bytes"
	"context"
	"encoding/xml"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/platform/upload"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry/grave"
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
	if code == "Msx" {
		return "Middlesex", nil
	}
	return code, nil
}

func (referenceStub) DefaultDomain() string { return "CAON" }

const plotPath = "/CAON/Msx/London/Woodland/A/3/12/-"

func newHandler(repo grave.Repository, dir string, maxUpload int64) http.Handler {
	service := grave.NewService(repo, upload.NewStore(dir, maxUpload), nil)
	return grave.NewHandler(service, referenceStub{}, render.New(web.Templates(), "en"), maxUpload).Routes()
}

func asEditor(request *http.Request) *http.Request {
	claims := &sec.AuthClaims{Username: "jcobb", Role: string(sec.RoleEditor)}
	return request.WithContext(ctxutil.WithAuthUser(request.Context(), claims))
}

func editorRequest(method, target string, form url.Values) *http.Request {
	request := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return asEditor(request)
}

func imageRequest(t *testing.T, target string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "stone.jpg")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, target, &body)
	request.Header.Set("Content-Type", writer.FormDataContentType())
	return asEditor(request)
}

func TestHandler_Detail_Display(t *testing.T) {
	g := stone()
	g.Images = []string{"CAON-Msx-London-Woodland-A-3-12-1.jpg"}
	recorder := httptest.NewRecorder()

	newHandler(newRepository(g), t.TempDir(), 1024).ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, plotPath, nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "Woodland, London, Msx: A 3 12")
	assert.Contains(t, body, "Middlesex County")
	assert.Contains(t, body, `src="/images/CAON-Msx-London-Woodland-A-3-12-1.jpg"`)
	assert.NotContains(t, body, `id="upload"`)
}

func TestHandler_Detail_NewMarker(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), t.TempDir(), 1024).ServeHTTP(recorder, editorRequest(http.MethodGet, plotPath, url.Values{}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, `id="new"`)
	assert.Contains(t, body, `action="/graves/CAON/Msx/London/Woodland/A/3/12/-"`)
	assert.NotContains(t, body, `id="upload"`)
}

func TestHandler_Detail_BadCounty(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(), t.TempDir(), 1024).ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/CAON/M1/London/Woodland/-/-/-/-", nil))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_Update(t *testing.T) {
	repo := newRepository()
	recorder := httptest.NewRecorder()

	newHandler(repo, t.TempDir(), 1024).ServeHTTP(recorder, editorRequest(http.MethodPost, "/CAON/Oxf/East%20Zorra/Wesleyan/-/-/-/-", url.Values{
		"Surname":   {"Brown"},
		"DeathDate": {"1871"},
	}))

	require.Equal(t, http.StatusSeeOther, recorder.Code, recorder.Body.String())
	assert.Equal(t, "/graves/CAON/Oxf/East%20Zorra/Wesleyan/-/-/-/-?lang=en", recorder.Header().Get("Location"))

	saved, ok := repo.rows[grave.Key{Domain: "CAON", County: "Oxf", Township: "East Zorra", Cemetery: "Wesleyan"}]
	require.True(t, ok)
	assert.Equal(t, "Brown", saved.Surname)
	assert.Equal(t, "jcobb", saved.UpdatedBy)
}

func TestHandler_Update_RequiresEditor(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, plotPath, strings.NewReader("Surname=Brown"))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	newHandler(newRepository(), t.TempDir(), 1024).ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

type uploadReply struct {
	XMLName  xml.Name `xml:"uploaded"`
	Name     string   `xml:"parms>name"`
	Filename string   `xml:"parms>filename"`
	Msg      string   `xml:"msg"`
}

func TestHandler_AddImage(t *testing.T) {
	repo := newRepository(stone())
	recorder := httptest.NewRecorder()

	newHandler(repo, t.TempDir(), 1024).ServeHTTP(recorder, imageRequest(t, plotPath+"/images", jpegHeader))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	var reply uploadReply
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Equal(t, "CAON-Msx-London-Woodland-A-3-12-1.jpg", reply.Name)
	assert.Equal(t, "stone.jpg", reply.Filename)
	assert.Empty(t, reply.Msg)
	assert.Equal(t, []string{reply.Name}, repo.rows[plot12].Images)
}

func TestHandler_AddImage_NotAnImage(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(stone()), t.TempDir(), 1024).ServeHTTP(recorder,
		imageRequest(t, plotPath+"/images", []byte("<html><body>hello</body></html>")))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	var reply uploadReply
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &reply))
	assert.Contains(t, reply.Msg, "not a JPEG, PNG or GIF image")
}

func TestHandler_AddImage_TooLarge(t *testing.T) {
	recorder := httptest.NewRecorder()
	content := append(append([]byte{}, jpegHeader...), make([]byte, 2048)...)

	newHandler(newRepository(stone()), t.TempDir(), 1024).ServeHTTP(recorder, imageRequest(t, plotPath+"/images", content))

	assert.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)
}

func TestHandler_AddImage_MissingFile(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(stone()), t.TempDir(), 1024).ServeHTTP(recorder,
		editorRequest(http.MethodPost, plotPath+"/images", url.Values{"x": {"1"}}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "<msg>")
}

func TestHandler_Delete(t *testing.T) {
	repo := newRepository(stone())
	recorder := httptest.NewRecorder()

	newHandler(repo, t.TempDir(), 1024).ServeHTTP(recorder, editorRequest(http.MethodPost, plotPath+"/delete",
		url.Values{"rownum": {"7"}}))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	assert.Contains(t, recorder.Body.String(), "<rownum>7</rownum>")
	assert.Empty(t, repo.rows)
}

func TestHandler_Query(t *testing.T) {
	recorder := httptest.NewRecorder()

	newHandler(newRepository(stone()), t.TempDir(), 1024).ServeHTTP(recorder,
		httptest.NewRequest(http.MethodGet, "/?domain=CAON&cemetery=Woodland", nil))

	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	body := recorder.Body.String()
	assert.Contains(t, body, "Grave Markers: Woodland")
	assert.Contains(t, body, `href="/graves/CAON/Msx/London/Woodland/A/3/12/-"`)
	assert.Contains(t, body, "rows 1 to 1 of 1")
}
