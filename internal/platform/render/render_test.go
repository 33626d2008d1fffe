// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/render"
)

func templates() fstest.MapFS {
	return fstest.MapFS{
		"layout.html": {Data: []byte(`{{define "header"}}<h1>{{.Vars.TITLE}}</h1>{{end}}`)},
		"DeathRegDetailUpdateen.html": {Data: []byte(
			`{{template "header" .}}<input name="Surname" value="{{.Vars.SURNAME}}">` +
				`{{if .Shows "noMatch"}}<p id="noMatch">none</p>{{end}}`)},
		"DeathRegDetailUpdatefr.html": {Data: []byte(`{{template "header" .}}<p>Nom: {{.Vars.SURNAME}}</p>`)},
		"Erroren.html":                {Data: []byte(`<p>{{.Vars.CODE}}</p>{{range .Messages}}<li>{{.}}</li>{{end}}`)},
	}
}

/*
TestRender_Substitution checks that upper-cased substitutions are escaped into the template.
*/
func TestRender_Substitution(t *testing.T) {
	renderer := render.New(templates(), "en")
	page := render.NewPage("DeathRegDetail", render.ActionUpdate, "en")
	page.Set("title", "Death Registration").Set("surname", `O'Brien <Jr>`)

	recorder := httptest.NewRecorder()
	require.NoError(t, renderer.Render(recorder, http.StatusOK, page))

	body := recorder.Body.String()
	assert.Contains(t, body, "<h1>Death Registration</h1>")
	assert.Contains(t, body, "O&#39;Brien &lt;Jr&gt;")
	assert.Contains(t, body, `id="noMatch"`)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))
}

/*
TestRender_RemovedRegion checks wholesale region removal.
*/
func TestRender_RemovedRegion(t *testing.T) {
	renderer := render.New(templates(), "en")
	page := render.NewPage("DeathRegDetail", render.ActionUpdate, "en").Remove("noMatch")

	recorder := httptest.NewRecorder()
	require.NoError(t, renderer.Render(recorder, http.StatusOK, page))
	assert.NotContains(t, recorder.Body.String(), "noMatch")
}

/*
TestRender_LanguageFallback checks translation lookup and fallback to the default language.
*/
func TestRender_LanguageFallback(t *testing.T) {
	renderer := render.New(templates(), "en")

	french := httptest.NewRecorder()
	require.NoError(t, renderer.Render(french, http.StatusOK,
		render.NewPage("DeathRegDetail", render.ActionUpdate, "fr").Set("SURNAME", "Tremblay")))
	assert.Contains(t, french.Body.String(), "Nom: Tremblay")

	german := httptest.NewRecorder()
	require.NoError(t, renderer.Render(german, http.StatusOK,
		render.NewPage("DeathRegDetail", render.ActionUpdate, "de").Set("SURNAME", "Weber")))
	assert.Contains(t, german.Body.String(), `value="Weber"`)
}

func TestRender_MissingTemplate(t *testing.T) {
	renderer := render.New(templates(), "en")
	err := renderer.Render(httptest.NewRecorder(), http.StatusOK, render.NewPage("Nothing", render.ActionDisplay, "en"))
	assert.ErrorIs(t, err, render.ErrTemplateMissing)
}

/*
TestRender_Error checks the error page status and messages.
*/
func TestRender_Error(t *testing.T) {
	renderer := render.New(templates(), "en")
	request := httptest.NewRequest(http.MethodGet, "/deaths/CAON/1887/1", nil)
	recorder := httptest.NewRecorder()

	renderer.Error(recorder, request, "en", apperr.ValidationError("Invalid parameters",
		apperr.FieldError{Field: "RegYear", Message: "must be a 4 digit year"}))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "VALIDATION_ERROR")
	assert.Contains(t, recorder.Body.String(), "RegYear: must be a 4 digit year")
}
