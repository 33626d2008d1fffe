// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond_test

import (
	"encoding/xml"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/respond"
)

type county struct {
	XMLName xml.Name `xml:"county"`
	Code    string   `xml:"code,attr"`
	Name    string   `xml:",chardata"`
}

/*
TestXML_Success checks the <parms> echo and an attached body.
*/
func TestXML_Success(t *testing.T) {
	recorder := httptest.NewRecorder()
	fragment := respond.NewFragment("counties").
		Parm("Domain", "CAON").
		Parm("rownum", "12").
		WithBody([]county{{Code: "Msx", Name: "Middlesex"}, {Code: "Oxf", Name: "Oxford"}})

	respond.XML(recorder, http.StatusOK, fragment)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "text/xml; charset=utf-8", recorder.Header().Get("Content-Type"))
	assert.Equal(t, xml.Header+
		`<counties><parms><domain>CAON</domain><rownum>12</rownum></parms>`+
		`<county code="Msx">Middlesex</county><county code="Oxf">Oxford</county></counties>`,
		recorder.Body.String())
}

/*
TestXMLError checks that failures carry <msg> and keep the row locator.
*/
func TestXMLError(t *testing.T) {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/deaths/CAON/1887/12/delete", nil)
	fragment := respond.NewFragment("deleted").Parm("rownum", "4")

	respond.XMLError(recorder, request, fragment, apperr.NotFound("Death registration"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var decoded struct {
		XMLName xml.Name `xml:"deleted"`
		Rownum  string   `xml:"parms>rownum"`
		Msg     string   `xml:"msg"`
	}
	require.NoError(t, xml.Unmarshal(recorder.Body.Bytes(), &decoded))
	assert.Equal(t, "4", decoded.Rownum)
	assert.Equal(t, "Death registration not found", decoded.Msg)
}
