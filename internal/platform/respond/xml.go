// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"encoding/xml"
	"net/http"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// Fragment is the XML document returned to the page scripts.
//
// A successful reply echoes the accepted parameters inside <parms>, including
// the rownum the script uses to find the table row to patch. A failed reply
// carries a <msg> element instead:
//
//	<deleted><parms><rownum>12</rownum></parms></deleted>
//	<deleted><msg>Death registration not found</msg></deleted>
type Fragment struct {
	// Root names the document element, usually after the operation.
	Root  string
	Parms []Parm
	Msg   string
	// Body is marshalled after <parms> with encoding/xml rules.
	Body any
}

// Parm is one echoed parameter.
type Parm struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

// NewFragment starts a document with the given root element.
func NewFragment(root string) *Fragment {
	return &Fragment{Root: root}
}

// Parm appends an echoed parameter.
func (f *Fragment) Parm(name, value string) *Fragment {
	f.Parms = append(f.Parms, Parm{XMLName: xml.Name{Local: strings.ToLower(name)}, Value: value})
	return f
}

// WithBody attaches the payload marshalled after <parms>.
func (f *Fragment) WithBody(body any) *Fragment {
	f.Body = body
	return f
}

// MarshalXML implements [xml.Marshaler].
func (f Fragment) MarshalXML(encoder *xml.Encoder, _ xml.StartElement) error {
	root := xml.StartElement{Name: xml.Name{Local: f.Root}}
	if err := encoder.EncodeToken(root); err != nil {
		return err
	}

	if len(f.Parms) > 0 {
		parms := struct {
			Items []Parm
		}{Items: f.Parms}
		if err := encoder.EncodeElement(parms, xml.StartElement{Name: xml.Name{Local: "parms"}}); err != nil {
			return err
		}
	}

	if f.Msg != "" {
		if err := encoder.EncodeElement(f.Msg, xml.StartElement{Name: xml.Name{Local: "msg"}}); err != nil {
			return err
		}
	}

	if f.Body != nil {
		if err := encoder.Encode(f.Body); err != nil {
			return err
		}
	}

	return encoder.EncodeToken(root.End())
}

// XML writes the fragment with an XML declaration.
func XML(writer http.ResponseWriter, status int, fragment *Fragment) {
	writer.Header().Set("Content-Type", "text/xml; charset=utf-8")
	writer.WriteHeader(status)
	_, _ = writer.Write([]byte(xml.Header))
	_ = xml.NewEncoder(writer).Encode(fragment)
}

// XMLError answers an AJAX call with a <msg> element describing err.
// The echoed parameters of fragment are kept so the script can still
// locate its row.
func XMLError(writer http.ResponseWriter, request *http.Request, fragment *Fragment, err error) {
	appError := apperr.From(err)
	logServerError(request, appError)

	fragment.Msg = strings.Join(appError.Messages(), "; ")
	fragment.Body = nil
	XML(writer, appError.HTTPStatus, fragment)
}
