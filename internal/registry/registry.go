// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package registry holds what the transcription pages of every record type
share: reference labels, language selection and query page paging.

Each record type lives in its own subpackage (death, marriage, baptism,
countymarriage, grave) with the entity, store, service and HTTP layers.
*/
package registry

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/params"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// Reference is the label lookup the record pages need.
type Reference interface {
	Domain(context context.Context, code string) (*reference.Domain, error)
	CountyName(context context.Context, domain, code string) (string, error)
	DefaultDomain() string
}

var _ Reference = (*reference.Service)(nil)

// Lang returns the page language requested by the lang parameter, or else
// the language of the domain, or else def.
func Lang(values *params.Values, domain *reference.Domain, def string) string {
	if lang := values.String("lang", ""); lang != "" {
		return lang
	}
	if domain != nil && domain.Lang != "" {
		return domain.Lang
	}
	return def
}

// Labels sets DOMAIN, DOMAINNAME and, when county is not empty, COUNTY and
// COUNTYNAME. An unknown county keeps its code as the name.
func Labels(context context.Context, ref Reference, page *render.Page, domain *reference.Domain, county string) {
	page.Set("DOMAIN", domain.Code).Set("DOMAINNAME", domain.Name)
	if county == "" {
		page.Set("COUNTY", "").Set("COUNTYNAME", "")
		return
	}
	name, err := ref.CountyName(context, domain.Code, county)
	if err != nil {
		name = county
	}
	page.Set("COUNTY", county).Set("COUNTYNAME", name)
}

// Paging fills the window substitutions of a query response page and
// removes the prev, next, records and noRecords regions that do not apply.
func Paging(page *render.Page, request *http.Request, window pagination.Window) {
	page.Set("OFFSET", window.Offset).
		Set("LIMIT", window.Limit).
		Set("TOTAL", window.Total).
		Set("FIRST", window.First).
		Set("LAST", window.Last).
		Set("PREVOFFSET", window.PrevOffset).
		Set("NEXTOFFSET", window.NextOffset).
		Set("SEARCH", Search(request))

	page.RemoveIf(!window.HasPrev, "prev").
		RemoveIf(!window.HasNext, "next").
		RemoveIf(window.Last > 0, "noRecords").
		RemoveIf(window.Last == 0, "records")
}

// Search returns the request's query string without offset, ready to be
// followed by "&offset=" in a prev or next link.
func Search(request *http.Request) template.URL {
	query := url.Values{}
	for key, list := range request.URL.Query() {
		if strings.EqualFold(key, "offset") {
			continue
		}
		query[key] = list
	}
	return template.URL(query.Encode())
}
