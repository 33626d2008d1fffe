// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reference serves the domain, county and township lookups.

Record pages use it for labels, and the page scripts fetch county and
township option lists from it as XML when the user changes a selection.

# Access Control

  - Public: every lookup is read-only.
*/
package reference

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ontvitals/internal/platform/params"
	"github.com/taibuivan/ontvitals/internal/platform/respond"
)

var countyCode = regexp.MustCompile(`^[A-Za-z]{2,8}$`)

var lookupParams = params.Schema{
	"domain": params.Domain(),
	"county": params.Pattern(countyCode, "a county abbreviation"),
	"year":   params.Year(),
}.With(params.Common)

// Handler implements the HTTP layer for reference data.
type Handler struct {
	service *Service
}

// NewHandler constructs a new reference [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the reference endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/counties", handler.listCounties)
	router.Get("/townships", handler.listTownships)

	return router
}

/*
GET /reference/counties.

Description: Returns the counties of a domain as an XML option list.

Request:
  - domain: string (defaults to CAON)
  - year: int (optional, only counties existing in that year)

Response:
  - 200: <counties><parms>…</parms><county code="Msx">Middlesex</county>…</counties>
  - 400/404: <counties><msg>…</msg></counties>
*/
func (handler *Handler) listCounties(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, lookupParams)
	domain := values.String("domain", handler.service.DefaultDomain())

	fragment := respond.NewFragment("counties").Parm("domain", domain)
	if err := values.Err(); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	counties, err := handler.service.Counties(request.Context(), domain, values.Int("year", 0))
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment.WithBody(counties))
}

/*
GET /reference/townships.

Description: Returns the townships of a county as an XML option list.

Request:
  - domain: string (defaults to CAON)
  - county: string (required)

Response:
  - 200: <townships><parms>…</parms><township code="Zorra">Zorra</township>…</townships>
  - 400/404: <townships><msg>…</msg></townships>
*/
func (handler *Handler) listTownships(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, lookupParams)
	domain := values.String("domain", handler.service.DefaultDomain())
	county := values.String("county", "")

	fragment := respond.NewFragment("townships").Parm("domain", domain).Parm("county", county)
	if county == "" && values.OK() {
		values.Fail("county", "missing county")
	}
	if err := values.Err(); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	townships, err := handler.service.Townships(request.Context(), domain, county)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment.WithBody(townships))
}
