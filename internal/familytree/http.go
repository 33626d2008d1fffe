// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package familytree links transcribed registrations to individuals of the
family tree.

A registration page asks for candidates matching its subject ([Service.Find]),
the user picks one, and the page posts the choice back. The choice is stored
twice: in the registration's IDIR column, through the [RecordLinker] of its
source, and as a tree citation that later page loads look up by detail.

# Access Control

  - Public: candidate searches.
  - Editor: creating and removing citations.
*/
package familytree

import (
	"context"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/middleware"
	"github.com/taibuivan/ontvitals/internal/platform/params"
	requestutil "github.com/taibuivan/ontvitals/internal/platform/request"
	"github.com/taibuivan/ontvitals/internal/platform/respond"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
)

// RecordLinker stores a chosen IDIR in the registration a detail points at.
type RecordLinker interface {
	// Source is the citation source the linker owns.
	Source() SourceKind

	// LinkRecord sets the IDIR of the registration and returns the event it documents.
	LinkRecord(context context.Context, detail string, idir int64) (Event, error)
}

var sourceKinds = []string{
	string(SourceDeath), string(SourceMarriage), string(SourceBaptism), string(SourceCountyMarriage),
}

var idirPattern = regexp.MustCompile(`^[1-9]\d{0,17}$`)

var matchParams = params.Schema{
	"surname":    params.Text(64),
	"givennames": params.Text(128),
	"father":     params.Text(128),
	"role":       params.OneOf("male", "female", "officiant", "unknown", "G", "B", "M", "F"),
	"birthdate":  params.Text(32),
	"age":        params.Text(16),
	"year":       params.Year(),
	"delta":      params.Digits(0, 50),
	"rownum":     params.Any(),
}.With(params.Common)

var citationParams = params.Schema{
	"source": params.OneOf(sourceKinds...),
	"detail": params.Text(128),
	"idir":   params.Pattern(idirPattern, "a person number"),
	"rownum": params.Any(),
}.With(params.Common)

// Handler implements the HTTP layer for tree matching and citations.
type Handler struct {
	service *Service
	linkers map[SourceKind]RecordLinker
}

// NewHandler constructs a new family tree [Handler].
func NewHandler(service *Service, linkers ...RecordLinker) *Handler {
	handler := &Handler{service: service, linkers: make(map[SourceKind]RecordLinker)}
	for _, linker := range linkers {
		handler.linkers[linker.Source()] = linker
	}
	return handler
}

// Routes returns a [chi.Router] configured with the family tree endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/match", handler.match)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/citations", handler.link)
		editor.Post("/citations/delete", handler.unlink)
	})

	return router
}

/*
GET /familytree/match.

Description: Proposes tree individuals for the subject of a registration.

Request:
  - surname, givennames: string (both required for any candidate)
  - father: string (optional, widens the surname search)
  - role: male | female | officiant | unknown, or G/B/M/F
  - birthdate, age, year: the dating evidence of the registration
  - delta: int (optional birth-year tolerance)

Response:
  - 200: <match><parms>…</parms><indiv id="…">…</indiv>…</match>
  - 400: <match><msg>…</msg></match>
*/
func (handler *Handler) match(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, matchParams)

	fragment := respond.NewFragment("match").
		Parm("surname", values.String("surname", "")).
		Parm("givennames", values.String("givennames", "")).
		Parm("rownum", values.String("rownum", ""))
	if err := values.Err(); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	role, _ := ParseRole(values.String("role", "unknown"))
	candidates, err := handler.service.Find(request.Context(), Query{
		Surname:       values.String("surname", ""),
		GivenNames:    values.String("givennames", ""),
		Father:        values.String("father", ""),
		Role:          role,
		BirthDate:     values.String("birthdate", ""),
		Age:           values.String("age", ""),
		ReferenceYear: values.Int("year", 0),
		Delta:         values.Int("delta", 0),
	})
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment.WithBody(candidates))
}

/*
POST /familytree/citations.

Description: Links a registration to a tree individual.

Request:
  - source: death | marriage | mbaptism | countymarriage
  - detail: string (the registration's citation detail)
  - idir: int (the chosen individual)

Response:
  - 200: <cited><parms>…</parms></cited>
  - 400/401/403/404: <cited><msg>…</msg></cited>
*/
func (handler *Handler) link(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, citationParams)
	kind := SourceKind(values.String("source", ""))
	detail := values.String("detail", "")

	fragment := respond.NewFragment("cited").
		Parm("source", string(kind)).
		Parm("detail", detail).
		Parm("idir", values.String("idir", "")).
		Parm("rownum", values.String("rownum", ""))
	requireCitationKey(values, kind, detail)
	if !values.Has("idir") && values.OK() {
		values.Fail("idir", "missing person")
	}
	if err := values.Err(); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	linker, ok := handler.linkers[kind]
	if !ok {
		respond.XMLError(writer, request, fragment, apperr.NotFound("Source "+string(kind)))
		return
	}

	idir, _ := strconv.ParseInt(values.String("idir", ""), 10, 64)
	if _, err := handler.service.Person(request.Context(), idir); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	event, err := linker.LinkRecord(request.Context(), detail, idir)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	// The registration keeps the IDIR when the citation insert fails.
	err = handler.service.Link(request.Context(), &Citation{
		Source:    kind,
		IDIR:      idir,
		Event:     event,
		Detail:    detail,
		CreatedBy: requestutil.Username(request),
	})
	if err != nil {
		ctxutil.GetLogger(request.Context()).WarnContext(request.Context(), "citation_partial_link",
			slog.String("source", string(kind)),
			slog.String("detail", detail),
			slog.Any("error", err),
		)
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment)
}

/*
POST /familytree/citations/delete.

Description: Clears the link of a registration.

Request:
  - source, detail: as for POST /familytree/citations

Response:
  - 200: <uncited><parms>…<count>n</count></parms></uncited>
*/
func (handler *Handler) unlink(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, citationParams)
	kind := SourceKind(values.String("source", ""))
	detail := values.String("detail", "")

	fragment := respond.NewFragment("uncited").
		Parm("source", string(kind)).
		Parm("detail", detail).
		Parm("rownum", values.String("rownum", ""))
	requireCitationKey(values, kind, detail)
	if err := values.Err(); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	linker, ok := handler.linkers[kind]
	if !ok {
		respond.XMLError(writer, request, fragment, apperr.NotFound("Source "+string(kind)))
		return
	}

	if _, err := linker.LinkRecord(request.Context(), detail, 0); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	removed, err := handler.service.Unlink(request.Context(), kind, detail)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment.Parm("count", strconv.FormatInt(removed, 10)))
}

func requireCitationKey(values *params.Values, kind SourceKind, detail string) {
	if !values.OK() {
		return
	}
	if kind == "" {
		values.Fail("source", "missing source")
	}
	if detail == "" {
		values.Fail("detail", "missing detail")
	}
}
