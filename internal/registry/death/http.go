// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package death serves the Ontario death registration pages.

A registration is addressed by domain, registration year and number
(/deaths/CAON/1887/12). The detail page shows the transcription, or a blank
form for a number not yet transcribed, and proposes family tree candidates
for an unlinked deceased. The query page lists registrations by year,
surname or place and exports them as a spreadsheet.

# Access Control

  - Public: detail (Display template) and query pages.
  - Editor: saving and deleting registrations.
*/
package death

import (
	"log/slog"
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/middleware"
	"github.com/taibuivan/ontvitals/internal/platform/params"
	"github.com/taibuivan/ontvitals/internal/platform/render"
	requestutil "github.com/taibuivan/ontvitals/internal/platform/request"
	"github.com/taibuivan/ontvitals/internal/platform/respond"
	"github.com/taibuivan/ontvitals/internal/platform/sec"
	"github.com/taibuivan/ontvitals/internal/platform/sheet"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/internal/registry"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var (
	countyCode = regexp.MustCompile(`^[A-Za-z]{2,8}$`)
	idirDigits = regexp.MustCompile(`^\d{1,18}$`)
)

var detailParams = params.Schema{
	"msvol":      params.Text(16),
	"county":     params.Pattern(countyCode, "a county abbreviation"),
	"township":   params.Text(64),
	"surname":    params.Text(64),
	"givennames": params.Text(128),
	"sex":        params.OneOf("M", "F", "?"),
	"date":       params.Text(32),
	"place":      params.Text(128),
	"age":        params.Text(32),
	"birthdate":  params.Text(32),
	"birthplace": params.Text(128),
	"occupation": params.Text(64),
	"marstat":    params.OneOf("S", "M", "W", "D"),
	"religion":   params.Text(64),
	"fathername": params.Text(128),
	"mothername": params.Text(128),
	"cause":      params.Text(1000),
	"duration":   params.Text(32),
	"informant":  params.Text(128),
	"inforel":    params.Text(64),
	"physician":  params.Text(128),
	"registrar":  params.Text(128),
	"regdate":    params.Text(32),
	"remarks":    params.Text(2000),
	"image":      params.Text(255),
	"idir":       params.Pattern(idirDigits, "a person number"),
	"rownum":     params.Any(),
}.With(params.Common)

var queryParams = params.Schema{
	"domain":     params.Domain(),
	"regyear":    params.Year(),
	"regnum":     params.Digits(1, 9_999_999),
	"surname":    params.Text(64),
	"soundex":    params.Flag(),
	"givennames": params.Text(128),
	"county":     params.Pattern(countyCode, "a county abbreviation"),
	"township":   params.Text(64),
	"format":     params.OneOf("html", "xlsx"),
}.With(params.Common, params.Paging)

// Handler implements the HTTP layer for death registrations.
type Handler struct {
	service   *Service
	reference registry.Reference
	renderer  *render.Renderer
}

// NewHandler constructs a new death [Handler].
func NewHandler(service *Service, reference registry.Reference, renderer *render.Renderer) *Handler {
	return &Handler{service: service, reference: reference, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the death registration endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.query)
	router.Get("/{domain}/{year}/{num}", handler.detail)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/{domain}/{year}/{num}", handler.update)
		editor.Post("/{domain}/{year}/{num}/delete", handler.delete)
	})

	return router
}

// keyFromPath reads and checks the registration key of the URL.
func keyFromPath(request *http.Request) (Key, error) {
	year, err := requestutil.IntParam(request, "year")
	if err != nil {
		return Key{}, err
	}
	num, err := requestutil.IntParam(request, "num")
	if err != nil {
		return Key{}, err
	}

	key := Key{Domain: requestutil.DomainParam(request), RegYear: year, RegNum: num}
	if !validate.DomainPattern.MatchString(key.Domain) || year < 1869 || year > 2100 || num == 0 {
		return Key{}, apperr.ValidationError("Invalid registration",
			apperr.FieldError{Field: "registration", Message: "unknown registration " + key.Detail()})
	}
	return key, nil
}

/*
GET /deaths/{domain}/{year}/{num}.

Description: Shows a registration; editors get the Update form with tree candidates.

Request:
  - lang: string (optional template language)

Response:
  - 200: DeathRegDetail page
  - 400/404: Error page
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	key, err := keyFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	updating := ctxutil.CanEdit(request.Context())
	view, err := handler.service.Load(request.Context(), key, updating)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	handler.show(writer, request, values, view, updating)
}

/*
POST /deaths/{domain}/{year}/{num}.

Description: Saves the posted fields over the stored registration.

Response:
  - 303: Redirect to the detail page
  - 200: DeathRegDetail page with messages when a field is rejected
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	key, err := keyFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	view, err := handler.service.Load(request.Context(), key, false)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	for _, column := range Columns {
		if value, ok := values.Lookup(column); ok {
			view.Death.Set(column, value)
		}
	}
	view.Death.UpdatedBy = requestutil.Username(request)

	if values.OK() {
		err = handler.service.Save(request.Context(), view.Death)
		if err == nil {
			target := "/deaths/" + key.Domain + "/" + strconv.Itoa(key.RegYear) + "/" + strconv.Itoa(key.RegNum) + "?lang=" + lang
			http.Redirect(writer, request, target, http.StatusSeeOther)
			return
		}
		appError := apperr.As(err)
		if appError == nil || len(appError.Details) == 0 {
			handler.renderer.Error(writer, request, lang, err)
			return
		}
		values.Messages = append(values.Messages, appError.Details...)
	}

	handler.show(writer, request, values, view, true)
}

// show renders the detail page of view.
func (handler *Handler) show(writer http.ResponseWriter, request *http.Request, values *params.Values, view *View, updating bool) {
	death := view.Death

	domain, err := handler.reference.Domain(request.Context(), death.Domain)
	if err != nil {
		handler.renderer.Error(writer, request, values.String("lang", handler.renderer.DefaultLang()), err)
		return
	}
	lang := registry.Lang(values, domain, handler.renderer.DefaultLang())

	action := render.ActionDisplay
	if updating {
		action = render.ActionUpdate
	}

	page := render.NewPage("DeathRegDetail", action, lang)
	registry.Labels(request.Context(), handler.reference, page, domain, death.County)
	page.Set("REGYEAR", death.RegYear).
		Set("REGNUM", death.RegNum).
		Set("MSVOL", death.MsVol).
		Set("TOWNSHIP", death.Township).
		Set("SURNAME", death.Surname).
		Set("GIVENNAMES", death.GivenNames).
		Set("SEX", death.Sex).
		Set("DATE", death.Date).
		Set("PLACE", death.Place).
		Set("AGE", death.Age).
		Set("BIRTHDATE", death.BirthDate).
		Set("BIRTHPLACE", death.BirthPlace).
		Set("OCCUPATION", death.Occupation).
		Set("MARSTAT", death.MarStat).
		Set("RELIGION", death.Religion).
		Set("FATHERNAME", death.FatherName).
		Set("MOTHERNAME", death.MotherName).
		Set("CAUSE", death.Cause).
		Set("DURATION", death.Duration).
		Set("INFORMANT", death.Informant).
		Set("INFOREL", death.InfoRel).
		Set("PHYSICIAN", death.Physician).
		Set("REGISTRAR", death.Registrar).
		Set("REGDATE", death.RegDate).
		Set("REMARKS", death.Remarks).
		Set("IMAGE", death.Image).
		Set("IDIR", death.IDIR).
		Set("DETAIL", death.Detail())

	page.RemoveIf(view.Exists, "new").
		RemoveIf(death.IDIR == 0, "linked").
		RemoveIf(death.Image == "", "image").
		RemoveIf(!view.Searched || len(view.Candidates) == 0, "matches").
		RemoveIf(!view.Searched || len(view.Candidates) > 0, "noMatch")
	page.Rows = view.Candidates

	page.AddMessages(values.Messages)
	page.Warnings = values.Warnings
	handler.renderer.Page(writer, request, page)
}

/*
POST /deaths/{domain}/{year}/{num}/delete.

Description: Deletes a registration and its tree citations.

Request:
  - rownum: string (echoed for the page script)

Response:
  - 200: <deleted><parms>…<rownum>n</rownum></parms></deleted>
  - 400/404: <deleted><msg>…</msg></deleted>
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	fragment := respond.NewFragment("deleted").
		Parm("domain", requestutil.DomainParam(request)).
		Parm("regyear", requestutil.Param(request, "year")).
		Parm("regnum", requestutil.Param(request, "num")).
		Parm("rownum", values.String("rownum", ""))

	key, err := keyFromPath(request)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	if err := handler.service.Delete(request.Context(), key); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment)
}

/*
GET /deaths.

Description: Lists registrations matching the search, or exports them.

Request:
  - domain, regyear, regnum, surname, soundex, givennames, county, township
  - offset, limit (or count): int
  - format: html | xlsx

Response:
  - 200: DeathRegQuery page or an xlsx workbook
  - 400: Error page
*/
func (handler *Handler) query(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, queryParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	if err := values.Err(); err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	domain, err := handler.reference.Domain(request.Context(), values.String("domain", handler.reference.DefaultDomain()))
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}
	lang = registry.Lang(values, domain, handler.renderer.DefaultLang())

	filter := Filter{
		Domain:     domain.Code,
		RegYear:    values.Int("regyear", 0),
		RegNum:     values.Int("regnum", 0),
		Surname:    values.String("surname", ""),
		Soundex:    values.Bool("soundex"),
		GivenNames: values.String("givennames", ""),
		County:     values.String("county", ""),
		Township:   values.String("township", ""),
	}

	if values.String("format", "html") == "xlsx" {
		handler.export(writer, request, lang, filter)
		return
	}

	page := pagination.New(values.Int("offset", 0), values.Int("limit", values.Int("count", pagination.DefaultLimit)))
	deaths, window, err := handler.service.Query(request.Context(), filter, page)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	response := render.NewPage("DeathRegQuery", "", lang)
	registry.Labels(request.Context(), handler.reference, response, domain, filter.County)
	response.Set("REGYEAR", filter.RegYear).
		Set("SURNAME", filter.Surname).
		Set("GIVENNAMES", filter.GivenNames).
		Set("TOWNSHIP", filter.Township).
		Set("EDITABLE", ctxutil.CanEdit(request.Context()))
	registry.Paging(response, request, window)
	response.Rows = rows(deaths, window.Offset)
	response.Warnings = values.Warnings

	handler.renderer.Page(writer, request, response)
}

// Row is one line of the query page.
type Row struct {
	Death
	// Num is the 1-based position in the whole result, used as rownum.
	Num int
}

func rows(deaths []Death, offset int) []Row {
	rows := make([]Row, len(deaths))
	for i, death := range deaths {
		rows[i] = Row{Death: death, Num: offset + i + 1}
	}
	return rows
}

func (handler *Handler) export(writer http.ResponseWriter, request *http.Request, lang string, filter Filter) {
	table, err := handler.service.Export(request.Context(), filter)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	filename := "deaths-" + filter.Domain
	if filter.RegYear > 0 {
		filename += "-" + strconv.Itoa(filter.RegYear)
	}
	if err := sheet.Serve(writer, filename+".xlsx", table); err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "death_export_failed", slog.Any("error", err))
	}
}
