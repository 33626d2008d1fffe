// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package baptism serves the Wesleyan Methodist baptism register pages.

Entries are numbered by the database (IDMB) and located by the register
volume and page they were read from. New entries are entered on
/baptisms/new?volume=V&page=P.

# Access Control

  - Public: detail (Display template) and query pages.
  - Editor: the new-entry form, saving and deleting.
*/
package baptism

import (
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
	"github.com/taibuivan/ontvitals/internal/registry"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var idirDigits = regexp.MustCompile(`^\d{1,18}$`)

var detailParams = params.Schema{
	"volume":       params.Digits(1, 999),
	"page":         params.Digits(1, 9999),
	"district":     params.Text(64),
	"area":         params.Text(64),
	"givenname":    params.Text(128),
	"surname":      params.Text(64),
	"father":       params.Text(128),
	"mother":       params.Text(128),
	"residence":    params.Text(128),
	"birthplace":   params.Text(128),
	"birthdate":    params.Text(32),
	"baptismdate":  params.Text(32),
	"baptismplace": params.Text(128),
	"minister":     params.Text(128),
	"idir":         params.Pattern(idirDigits, "a person number"),
	"rownum":       params.Any(),
}.With(params.Common)

var queryParams = params.Schema{
	"volume":    params.Digits(1, 999),
	"page":      params.Digits(1, 9999),
	"surname":   params.Text(64),
	"soundex":   params.Flag(),
	"givenname": params.Text(128),
	"district":  params.Text(64),
}.With(params.Common, params.Paging)

// Handler implements the HTTP layer for baptism entries.
type Handler struct {
	service  *Service
	renderer *render.Renderer
}

// NewHandler constructs a new baptism [Handler].
func NewHandler(service *Service, renderer *render.Renderer) *Handler {
	return &Handler{service: service, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the baptism endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.query)
	router.Get("/{idmb}", handler.detail)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Get("/new", handler.blank)
		editor.Post("/new", handler.update)
		editor.Post("/{idmb}", handler.update)
		editor.Post("/{idmb}/delete", handler.delete)
	})

	return router
}

// idmbFromPath returns the entry number of the URL, 0 on /new.
func idmbFromPath(request *http.Request) (int64, error) {
	if requestutil.Param(request, "idmb") == "" {
		return 0, nil
	}
	idmb, err := requestutil.IntParam(request, "idmb")
	if err != nil {
		return 0, err
	}
	if idmb == 0 {
		return 0, apperr.NotFound("Baptism 0")
	}
	return int64(idmb), nil
}

/*
GET /baptisms/{idmb}.

Response:
  - 200: MethodistBaptismDetail page
  - 400/404: Error page
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	idmb, err := idmbFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	updating := ctxutil.CanEdit(request.Context())
	view, err := handler.service.Load(request.Context(), idmb, updating)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	handler.show(writer, request, values, view, updating)
}

/*
GET /baptisms/new.

Description: Shows an empty Update form for the volume and page given.

Request:
  - volume, page: int (required)
*/
func (handler *Handler) blank(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	if !values.Has("volume") {
		values.Fail("volume", "required")
	}
	if !values.Has("page") {
		values.Fail("page", "required")
	}
	if err := values.Err(); err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	baptism := &Baptism{Volume: values.Int("volume", 0), Page: values.Int("page", 0)}
	handler.show(writer, request, values, &View{Baptism: baptism}, true)
}

/*
POST /baptisms/new and POST /baptisms/{idmb}.

Description: Creates or updates an entry from the posted fields.

Response:
  - 303: Redirect to the detail page of the entry
  - 200: MethodistBaptismDetail page with messages when a field is rejected
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	idmb, err := idmbFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	baptism := &Baptism{}
	if idmb != 0 {
		view, err := handler.service.Load(request.Context(), idmb, false)
		if err != nil {
			handler.renderer.Error(writer, request, lang, err)
			return
		}
		baptism = view.Baptism
	}

	for _, column := range Columns {
		if value, ok := values.Lookup(column); ok {
			baptism.Set(column, value)
		}
	}
	baptism.UpdatedBy = requestutil.Username(request)

	if values.OK() {
		err = handler.service.Save(request.Context(), baptism)
		if err == nil {
			target := "/baptisms/" + baptism.Detail() + "?lang=" + lang
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

	handler.show(writer, request, values, &View{Baptism: baptism}, true)
}

func (handler *Handler) show(writer http.ResponseWriter, request *http.Request, values *params.Values, view *View, updating bool) {
	baptism := view.Baptism
	lang := registry.Lang(values, nil, handler.renderer.DefaultLang())

	action := render.ActionDisplay
	if updating {
		action = render.ActionUpdate
	}

	page := render.NewPage("MethodistBaptismDetail", action, lang)
	page.Set("IDMB", baptism.IDMB).
		Set("VOLUME", baptism.Volume).
		Set("PAGE", baptism.Page).
		Set("DISTRICT", baptism.District).
		Set("AREA", baptism.Area).
		Set("GIVENNAME", baptism.GivenName).
		Set("SURNAME", baptism.Surname).
		Set("FATHER", baptism.Father).
		Set("MOTHER", baptism.Mother).
		Set("RESIDENCE", baptism.Residence).
		Set("BIRTHPLACE", baptism.BirthPlace).
		Set("BIRTHDATE", baptism.BirthDate).
		Set("BAPTISMDATE", baptism.BaptismDate).
		Set("BAPTISMPLACE", baptism.BaptismPlace).
		Set("MINISTER", baptism.Minister).
		Set("IDIR", baptism.IDIR).
		Set("DETAIL", baptism.Detail())

	page.RemoveIf(baptism.IDMB != 0, "new").
		RemoveIf(baptism.IDMB == 0, "delete").
		RemoveIf(baptism.IDIR == 0, "linked").
		RemoveIf(!view.Searched || len(view.Candidates) == 0, "matches").
		RemoveIf(!view.Searched || len(view.Candidates) > 0, "noMatch")
	page.Rows = view.Candidates

	page.AddMessages(values.Messages)
	page.Warnings = values.Warnings
	handler.renderer.Page(writer, request, page)
}

/*
POST /baptisms/{idmb}/delete.

Response:
  - 200: <deleted><parms><idmb>n</idmb><rownum>n</rownum></parms></deleted>
  - 400/404: <deleted><msg>…</msg></deleted>
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	fragment := respond.NewFragment("deleted").
		Parm("idmb", requestutil.Param(request, "idmb")).
		Parm("rownum", values.String("rownum", ""))

	idmb, err := idmbFromPath(request)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	if err := handler.service.Delete(request.Context(), idmb); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment)
}

/*
GET /baptisms.

Description: Lists entries by register volume and page, or by name.

Response:
  - 200: MethodistBaptismQuery page
  - 400: Error page
*/
func (handler *Handler) query(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, queryParams)
	lang := registry.Lang(values, nil, handler.renderer.DefaultLang())

	if err := values.Err(); err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	filter := Filter{
		Volume:    values.Int("volume", 0),
		Page:      values.Int("page", 0),
		Surname:   values.String("surname", ""),
		Soundex:   values.Bool("soundex"),
		GivenName: values.String("givenname", ""),
		District:  values.String("district", ""),
	}

	page := pagination.New(values.Int("offset", 0), values.Int("limit", values.Int("count", pagination.DefaultLimit)))
	baptisms, window, err := handler.service.Query(request.Context(), filter, page)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	editable := ctxutil.CanEdit(request.Context())
	response := render.NewPage("MethodistBaptismQuery", "", lang)
	response.Set("VOLUME", filter.Volume).
		Set("PAGE", filter.Page).
		Set("SURNAME", filter.Surname).
		Set("EDITABLE", editable).
		Set("NEWENTRY", newEntryURL(filter.Volume, max(filter.Page, 1)))
	response.RemoveIf(!editable || filter.Volume == 0, "newEntry")
	registry.Paging(response, request, window)
	response.Rows = rows(baptisms, window.Offset)
	response.Warnings = values.Warnings

	handler.renderer.Page(writer, request, response)
}

// Row is one line of the query page.
type Row struct {
	Baptism
	Num int
}

func rows(baptisms []Baptism, offset int) []Row {
	rows := make([]Row, len(baptisms))
	for i, baptism := range baptisms {
		rows[i] = Row{Baptism: baptism, Num: offset + i + 1}
	}
	return rows
}

// newEntryURL is the new-entry form of a register page.
func newEntryURL(volume, page int) string {
	return "/baptisms/new?volume=" + strconv.Itoa(volume) + "&page=" + strconv.Itoa(page)
}
