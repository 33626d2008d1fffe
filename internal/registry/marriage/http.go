// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package marriage serves the Ontario marriage registration pages.

A registration (/marriages/CAON/1887/12) has a header describing the
ceremony and three participant rows: groom (G), bride (B) and the
officiating minister (M). The detail form posts the participant fields as
numbered columns (Surname1, Surname2, ...) with a Role column naming the
participant of each row.

# Access Control

  - Public: detail (Display template) and query pages.
  - Editor: saving and deleting registrations.
*/
package marriage

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
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/internal/registry"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

var (
	countyCode = regexp.MustCompile(`^[A-Za-z]{2,8}$`)
	idirDigits = regexp.MustCompile(`^\d{1,18}$`)
)

var detailParams = params.Schema{
	"msvol":       params.Text(16),
	"county":      params.Pattern(countyCode, "a county abbreviation"),
	"township":    params.Text(64),
	"place":       params.Text(128),
	"date":        params.Text(32),
	"licensetype": params.OneOf("L", "B"),
	"registrar":   params.Text(128),
	"regdate":     params.Text(32),
	"remarks":     params.Text(2000),
	"image":       params.Text(255),

	"role":        params.OneOf(Roles...),
	"givennames":  params.Text(128),
	"surname":     params.Text(64),
	"age":         params.Text(32),
	"byear":       params.Year(),
	"residence":   params.Text(128),
	"birthplace":  params.Text(128),
	"marstat":     params.OneOf("S", "M", "W", "D"),
	"occupation":  params.Text(64),
	"fathername":  params.Text(128),
	"mothername":  params.Text(128),
	"religion":    params.Text(64),
	"witnessname": params.Text(128),
	"witnessres":  params.Text(128),
	"idir":        params.Pattern(idirDigits, "a person number"),

	"rownum": params.Any(),
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
}.With(params.Common, params.Paging)

// Handler implements the HTTP layer for marriage registrations.
type Handler struct {
	service   *Service
	reference registry.Reference
	renderer  *render.Renderer
}

// NewHandler constructs a new marriage [Handler].
func NewHandler(service *Service, reference registry.Reference, renderer *render.Renderer) *Handler {
	return &Handler{service: service, reference: reference, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the marriage registration endpoints.
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
	if !validate.DomainPattern.MatchString(key.Domain) || year < 1858 || year > 2100 || num == 0 {
		return Key{}, apperr.ValidationError("Invalid registration",
			apperr.FieldError{Field: "registration", Message: "unknown registration " + key.Label()})
	}
	return key, nil
}

/*
GET /marriages/{domain}/{year}/{num}.

Description: Shows a registration; editors get the Update form with candidates
for each unlinked participant.

Response:
  - 200: MarriageRegDetail page
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
POST /marriages/{domain}/{year}/{num}.

Description: Saves the header and the posted participant rows.

Response:
  - 303: Redirect to the detail page
  - 200: MarriageRegDetail page with messages when a field is rejected
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
	marriage := view.Marriage

	for _, column := range Columns {
		if value, ok := values.Lookup(column); ok {
			marriage.Set(column, value)
		}
	}
	for _, row := range values.Rows() {
		participant := marriage.Participant(row.String("role", ""))
		if participant == nil {
			values.Fail("role"+strconv.Itoa(row.Num), "missing participant role")
			continue
		}
		for _, column := range ParticipantColumns {
			if value, ok := row.Lookup(column); ok {
				participant.Set(column, value)
			}
		}
	}
	marriage.UpdatedBy = requestutil.Username(request)

	if values.OK() {
		err = handler.service.Save(request.Context(), marriage)
		if err == nil {
			target := "/marriages/" + key.Domain + "/" + strconv.Itoa(key.RegYear) + "/" + strconv.Itoa(key.RegNum) + "?lang=" + lang
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

func (handler *Handler) show(writer http.ResponseWriter, request *http.Request, values *params.Values, view *View, updating bool) {
	marriage := view.Marriage

	domain, err := handler.reference.Domain(request.Context(), marriage.Domain)
	if err != nil {
		handler.renderer.Error(writer, request, values.String("lang", handler.renderer.DefaultLang()), err)
		return
	}
	lang := registry.Lang(values, domain, handler.renderer.DefaultLang())

	action := render.ActionDisplay
	if updating {
		action = render.ActionUpdate
	}

	page := render.NewPage("MarriageRegDetail", action, lang)
	registry.Labels(request.Context(), handler.reference, page, domain, marriage.County)
	page.Set("REGYEAR", marriage.RegYear).
		Set("REGNUM", marriage.RegNum).
		Set("MSVOL", marriage.MsVol).
		Set("TOWNSHIP", marriage.Township).
		Set("PLACE", marriage.Place).
		Set("DATE", marriage.Date).
		Set("LICENSETYPE", marriage.LicenseType).
		Set("REGISTRAR", marriage.Registrar).
		Set("REGDATE", marriage.RegDate).
		Set("REMARKS", marriage.Remarks).
		Set("IMAGE", marriage.Image)

	page.RemoveIf(view.Exists, "new").
		RemoveIf(marriage.Image == "", "image")
	page.Rows = view.Links

	page.AddMessages(values.Messages)
	page.Warnings = values.Warnings
	handler.renderer.Page(writer, request, page)
}

/*
POST /marriages/{domain}/{year}/{num}/delete.

Description: Deletes a registration, its participants and their citations.

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
GET /marriages.

Description: Lists registrations by year, number, place or the names of the
couple.

Response:
  - 200: MarriageRegQuery page
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

	page := pagination.New(values.Int("offset", 0), values.Int("limit", values.Int("count", pagination.DefaultLimit)))
	marriages, window, err := handler.service.Query(request.Context(), filter, page)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	response := render.NewPage("MarriageRegQuery", "", lang)
	registry.Labels(request.Context(), handler.reference, response, domain, filter.County)
	response.Set("REGYEAR", filter.RegYear).
		Set("SURNAME", filter.Surname).
		Set("EDITABLE", ctxutil.CanEdit(request.Context()))
	registry.Paging(response, request, window)
	response.Rows = rows(marriages, window.Offset)
	response.Warnings = values.Warnings

	handler.renderer.Page(writer, request, response)
}

// Row is one line of the query page.
type Row struct {
	Marriage
	Num   int
	Groom Participant
	Bride Participant
}

func rows(marriages []Marriage, offset int) []Row {
	rows := make([]Row, len(marriages))
	for i, marriage := range marriages {
		row := Row{Marriage: marriage, Num: offset + i + 1}
		if groom := marriage.Participant(RoleGroom); groom != nil {
			row.Groom = *groom
		}
		if bride := marriage.Participant(RoleBride); bride != nil {
			row.Bride = *bride
		}
		rows[i] = row
	}
	return rows
}
