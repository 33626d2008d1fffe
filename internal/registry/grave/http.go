// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package grave serves the grave marker pages and the upload of stone
photographs.

A marker is addressed by its cemetery and its position inside it:

	/graves/CAON/Msx/London/Woodland/A/3/12/-

where "-" stands for an empty zone, row, plot or side.

# Access Control

  - Public: detail (Display template) and cemetery listing.
  - Editor: saving and deleting markers, uploading images.
*/
package grave

import (
	"errors"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

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

const keyPattern = "/{domain}/{county}/{township}/{cemetery}/{zone}/{row}/{plot}/{side}"

// imageField is the multipart field carrying the photograph.
const imageField = "image"

// multipartSlack covers the multipart framing around the file.
const multipartSlack = 64 << 10

var countyParam = regexp.MustCompile(`^[A-Za-z]{2,8}$`)

var detailParams = params.Schema{
	"surname":    params.Text(64),
	"givennames": params.Text(128),
	"birthdate":  params.Text(32),
	"deathdate":  params.Text(32),
	"text":       params.Text(4000),

	"rownum": params.Any(),
}.With(params.Common)

var queryParams = params.Schema{
	"domain":   params.Domain(),
	"county":   params.Pattern(countyParam, "a county abbreviation"),
	"township": params.Text(64),
	"cemetery": params.Text(128),
	"surname":  params.Text(64),
}.With(params.Common, params.Paging)

// Handler implements the HTTP layer for grave markers.
type Handler struct {
	service   *Service
	reference registry.Reference
	renderer  *render.Renderer
	maxUpload int64
}

// NewHandler constructs a new grave [Handler]. maxUpload bounds the size of
// an uploaded image.
func NewHandler(service *Service, reference registry.Reference, renderer *render.Renderer, maxUpload int64) *Handler {
	return &Handler{service: service, reference: reference, renderer: renderer, maxUpload: maxUpload}
}

// Routes returns a [chi.Router] configured with the grave endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.query)
	router.Get(keyPattern, handler.detail)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post(keyPattern, handler.update)
		editor.Post(keyPattern+"/delete", handler.delete)
		editor.Post(keyPattern+"/images", handler.addImage)
	})

	return router
}

// segment reads one key part from the path.
func segment(request *http.Request, name string) string {
	raw := requestutil.Param(request, name)
	if raw == emptySegment {
		return ""
	}
	if unescaped, err := url.PathUnescape(raw); err == nil {
		return unescaped
	}
	return raw
}

func keyFromPath(request *http.Request) (Key, error) {
	key := Key{
		Domain:   requestutil.DomainParam(request),
		County:   segment(request, "county"),
		Township: segment(request, "township"),
		Cemetery: segment(request, "cemetery"),
		Zone:     segment(request, "zone"),
		Row:      segment(request, "row"),
		Plot:     segment(request, "plot"),
		Side:     segment(request, "side"),
	}
	if !validate.DomainPattern.MatchString(key.Domain) || !countyCode.MatchString(key.County) ||
		key.Township == "" || key.Cemetery == "" {
		return Key{}, apperr.ValidationError("Invalid grave",
			apperr.FieldError{Field: "grave", Message: "unknown grave " + key.Label()})
	}
	return key, nil
}

/*
GET /graves/{domain}/{county}/{township}/{cemetery}/{zone}/{row}/{plot}/{side}.

Description: Shows a marker and its images; editors get the Update form.

Response:
  - 200: GraveDetail page
  - 400: Error page
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	key, err := keyFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	view, err := handler.service.Load(request.Context(), key)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	handler.show(writer, request, values, view, ctxutil.CanEdit(request.Context()))
}

/*
POST /graves/{domain}/{county}/{township}/{cemetery}/{zone}/{row}/{plot}/{side}.

Description: Saves the inscription.

Response:
  - 303: Redirect to the detail page
  - 200: GraveDetail page with messages when a field is rejected
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	lang := values.String("lang", handler.renderer.DefaultLang())

	key, err := keyFromPath(request)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	view, err := handler.service.Load(request.Context(), key)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}
	grave := view.Grave

	for _, column := range Columns {
		if value, ok := values.Lookup(column); ok {
			grave.Set(column, value)
		}
	}
	grave.UpdatedBy = requestutil.Username(request)

	if values.OK() {
		err = handler.service.Save(request.Context(), grave)
		if err == nil {
			http.Redirect(writer, request, "/graves"+key.Path()+"?lang="+lang, http.StatusSeeOther)
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
	grave := view.Grave

	domain, err := handler.reference.Domain(request.Context(), grave.Domain)
	if err != nil {
		handler.renderer.Error(writer, request, values.String("lang", handler.renderer.DefaultLang()), err)
		return
	}
	lang := registry.Lang(values, domain, handler.renderer.DefaultLang())

	action := render.ActionDisplay
	if updating {
		action = render.ActionUpdate
	}

	page := render.NewPage("GraveDetail", action, lang)
	registry.Labels(request.Context(), handler.reference, page, domain, grave.County)
	page.Set("PATH", grave.Path()).
		Set("LOCATION", grave.Label()).
		Set("TOWNSHIP", grave.Township).
		Set("CEMETERY", grave.Cemetery).
		Set("ZONE", grave.Zone).
		Set("ROW", grave.Row).
		Set("PLOT", grave.Plot).
		Set("SIDE", grave.Side).
		Set("SURNAME", grave.Surname).
		Set("GIVENNAMES", grave.GivenNames).
		Set("BIRTHDATE", grave.BirthDate).
		Set("DEATHDATE", grave.DeathDate).
		Set("TEXT", grave.Text)

	page.RemoveIf(view.Exists, "new").
		RemoveIf(!view.Exists, "upload").
		RemoveIf(len(grave.Images) == 0, "images")
	page.Rows = grave.Images

	page.AddMessages(values.Messages)
	page.Warnings = values.Warnings
	handler.renderer.Page(writer, request, page)
}

/*
POST /graves/{domain}/{county}/{township}/{cemetery}/{zone}/{row}/{plot}/{side}/delete.

Description: Deletes a marker and its image files.

Response:
  - 200: <deleted><parms>…<rownum>n</rownum></parms></deleted>
  - 400/404: <deleted><msg>…</msg></deleted>
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, detailParams)
	fragment := respond.NewFragment("deleted").Parm("rownum", values.String("rownum", ""))

	key, err := keyFromPath(request)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}
	fragment.Parm("grave", key.Path())

	if err := handler.service.Delete(request.Context(), key); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment)
}

/*
POST /graves/{domain}/{county}/{township}/{cemetery}/{zone}/{row}/{plot}/{side}/images.

Description: Stores a photograph posted as the multipart field "image".

Response:
  - 200: <uploaded><parms><name>CAON-Msx-…-1.jpg</name></parms></uploaded>
  - 400/404/413: <uploaded><msg>…</msg></uploaded>
*/
func (handler *Handler) addImage(writer http.ResponseWriter, request *http.Request) {
	fragment := respond.NewFragment("uploaded")

	key, err := keyFromPath(request)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, handler.maxUpload+multipartSlack)
	file, header, err := request.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = apperr.TooLarge("Image exceeds " + strconv.FormatInt(handler.maxUpload, 10) + " bytes")
		} else {
			err = apperr.ValidationError("Missing image",
				apperr.FieldError{Field: imageField, Message: "expected a multipart file"})
		}
		respond.XMLError(writer, request, fragment, err)
		return
	}
	defer file.Close()
	fragment.Parm("filename", strings.TrimSpace(header.Filename))

	name, err := handler.service.AddImage(request.Context(), key, file)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment.Parm("name", name))
}

/*
GET /graves.

Description: Lists the markers of a cemetery, township or county.

Response:
  - 200: GraveQuery page
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
		Domain:   domain.Code,
		County:   values.String("county", ""),
		Township: values.String("township", ""),
		Cemetery: values.String("cemetery", ""),
		Surname:  values.String("surname", ""),
	}

	page := pagination.New(values.Int("offset", 0), values.Int("limit", values.Int("count", pagination.DefaultLimit)))
	graves, window, err := handler.service.Query(request.Context(), filter, page)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	response := render.NewPage("GraveQuery", "", lang)
	registry.Labels(request.Context(), handler.reference, response, domain, filter.County)
	response.Set("TOWNSHIP", filter.Township).
		Set("CEMETERY", filter.Cemetery).
		Set("SURNAME", filter.Surname).
		Set("EDITABLE", ctxutil.CanEdit(request.Context()))
	registry.Paging(response, request, window)

	rows := make([]Row, len(graves))
	for i, grave := range graves {
		rows[i] = Row{Grave: grave, Num: window.Offset + i + 1, Path: grave.Path()}
	}
	response.Rows = rows
	response.Warnings = values.Warnings

	handler.renderer.Page(writer, request, response)
}

// Row is one line of the cemetery listing.
type Row struct {
	Grave
	Num  int
	Path string
}
