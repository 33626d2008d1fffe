// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package countymarriage serves the county marriage report pages.

Before 1869 a minister returned a report of the marriages they performed to
the clerk of the county. A report (/countymarriages/CAON/12/3) has a header
naming the minister and one item per marriage, each with a groom row (G)
and a bride row (B). The report page is a spreadsheet: every row posts its
columns with the row number appended (GivenNames1, Surname1, ItemNo1,
Role1, GivenNames2, ...).

# Access Control

  - Public: report (Display template) and report listing.
  - Editor: saving reports and deleting items.
*/
package countymarriage

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

var idirDigits = regexp.MustCompile(`^\d{1,18}$`)

var reportParams = params.Schema{
	"page":      params.Digits(0, 9999),
	"faith":     params.Text(64),
	"image":     params.Text(255),
	"remarks":   params.Text(2000),
	"residence": params.Text(128),

	"itemno":      params.Digits(1, 9999),
	"role":        params.OneOf(RoleGroom, RoleBride),
	"givennames":  params.Text(128),
	"surname":     params.Text(64),
	"age":         params.Text(32),
	"birthplace":  params.Text(128),
	"fathername":  params.Text(128),
	"mothername":  params.Text(128),
	"witnessname": params.Text(128),
	"date":        params.Text(32),
	"licensetype": params.OneOf("L", "B"),
	"idir":        params.Pattern(idirDigits, "a person number"),

	"rownum": params.Any(),
}.With(params.Common)

var queryParams = params.Schema{
	"domain":   params.Domain(),
	"volume":   params.Digits(1, 9999),
	"reportno": params.Pattern(reportNoPattern, "digits with an optional .5"),
	"surname":  params.Text(64),
}.With(params.Common, params.Paging)

// Handler implements the HTTP layer for county marriage reports.
type Handler struct {
	service   *Service
	reference registry.Reference
	renderer  *render.Renderer
}

// NewHandler constructs a new county marriage [Handler].
func NewHandler(service *Service, reference registry.Reference, renderer *render.Renderer) *Handler {
	return &Handler{service: service, reference: reference, renderer: renderer}
}

// Routes returns a [chi.Router] configured with the county marriage endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.query)
	router.Get("/{domain}/{volume}/{reportno}", handler.detail)

	router.Group(func(editor chi.Router) {
		editor.Use(middleware.RequireRole(sec.RoleEditor))

		editor.Post("/{domain}/{volume}/{reportno}", handler.update)
		editor.Post("/{domain}/{volume}/{reportno}/items/{itemno}/{role}/delete", handler.deleteItem)
	})

	return router
}

func keyFromPath(request *http.Request) (Key, error) {
	volume, err := requestutil.IntParam(request, "volume")
	if err != nil {
		return Key{}, err
	}
	raw := requestutil.Param(request, "reportno")
	reportNo, ok := ParseReportNo(raw)
	if !ok {
		return Key{}, apperr.ValidationError("Invalid path parameter",
			apperr.FieldError{Field: "reportno", Message: "invalid value \"" + raw + "\""})
	}

	key := Key{Domain: requestutil.DomainParam(request), Volume: volume, ReportNo: reportNo}
	if !validate.DomainPattern.MatchString(key.Domain) || volume == 0 || reportNo == 0 {
		return Key{}, apperr.ValidationError("Invalid report",
			apperr.FieldError{Field: "report", Message: "unknown report " + key.Label()})
	}
	return key, nil
}

func reportURL(key Key, lang string) string {
	return "/countymarriages/" + key.Domain + "/" + strconv.Itoa(key.Volume) + "/" + FormatReportNo(key.ReportNo) + "?lang=" + lang
}

/*
GET /countymarriages/{domain}/{volume}/{reportno}.

Description: Shows a report and its items; editors get the Update form.

Response:
  - 200: CountyMarriageReport page
  - 400/404: Error page
*/
func (handler *Handler) detail(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, reportParams)
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
POST /countymarriages/{domain}/{volume}/{reportno}.

Description: Saves the header and every posted row.

Response:
  - 303: Redirect to the report page
  - 200: CountyMarriageReport page with messages when a field is rejected
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, reportParams)
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
	header := view.Report

	for _, column := range Columns {
		if value, ok := values.Lookup(column); ok {
			header.Set(column, value)
		}
	}
	header.UpdatedBy = requestutil.Username(request)

	rows := values.Rows()
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		entry := Item{ItemNo: row.Int("itemno", 0), Role: row.String("role", "")}
		if entry.ItemNo == 0 || entry.Role == "" {
			values.Fail("itemno"+strconv.Itoa(row.Num), "missing item number or role")
			continue
		}
		for _, column := range ItemColumns {
			if value, ok := row.Lookup(column); ok {
				entry.Set(column, value)
			}
		}
		items = append(items, entry)
	}
	if len(items) > 0 {
		view.Items = items
	}

	if values.OK() {
		err = handler.service.Save(request.Context(), header, items)
		if err == nil {
			http.Redirect(writer, request, reportURL(key, lang), http.StatusSeeOther)
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

// ItemRow is one spreadsheet row of the report page.
type ItemRow struct {
	Item
	// Num is the form row, from 1.
	Num    int
	Detail string
}

func (handler *Handler) show(writer http.ResponseWriter, request *http.Request, values *params.Values, view *View, updating bool) {
	header := view.Report
	lang := registry.Lang(values, view.Domain, handler.renderer.DefaultLang())

	action := render.ActionDisplay
	if updating {
		action = render.ActionUpdate
	}

	page := render.NewPage("CountyMarriageReport", action, lang)
	registry.Labels(request.Context(), handler.reference, page, view.Domain, "")
	page.Set("VOLUME", header.Volume).
		Set("REPORTNO", FormatReportNo(header.ReportNo)).
		Set("PAGE", header.Page).
		Set("GIVENNAMES", header.GivenNames).
		Set("SURNAME", header.Surname).
		Set("FAITH", header.Faith).
		Set("RESIDENCE", header.Residence).
		Set("IMAGE", header.Image).
		Set("IDIR", header.IDIR).
		Set("REMARKS", header.Remarks)

	page.RemoveIf(view.Exists, "new").
		RemoveIf(header.Image == "", "image").
		RemoveIf(header.IDIR == 0, "minister")

	rows := make([]ItemRow, len(view.Items))
	for i, entry := range view.Items {
		rows[i] = ItemRow{Item: entry, Num: i + 1, Detail: header.Detail(entry.ItemNo, entry.Role)}
	}
	page.Rows = rows

	page.AddMessages(values.Messages)
	page.Warnings = values.Warnings
	handler.renderer.Page(writer, request, page)
}

/*
POST /countymarriages/{domain}/{volume}/{reportno}/items/{itemno}/{role}/delete.

Description: Deletes one row of a report and its citation.

Response:
  - 200: <deleted><parms>…<rownum>n</rownum></parms></deleted>
  - 400/404: <deleted><msg>…</msg></deleted>
*/
func (handler *Handler) deleteItem(writer http.ResponseWriter, request *http.Request) {
	values := params.Parse(request, reportParams)
	fragment := respond.NewFragment("deleted").
		Parm("domain", requestutil.DomainParam(request)).
		Parm("volume", requestutil.Param(request, "volume")).
		Parm("reportno", requestutil.Param(request, "reportno")).
		Parm("itemno", requestutil.Param(request, "itemno")).
		Parm("role", requestutil.Param(request, "role")).
		Parm("rownum", values.String("rownum", ""))

	key, err := keyFromPath(request)
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}
	itemNo, err := requestutil.IntParam(request, "itemno")
	if err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}
	role := requestutil.Param(request, "role")
	if role != RoleGroom && role != RoleBride {
		respond.XMLError(writer, request, fragment, apperr.ValidationError("Invalid path parameter",
			apperr.FieldError{Field: "role", Message: "invalid value \"" + role + "\""}))
		return
	}

	if err := handler.service.DeleteItem(request.Context(), key, itemNo, role); err != nil {
		respond.XMLError(writer, request, fragment, err)
		return
	}

	respond.XML(writer, http.StatusOK, fragment)
}

/*
GET /countymarriages.

Description: Lists the reports of a domain, optionally of one volume or one
minister.

Response:
  - 200: CountyMarriageReportQuery page
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

	// A complete key opens the report itself.
	if text := values.String("reportno", ""); text != "" && values.Int("volume", 0) > 0 {
		reportNo, _ := ParseReportNo(text)
		key := Key{Domain: domain.Code, Volume: values.Int("volume", 0), ReportNo: reportNo}
		http.Redirect(writer, request, reportURL(key, lang), http.StatusSeeOther)
		return
	}

	filter := Filter{
		Domain:  domain.Code,
		Volume:  values.Int("volume", 0),
		Surname: values.String("surname", ""),
	}

	page := pagination.New(values.Int("offset", 0), values.Int("limit", values.Int("count", pagination.DefaultLimit)))
	summaries, window, err := handler.service.Query(request.Context(), filter, page)
	if err != nil {
		handler.renderer.Error(writer, request, lang, err)
		return
	}

	response := render.NewPage("CountyMarriageReportQuery", "", lang)
	registry.Labels(request.Context(), handler.reference, response, domain, "")
	response.Set("VOLUME", filter.Volume).
		Set("SURNAME", filter.Surname).
		Set("EDITABLE", ctxutil.CanEdit(request.Context()))
	registry.Paging(response, request, window)

	rows := make([]SummaryRow, len(summaries))
	for i, summary := range summaries {
		rows[i] = SummaryRow{Summary: summary, Num: window.Offset + i + 1, ReportNo: FormatReportNo(summary.ReportNo)}
	}
	response.Rows = rows
	response.Warnings = values.Warnings

	handler.renderer.Page(writer, request, response)
}

// SummaryRow is one line of the report listing.
type SummaryRow struct {
	Summary
	Num      int
	ReportNo string
}
