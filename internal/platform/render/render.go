// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package render turns a [Page] into HTML.

Templates are looked up by the file-name convention

	<PageName><Action><Lang>.html

(DeathRegDetailUpdateen.html, CountyMarriageReportDisplayfr.html) and fall back
to the default language when the requested translation does not exist. Each
page template is parsed together with layout.html, which defines the shared
"header" and "footer" blocks.

Conditional regions are not computed in the template: the page code removes
them with [Page.Remove] and the template wraps each region in
{{if .Shows "name"}}.
*/
package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
)

const layoutFile = "layout.html"

// ErrTemplateMissing is returned when no template exists for a page.
var ErrTemplateMissing = errors.New("render: template missing")

// Renderer parses and caches page templates from a file system.
type Renderer struct {
	files       fs.FS
	defaultLang string

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New builds a Renderer over files, usually the embedded web templates.
func New(files fs.FS, defaultLang string) *Renderer {
	return &Renderer{
		files:       files,
		defaultLang: defaultLang,
		cache:       make(map[string]*template.Template),
	}
}

// DefaultLang returns the fallback template language.
func (r *Renderer) DefaultLang() string {
	return r.defaultLang
}

// Render executes the page's template and writes it with the given status.
//
// The page is rendered into a buffer first so a template failure never
// leaves a half-written document.
func (r *Renderer) Render(writer http.ResponseWriter, status int, page *Page) error {
	if page.Lang == "" {
		page.Lang = r.defaultLang
	}

	tmpl, err := r.lookup(page.files(r.defaultLang))
	if err != nil {
		return err
	}

	var buffer bytes.Buffer
	if err := tmpl.Execute(&buffer, page); err != nil {
		return fmt.Errorf("render: executing %s: %w", tmpl.Name(), err)
	}

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	writer.WriteHeader(status)
	_, err = buffer.WriteTo(writer)
	return err
}

// Page renders page with status 200, turning a render failure into a logged 500.
func (r *Renderer) Page(writer http.ResponseWriter, request *http.Request, page *Page) {
	page.Debug = page.Debug || ctxutil.IsDebug(request.Context())
	if err := r.Render(writer, http.StatusOK, page); err != nil {
		r.Error(writer, request, page.Lang, apperr.Internal(err))
	}
}

// Error renders the Error<Lang>.html page for err.
func (r *Renderer) Error(writer http.ResponseWriter, request *http.Request, lang string, err error) {
	appError := apperr.From(err)
	logger := ctxutil.GetLogger(request.Context())

	if appError.HTTPStatus >= http.StatusInternalServerError {
		logger.ErrorContext(request.Context(), "page_server_error",
			slog.String("code", appError.Code),
			slog.Any("cause", appError.Cause),
		)
	}

	page := NewPage("Error", "", lang)
	page.Set("CODE", appError.Code)
	page.Set("STATUS", appError.HTTPStatus)
	page.Messages = appError.Messages()

	if renderErr := r.Render(writer, appError.HTTPStatus, page); renderErr != nil {
		logger.ErrorContext(request.Context(), "error_page_render_failed", slog.Any("error", renderErr))
		http.Error(writer, strings.Join(page.Messages, "\n"), appError.HTTPStatus)
	}
}

// lookup returns the first template in names that exists.
func (r *Renderer) lookup(names []string) (*template.Template, error) {
	for _, name := range names {
		r.mu.RLock()
		tmpl, ok := r.cache[name]
		r.mu.RUnlock()
		if ok {
			return tmpl, nil
		}

		if _, err := fs.Stat(r.files, name); err != nil {
			continue
		}

		tmpl, err := template.New(name).Funcs(funcs).ParseFS(r.files, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("render: parsing %s: %w", name, err)
		}

		r.mu.Lock()
		r.cache[name] = tmpl
		r.mu.Unlock()
		return tmpl, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, strings.Join(names, ", "))
}

var funcs = template.FuncMap{
	// selected marks an <option> matching the current value.
	"selected": func(current any, option string) template.HTMLAttr {
		if fmt.Sprint(current) == option {
			return "selected"
		}
		return ""
	},
	// checked marks a checkbox that is on.
	"checked": func(on bool) template.HTMLAttr {
		if on {
			return "checked"
		}
		return ""
	},
}
