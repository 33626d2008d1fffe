// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package render

import (
	"strings"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// Template actions.
const (
	ActionUpdate  = "Update"
	ActionDisplay = "Display"
)

// Page is everything a record page hands to its template.
//
// Templates read substitutions as {{.Vars.SURNAME}}, test regions with
// {{if .Shows "noRecords"}}, and range over .Rows for repeated sections.
type Page struct {
	// Name is the page's template stem, e.g. "DeathRegDetail".
	Name string
	// Action is [ActionUpdate] or [ActionDisplay], or empty for pages with a single form.
	Action string
	// Lang is the two letter template language.
	Lang string

	// Vars is the substitution map. Keys are upper case.
	Vars map[string]any
	// Rows feeds repeated template sections (result lines, report items, candidates).
	Rows any

	// Messages are shown above the form; Warnings only in debug mode.
	Messages []string
	Warnings []string
	Debug    bool

	removed map[string]bool
}

// NewPage starts a page for the template stem name.
func NewPage(name, action, lang string) *Page {
	return &Page{
		Name:    name,
		Action:  action,
		Lang:    lang,
		Vars:    make(map[string]any),
		removed: make(map[string]bool),
	}
}

// Set stores a substitution. The key is upper-cased.
func (p *Page) Set(key string, value any) *Page {
	p.Vars[strings.ToUpper(key)] = value
	return p
}

// Remove drops a named template region from the output.
func (p *Page) Remove(region string) *Page {
	p.removed[region] = true
	return p
}

// RemoveIf drops region when cond holds.
func (p *Page) RemoveIf(cond bool, region string) *Page {
	if cond {
		p.Remove(region)
	}
	return p
}

// Shows reports whether a region is still part of the page.
func (p *Page) Shows(region string) bool {
	return !p.removed[region]
}

// Updating reports whether the page renders the editable form.
func (p *Page) Updating() bool {
	return p.Action == ActionUpdate
}

// AddMessages appends validation messages to the page.
func (p *Page) AddMessages(details []apperr.FieldError) *Page {
	for _, detail := range details {
		p.Messages = append(p.Messages, detail.String())
	}
	return p
}

// HasMessages reports whether the page carries any message.
func (p *Page) HasMessages() bool {
	return len(p.Messages) > 0
}

// ShowWarnings reports whether warnings are displayed.
func (p *Page) ShowWarnings() bool {
	return p.Debug && len(p.Warnings) > 0
}

// files lists the template names tried for the page, most specific first.
func (p *Page) files(defaultLang string) []string {
	stem := p.Name + p.Action
	names := []string{stem + p.Lang + ".html"}
	if p.Lang != defaultLang {
		names = append(names, stem+defaultLang+".html")
	}
	return names
}
