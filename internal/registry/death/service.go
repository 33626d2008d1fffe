// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/sheet"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// ExportLimit bounds the rows of one spreadsheet export.
const ExportLimit = 10000

// # Service Layer

// Service loads, saves and lists death registrations.
type Service struct {
	repo    Repository
	tree    familytree.Tree
	metrics *metrics.Metrics
}

// NewService constructs a new death [Service]. collector may be nil.
func NewService(repo Repository, tree familytree.Tree, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, tree: tree, metrics: collector}
}

// View is what the detail page shows.
type View struct {
	Death *Death
	// Exists is false for a key that has not been transcribed yet.
	Exists bool
	// Cited is true when IDIR came from an existing tree citation.
	Cited bool
	// Searched is true when the matcher ran; Candidates holds its proposals.
	Searched   bool
	Candidates []familytree.Candidate
}

/*
Load fetches a registration for the detail page.

A key that has not been transcribed yields a blank registration. When the
page is editable and the registration is unlinked, the citation recorded in
the tree is used, or else the matcher proposes candidates. Tree failures
are logged and leave the page without candidates.

Returns:
  - *View: The registration and its link state
  - error: Repository failures other than NotFound
*/
func (service *Service) Load(context context.Context, key Key, updating bool) (*View, error) {
	view := &View{}

	death, err := service.repo.Get(context, key)
	switch {
	case apperr.IsNotFound(err):
		death = New(key)
	case err != nil:
		return nil, err
	default:
		view.Exists = true
	}
	view.Death = death

	if !updating || death.IDIR != 0 {
		return view, nil
	}

	idir, err := service.tree.FindLink(context, familytree.SourceDeath, key.Detail())
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "death_citation_lookup_failed", slog.String("detail", key.Detail()), slog.Any("error", err))
		return view, nil
	}
	if idir != 0 {
		death.IDIR = idir
		view.Cited = true
		return view, nil
	}

	candidates, err := service.tree.Find(context, death.MatchQuery())
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "death_match_failed", slog.String("detail", key.Detail()), slog.Any("error", err))
		return view, nil
	}
	view.Searched = true
	view.Candidates = candidates
	return view, nil
}

/*
Save validates and stores a registration.

Returns:
  - error: ValidationError naming each bad field, or repository failures
*/
func (service *Service) Save(context context.Context, death *Death) error {
	validator := &validate.Validator{}
	validator.
		DomainCode(FieldDomain, death.Domain).
		Range(FieldRegYear, death.RegYear, 1869, 2100).
		Custom(FieldRegNum, death.RegNum <= 0, "must be a positive number").
		OneOf(FieldSex, death.Sex, "M", "F", "?").
		MaxLen(FieldSurname, death.Surname, 64)
	if death.MarStat != "" {
		validator.OneOf(FieldMarStat, death.MarStat, "S", "M", "W", "D")
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Save(context, death); err != nil {
		return err
	}

	service.metrics.IncrementWrite("death", "save")
	ctxutil.GetLogger(context).InfoContext(context, "death_updated",
		slog.String("detail", death.Detail()),
		slog.String("updated_by", death.UpdatedBy),
	)
	return nil
}

/*
Delete removes a registration and the tree citations of it.

The registration is deleted first; a failure to remove the citations is
logged and does not undo the delete.
*/
func (service *Service) Delete(context context.Context, key Key) error {
	if err := service.repo.Delete(context, key); err != nil {
		return err
	}
	service.metrics.IncrementWrite("death", "delete")
	ctxutil.GetLogger(context).WarnContext(context, "death_deleted", slog.String("detail", key.Detail()))

	if _, err := service.tree.Unlink(context, familytree.SourceDeath, key.Detail()); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "death_citation_unlink_failed",
			slog.String("detail", key.Detail()),
			slog.Any("error", err),
		)
	}
	return nil
}

/*
Query lists one page of registrations.

Returns:
  - []Death: The rows of the page
  - pagination.Window: Where the page sits in the whole result
  - error: Repository failures
*/
func (service *Service) Query(context context.Context, filter Filter, page pagination.Params) ([]Death, pagination.Window, error) {
	deaths, total, err := service.repo.Query(context, filter, page)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return deaths, page.Window(total), nil
}

// Export builds a spreadsheet of every registration matching filter, up to [ExportLimit].
func (service *Service) Export(context context.Context, filter Filter) (*sheet.Table, error) {
	deaths, _, err := service.repo.Query(context, filter, pagination.Params{Limit: ExportLimit})
	if err != nil {
		return nil, err
	}

	table := &sheet.Table{
		Name: "Deaths",
		Columns: []sheet.Column{
			{Title: "Domain", Width: 8}, {Title: "Year", Width: 6}, {Title: "Number", Width: 8},
			{Title: "County", Width: 8}, {Title: "Township", Width: 18},
			{Title: "Surname", Width: 18}, {Title: "Given Names", Width: 24}, {Title: "Sex", Width: 4},
			{Title: "Date", Width: 14}, {Title: "Place", Width: 24}, {Title: "Age", Width: 8},
			{Title: "Birth Date", Width: 14}, {Title: "Father", Width: 24}, {Title: "Mother", Width: 24},
			{Title: "Cause", Width: 30}, {Title: "IDIR", Width: 10},
		},
	}
	for _, d := range deaths {
		table.Append(d.Domain, d.RegYear, d.RegNum, d.County, d.Township,
			d.Surname, d.GivenNames, d.Sex, d.Date, d.Place, d.Age,
			d.BirthDate, d.FatherName, d.MotherName, d.Cause, d.IDIR)
	}

	ctxutil.GetLogger(context).InfoContext(context, "death_export", slog.String("domain", filter.Domain), slog.Int("rows", len(deaths)))
	return table, nil
}
