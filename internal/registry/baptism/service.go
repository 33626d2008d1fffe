// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism

import (
	"context"
	"log/slog"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Service Layer

// Service loads, saves and lists baptism entries.
type Service struct {
	repo    Repository
	tree    familytree.Tree
	metrics *metrics.Metrics
}

// NewService constructs a new baptism [Service]. collector may be nil.
func NewService(repo Repository, tree familytree.Tree, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, tree: tree, metrics: collector}
}

// View is what the detail page shows.
type View struct {
	Baptism    *Baptism
	Cited      bool
	Searched   bool
	Candidates []familytree.Candidate
}

/*
Load fetches an entry for the detail page.

When the page is editable and the child is unlinked, an existing citation
supplies the IDIR, or else the matcher proposes candidates. Tree failures are
logged and leave the page without candidates.

Returns:
  - *View: The entry and its link state
  - error: NotFound for an unknown IDMB, or repository failures
*/
func (service *Service) Load(context context.Context, idmb int64, updating bool) (*View, error) {
	baptism, err := service.repo.Get(context, idmb)
	if err != nil {
		return nil, err
	}
	return service.View(context, baptism, updating), nil
}

// View wraps a baptism, new or stored, with its family tree state.
func (service *Service) View(context context.Context, baptism *Baptism, updating bool) *View {
	view := &View{Baptism: baptism}
	if !updating || baptism.IDIR != 0 || baptism.Surname == "" {
		return view
	}

	if baptism.IDMB != 0 {
		idir, err := service.tree.FindLink(context, familytree.SourceBaptism, baptism.Detail())
		if err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "baptism_citation_lookup_failed", slog.Int64("idmb", baptism.IDMB), slog.Any("error", err))
			return view
		}
		if idir != 0 {
			baptism.IDIR = idir
			view.Cited = true
			return view
		}
	}

	candidates, err := service.tree.Find(context, baptism.MatchQuery())
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "baptism_match_failed", slog.Int64("idmb", baptism.IDMB), slog.Any("error", err))
		return view
	}
	view.Searched = true
	view.Candidates = candidates
	return view
}

/*
Save validates an entry and creates it when IDMB is 0, or else replaces it.

Returns:
  - error: ValidationError naming each bad field, or repository failures
*/
func (service *Service) Save(context context.Context, baptism *Baptism) error {
	validator := &validate.Validator{}
	validator.
		Positive(FieldVolume, baptism.Volume).
		Positive(FieldPage, baptism.Page).
		MaxLen(FieldSurname, baptism.Surname, 64)
	if err := validator.Err(); err != nil {
		return err
	}

	operation := "update"
	var err error
	if baptism.IDMB == 0 {
		operation = "create"
		err = service.repo.Create(context, baptism)
	} else {
		err = service.repo.Update(context, baptism)
	}
	if err != nil {
		return err
	}

	service.metrics.IncrementWrite("baptism", operation)
	ctxutil.GetLogger(context).InfoContext(context, "baptism_updated",
		slog.Int64("idmb", baptism.IDMB),
		slog.String("operation", operation),
		slog.String("updated_by", baptism.UpdatedBy),
	)
	return nil
}

// Delete removes an entry and the tree citations of it.
func (service *Service) Delete(context context.Context, idmb int64) error {
	if idmb <= 0 {
		return apperr.NotFound("Baptism")
	}
	if err := service.repo.Delete(context, idmb); err != nil {
		return err
	}
	service.metrics.IncrementWrite("baptism", "delete")
	ctxutil.GetLogger(context).WarnContext(context, "baptism_deleted", slog.Int64("idmb", idmb))

	detail := (&Baptism{IDMB: idmb}).Detail()
	if _, err := service.tree.Unlink(context, familytree.SourceBaptism, detail); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "baptism_citation_unlink_failed", slog.Int64("idmb", idmb), slog.Any("error", err))
	}
	return nil
}

// Query lists one page of entries with the window it occupies.
func (service *Service) Query(context context.Context, filter Filter, page pagination.Params) ([]Baptism, pagination.Window, error) {
	baptisms, total, err := service.repo.Query(context, filter, page)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return baptisms, page.Window(total), nil
}
