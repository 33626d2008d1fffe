// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package countymarriage

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
	"github.com/taibuivan/ontvitals/internal/reference"
	"github.com/taibuivan/ontvitals/internal/registry"
	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Service Layer

// Service loads, saves and lists county marriage reports.
type Service struct {
	repo      Repository
	tree      familytree.Tree
	reference registry.Reference
	metrics   *metrics.Metrics
}

// NewService constructs a new county marriage [Service]. collector may be nil.
func NewService(repo Repository, tree familytree.Tree, ref registry.Reference, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, tree: tree, reference: ref, metrics: collector}
}

// View is what the report page shows.
type View struct {
	Report *Report
	Domain *reference.Domain
	Exists bool
	Items  []Item
}

/*
Load fetches a report with its items and the label of its domain.

The three reads run concurrently. A report that has not been transcribed
yields an empty header, and a report with no items yields the placeholder
rows of [Placeholders].

Returns:
  - *View: The report, its items and its domain
  - error: Unknown domain or repository failures other than NotFound
*/
func (service *Service) Load(ctx context.Context, key Key) (*View, error) {
	view := &View{}
	group, context := errgroup.WithContext(ctx)

	group.Go(func() error {
		header, err := service.repo.GetReport(context, key)
		switch {
		case apperr.IsNotFound(err):
			view.Report = &Report{Key: key}
		case err != nil:
			return err
		default:
			view.Report = header
			view.Exists = true
		}
		return nil
	})

	group.Go(func() error {
		items, err := service.repo.Items(context, key)
		if err != nil {
			return err
		}
		view.Items = items
		return nil
	})

	group.Go(func() error {
		domain, err := service.reference.Domain(context, key.Domain)
		if err != nil {
			return err
		}
		view.Domain = domain
		return nil
	})

	if err := group.Wait(); err != nil {
		return nil, err
	}

	if len(view.Items) == 0 {
		view.Items = Placeholders()
	}
	SortItems(view.Items)
	return view, nil
}

/*
Save validates and stores a report header and its items.

Untouched placeholder rows are not stored.

Returns:
  - error: ValidationError naming each bad field, or repository failures
*/
func (service *Service) Save(context context.Context, header *Report, items []Item) error {
	validator := &validate.Validator{}
	validator.
		DomainCode(FieldDomain, header.Domain).
		Positive(FieldVolume, header.Volume).
		Custom(FieldReportNo, header.ReportNo <= 0, "must be a positive number")

	kept := make([]Item, 0, len(items))
	for _, entry := range items {
		if entry.IsPlaceholder() {
			continue
		}
		if entry.LicenseType == "" {
			entry.LicenseType = "L"
		}
		validator.
			Positive(FieldItemNo, entry.ItemNo).
			OneOf(FieldRole, entry.Role, RoleGroom, RoleBride).
			OneOf(FieldLicenseType, entry.LicenseType, "L", "B")
		kept = append(kept, entry)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Save(context, header, kept); err != nil {
		return err
	}

	service.metrics.IncrementWrite("countymarriage", "save")
	ctxutil.GetLogger(context).InfoContext(context, "county_marriage_report_updated",
		slog.String("report", header.Label()),
		slog.Int("items", len(kept)),
		slog.String("updated_by", header.UpdatedBy),
	)
	return nil
}

// DeleteItem removes one groom or bride of a report and its tree citation.
func (service *Service) DeleteItem(context context.Context, key Key, itemNo int, role string) error {
	if err := service.repo.DeleteItem(context, key, itemNo, role); err != nil {
		return err
	}
	service.metrics.IncrementWrite("countymarriage", "delete")

	detail := key.Detail(itemNo, role)
	ctxutil.GetLogger(context).WarnContext(context, "county_marriage_item_deleted", slog.String("item", detail))

	if _, err := service.tree.Unlink(context, familytree.SourceCountyMarriage, detail); err != nil {
		ctxutil.GetLogger(context).ErrorContext(context, "county_marriage_citation_unlink_failed",
			slog.String("detail", detail),
			slog.Any("error", err),
		)
	}
	return nil
}

// Query lists one page of reports with the window it occupies.
func (service *Service) Query(context context.Context, filter Filter, page pagination.Params) ([]Summary, pagination.Window, error) {
	summaries, total, err := service.repo.QueryReports(context, filter, page)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return summaries, page.Window(total), nil
}
