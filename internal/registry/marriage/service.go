// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage

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

// Service loads, saves and lists marriage registrations.
type Service struct {
	repo    Repository
	tree    familytree.Tree
	metrics *metrics.Metrics
}

// NewService constructs a new marriage [Service]. collector may be nil.
func NewService(repo Repository, tree familytree.Tree, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, tree: tree, metrics: collector}
}

// View is what the detail page shows.
type View struct {
	Marriage *Marriage
	Exists   bool
	// Links holds one entry per participant, in page order.
	Links []Link
}

// Link is the family tree state of one participant.
type Link struct {
	*Participant
	// Num is the form row of the participant, from 1.
	Num int
	// Detail is the citation detail of the participant.
	Detail     string
	Cited      bool
	Searched   bool
	Candidates []familytree.Candidate
}

/*
Load fetches a registration for the detail page.

A key that has not been transcribed yields a registration with empty groom,
bride and minister rows. When the page is editable, every named and unlinked
participant gets the IDIR of an existing citation or else the matcher's
candidates: the groom as a male, the bride as a female and the minister as
an unconstrained adult.

Returns:
  - *View: The registration and the link state of its participants
  - error: Repository failures other than NotFound
*/
func (service *Service) Load(context context.Context, key Key, updating bool) (*View, error) {
	view := &View{}

	marriage, err := service.repo.Get(context, key)
	switch {
	case apperr.IsNotFound(err):
		marriage = New(key)
	case err != nil:
		return nil, err
	default:
		view.Exists = true
	}
	view.Marriage = marriage

	view.Links = make([]Link, len(marriage.Participants))
	for i := range marriage.Participants {
		participant := &marriage.Participants[i]
		link := Link{Participant: participant, Num: i + 1, Detail: key.Detail(participant.Role)}
		if updating && participant.IDIR == 0 && participant.Surname != "" {
			service.resolve(context, marriage, &link)
		}
		view.Links[i] = link
	}
	return view, nil
}

// resolve looks up an existing citation of the participant, then its candidates.
func (service *Service) resolve(context context.Context, marriage *Marriage, link *Link) {
	idir, err := service.tree.FindLink(context, familytree.SourceMarriage, link.Detail)
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "marriage_citation_lookup_failed", slog.String("detail", link.Detail), slog.Any("error", err))
		return
	}
	if idir != 0 {
		link.IDIR = idir
		link.Cited = true
		return
	}

	candidates, err := service.tree.Find(context, marriage.MatchQuery(link.Participant))
	if err != nil {
		ctxutil.GetLogger(context).WarnContext(context, "marriage_match_failed", slog.String("detail", link.Detail), slog.Any("error", err))
		return
	}
	link.Searched = true
	link.Candidates = candidates
}

/*
Save validates and stores a registration with its participants.

Returns:
  - error: ValidationError naming each bad field, or repository failures
*/
func (service *Service) Save(context context.Context, marriage *Marriage) error {
	validator := &validate.Validator{}
	validator.
		DomainCode(FieldDomain, marriage.Domain).
		Range(FieldRegYear, marriage.RegYear, 1858, 2100).
		Custom(FieldRegNum, marriage.RegNum <= 0, "must be a positive number").
		OneOf(FieldLicenseType, marriage.LicenseType, "L", "B")

	for _, participant := range marriage.Participants {
		validator.OneOf(FieldRole, participant.Role, Roles...)
		if participant.BYear != 0 {
			validator.Range(FieldBYear, participant.BYear, 1750, 2100)
		}
		if participant.MarStat != "" {
			validator.OneOf(FieldMarStat, participant.MarStat, "S", "M", "W", "D")
		}
	}
	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.Save(context, marriage); err != nil {
		return err
	}

	service.metrics.IncrementWrite("marriage", "save")
	ctxutil.GetLogger(context).InfoContext(context, "marriage_updated",
		slog.String("registration", marriage.Label()),
		slog.String("updated_by", marriage.UpdatedBy),
	)
	return nil
}

// Delete removes a registration and the tree citations of its participants.
func (service *Service) Delete(context context.Context, key Key) error {
	if err := service.repo.Delete(context, key); err != nil {
		return err
	}
	service.metrics.IncrementWrite("marriage", "delete")
	ctxutil.GetLogger(context).WarnContext(context, "marriage_deleted", slog.String("registration", key.Label()))

	for _, role := range Roles {
		if _, err := service.tree.Unlink(context, familytree.SourceMarriage, key.Detail(role)); err != nil {
			ctxutil.GetLogger(context).ErrorContext(context, "marriage_citation_unlink_failed",
				slog.String("detail", key.Detail(role)),
				slog.Any("error", err),
			)
		}
	}
	return nil
}

// Query lists one page of registrations with the window it occupies.
func (service *Service) Query(context context.Context, filter Filter, page pagination.Params) ([]Marriage, pagination.Window, error) {
	marriages, total, err := service.repo.Query(context, filter, page)
	if err != nil {
		return nil, pagination.Window{}, err
	}
	return marriages, page.Window(total), nil
}
