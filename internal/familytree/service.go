// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/taibuivan/ontvitals/internal/platform/apperr"
	"github.com/taibuivan/ontvitals/internal/platform/ctxutil"
	"github.com/taibuivan/ontvitals/internal/platform/metrics"
	"github.com/taibuivan/ontvitals/internal/platform/validate"
)

// # Service Layer

// Tree is what the registration pages need from the family tree.
type Tree interface {
	Find(context context.Context, query Query) ([]Candidate, error)
	FindLink(context context.Context, kind SourceKind, detail string) (int64, error)
	Unlink(context context.Context, kind SourceKind, detail string) (int64, error)
}

// Service matches registrations against the tree and manages citations.
type Service struct {
	repo    Repository
	metrics *metrics.Metrics
}

// NewService constructs a new family tree [Service]. collector may be nil.
func NewService(repo Repository, collector *metrics.Metrics) *Service {
	return &Service{repo: repo, metrics: collector}
}

/*
Find returns up to [MaxCandidates] persons who may be the subject of query.

The exact surnames are searched first; when nothing survives the filter
the search is repeated on the soundex code of the transcribed surname.
An empty surname or empty given names yields no candidates and no query.

Returns:
  - []Candidate: Sorted by surname, given name and birth date
  - error: Repository failures only
*/
func (service *Service) Find(context context.Context, query Query) ([]Candidate, error) {
	criteria, ok := query.Criteria()
	if !ok {
		return []Candidate{}, nil
	}

	start := time.Now()
	candidates, err := service.search(context, criteria)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 && criteria.Soundex != "" {
		criteria.BySoundex = true
		if candidates, err = service.search(context, criteria); err != nil {
			return nil, err
		}
	}

	service.metrics.ObserveMatch(query.Role.String(), len(candidates), time.Since(start))
	ctxutil.GetLogger(context).DebugContext(context, "family_tree_match",
		slog.String("surname", query.Surname),
		slog.String("role", query.Role.String()),
		slog.Bool("soundex", criteria.BySoundex),
		slog.Int("candidates", len(candidates)),
	)
	return candidates, nil
}

// search runs one repository query and applies the Go side filter, order and limit.
func (service *Service) search(context context.Context, criteria Criteria) ([]Candidate, error) {
	found, err := service.repo.FindCandidates(context, criteria)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(found))
	for _, candidate := range found {
		if criteria.Accepts(candidate) {
			candidates = append(candidates, candidate)
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if cmp := strings.Compare(strings.ToLower(a.Surname), strings.ToLower(b.Surname)); cmp != 0 {
			return cmp < 0
		}
		if cmp := strings.Compare(strings.ToLower(a.GivenName), strings.ToLower(b.GivenName)); cmp != 0 {
			return cmp < 0
		}
		return a.BirthSD < b.BirthSD
	})

	if limit := criteria.Limit; limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}

/*
FindLink returns the IDIR of the person a registration is cited for.

Returns:
  - int64: The linked IDIR, 0 when the registration is not linked
  - error: Repository failures only
*/
func (service *Service) FindLink(context context.Context, kind SourceKind, detail string) (int64, error) {
	found, err := service.repo.FindCitation(context, kind, detail)
	if apperr.IsNotFound(err) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return found.IDIR, nil
}

/*
Link records a citation of a registration for a person of the tree.

Parameters:
  - citation: *Citation (Source, IDIR, Event and Detail are required)

Returns:
  - error: ValidationError, NotFound for an unknown person, or repository failures
*/
func (service *Service) Link(context context.Context, citation *Citation) error {
	validator := &validate.Validator{}
	validator.
		Custom("source", !citation.Source.Valid(), "unknown source").
		Custom("idir", citation.IDIR <= 0, "must be a positive number").
		Required("detail", citation.Detail).
		MaxLen("detail", citation.Detail, 128)
	if err := validator.Err(); err != nil {
		return err
	}

	if _, err := service.repo.GetPerson(context, citation.IDIR); err != nil {
		return err
	}

	if err := service.repo.AddCitation(context, citation); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "citation_added",
		slog.String("source", string(citation.Source)),
		slog.String("detail", citation.Detail),
		slog.Int64("idir", citation.IDIR),
	)
	return nil
}

// Unlink removes every citation of a registration and returns how many went.
func (service *Service) Unlink(context context.Context, kind SourceKind, detail string) (int64, error) {
	removed, err := service.repo.DeleteCitations(context, kind, detail)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		ctxutil.GetLogger(context).InfoContext(context, "citations_removed",
			slog.String("source", string(kind)),
			slog.String("detail", detail),
			slog.Int64("count", removed),
		)
	}
	return removed, nil
}

// Person fetches one individual of the tree.
func (service *Service) Person(context context.Context, idir int64) (*Person, error) {
	return service.repo.GetPerson(context, idir)
}
