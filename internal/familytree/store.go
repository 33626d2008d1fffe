// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import "context"

// # Family Tree Data Access

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks

// Repository defines the data access contract for the tree and its citations.
type Repository interface {

	/*
		FindCandidates returns the persons matching the surname, gender and
		birth-year terms of criteria, with their parents and spouses filled in.

		Given-name overlap is tested in SQL as well, but callers still apply
		[Criteria.Accepts] so every store answers alike.
	*/
	FindCandidates(context context.Context, criteria Criteria) ([]Candidate, error)

	/*
		GetPerson fetches one individual.

		Returns:
		  - *Person: The person
		  - error: NotFound when idir is unknown
	*/
	GetPerson(context context.Context, idir int64) (*Person, error)

	// AddPerson inserts a person and sets its IDIR.
	AddPerson(context context.Context, person *Person) error

	// AddFamily inserts a family and sets its IDMR.
	AddFamily(context context.Context, family *Family) error

	/*
		FindCitation returns the newest citation of a source detail.

		Returns:
		  - *Citation: The citation
		  - error: NotFound when the registration is not linked
	*/
	FindCitation(context context.Context, source SourceKind, detail string) (*Citation, error)

	// AddCitation inserts a citation and sets its IDSX.
	AddCitation(context context.Context, citation *Citation) error

	// DeleteCitations removes every citation of a source detail.
	DeleteCitations(context context.Context, source SourceKind, detail string) (int64, error)
}
