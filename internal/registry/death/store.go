// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death

import (
	"context"

	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Death Data Access

// Repository defines the data access contract for death registrations.
type Repository interface {

	/*
		Get fetches a registration by key.

		Returns:
		  - *Death: The registration
		  - error: NotFound when the key has not been transcribed
	*/
	Get(context context.Context, key Key) (*Death, error)

	/*
		Save inserts or replaces the registration and sets UpdatedAt.
	*/
	Save(context context.Context, death *Death) error

	// SetIDIR changes only the family tree link.
	SetIDIR(context context.Context, key Key, idir int64) error

	// Delete removes the registration.
	Delete(context context.Context, key Key) error

	/*
		Query lists the registrations matching filter.

		Returns:
		  - []Death: The rows of the requested page
		  - int: The number of matching rows across all pages
		  - error: Repository failures
	*/
	Query(context context.Context, filter Filter, page pagination.Params) ([]Death, int, error)
}
