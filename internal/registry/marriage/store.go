// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage

import (
	"context"

	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Marriage Data Access

// Repository defines the data access contract for marriage registrations.
type Repository interface {

	/*
		Get fetches a registration with its participants in page order.

		Returns:
		  - *Marriage: The registration
		  - error: NotFound when the key has not been transcribed
	*/
	Get(context context.Context, key Key) (*Marriage, error)

	// Save inserts or replaces the header and every participant in one transaction.
	Save(context context.Context, marriage *Marriage) error

	// SetIDIR changes only the family tree link of one participant.
	SetIDIR(context context.Context, key Key, role string, idir int64) error

	// Delete removes the registration and its participants.
	Delete(context context.Context, key Key) error

	/*
		Query lists the registrations matching filter with groom and bride.

		Returns:
		  - []Marriage: The rows of the requested page
		  - int: The number of matching rows across all pages
		  - error: Repository failures
	*/
	Query(context context.Context, filter Filter, page pagination.Params) ([]Marriage, int, error)
}
