// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism

import (
	"context"

	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Baptism Data Access

// Repository defines the data access contract for baptism entries.
type Repository interface {
	Get(context context.Context, idmb int64) (*Baptism, error)

	// Create inserts a new entry and sets its IDMB.
	Create(context context.Context, baptism *Baptism) error

	// Update replaces an existing entry; NotFound when IDMB is unknown.
	Update(context context.Context, baptism *Baptism) error

	SetIDIR(context context.Context, idmb int64, idir int64) error

	Delete(context context.Context, idmb int64) error

	/*
		Query lists the entries matching filter by volume and page.

		Returns:
		  - []Baptism: The rows of the requested page
		  - int: The number of matching rows across all pages
		  - error: Repository failures
	*/
	Query(context context.Context, filter Filter, page pagination.Params) ([]Baptism, int, error)
}
