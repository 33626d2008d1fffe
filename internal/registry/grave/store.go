// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grave

import (
	"context"

	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # Grave Data Access

// Repository defines the data access contract for grave markers.
type Repository interface {
	Get(context context.Context, key Key) (*Grave, error)

	// Save inserts or replaces the inscription. The image list is not touched.
	Save(context context.Context, grave *Grave) error

	/*
		AddImage appends a stored image name to the marker.

		Returns:
		  - error: NotFound when the marker has not been transcribed
	*/
	AddImage(context context.Context, key Key, name string) error

	Delete(context context.Context, key Key) error

	Query(context context.Context, filter Filter, page pagination.Params) ([]Grave, int, error)
}
