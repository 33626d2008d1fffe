// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package countymarriage

import (
	"context"

	"github.com/taibuivan/ontvitals/pkg/pagination"
)

// # County Marriage Data Access

// Repository defines the data access contract for county marriage reports.
type Repository interface {

	/*
		GetReport fetches a report header.

		Returns:
		  - *Report: The header
		  - error: NotFound when the report has not been transcribed
	*/
	GetReport(context context.Context, key Key) (*Report, error)

	// Items lists the items of a report, possibly none, ordered item number then groom first.
	Items(context context.Context, key Key) ([]Item, error)

	// Save inserts or replaces the header and the given items in one transaction.
	Save(context context.Context, report *Report, items []Item) error

	SetIDIR(context context.Context, key Key, itemNo int, role string, idir int64) error

	DeleteItem(context context.Context, key Key, itemNo int, role string) error

	/*
		QueryReports lists the reports matching filter with their item counts.

		Returns:
		  - []Summary: The rows of the requested page
		  - int: The number of matching reports across all pages
		  - error: Repository failures
	*/
	QueryReports(context context.Context, filter Filter, page pagination.Params) ([]Summary, int, error)
}
