// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides the offset/limit windows of the record query pages.
//
// # Overview
//
// Query pages take an offset (first row, 0-based) and a limit (rows per page),
// count the matching rows, and show "previous" and "next" links only where a
// neighbouring page exists.
package pagination

const (
	// DefaultLimit is the number of rows per page if not specified.
	DefaultLimit = 20
	// MaxLimit is the upper bound for rows per page.
	MaxLimit = 100
)

// Params holds the requested offset and limit.
type Params struct {
	Offset int
	Limit  int
}

// New clamps a requested offset and limit.
//
// # Clamping
//
// A negative offset becomes 0. A limit below 1 becomes [DefaultLimit] and a
// limit above [MaxLimit] is cut to [MaxLimit].
func New(offset, limit int) Params {
	if offset < 0 {
		offset = 0
	}
	switch {
	case limit < 1:
		limit = DefaultLimit
	case limit > MaxLimit:
		limit = MaxLimit
	}
	return Params{Offset: offset, Limit: limit}
}

// Window describes the rows shown on one page of a result of Total rows.
type Window struct {
	Params
	Total int

	// First and Last are the 1-based row numbers shown, Last is 0 for an empty result.
	First int
	Last  int

	HasPrev    bool
	PrevOffset int
	HasNext    bool
	NextOffset int
}

// Window computes the page window for total matching rows.
func (p Params) Window(total int) Window {
	window := Window{Params: p, Total: total}

	if p.Offset < total {
		window.First = p.Offset + 1
		window.Last = min(p.Offset+p.Limit, total)
	}

	if p.Offset > 0 {
		window.HasPrev = true
		window.PrevOffset = max(p.Offset-p.Limit, 0)
	}

	if p.Offset+p.Limit < total {
		window.HasNext = true
		window.NextOffset = p.Offset + p.Limit
	}

	return window
}
