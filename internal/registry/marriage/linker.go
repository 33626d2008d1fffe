// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package marriage

import (
	"context"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// Linker stores tree links chosen for marriage participants.
type Linker struct {
	repo Repository
}

// NewLinker constructs the marriage [familytree.RecordLinker].
func NewLinker(repo Repository) *Linker {
	return &Linker{repo: repo}
}

func (linker *Linker) Source() familytree.SourceKind {
	return familytree.SourceMarriage
}

func (linker *Linker) LinkRecord(context context.Context, detail string, idir int64) (familytree.Event, error) {
	key, role, ok := ParseDetail(detail)
	if !ok {
		return 0, apperr.ValidationError("Invalid citation detail",
			apperr.FieldError{Field: "detail", Message: "expected DOMAIN YEAR-NUMBER ROLE"})
	}
	return familytree.EventMarriage, linker.repo.SetIDIR(context, key, role, idir)
}
