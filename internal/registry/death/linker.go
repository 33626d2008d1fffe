// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package death

import (
	"context"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// Linker stores tree links chosen on the death pages.
type Linker struct {
	repo Repository
}

// NewLinker constructs the death [familytree.RecordLinker].
func NewLinker(repo Repository) *Linker {
	return &Linker{repo: repo}
}

func (linker *Linker) Source() familytree.SourceKind {
	return familytree.SourceDeath
}

func (linker *Linker) LinkRecord(context context.Context, detail string, idir int64) (familytree.Event, error) {
	key, ok := ParseDetail(detail)
	if !ok {
		return 0, apperr.ValidationError("Invalid citation detail",
			apperr.FieldError{Field: "detail", Message: "expected DOMAIN YEAR-NUMBER"})
	}
	return familytree.EventDeath, linker.repo.SetIDIR(context, key, idir)
}
