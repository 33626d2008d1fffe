// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package baptism

import (
	"context"

	"github.com/taibuivan/ontvitals/internal/familytree"
	"github.com/taibuivan/ontvitals/internal/platform/apperr"
)

// Linker stores tree links chosen on the baptism pages.
type Linker struct {
	repo Repository
}

// NewLinker constructs the baptism [familytree.RecordLinker].
func NewLinker(repo Repository) *Linker {
	return &Linker{repo: repo}
}

func (linker *Linker) Source() familytree.SourceKind {
	return familytree.SourceBaptism
}

func (linker *Linker) LinkRecord(context context.Context, detail string, idir int64) (familytree.Event, error) {
	idmb, ok := ParseDetail(detail)
	if !ok {
		return 0, apperr.ValidationError("Invalid citation detail",
			apperr.FieldError{Field: "detail", Message: "expected a baptism number"})
	}
	return familytree.EventBaptism, linker.repo.SetIDIR(context, idmb, idir)
}
