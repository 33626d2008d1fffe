// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvertToPgx5DSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/vitals", "pgx5://u:p@db:5432/vitals"},
		{"postgresql://db/vitals?sslmode=disable", "pgx5://db/vitals?sslmode=disable"},
		{"pgx5://db/vitals", "pgx5://db/vitals"},
		{"host=db dbname=vitals", "host=db dbname=vitals"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, convertToPgx5DSN(tt.in))
		})
	}
}
