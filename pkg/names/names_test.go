// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package names_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/ontvitals/pkg/names"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "marie-josee", names.Fold("  Marie-Josée "))
	assert.Equal(t, "francois", names.Fold("FRANÇOIS"))
}

func TestTokens(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"John Henry", []string{"john", "henry"}},
		{"  JOHN   john Henry ", []string{"john", "henry"}},
		{"John H.", []string{"john", "h"}},
		{"Mary-Ann", []string{"mary-ann"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, names.Tokens(tt.input), tt.input)
	}
}

func TestLastToken(t *testing.T) {
	assert.Equal(t, "McTavish", names.LastToken("Donald Angus McTavish"))
	assert.Equal(t, "Brown", names.LastToken("Brown"))
	assert.Equal(t, "Smith", names.LastToken("Wm. Smith,"))
	assert.Equal(t, "", names.LastToken("   "))
}

func TestOverlaps(t *testing.T) {
	assert.True(t, names.Overlaps([]string{"john", "henry"}, []string{"henry"}))
	assert.False(t, names.Overlaps([]string{"john", "henry"}, []string{"robert"}))
	assert.False(t, names.Overlaps(nil, []string{"robert"}))
}
