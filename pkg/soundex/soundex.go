// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package soundex computes American Soundex codes of surnames.
//
// The family tree stores the code of every surname so the matcher can fall
// back to a phonetic search when a transcribed spelling finds nobody.
package soundex

import (
	"strings"

	"github.com/taibuivan/ontvitals/pkg/names"
)

// digits maps letters to their Soundex digit. Vowels, y, h and w map to 0.
var digits = [26]byte{
	'0', '1', '2', '3', '0', '1', '2', '0', '0', '2', '2', '4', '5',
	'5', '0', '1', '2', '6', '2', '3', '0', '1', '0', '2', '0', '2',
}

// Code returns the four character Soundex code of surname ("Robert" → R163).
// Non-letters are ignored; a name without letters yields "".
func Code(surname string) string {
	folded := names.Fold(surname)

	var code strings.Builder
	var last byte
	for i := 0; i < len(folded) && code.Len() < 4; i++ {
		c := folded[i]
		if c < 'a' || c > 'z' {
			continue
		}
		digit := digits[c-'a']

		if code.Len() == 0 {
			code.WriteByte(c - 'a' + 'A')
			last = digit
			continue
		}

		switch {
		case c == 'h' || c == 'w':
			// h and w do not separate letters with the same code.
		case digit == '0':
			last = 0
		case digit != last:
			code.WriteByte(digit)
			last = digit
		}
	}

	if code.Len() == 0 {
		return ""
	}
	for code.Len() < 4 {
		code.WriteByte('0')
	}
	return code.String()
}
