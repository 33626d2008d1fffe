// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package params

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Rule checks one non-empty raw value. It returns the normalized value, or a
// non-empty problem description when the value is rejected.
type Rule func(raw string) (value string, problem string)

// Registration years of the Ontario vital statistics and the older county
// and church registers both fall inside this range.
const (
	MinYear = 1780
	MaxYear = 2100
)

const flagOn = "Y"

var (
	digitsPattern = regexp.MustCompile(`^\d+$`)
	domainPattern = regexp.MustCompile(`^[A-Za-z]{4,5}$`)
	langPattern   = regexp.MustCompile(`^[A-Za-z]{2}`)
)

// Digits accepts an unsigned decimal number within [min, max].
func Digits(min, max int) Rule {
	return func(raw string) (string, string) {
		if !digitsPattern.MatchString(raw) {
			return "", "must be a number"
		}
		n, err := strconv.Atoi(raw)
		if err != nil || n < min || n > max {
			return "", fmt.Sprintf("must be between %d and %d", min, max)
		}
		return raw, ""
	}
}

// Year accepts a four digit year between [MinYear] and [MaxYear].
func Year() Rule {
	digits := Digits(MinYear, MaxYear)
	return func(raw string) (string, string) {
		if len(raw) != 4 {
			return "", "must be a 4 digit year"
		}
		return digits(raw)
	}
}

// Domain accepts a 4 or 5 letter domain code and upper-cases it.
func Domain() Rule {
	return func(raw string) (string, string) {
		if !domainPattern.MatchString(raw) {
			return "", "must be a 4 or 5 letter domain code"
		}
		return strings.ToUpper(raw), ""
	}
}

// Lang accepts an ISO 639 language code, keeping its first two letters
// lower-cased ("en-CA" becomes "en").
func Lang() Rule {
	return func(raw string) (string, string) {
		code := langPattern.FindString(raw)
		if code == "" {
			return "", "must be a language code"
		}
		return strings.ToLower(code), ""
	}
}

// OneOf accepts one of the allowed values, compared case-insensitively, and
// returns it in its canonical spelling.
func OneOf(allowed ...string) Rule {
	return func(raw string) (string, string) {
		for _, candidate := range allowed {
			if strings.EqualFold(raw, candidate) {
				return candidate, ""
			}
		}
		return "", "must be one of " + strings.Join(allowed, ", ")
	}
}

// Pattern accepts values matching re; description names the expected shape
// in the rejection message.
func Pattern(re *regexp.Regexp, description string) Rule {
	return func(raw string) (string, string) {
		if !re.MatchString(raw) {
			return "", "must be " + description
		}
		return raw, ""
	}
}

// Text accepts free text of at most max characters.
func Text(max int) Rule {
	return func(raw string) (string, string) {
		if utf8.RuneCountInString(raw) > max {
			return "", fmt.Sprintf("must be at most %d characters", max)
		}
		return raw, ""
	}
}

// Flag accepts the checkbox spellings y/yes/on/true/1 (as "Y") and
// n/no/off/false/0 (as "").
func Flag() Rule {
	return func(raw string) (string, string) {
		switch strings.ToLower(raw) {
		case "y", "yes", "on", "true", "1":
			return flagOn, ""
		case "n", "no", "off", "false", "0":
			return "", ""
		}
		return "", "must be Y or N"
	}
}

// Any accepts every value unchanged.
func Any() Rule {
	return func(raw string) (string, string) {
		return raw, ""
	}
}
