// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reference

import "encoding/xml"

// # Reference Entities

// Domain is a country/province pair ("CAON" = Canada, Ontario) under which
// registrations are numbered.
type Domain struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Lang string `json:"lang"`
}

// County is a registration county of a domain.
type County struct {
	XMLName   xml.Name `json:"-" xml:"county"`
	Domain    string   `json:"domain" xml:"-"`
	Code      string   `json:"code" xml:"code,attr"`
	Name      string   `json:"name" xml:",chardata"`
	StartYear int      `json:"start_year" xml:"-"`
	EndYear   int      `json:"end_year" xml:"-"`
}

// ExistedIn reports whether the county was in use during year.
// A zero year matches every county.
func (c County) ExistedIn(year int) bool {
	return year == 0 || (year >= c.StartYear && year <= c.EndYear)
}

// Township is a township, town or city within a county.
type Township struct {
	XMLName xml.Name `json:"-" xml:"township"`
	Domain  string   `json:"domain" xml:"-"`
	County  string   `json:"county" xml:"-"`
	Code    string   `json:"code" xml:"code,attr"`
	Name    string   `json:"name" xml:",chardata"`
}
