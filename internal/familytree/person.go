// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package familytree

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// # Family Tree Entities

// Gender codes of the tree.
type Gender int

const (
	GenderMale    Gender = 0
	GenderFemale  Gender = 1
	GenderUnknown Gender = 2
)

// UnknownDate is the sortable date of an unrecorded event.
const UnknownDate = -99999999

// Person is an individual of the family tree, identified by IDIR.
type Person struct {
	IDIR      int64  `json:"idir"`
	Surname   string `json:"surname"`
	GivenName string `json:"given_name"`
	Gender    Gender `json:"gender"`

	// BirthSD and DeathSD are sortable dates (yyyymmdd); [UnknownDate] when unrecorded.
	BirthSD int `json:"birth_sd"`
	DeathSD int `json:"death_sd"`

	// IDMRParents is the family in which the person is a child, 0 if none.
	IDMRParents int64 `json:"idmr_parents"`
}

// BirthYear returns the year of BirthSD, 0 when unknown.
func (p *Person) BirthYear() int {
	return sortableYear(p.BirthSD)
}

// Family records a couple. Either spouse may be 0 when unknown.
type Family struct {
	IDMR     int64  `json:"idmr"`
	IDIRHusb int64  `json:"idir_husb"`
	IDIRWife int64  `json:"idir_wife"`
	MarDate  string `json:"mar_date"`
}

// Candidate is a person proposed as the subject of a registration, with the
// relatives needed to tell namesakes apart.
type Candidate struct {
	IDIR      int64    `json:"idir"`
	Surname   string   `json:"surname"`
	GivenName string   `json:"given_name"`
	Gender    Gender   `json:"gender"`
	BirthSD   int      `json:"birth_sd"`
	DeathSD   int      `json:"death_sd"`
	Father    string   `json:"father"`
	Mother    string   `json:"mother"`
	Spouses   []string `json:"spouses"`
}

// Name returns "Given Surname (birth–death)" with the known years.
func (c Candidate) Name() string {
	name := strings.TrimSpace(c.GivenName + " " + c.Surname)

	birth, death := sortableYear(c.BirthSD), sortableYear(c.DeathSD)
	if birth == 0 && death == 0 {
		return name
	}
	return fmt.Sprintf("%s (%s–%s)", name, yearText(birth), yearText(death))
}

// Parents returns "Father and Mother", or the one that is known.
func (c Candidate) Parents() string {
	switch {
	case c.Father != "" && c.Mother != "":
		return c.Father + " and " + c.Mother
	case c.Father != "":
		return c.Father
	default:
		return c.Mother
	}
}

// MarshalXML writes the candidate in the shape the link dialog reads:
//
//	<indiv id="123"><name>John Smith (1855–1921)</name><parents>…</parents><spouse>…</spouse></indiv>
func (c Candidate) MarshalXML(encoder *xml.Encoder, _ xml.StartElement) error {
	type indiv struct {
		IDIR    int64    `xml:"id,attr"`
		Gender  Gender   `xml:"gender,attr"`
		Name    string   `xml:"name"`
		Parents string   `xml:"parents,omitempty"`
		Spouses []string `xml:"spouse"`
	}
	return encoder.EncodeElement(indiv{
		IDIR:    c.IDIR,
		Gender:  c.Gender,
		Name:    c.Name(),
		Parents: c.Parents(),
		Spouses: c.Spouses,
	}, xml.StartElement{Name: xml.Name{Local: "indiv"}})
}

func sortableYear(sd int) int {
	if sd <= 0 {
		return 0
	}
	return sd / 10000
}

func yearText(year int) string {
	if year == 0 {
		return ""
	}
	return fmt.Sprint(year)
}
