// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package grave

import (
	"net/url"
	"strings"
	"time"
)

// emptySegment stands for an empty key part in a URL path.
const emptySegment = "-"

// Key locates a marker: the cemetery, then the position inside it. Zone,
// row, plot and side are empty when the cemetery has no such division.
type Key struct {
	Domain   string `json:"domain"`
	County   string `json:"county"`
	Township string `json:"township"`
	Cemetery string `json:"cemetery"`
	Zone     string `json:"zone"`
	Row      string `json:"row"`
	Plot     string `json:"plot"`
	Side     string `json:"side"`
}

func (k Key) parts() []string {
	return []string{k.Domain, k.County, k.Township, k.Cemetery, k.Zone, k.Row, k.Plot, k.Side}
}

// Path returns the URL path of the marker below /graves, "-" marking an empty part.
func (k Key) Path() string {
	var builder strings.Builder
	for _, part := range k.parts() {
		builder.WriteByte('/')
		if part == "" {
			builder.WriteString(emptySegment)
			continue
		}
		builder.WriteString(url.PathEscape(part))
	}
	return builder.String()
}

// Label returns a readable location ("Woodland, London, Msx: A 3 12").
func (k Key) Label() string {
	position := strings.TrimSpace(strings.Join([]string{k.Zone, k.Row, k.Plot, k.Side}, " "))
	label := k.Cemetery + ", " + k.Township + ", " + k.County
	if position != "" {
		label += ": " + strings.Join(strings.Fields(position), " ")
	}
	return label
}

// ImageBase returns the parts a stored image name is built from: every key
// part but the side.
func (k Key) ImageBase() []string {
	return []string{k.Domain, k.County, k.Township, k.Cemetery, k.Zone, k.Row, k.Plot}
}

// Grave is the transcription of one marker.
type Grave struct {
	Key

	Surname    string `json:"surname"`
	GivenNames string `json:"given_names"`
	BirthDate  string `json:"birth_date"`
	DeathDate  string `json:"death_date"`
	Text       string `json:"text"`
	// Images holds the stored file names of the photographs of the stone.
	Images []string `json:"images"`

	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Columns are the inputs of the detail page, lower case.
var Columns = []string{"surname", "givennames", "birthdate", "deathdate", "text"}

// Set assigns one form input. Unknown columns are ignored.
func (g *Grave) Set(column, value string) {
	switch column {
	case "surname":
		g.Surname = value
	case "givennames":
		g.GivenNames = value
	case "birthdate":
		g.BirthDate = value
	case "deathdate":
		g.DeathDate = value
	case "text":
		g.Text = value
	}
}

// Filter selects markers on the cemetery listing.
type Filter struct {
	Domain   string
	County   string
	Township string
	Cemetery string
	Surname  string
}

// Field names for validation.
const (
	FieldDomain   = "domain"
	FieldCounty   = "county"
	FieldTownship = "township"
	FieldCemetery = "cemetery"
	FieldSurname  = "surname"
	FieldText     = "text"
)
