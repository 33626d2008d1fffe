package schema

// VitalsGraveTable represents the 'vitals.grave' table
type VitalsGraveTable struct {
	Table      string
	Domain     string
	County     string
	Township   string
	Cemetery   string
	Zone       string
	Row        string
	Plot       string
	Side       string
	Surname    string
	GivenNames string
	BirthDate  string
	DeathDate  string
	Text       string
	Images     string
	UpdatedBy  string
	UpdatedAt  string
}

// VitalsGrave is the schema definition for vitals.grave
var VitalsGrave = VitalsGraveTable{
	Table:      "vitals.grave",
	Domain:     "domain",
	County:     "county",
	Township:   "township",
	Cemetery:   "cemetery",
	Zone:       "zone",
	Row:        "rowno",
	Plot:       "plot",
	Side:       "side",
	Surname:    "surname",
	GivenNames: "givennames",
	BirthDate:  "birthdate",
	DeathDate:  "deathdate",
	Text:       "text",
	Images:     "images",
	UpdatedBy:  "updatedby",
	UpdatedAt:  "updatedat",
}

// Key returns the primary key columns.
func (t VitalsGraveTable) Key() []string {
	return []string{t.Domain, t.County, t.Township, t.Cemetery, t.Zone, t.Row, t.Plot, t.Side}
}

// Fields returns the inscription columns in scan order.
func (t VitalsGraveTable) Fields() []string {
	return []string{t.Surname, t.GivenNames, t.BirthDate, t.DeathDate, t.Text, t.Images}
}
