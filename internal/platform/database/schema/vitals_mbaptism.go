package schema

// VitalsMBaptismTable represents the 'vitals.mbaptism' table
type VitalsMBaptismTable struct {
	Table        string
	IDMB         string
	Volume       string
	Page         string
	District     string
	Area         string
	GivenName    string
	Surname      string
	Soundex      string
	Father       string
	Mother       string
	Residence    string
	BirthPlace   string
	BirthDate    string
	BaptismDate  string
	BaptismPlace string
	Minister     string
	IDIR         string
	UpdatedBy    string
	UpdatedAt    string
}

// VitalsMBaptism is the schema definition for vitals.mbaptism
var VitalsMBaptism = VitalsMBaptismTable{
	Table:        "vitals.mbaptism",
	IDMB:         "idmb",
	Volume:       "volume",
	Page:         "page",
	District:     "district",
	Area:         "area",
	GivenName:    "givenname",
	Surname:      "surname",
	Soundex:      "soundex",
	Father:       "father",
	Mother:       "mother",
	Residence:    "residence",
	BirthPlace:   "birthplace",
	BirthDate:    "birthdate",
	BaptismDate:  "baptismdate",
	BaptismPlace: "baptismplace",
	Minister:     "minister",
	IDIR:         "idir",
	UpdatedBy:    "updatedby",
	UpdatedAt:    "updatedat",
}

// Fields returns the transcribed columns in scan order.
func (t VitalsMBaptismTable) Fields() []string {
	return []string{
		t.Volume, t.Page, t.District, t.Area, t.GivenName, t.Surname, t.Soundex,
		t.Father, t.Mother, t.Residence, t.BirthPlace, t.BirthDate, t.BaptismDate,
		t.BaptismPlace, t.Minister, t.IDIR,
	}
}
