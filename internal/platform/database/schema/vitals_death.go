package schema

// VitalsDeathTable represents the 'vitals.death' table
type VitalsDeathTable struct {
	Table      string
	Domain     string
	RegYear    string
	RegNum     string
	MsVol      string
	County     string
	Township   string
	Surname    string
	Soundex    string
	GivenNames string
	Sex        string
	Date       string
	Place      string
	Age        string
	BirthDate  string
	BirthPlace string
	Occupation string
	MarStat    string
	Religion   string
	FatherName string
	MotherName string
	Cause      string
	Duration   string
	Informant  string
	InfoRel    string
	Physician  string
	Registrar  string
	RegDate    string
	Remarks    string
	Image      string
	IDIR       string
	UpdatedBy  string
	UpdatedAt  string
}

// VitalsDeath is the schema definition for vitals.death
var VitalsDeath = VitalsDeathTable{
	Table:      "vitals.death",
	Domain:     "domain",
	RegYear:    "regyear",
	RegNum:     "regnum",
	MsVol:      "msvol",
	County:     "county",
	Township:   "township",
	Surname:    "surname",
	Soundex:    "soundex",
	GivenNames: "givennames",
	Sex:        "sex",
	Date:       "date",
	Place:      "place",
	Age:        "age",
	BirthDate:  "birthdate",
	BirthPlace: "birthplace",
	Occupation: "occupation",
	MarStat:    "marstat",
	Religion:   "religion",
	FatherName: "fathername",
	MotherName: "mothername",
	Cause:      "cause",
	Duration:   "duration",
	Informant:  "informant",
	InfoRel:    "inforel",
	Physician:  "physician",
	Registrar:  "registrar",
	RegDate:    "regdate",
	Remarks:    "remarks",
	Image:      "image",
	IDIR:       "idir",
	UpdatedBy:  "updatedby",
	UpdatedAt:  "updatedat",
}

// Key returns the primary key columns.
func (t VitalsDeathTable) Key() []string {
	return []string{t.Domain, t.RegYear, t.RegNum}
}

// Fields returns the transcribed columns in scan order.
func (t VitalsDeathTable) Fields() []string {
	return []string{
		t.MsVol, t.County, t.Township, t.Surname, t.Soundex, t.GivenNames, t.Sex,
		t.Date, t.Place, t.Age, t.BirthDate, t.BirthPlace, t.Occupation, t.MarStat,
		t.Religion, t.FatherName, t.MotherName, t.Cause, t.Duration, t.Informant,
		t.InfoRel, t.Physician, t.Registrar, t.RegDate, t.Remarks, t.Image, t.IDIR,
	}
}
