package schema

// VitalsMarriageTable represents the 'vitals.marriage' table
type VitalsMarriageTable struct {
	Table       string
	Domain      string
	RegYear     string
	RegNum      string
	MsVol       string
	County      string
	Township    string
	Place       string
	Date        string
	LicenseType string
	Registrar   string
	RegDate     string
	Remarks     string
	Image       string
	UpdatedBy   string
	UpdatedAt   string
}

// VitalsMarriage is the schema definition for vitals.marriage
var VitalsMarriage = VitalsMarriageTable{
	Table:       "vitals.marriage",
	Domain:      "domain",
	RegYear:     "regyear",
	RegNum:      "regnum",
	MsVol:       "msvol",
	County:      "county",
	Township:    "township",
	Place:       "place",
	Date:        "date",
	LicenseType: "licensetype",
	Registrar:   "registrar",
	RegDate:     "regdate",
	Remarks:     "remarks",
	Image:       "image",
	UpdatedBy:   "updatedby",
	UpdatedAt:   "updatedat",
}

// Key returns the primary key columns.
func (t VitalsMarriageTable) Key() []string {
	return []string{t.Domain, t.RegYear, t.RegNum}
}

// Fields returns the transcribed columns in scan order.
func (t VitalsMarriageTable) Fields() []string {
	return []string{
		t.MsVol, t.County, t.Township, t.Place, t.Date, t.LicenseType,
		t.Registrar, t.RegDate, t.Remarks, t.Image,
	}
}

// VitalsMarriageIndiTable represents the 'vitals.marriageindi' table
type VitalsMarriageIndiTable struct {
	Table       string
	Domain      string
	RegYear     string
	RegNum      string
	Role        string
	GivenNames  string
	Surname     string
	Soundex     string
	Age         string
	BYear       string
	Residence   string
	BirthPlace  string
	MarStat     string
	Occupation  string
	FatherName  string
	MotherName  string
	Religion    string
	WitnessName string
	WitnessRes  string
	IDIR        string
}

// VitalsMarriageIndi is the schema definition for vitals.marriageindi
var VitalsMarriageIndi = VitalsMarriageIndiTable{
	Table:       "vitals.marriageindi",
	Domain:      "domain",
	RegYear:     "regyear",
	RegNum:      "regnum",
	Role:        "role",
	GivenNames:  "givennames",
	Surname:     "surname",
	Soundex:     "soundex",
	Age:         "age",
	BYear:       "byear",
	Residence:   "residence",
	BirthPlace:  "birthplace",
	MarStat:     "marstat",
	Occupation:  "occupation",
	FatherName:  "fathername",
	MotherName:  "mothername",
	Religion:    "religion",
	WitnessName: "witnessname",
	WitnessRes:  "witnessres",
	IDIR:        "idir",
}

// Key returns the primary key columns.
func (t VitalsMarriageIndiTable) Key() []string {
	return []string{t.Domain, t.RegYear, t.RegNum, t.Role}
}

// Fields returns the transcribed columns in scan order.
func (t VitalsMarriageIndiTable) Fields() []string {
	return []string{
		t.GivenNames, t.Surname, t.Soundex, t.Age, t.BYear, t.Residence, t.BirthPlace,
		t.MarStat, t.Occupation, t.FatherName, t.MotherName, t.Religion,
		t.WitnessName, t.WitnessRes, t.IDIR,
	}
}
