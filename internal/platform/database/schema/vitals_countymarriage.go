package schema

// VitalsCountyMarriageReportTable represents the 'vitals.countymarriagereport' table
type VitalsCountyMarriageReportTable struct {
	Table      string
	Domain     string
	Volume     string
	ReportNo   string
	Page       string
	GivenNames string
	Surname    string
	Faith      string
	Residence  string
	Image      string
	IDIR       string
	Remarks    string
	UpdatedBy  string
	UpdatedAt  string
}

// VitalsCountyMarriageReport is the schema definition for vitals.countymarriagereport
var VitalsCountyMarriageReport = VitalsCountyMarriageReportTable{
	Table:      "vitals.countymarriagereport",
	Domain:     "domain",
	Volume:     "volume",
	ReportNo:   "reportno",
	Page:       "page",
	GivenNames: "givennames",
	Surname:    "surname",
	Faith:      "faith",
	Residence:  "residence",
	Image:      "image",
	IDIR:       "idir",
	Remarks:    "remarks",
	UpdatedBy:  "updatedby",
	UpdatedAt:  "updatedat",
}

// Key returns the primary key columns.
func (t VitalsCountyMarriageReportTable) Key() []string {
	return []string{t.Domain, t.Volume, t.ReportNo}
}

// Fields returns the minister columns in scan order.
func (t VitalsCountyMarriageReportTable) Fields() []string {
	return []string{t.Page, t.GivenNames, t.Surname, t.Faith, t.Residence, t.Image, t.IDIR, t.Remarks}
}

// VitalsCountyMarriageTable represents the 'vitals.countymarriage' table
type VitalsCountyMarriageTable struct {
	Table       string
	Domain      string
	Volume      string
	ReportNo    string
	ItemNo      string
	Role        string
	GivenNames  string
	Surname     string
	Soundex     string
	Age         string
	Residence   string
	BirthPlace  string
	FatherName  string
	MotherName  string
	WitnessName string
	Date        string
	LicenseType string
	Remarks     string
	IDIR        string
}

// VitalsCountyMarriage is the schema definition for vitals.countymarriage
var VitalsCountyMarriage = VitalsCountyMarriageTable{
	Table:       "vitals.countymarriage",
	Domain:      "domain",
	Volume:      "volume",
	ReportNo:    "reportno",
	ItemNo:      "itemno",
	Role:        "role",
	GivenNames:  "givennames",
	Surname:     "surname",
	Soundex:     "soundex",
	Age:         "age",
	Residence:   "residence",
	BirthPlace:  "birthplace",
	FatherName:  "fathername",
	MotherName:  "mothername",
	WitnessName: "witnessname",
	Date:        "date",
	LicenseType: "licensetype",
	Remarks:     "remarks",
	IDIR:        "idir",
}

// Key returns the primary key columns.
func (t VitalsCountyMarriageTable) Key() []string {
	return []string{t.Domain, t.Volume, t.ReportNo, t.ItemNo, t.Role}
}

// Fields returns the item columns in scan order.
func (t VitalsCountyMarriageTable) Fields() []string {
	return []string{
		t.GivenNames, t.Surname, t.Soundex, t.Age, t.Residence, t.BirthPlace,
		t.FatherName, t.MotherName, t.WitnessName, t.Date, t.LicenseType, t.Remarks, t.IDIR,
	}
}
