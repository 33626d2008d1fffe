package schema

// VitalsDomainTable represents the 'vitals.domain' table
type VitalsDomainTable struct {
	Table string
	Code  string
	Name  string
	Lang  string
}

// VitalsDomain is the schema definition for vitals.domain
var VitalsDomain = VitalsDomainTable{
	Table: "vitals.domain",
	Code:  "code",
	Name:  "name",
	Lang:  "lang",
}

// VitalsCountyTable represents the 'vitals.county' table
type VitalsCountyTable struct {
	Table     string
	Domain    string
	Code      string
	Name      string
	StartYear string
	EndYear   string
}

// VitalsCounty is the schema definition for vitals.county
var VitalsCounty = VitalsCountyTable{
	Table:     "vitals.county",
	Domain:    "domain",
	Code:      "code",
	Name:      "name",
	StartYear: "startyear",
	EndYear:   "endyear",
}

// VitalsTownshipTable represents the 'vitals.township' table
type VitalsTownshipTable struct {
	Table  string
	Domain string
	County string
	Code   string
	Name   string
}

// VitalsTownship is the schema definition for vitals.township
var VitalsTownship = VitalsTownshipTable{
	Table:  "vitals.township",
	Domain: "domain",
	County: "county",
	Code:   "code",
	Name:   "name",
}
