package schema

// TreePersonTable represents the 'tree.person' table
type TreePersonTable struct {
	Table       string
	IDIR        string
	Surname     string
	SurnameKey  string
	Soundex     string
	GivenName   string
	GivenTokens string
	Gender      string
	BirthSD     string
	DeathSD     string
	IDMRParents string
}

// TreePerson is the schema definition for tree.person
var TreePerson = TreePersonTable{
	Table:       "tree.person",
	IDIR:        "idir",
	Surname:     "surname",
	SurnameKey:  "surnamekey",
	Soundex:     "soundex",
	GivenName:   "givenname",
	GivenTokens: "giventokens",
	Gender:      "gender",
	BirthSD:     "birthsd",
	DeathSD:     "deathsd",
	IDMRParents: "idmrparents",
}

// TreeFamilyTable represents the 'tree.family' table
type TreeFamilyTable struct {
	Table    string
	IDMR     string
	IDIRHusb string
	IDIRWife string
	MarD     string
}

// TreeFamily is the schema definition for tree.family
var TreeFamily = TreeFamilyTable{
	Table:    "tree.family",
	IDMR:     "idmr",
	IDIRHusb: "idirhusb",
	IDIRWife: "idirwife",
	MarD:     "mard",
}

// TreeSourceTable represents the 'tree.source' table
type TreeSourceTable struct {
	Table string
	IDSR  string
	Kind  string
	Name  string
}

// TreeSource is the schema definition for tree.source
var TreeSource = TreeSourceTable{
	Table: "tree.source",
	IDSR:  "idsr",
	Kind:  "kind",
	Name:  "name",
}

// TreeCitationTable represents the 'tree.citation' table
type TreeCitationTable struct {
	Table     string
	IDSX      string
	IDSR      string
	IDIME     string
	Type      string
	SrcDetail string
	CreatedBy string
	CreatedAt string
}

// TreeCitation is the schema definition for tree.citation
var TreeCitation = TreeCitationTable{
	Table:     "tree.citation",
	IDSX:      "idsx",
	IDSR:      "idsr",
	IDIME:     "idime",
	Type:      "type",
	SrcDetail: "srcdetail",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
}
