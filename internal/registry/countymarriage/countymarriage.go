// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package countymarriage

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Item roles.
const (
	RoleGroom = "G"
	RoleBride = "B"
)

const (
	// PlaceholderPairs is the number of groom and bride pairs offered for a
	// report with no items.
	PlaceholderPairs = 10

	placeholderGroom = "New Groom"
	placeholderBride = "New Bride"
)

// Key identifies a report returned by a minister to the county.
type Key struct {
	Domain string `json:"domain"`
	Volume int    `json:"volume"`
	// ReportNo is a whole number, or a half for a report filed between two others.
	ReportNo float64 `json:"report_no"`
}

// FormatReportNo writes a report number without a trailing ".0".
func FormatReportNo(reportNo float64) string {
	return strconv.FormatFloat(reportNo, 'f', -1, 64)
}

var reportNoPattern = regexp.MustCompile(`^\d{1,5}(\.5)?$`)

// ParseReportNo accepts digits with an optional ".5".
func ParseReportNo(text string) (float64, bool) {
	if !reportNoPattern.MatchString(text) {
		return 0, false
	}
	reportNo, err := strconv.ParseFloat(text, 64)
	return reportNo, err == nil
}

// Label returns "CAON 12-3".
func (k Key) Label() string {
	return fmt.Sprintf("%s %d-%s", k.Domain, k.Volume, FormatReportNo(k.ReportNo))
}

// Detail returns the citation detail of one item ("CAON 12-3-4 G").
func (k Key) Detail(itemNo int, role string) string {
	return fmt.Sprintf("%s %d-%s-%d %s", k.Domain, k.Volume, FormatReportNo(k.ReportNo), itemNo, role)
}

var detailPattern = regexp.MustCompile(`^([A-Z]{4,5}) (\d+)-(\d+(?:\.5)?)-(\d+) ([GB])$`)

// ParseDetail reverses [Key.Detail].
func ParseDetail(detail string) (Key, int, string, bool) {
	match := detailPattern.FindStringSubmatch(strings.TrimSpace(detail))
	if match == nil {
		return Key{}, 0, "", false
	}
	volume, _ := strconv.Atoi(match[2])
	reportNo, _ := strconv.ParseFloat(match[3], 64)
	itemNo, err := strconv.Atoi(match[4])
	if err != nil {
		return Key{}, 0, "", false
	}
	return Key{Domain: match[1], Volume: volume, ReportNo: reportNo}, itemNo, match[5], true
}

// Report is the header of a county marriage report: the minister who
// performed the marriages listed in its items.
type Report struct {
	Key

	Page       int    `json:"page"`
	GivenNames string `json:"given_names"`
	Surname    string `json:"surname"`
	Faith      string `json:"faith"`
	Residence  string `json:"residence"`
	Image      string `json:"image"`
	IDIR       int64  `json:"idir"`
	Remarks    string `json:"remarks"`

	UpdatedBy string    `json:"updated_by"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is the groom or the bride of one marriage on a report.
type Item struct {
	ItemNo      int    `json:"item_no"`
	Role        string `json:"role"`
	GivenNames  string `json:"given_names"`
	Surname     string `json:"surname"`
	Age         string `json:"age"`
	Residence   string `json:"residence"`
	BirthPlace  string `json:"birth_place"`
	FatherName  string `json:"father_name"`
	MotherName  string `json:"mother_name"`
	WitnessName string `json:"witness_name"`
	Date        string `json:"date"`
	LicenseType string `json:"license_type"`
	Remarks     string `json:"remarks"`
	IDIR        int64  `json:"idir"`
}

// Placeholders returns the rows offered for a report with no items.
func Placeholders() []Item {
	items := make([]Item, 0, 2*PlaceholderPairs)
	for itemNo := 1; itemNo <= PlaceholderPairs; itemNo++ {
		items = append(items,
			Item{ItemNo: itemNo, Role: RoleGroom, GivenNames: placeholderGroom},
			Item{ItemNo: itemNo, Role: RoleBride, GivenNames: placeholderBride},
		)
	}
	return items
}

// IsPlaceholder reports whether the row is an untouched placeholder.
func (item *Item) IsPlaceholder() bool {
	return (item.GivenNames == placeholderGroom || item.GivenNames == placeholderBride) &&
		item.Surname == "" && item.IDIR == 0
}

// SortItems orders items by item number, groom before bride.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].ItemNo != items[j].ItemNo {
			return items[i].ItemNo < items[j].ItemNo
		}
		return items[i].Role == RoleGroom && items[j].Role != RoleGroom
	})
}

// Columns are the header inputs of the report page, lower case.
var Columns = []string{"page", "givennames", "surname", "faith", "residence", "image", "idir", "remarks"}

// Set assigns one header input. Unknown columns are ignored.
func (r *Report) Set(column, value string) {
	switch column {
	case "page":
		r.Page, _ = strconv.Atoi(value)
	case "givennames":
		r.GivenNames = value
	case "surname":
		r.Surname = value
	case "faith":
		r.Faith = value
	case "residence":
		r.Residence = value
	case "image":
		r.Image = value
	case "idir":
		r.IDIR, _ = strconv.ParseInt(value, 10, 64)
	case "remarks":
		r.Remarks = value
	}
}

// ItemColumns are the per-row inputs of the report page.
var ItemColumns = []string{
	"givennames", "surname", "age", "residence", "birthplace", "fathername",
	"mothername", "witnessname", "date", "licensetype", "remarks", "idir",
}

// Set assigns one item input. Unknown columns are ignored.
func (item *Item) Set(column, value string) {
	switch column {
	case "givennames":
		item.GivenNames = value
	case "surname":
		item.Surname = value
	case "age":
		item.Age = value
	case "residence":
		item.Residence = value
	case "birthplace":
		item.BirthPlace = value
	case "fathername":
		item.FatherName = value
	case "mothername":
		item.MotherName = value
	case "witnessname":
		item.WitnessName = value
	case "date":
		item.Date = value
	case "licensetype":
		item.LicenseType = strings.ToUpper(value)
	case "remarks":
		item.Remarks = value
	case "idir":
		item.IDIR, _ = strconv.ParseInt(value, 10, 64)
	}
}

// Filter selects reports on the query page.
type Filter struct {
	Domain string
	Volume int
	// Surname matches the minister.
	Surname string
}

// Summary is one line of the report listing.
type Summary struct {
	Report
	Items int `json:"items"`
}

// Field names for validation.
const (
	FieldDomain      = "domain"
	FieldVolume      = "volume"
	FieldReportNo    = "reportno"
	FieldItemNo      = "itemno"
	FieldRole        = "role"
	FieldLicenseType = "licensetype"
)
