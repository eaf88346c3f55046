package model

import (
	"fmt"
	"strconv"
	"time"
)

// Filing is one entry of the EDGAR filing index for a company
type Filing struct {
	Ticker    string `json:"ticker"`
	DocURL    string `json:"docurl"`   // relative link to the filing index page
	Path      string `json:"path"`     // absolute URL of the complete submission text file
	Accession string `json:"desc"`     // accession number, e.g. 0000066740-19-000010
	FiledDate string `json:"filedate"` // as shown on the results page
}

// Filename is the local name of the downloaded submission
func (f Filing) Filename() string {
	return f.Ticker + "_" + f.FiledDate + "_" + f.Accession + ".txt"
}

// Filing list column names, shared by the fetch and parse steps
const (
	ColTicker    = "ticker"
	ColDocURL    = "docurl"
	ColPath      = "path"
	ColAccession = "desc"
	ColFiledDate = "filedate"
	ColFilename  = "filename"
	ColResults   = "Results"
	ColEmpCount  = "EmpCount"
	ColRptYear   = "RptYear"

	ColSymbol      = "Symbol"
	ColSector      = "GICS Sector"
	ColSubIndustry = "GICS Sub Industry"
)

// FilingColumns is the header of the discovered filing list
var FilingColumns = []string{ColTicker, ColDocURL, ColPath, ColAccession, ColFiledDate, ColFilename}

// Row renders the filing in FilingColumns order
func (f Filing) Row() []string {
	return []string{f.Ticker, f.DocURL, f.Path, f.Accession, f.FiledDate, f.Filename()}
}

var filedDateLayouts = []string{"2006-01-02", "01/02/2006", "1/2/2006"}

// ParseFiledDate accepts the EDGAR date format and the US spreadsheet formats
func ParseFiledDate(s string) (time.Time, error) {
	for _, layout := range filedDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized filing date %q", s)
}

// HintYear returns the fiscal year a filing most likely reports on: the
// year before it was filed.
func HintYear(filedDate string) (string, error) {
	t, err := ParseFiledDate(filedDate)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(t.Year() - 1), nil
}
