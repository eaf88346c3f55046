package edgar

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/ppiankov/edgarmine/internal/model"
)

var (
	cikDir      = regexp.MustCompile(`data/[0-9]+/`)
	accessionNo = regexp.MustCompile(`Acc-no: ([0-9\-]+)`)
)

// ParseResults reads the filing rows of a company browse page. Each row
// is read on its own: the documents link, the accession number from the
// description cell and the filing date cell. Rows missing any of them are
// skipped.
func ParseResults(r io.Reader, ticker, baseURL string) ([]model.Filing, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}

	filings := []model.Filing{}
	doc.Find(`table[summary="Results"] tr`).Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 4 {
			return
		}

		href, ok := row.Find("a#documentsbutton").Attr("href")
		if !ok {
			return
		}
		loc := cikDir.FindStringIndex(href)
		if loc == nil {
			return
		}
		m := accessionNo.FindStringSubmatch(cells.Eq(2).Text())
		if m == nil {
			return
		}
		accession := m[1]
		filed := strings.TrimSpace(cells.Eq(3).Text())
		if filed == "" {
			return
		}

		dir := href[:loc[1]]
		if strings.HasPrefix(dir, "/") {
			dir = strings.TrimSuffix(baseURL, "/") + dir
		}

		filings = append(filings, model.Filing{
			Ticker:    ticker,
			DocURL:    href,
			Path:      dir + strings.ReplaceAll(accession, "-", "") + "/" + accession + ".txt",
			Accession: accession,
			FiledDate: filed,
		})
	})

	return filings, nil
}
