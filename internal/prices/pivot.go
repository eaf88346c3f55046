package prices

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/edgarmine/internal/table"
)

// DateColumn is the first column of the pivoted table
const DateColumn = "date"

// Pivot lays series out wide: one row per date in ascending order over the
// union of all dates, one column per ticker in series order, and an empty
// cell where a ticker has no close for that date. A ticker appearing in
// several series shares one column; later values win on the same date.
func Pivot(series []Series) *table.Table {
	var tickers []string
	byTicker := make(map[string]map[string]decimal.Decimal)
	dates := make(map[string]struct{})

	for _, s := range series {
		closes, ok := byTicker[s.Ticker]
		if !ok {
			closes = make(map[string]decimal.Decimal)
			byTicker[s.Ticker] = closes
			tickers = append(tickers, s.Ticker)
		}
		for _, p := range s.Points {
			closes[p.Date] = p.Close
			dates[p.Date] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Strings(sorted)

	out := table.New(append([]string{DateColumn}, tickers...)...)
	for _, d := range sorted {
		row := make([]string, 0, len(tickers)+1)
		row = append(row, d)
		for _, t := range tickers {
			if v, ok := byTicker[t][d]; ok {
				row = append(row, v.String())
			} else {
				row = append(row, "")
			}
		}
		out.Append(row...)
	}
	return out
}
