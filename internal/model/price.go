package model

import "github.com/shopspring/decimal"

// PricePoint is one daily close for one ticker
type PricePoint struct {
	Ticker string
	Date   string // YYYY-MM-DD
	Close  decimal.Decimal
}

// Headcount is a mined employee count and the year it was reported for
type Headcount struct {
	Year  string
	Value int64
}
