// Package prices downloads daily closing prices from a market data
// provider and pivots them into a date by ticker table.
package prices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ppiankov/edgarmine/internal/model"
)

// DateLayout is the date format used in requests and in the output table
const DateLayout = "2006-01-02"

// Provider returns the daily closes of one ticker between start and end
type Provider interface {
	Name() string
	DailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]model.PricePoint, error)
}

// Getter fetches a response body
type Getter interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// NewProvider builds the provider named in cfg
func NewProvider(cfg model.PricesConfig, getter Getter) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "tiingo":
		if cfg.TiingoToken == "" {
			return nil, fmt.Errorf("tiingo token not set (TIINGO_TOKEN)")
		}
		return NewTiingoProvider(getter, cfg.TiingoToken), nil
	case "marketstack":
		if cfg.MarketstackKey == "" {
			return nil, fmt.Errorf("marketstack access key not set (MARKETSTACK_ACCESS_KEY)")
		}
		return NewMarketstackProvider(getter, cfg.MarketstackKey), nil
	case "alpaca":
		if cfg.AlpacaKeyID == "" || cfg.AlpacaSecretKey == "" {
			return nil, fmt.Errorf("alpaca credentials not set (APCA_API_KEY_ID, APCA_API_SECRET_KEY)")
		}
		return NewAlpacaProvider(cfg.AlpacaKeyID, cfg.AlpacaSecretKey), nil
	default:
		return nil, fmt.Errorf("unknown price provider %q", cfg.Provider)
	}
}

// ParseRange parses the configured start and end dates
func ParseRange(start, end string) (time.Time, time.Time, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start date: %w", err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end date: %w", err)
	}
	if e.Before(s) {
		return time.Time{}, time.Time{}, fmt.Errorf("end date %s before start date %s", end, start)
	}
	return s, e, nil
}

// dayOf trims a provider timestamp such as 2012-01-03T00:00:00.000Z to
// its date
func dayOf(ts string) string {
	if len(ts) >= len(DateLayout) {
		return ts[:len(DateLayout)]
	}
	return ts
}
