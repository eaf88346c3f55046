package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/edgarmine/internal/model"
)

const tiingoBaseURL = "https://api.tiingo.com"

// TiingoProvider reads adjusted closes from the Tiingo end-of-day API
type TiingoProvider struct {
	getter  Getter
	token   string
	baseURL string
}

// NewTiingoProvider creates a Tiingo provider
func NewTiingoProvider(getter Getter, token string) *TiingoProvider {
	return &TiingoProvider{getter: getter, token: token, baseURL: tiingoBaseURL}
}

func (p *TiingoProvider) Name() string { return "tiingo" }

type tiingoDailyPrice struct {
	Date     string          `json:"date"`
	AdjClose decimal.Decimal `json:"adjClose"`
}

func (p *TiingoProvider) pricesURL(ticker string, start, end time.Time) string {
	// Tiingo paths are lower case
	endpoint := strings.ToLower(fmt.Sprintf("%s/tiingo/daily/%s/prices", p.baseURL, url.PathEscape(ticker)))
	q := url.Values{}
	q.Set("startDate", start.Format(DateLayout))
	q.Set("endDate", end.Format(DateLayout))
	q.Set("token", p.token)
	return endpoint + "?" + q.Encode()
}

func (p *TiingoProvider) DailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]model.PricePoint, error) {
	body, err := p.getter.Fetch(ctx, p.pricesURL(ticker, start, end))
	if err != nil {
		return nil, fmt.Errorf("fetch tiingo prices: %w", err)
	}

	var rows []tiingoDailyPrice
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode tiingo prices: %w", err)
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, r := range rows {
		points = append(points, model.PricePoint{Ticker: ticker, Date: dayOf(r.Date), Close: r.AdjClose})
	}
	return points, nil
}
