package prices

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ppiankov/edgarmine/internal/model"
)

const (
	marketstackBaseURL  = "https://api.marketstack.com"
	marketstackPageSize = 1000
)

// MarketstackProvider reads closes from the marketstack end-of-day API,
// following its offset pagination
type MarketstackProvider struct {
	getter    Getter
	accessKey string
	baseURL   string
	pageSize  int
}

// NewMarketstackProvider creates a marketstack provider
func NewMarketstackProvider(getter Getter, accessKey string) *MarketstackProvider {
	return &MarketstackProvider{
		getter:    getter,
		accessKey: accessKey,
		baseURL:   marketstackBaseURL,
		pageSize:  marketstackPageSize,
	}
}

func (p *MarketstackProvider) Name() string { return "marketstack" }

type marketstackPage struct {
	Pagination struct {
		Limit  int `json:"limit"`
		Offset int `json:"offset"`
		Count  int `json:"count"`
		Total  int `json:"total"`
	} `json:"pagination"`
	Data []struct {
		Symbol string          `json:"symbol"`
		Date   string          `json:"date"`
		Close  decimal.Decimal `json:"close"`
	} `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (p *MarketstackProvider) eodURL(ticker string, start, end time.Time, offset int) string {
	q := url.Values{}
	q.Set("access_key", p.accessKey)
	q.Set("symbols", ticker)
	q.Set("date_from", start.Format(DateLayout))
	q.Set("date_to", end.Format(DateLayout))
	q.Set("limit", strconv.Itoa(p.pageSize))
	q.Set("offset", strconv.Itoa(offset))
	return p.baseURL + "/v2/eod?" + q.Encode()
}

func (p *MarketstackProvider) DailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]model.PricePoint, error) {
	var points []model.PricePoint

	for offset := 0; ; {
		body, err := p.getter.Fetch(ctx, p.eodURL(ticker, start, end, offset))
		if err != nil {
			return nil, fmt.Errorf("fetch marketstack page at offset %d: %w", offset, err)
		}

		var page marketstackPage
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode marketstack page: %w", err)
		}
		if page.Error != nil {
			return nil, fmt.Errorf("marketstack: %s: %s", page.Error.Code, page.Error.Message)
		}

		for _, d := range page.Data {
			points = append(points, model.PricePoint{Ticker: ticker, Date: dayOf(d.Date), Close: d.Close})
		}

		offset += len(page.Data)
		if len(page.Data) == 0 || offset >= page.Pagination.Total {
			break
		}
	}

	return points, nil
}
