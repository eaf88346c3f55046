package prices

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/shopspring/decimal"

	"github.com/ppiankov/edgarmine/internal/model"
)

// barsClient is the part of the Alpaca market data client we use
type barsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

// AlpacaProvider reads split and dividend adjusted daily bars from Alpaca
type AlpacaProvider struct {
	client barsClient
}

// NewAlpacaProvider creates an Alpaca provider
func NewAlpacaProvider(keyID, secretKey string) *AlpacaProvider {
	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    keyID,
			APISecret: secretKey,
		}),
	}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

func (p *AlpacaProvider) DailyCloses(ctx context.Context, ticker string, start, end time.Time) ([]model.PricePoint, error) {
	// the SDK call is not cancellable
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bars, err := p.client.GetBars(ticker, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, fmt.Errorf("get alpaca bars: %w", err)
	}

	points := make([]model.PricePoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, model.PricePoint{
			Ticker: ticker,
			Date:   b.Timestamp.In(newYork).Format(DateLayout),
			Close:  decimal.NewFromFloat(b.Close),
		})
	}
	return points, nil
}

// daily bars are stamped at midnight exchange time
var newYork = func() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.UTC
	}
	return loc
}()
