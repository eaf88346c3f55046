package prices

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/model"
)

// Series is the price history of one ticker
type Series struct {
	Ticker string
	Points []model.PricePoint
}

// Collector fetches tickers one after another with a fixed pause between
// requests
type Collector struct {
	provider Provider
	delay    time.Duration
	log      *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

// NewCollector creates a collector
func NewCollector(provider Provider, delay time.Duration, log *zap.Logger) *Collector {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collector{provider: provider, delay: delay, log: log, sleep: sleepCtx}
}

// Collect returns one series per ticker that the provider answered, in
// ticker order, plus the tickers that failed. Failures are logged and do
// not stop the run; cancellation does.
func (c *Collector) Collect(ctx context.Context, tickers []string, start, end time.Time) ([]Series, []string, error) {
	var (
		series []Series
		failed []string
	)

	for i, ticker := range tickers {
		if i > 0 && c.delay > 0 {
			if err := c.sleep(ctx, c.delay); err != nil {
				return series, failed, err
			}
		}

		points, err := c.provider.DailyCloses(ctx, ticker, start, end)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return series, failed, ctxErr
			}
			c.log.Warn("price request failed",
				zap.String("provider", c.provider.Name()),
				zap.String("ticker", ticker),
				zap.Error(err))
			failed = append(failed, ticker)
			continue
		}

		c.log.Info("prices",
			zap.String("ticker", ticker),
			zap.Int("days", len(points)),
			zap.Int("progress", i+1),
			zap.Int("total", len(tickers)))
		series = append(series, Series{Ticker: ticker, Points: points})
	}

	return series, failed, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
