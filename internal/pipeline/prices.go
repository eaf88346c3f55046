package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/ppiankov/edgarmine/internal/prices"
	"github.com/ppiankov/edgarmine/internal/worker"
)

// PricesSummary reports what the prices step did
type PricesSummary struct {
	Provider string
	Tickers  int
	Failed   []string
	Dates    int
	Output   string
}

// Prices downloads daily closes for the configured tickers and writes the
// pivoted date by ticker table
func (p *Pipeline) Prices(ctx context.Context) (PricesSummary, error) {
	cfg := p.config.Prices
	summary := PricesSummary{Provider: cfg.Provider}

	start, end, err := prices.ParseRange(cfg.StartDate, cfg.EndDate)
	if err != nil {
		return summary, err
	}
	// the collector spaces tickers; pages of one ticker only wait for the host limit
	provider, err := prices.NewProvider(cfg, p.fetcher.Paced(worker.NewPacer(p.limiter, 0)))
	if err != nil {
		return summary, err
	}
	return p.collectPrices(ctx, provider, start, end)
}

func (p *Pipeline) collectPrices(ctx context.Context, provider prices.Provider, start, end time.Time) (PricesSummary, error) {
	summary := PricesSummary{Provider: provider.Name()}

	tickers, err := p.Tickers()
	if err != nil {
		return summary, err
	}
	summary.Tickers = len(tickers)
	p.progress("⚙️  Fetching closes %s to %s for %d tickers from %s...",
		start.Format(prices.DateLayout), end.Format(prices.DateLayout), len(tickers), provider.Name())

	collector := prices.NewCollector(provider, p.config.RateLimiting.PriceDelay, p.log.Named("prices"))
	series, failed, err := collector.Collect(ctx, tickers, start, end)
	summary.Failed = failed
	if err != nil {
		return summary, fmt.Errorf("collect prices: %w", err)
	}
	for _, t := range failed {
		p.progress("✗ %s", t)
	}

	wide := prices.Pivot(series)
	summary.Dates = wide.Len()
	summary.Output = filepath.Join(p.config.Paths.PricesDir, p.config.Prices.Output)
	if err := wide.Write(summary.Output); err != nil {
		return summary, fmt.Errorf("write prices: %w", err)
	}
	return summary, nil
}
