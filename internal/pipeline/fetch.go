package pipeline

import (
	"context"
	"fmt"

	"github.com/ppiankov/edgarmine/internal/edgar"
	"github.com/ppiankov/edgarmine/internal/model"
	"github.com/ppiankov/edgarmine/internal/table"
	"github.com/ppiankov/edgarmine/internal/worker"
)

// FetchSummary reports what the fetch step did
type FetchSummary struct {
	Discovered bool // false when the filing list was reloaded from disk
	Filings    int
	Download   edgar.DownloadStats
}

// Fetch discovers the filing list, unless it already exists on disk, and
// downloads every filing not yet present in the report directory
func (p *Pipeline) Fetch(ctx context.Context, opts ...edgar.Option) (FetchSummary, error) {
	var summary FetchSummary
	rl := p.config.RateLimiting
	client := edgar.NewClient(
		p.fetcher.Paced(worker.NewPacer(p.limiter, rl.DiscoveryDelay)),
		p.fetcher.Paced(worker.NewPacer(p.limiter, rl.DownloadDelay)),
		p.log.Named("edgar"),
		opts...,
	)

	listPath := p.config.Paths.ReportURLs
	exists, err := fileExists(listPath)
	if err != nil {
		return summary, fmt.Errorf("check filing list: %w", err)
	}

	var filings []model.Filing
	if exists {
		filings, err = loadFilings(listPath)
		if err != nil {
			return summary, err
		}
		p.progress("✓ Loaded %d filings from %s", len(filings), listPath)
	} else {
		tickers, err := p.Tickers()
		if err != nil {
			return summary, err
		}
		p.progress("⚙️  Discovering %s filings for %d tickers...", model.FormType10K, len(tickers))

		filings, err = client.ListFilings(ctx, tickers, model.FormType10K)
		if err != nil {
			return summary, fmt.Errorf("list filings: %w", err)
		}
		if err := filingTable(filings).Write(listPath); err != nil {
			return summary, fmt.Errorf("write filing list: %w", err)
		}
		summary.Discovered = true
		p.progress("✓ Discovered %d filings, saved to %s", len(filings), listPath)
	}
	summary.Filings = len(filings)

	p.progress("⚙️  Downloading into %s...", p.config.Paths.ReportDir)
	stats, err := client.Download(ctx, filings, p.config.Paths.ReportDir)
	summary.Download = stats
	if err != nil {
		return summary, fmt.Errorf("download filings: %w", err)
	}
	return summary, nil
}

func filingTable(filings []model.Filing) *table.Table {
	t := table.New(model.FilingColumns...)
	for _, f := range filings {
		t.Append(f.Row()...)
	}
	return t
}

// loadFilings reads a filing list written by an earlier run. The filename
// column is derived, so it is recomputed and written back when missing.
func loadFilings(path string) ([]model.Filing, error) {
	t, err := table.Read(path)
	if err != nil {
		return nil, fmt.Errorf("load filing list: %w", err)
	}
	for _, col := range []string{model.ColTicker, model.ColPath, model.ColAccession, model.ColFiledDate} {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("filing list %s has no %q column", path, col)
		}
	}

	filings := make([]model.Filing, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		filings = append(filings, model.Filing{
			Ticker:    t.Get(i, model.ColTicker),
			DocURL:    t.Get(i, model.ColDocURL),
			Path:      t.Get(i, model.ColPath),
			Accession: t.Get(i, model.ColAccession),
			FiledDate: t.Get(i, model.ColFiledDate),
		})
	}

	if !t.HasColumn(model.ColFilename) {
		t.AddColumn(model.ColFilename, "")
		for i, f := range filings {
			if err := t.Set(i, model.ColFilename, f.Filename()); err != nil {
				return nil, err
			}
		}
		if err := t.Write(path); err != nil {
			return nil, fmt.Errorf("update filing list: %w", err)
		}
	}
	return filings, nil
}
