package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/cache"
	"github.com/ppiankov/edgarmine/internal/model"
	"github.com/ppiankov/edgarmine/internal/table"
	"github.com/ppiankov/edgarmine/internal/worker"
)

// Pipeline runs the fetch, parse, extract and prices steps over flat files
type Pipeline struct {
	config  *model.Config
	log     *zap.Logger
	out     io.Writer // progress lines
	fetcher *Fetcher
	limiter *worker.Limiter
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithProgress sends per-record progress lines to w
func WithProgress(w io.Writer) Option {
	return func(p *Pipeline) { p.out = w }
}

// WithFetcher replaces the HTTP fetcher
func WithFetcher(f *Fetcher) Option {
	return func(p *Pipeline) { p.fetcher = f }
}

// NewPipeline creates a pipeline with the given configuration
func NewPipeline(cfg *model.Config, log *zap.Logger, opts ...Option) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}

	fetchOpts := []FetcherOption{
		WithLogger(log.Named("http")),
		WithRobots(cfg.HTTP.RespectRobots),
	}
	if cfg.Cache.Enabled {
		c := cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
		fetchOpts = append(fetchOpts, WithCache(c, cfg.Cache.DiskTTL))
	}

	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.BurstSize)
	for host, rps := range cfg.RateLimiting.HostRates {
		limiter.SetHostRate(host, rps, cfg.RateLimiting.BurstSize)
	}

	p := &Pipeline{
		config:  cfg,
		log:     log,
		out:     io.Discard,
		fetcher: NewFetcher(cfg.HTTP, fetchOpts...),
		limiter: limiter,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pipeline) progress(format string, args ...any) {
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// Tickers returns the symbols to process: the plain symbols file when one
// is configured, otherwise the Symbol column of the constituents table
// after the sector, sub-industry and symbol filters.
func (p *Pipeline) Tickers() ([]string, error) {
	if p.config.Paths.SymbolsFile != "" {
		symbols, err := worker.ReadListFile(p.config.Paths.SymbolsFile)
		if err != nil {
			return nil, fmt.Errorf("read symbols file: %w", err)
		}
		return symbols, nil
	}

	constituents, err := table.Read(p.config.Paths.Tickers)
	if err != nil {
		return nil, fmt.Errorf("load constituents: %w", err)
	}
	if !constituents.HasColumn(model.ColSymbol) {
		return nil, fmt.Errorf("constituents table %s has no %q column", p.config.Paths.Tickers, model.ColSymbol)
	}

	filters := p.config.Filters
	filters.Filename = ""
	return applyFilters(constituents, filters).Values(model.ColSymbol), nil
}

// applyFilters keeps rows equal to every set filter
func applyFilters(t *table.Table, f model.FilterConfig) *table.Table {
	for _, c := range []struct{ column, value string }{
		{model.ColSector, f.Sector},
		{model.ColSubIndustry, f.SubIndustry},
		{model.ColSymbol, f.Symbol},
		{model.ColFilename, f.Filename},
	} {
		if c.value != "" {
			t = t.Filter(c.column, c.value)
		}
	}
	return t
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
