package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/extract"
	"github.com/ppiankov/edgarmine/internal/model"
	"github.com/ppiankov/edgarmine/internal/table"
	"github.com/ppiankov/edgarmine/internal/worker"
)

// ParseSummary reports what the parse step did
type ParseSummary struct {
	Documents  int
	Unreadable int
	Candidates int
}

// Parse builds the candidate table: the filing list joined with the
// constituents, filtered, with the candidate sentences of each document in
// the Results column
func (p *Pipeline) Parse(ctx context.Context) (ParseSummary, error) {
	var summary ParseSummary

	reports, err := table.Read(p.config.Paths.ReportURLs)
	if err != nil {
		return summary, fmt.Errorf("load filing list: %w", err)
	}
	if !reports.HasColumn(model.ColFilename) {
		return summary, fmt.Errorf("filing list %s has no %q column", p.config.Paths.ReportURLs, model.ColFilename)
	}

	rows := reports
	if ok, err := fileExists(p.config.Paths.Tickers); err != nil {
		return summary, fmt.Errorf("check constituents: %w", err)
	} else if ok {
		constituents, err := table.Read(p.config.Paths.Tickers)
		if err != nil {
			return summary, fmt.Errorf("load constituents: %w", err)
		}
		rows, err = reports.LeftMerge(constituents, model.ColTicker, model.ColSymbol)
		if err != nil {
			return summary, fmt.Errorf("merge constituents: %w", err)
		}
	} else {
		p.log.Warn("constituents table not found, sector filters will match nothing",
			zap.String("path", p.config.Paths.Tickers))
	}
	rows = applyFilters(rows, p.config.Filters)
	rows.AddColumn(model.ColResults, "")

	filter, err := extract.NewKeywordFilter(p.config.Keywords.Include, p.config.Keywords.Exclude)
	if err != nil {
		return summary, err
	}
	reader := extract.NewDocumentReader()

	tasks := make([]worker.Task[[]string], 0, rows.Len())
	for i := 0; i < rows.Len(); i++ {
		path := filepath.Join(p.config.Paths.ReportDir, rows.Get(i, model.ColFilename))
		tasks = append(tasks, func(ctx context.Context) ([]string, error) {
			return candidatesFromFile(reader, filter, path)
		})
	}

	p.progress("⚙️  Parsing %d documents with %d workers...", len(tasks), p.config.Concurrency.Workers)
	outcomes := worker.NewBatchProcessor[[]string](p.config.Concurrency.Workers).
		OnProgress(func(done, total int, index int, out worker.Outcome[[]string]) {
			name := rows.Get(index, model.ColFilename)
			if out.Err != nil {
				p.progress("✗ [%d/%d] %s: %v", done, total, name, out.Err)
				return
			}
			p.progress("✓ [%d/%d] %s (%d sentences)", done, total, name, len(out.Value))
		}).
		Process(ctx, tasks)
	if err := ctx.Err(); err != nil {
		return summary, err
	}

	for i, out := range outcomes {
		candidates := out.Value
		if out.Err != nil {
			p.log.Warn("document unreadable",
				zap.String("filename", rows.Get(i, model.ColFilename)),
				zap.Error(out.Err))
			summary.Unreadable++
			candidates = nil
		}
		cell, err := table.EncodeList(candidates)
		if err != nil {
			return summary, err
		}
		if err := rows.Set(i, model.ColResults, cell); err != nil {
			return summary, err
		}
		summary.Candidates += len(candidates)
	}
	summary.Documents = len(outcomes)

	if err := rows.Write(p.config.Paths.Results); err != nil {
		return summary, fmt.Errorf("write results: %w", err)
	}
	return summary, nil
}

func candidatesFromFile(reader *extract.DocumentReader, filter *extract.KeywordFilter, path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return filter.Filter(reader.Sentences(string(raw))), nil
}
