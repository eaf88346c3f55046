package pipeline

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/extract"
	"github.com/ppiankov/edgarmine/internal/model"
	"github.com/ppiankov/edgarmine/internal/table"
)

// ExtractSummary reports what the headcount step did
type ExtractSummary struct {
	Rows      int
	Attempted int
	Found     int
}

// ExtractHeadcounts fills the EmpCount and RptYear columns of the
// candidate table in place. Rows that already have a count are kept
// unless reprocessing is configured.
func (p *Pipeline) ExtractHeadcounts(ctx context.Context) (ExtractSummary, error) {
	var summary ExtractSummary
	path := p.config.Paths.Results

	rows, err := table.Read(path)
	if err != nil {
		return summary, fmt.Errorf("load results: %w", err)
	}
	for _, col := range []string{model.ColResults, model.ColFiledDate} {
		if !rows.HasColumn(col) {
			return summary, fmt.Errorf("results table %s has no %q column", path, col)
		}
	}
	rows.AddColumn(model.ColEmpCount, "")
	rows.AddColumn(model.ColRptYear, "")
	summary.Rows = rows.Len()

	templates := extract.DefaultTemplates()
	reprocess := p.config.Extract.Reprocess

	for i := 0; i < rows.Len(); i++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if !reprocess && rows.Get(i, model.ColEmpCount) != "" {
			continue
		}

		candidates, err := table.DecodeList(rows.Get(i, model.ColResults))
		if err != nil {
			return summary, fmt.Errorf("row %d: %w", i+1, err)
		}
		if len(candidates) == 0 {
			continue
		}

		filename := rows.Get(i, model.ColFilename)
		hint, err := model.HintYear(rows.Get(i, model.ColFiledDate))
		if err != nil {
			p.log.Warn("skipping row", zap.String("filename", filename), zap.Error(err))
			continue
		}

		summary.Attempted++
		res, ok := extract.Extract(templates, hint, candidates)
		if !ok {
			// a miss leaves any earlier value in place
			p.progress("✗ %s: no headcount found", filename)
			continue
		}
		count := strconv.FormatInt(res.Value, 10)
		summary.Found++
		p.progress("✓ %s: %s employees (%s)", filename, count, res.Year)
		if err := rows.Set(i, model.ColEmpCount, count); err != nil {
			return summary, err
		}
		if err := rows.Set(i, model.ColRptYear, res.Year); err != nil {
			return summary, err
		}
	}

	if err := rows.Write(path); err != nil {
		return summary, fmt.Errorf("write results: %w", err)
	}
	return summary, nil
}
