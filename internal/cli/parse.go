package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edgarmine/internal/pipeline"
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Collect candidate headcount sentences from downloaded filings",
	Long: `Parse builds the candidate table:
- Join the filing list with the constituents table on the ticker
- Keep the rows matching the sector, sub-industry, symbol and filename filters
- Convert each filing to text, split it into sentences and keep the ones
  that mention employees together with a number

Example:
  edgarmine parse
  edgarmine parse --workers 8 --results candidates.csv
  edgarmine parse --sector "" --symbol JPM`,
	Args: cobra.NoArgs,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	f := parseCmd.Flags()
	f.String("report-urls", defaults.Paths.ReportURLs, "filing list CSV")
	f.String("report-dir", defaults.Paths.ReportDir, "directory of downloaded filings")
	f.String("results", defaults.Paths.Results, "candidate table CSV to write")
	f.String("filename", "", "parse only this filing")
	f.Int("workers", defaults.Concurrency.Workers, "number of documents parsed concurrently")
	f.StringSlice("include", defaults.Keywords.Include, "include terms (regular expressions)")
	f.StringSlice("exclude", defaults.Keywords.Exclude, "exclude terms (regular expressions)")

	bindings := append(tickerFlags(parseCmd),
		flagBinding{"report-urls", "paths.report_urls"},
		flagBinding{"report-dir", "paths.report_dir"},
		flagBinding{"results", "paths.results"},
		flagBinding{"filename", "filters.filename"},
		flagBinding{"workers", "concurrency.workers"},
		flagBinding{"include", "keywords.include"},
		flagBinding{"exclude", "keywords.exclude"},
	)
	parseCmd.PreRunE = preRun(bindings)
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if cfg.Concurrency.Workers < 1 {
		return fmt.Errorf("--workers must be at least 1")
	}

	ctx, cancel := commandContext()
	defer cancel()

	banner("edgarmine Parse")
	stderrf("  Filing list:  %s\n", cfg.Paths.ReportURLs)
	stderrf("  Report dir:   %s\n", cfg.Paths.ReportDir)
	stderrf("  Constituents: %s\n", tickerSource(cfg))
	stderrf("  Workers:      %d\n", cfg.Concurrency.Workers)
	stderrf("  Output:       %s\n", cfg.Paths.Results)
	stderrf("\n")

	p := pipeline.NewPipeline(cfg, log, pipeline.WithProgress(cmd.ErrOrStderr()))
	summary, err := p.Parse(ctx)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}

	banner("Parse Complete")
	stderrf("  Documents:   %d\n", summary.Documents)
	stderrf("  Unreadable:  %d\n", summary.Unreadable)
	stderrf("  Candidates:  %d sentences\n", summary.Candidates)
	stderrf("  Output:      %s\n", cfg.Paths.Results)
	stderrf("\n")

	return nil
}
