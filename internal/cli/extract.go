package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edgarmine/internal/pipeline"
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Mine employee headcounts from the candidate table",
	Long: `Extract fills the EmpCount and RptYear columns of the candidate table.

For each filing the reporting year is assumed to be the year before the
filing date. Sentences mentioning that year are tried first, then the
following year, then any sentence.

Example:
  edgarmine extract
  edgarmine extract --results candidates.csv --reprocess`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	f := extractCmd.Flags()
	f.String("results", defaults.Paths.Results, "candidate table CSV, updated in place")
	f.Bool("reprocess", false, "recompute rows that already have a headcount")

	extractCmd.PreRunE = preRun([]flagBinding{
		{"results", "paths.results"},
		{"reprocess", "extract.reprocess"},
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := commandContext()
	defer cancel()

	banner("edgarmine Extract")
	stderrf("  Results:    %s\n", cfg.Paths.Results)
	stderrf("  Reprocess:  %v\n", cfg.Extract.Reprocess)
	stderrf("\n")

	p := pipeline.NewPipeline(cfg, log, pipeline.WithProgress(cmd.ErrOrStderr()))
	summary, err := p.ExtractHeadcounts(ctx)
	if err != nil {
		return fmt.Errorf("extract failed: %w", err)
	}

	banner("Extract Complete")
	stderrf("  Rows:       %d\n", summary.Rows)
	stderrf("  Attempted:  %d\n", summary.Attempted)
	stderrf("  Found:      %d\n", summary.Found)
	stderrf("  Missing:    %d\n", summary.Attempted-summary.Found)
	stderrf("\n")

	return nil
}
