package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edgarmine/internal/pipeline"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Discover 10-K filings on EDGAR and download them",
	Long: `Fetch builds the filing list and downloads every filing:
- Reuse the filing list when it already exists, otherwise query the
  EDGAR company browse page for each ticker and save the list
- Download each complete submission text file into the report directory
- Skip filings that are already on disk

Example:
  edgarmine fetch
  edgarmine fetch --sector "Information Technology" --report-dir ./10k
  edgarmine fetch --symbols-file tickers.txt --ua "Jane Doe jane@example.com"`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)

	f := fetchCmd.Flags()
	f.String("report-urls", defaults.Paths.ReportURLs, "filing list CSV")
	f.String("report-dir", defaults.Paths.ReportDir, "directory for downloaded filings")
	f.Duration("discovery-delay", defaults.RateLimiting.DiscoveryDelay, "pause between browse page requests")
	f.Duration("download-delay", defaults.RateLimiting.DownloadDelay, "pause between downloads")

	bindings := append(tickerFlags(fetchCmd), httpFlags(fetchCmd)...)
	bindings = append(bindings,
		flagBinding{"report-urls", "paths.report_urls"},
		flagBinding{"report-dir", "paths.report_dir"},
		flagBinding{"discovery-delay", "rate_limiting.discovery_delay"},
		flagBinding{"download-delay", "rate_limiting.download_delay"},
	)
	fetchCmd.PreRunE = preRun(bindings)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := commandContext()
	defer cancel()

	banner("edgarmine Fetch")
	stderrf("  Tickers:      %s\n", tickerSource(cfg))
	stderrf("  Filing list:  %s\n", cfg.Paths.ReportURLs)
	stderrf("  Report dir:   %s\n", cfg.Paths.ReportDir)
	stderrf("  Delays:       discovery %v, download %v\n", cfg.RateLimiting.DiscoveryDelay, cfg.RateLimiting.DownloadDelay)
	stderrf("  Cache:        %v\n", cfg.Cache.Enabled)
	stderrf("\n")

	p := pipeline.NewPipeline(cfg, log, pipeline.WithProgress(cmd.ErrOrStderr()))
	summary, err := p.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("fetch failed: %w", err)
	}

	banner("Fetch Complete")
	if summary.Discovered {
		stderrf("  Filings:     %d (discovered)\n", summary.Filings)
	} else {
		stderrf("  Filings:     %d (from %s)\n", summary.Filings, cfg.Paths.ReportURLs)
	}
	stderrf("  Downloaded:  %d (%d bytes)\n", summary.Download.Downloaded, summary.Download.Bytes)
	stderrf("  Skipped:     %d (already on disk)\n", summary.Download.Skipped)
	stderrf("  Failures:    %d\n", summary.Download.Failed)
	stderrf("\n")

	return nil
}
