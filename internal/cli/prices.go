package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edgarmine/internal/pipeline"
)

// pricesCmd represents the prices command
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Download daily closes and pivot them into a date by ticker table",
	Long: `Prices fetches the daily closing price history of every ticker from a
market data provider and writes one wide CSV: a date column followed by
one column per ticker.

Providers and their credentials (environment or .env):
  tiingo        TIINGO_TOKEN
  marketstack   MARKETSTACK_ACCESS_KEY
  alpaca        APCA_API_KEY_ID, APCA_API_SECRET_KEY

Example:
  edgarmine prices
  edgarmine prices --provider alpaca --start 2015-01-01 --end 2019-01-01
  edgarmine prices --symbols-file banks.txt --output banks.csv`,
	Args: cobra.NoArgs,
	RunE: runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)

	f := pricesCmd.Flags()
	f.String("provider", defaults.Prices.Provider, "price provider (tiingo, marketstack, alpaca)")
	f.String("start", defaults.Prices.StartDate, "first date, YYYY-MM-DD")
	f.String("end", defaults.Prices.EndDate, "last date, YYYY-MM-DD")
	f.String("output", defaults.Prices.Output, "output CSV name")
	f.String("prices-dir", defaults.Paths.PricesDir, "directory for the output CSV")
	f.Duration("price-delay", defaults.RateLimiting.PriceDelay, "pause between tickers")

	bindings := append(tickerFlags(pricesCmd), httpFlags(pricesCmd)...)
	bindings = append(bindings,
		flagBinding{"provider", "prices.provider"},
		flagBinding{"start", "prices.start_date"},
		flagBinding{"end", "prices.end_date"},
		flagBinding{"output", "prices.output"},
		flagBinding{"prices-dir", "paths.prices_dir"},
		flagBinding{"price-delay", "rate_limiting.price_delay"},
	)
	pricesCmd.PreRunE = preRun(bindings)
}

func runPrices(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, cancel := commandContext()
	defer cancel()

	banner("edgarmine Prices")
	stderrf("  Provider:  %s\n", cfg.Prices.Provider)
	stderrf("  Tickers:   %s\n", tickerSource(cfg))
	stderrf("  Range:     %s to %s\n", cfg.Prices.StartDate, cfg.Prices.EndDate)
	stderrf("  Delay:     %v\n", cfg.RateLimiting.PriceDelay)
	stderrf("  Output:    %s\n", filepath.Join(cfg.Paths.PricesDir, cfg.Prices.Output))
	stderrf("\n")

	p := pipeline.NewPipeline(cfg, log, pipeline.WithProgress(cmd.ErrOrStderr()))
	summary, err := p.Prices(ctx)
	if err != nil {
		return fmt.Errorf("prices failed: %w", err)
	}

	banner("Prices Complete")
	stderrf("  Provider:  %s\n", summary.Provider)
	stderrf("  Tickers:   %d\n", summary.Tickers)
	stderrf("  Success:   %d\n", summary.Tickers-len(summary.Failed))
	if len(summary.Failed) > 0 {
		stderrf("  Failures:  %d (%s)\n", len(summary.Failed), strings.Join(summary.Failed, ", "))
	} else {
		stderrf("  Failures:  0\n")
	}
	stderrf("  Dates:     %d\n", summary.Dates)
	stderrf("  Output:    %s\n", summary.Output)
	stderrf("\n")

	return nil
}
