package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/model"
)

// defaults backs the flag defaults shown in --help
var defaults = model.DefaultConfig()

func tickerFlags(cmd *cobra.Command) []flagBinding {
	f := cmd.Flags()
	f.String("tickers", defaults.Paths.Tickers, "constituents CSV with a Symbol column")
	f.String("symbols-file", "", "plain ticker list, one per line (overrides --tickers)")
	f.String("sector", defaults.Filters.Sector, "keep only this GICS Sector (empty = all)")
	f.String("sub-industry", "", "keep only this GICS Sub Industry")
	f.String("symbol", "", "keep only this ticker")
	return []flagBinding{
		{"tickers", "paths.tickers"},
		{"symbols-file", "paths.symbols_file"},
		{"sector", "filters.gics_sector"},
		{"sub-industry", "filters.gics_sub_industry"},
		{"symbol", "filters.symbol"},
	}
}

func httpFlags(cmd *cobra.Command) []flagBinding {
	f := cmd.Flags()
	f.String("ua", defaults.HTTP.UserAgent, "HTTP User-Agent (SEC asks for a contact address)")
	f.Duration("http-timeout", defaults.HTTP.Timeout, "timeout for a single request")
	f.Int64("max-bytes", defaults.HTTP.MaxBodyBytes, "max response bytes to read")
	f.String("http-proxy", "", "HTTP proxy URL (overrides HTTP_PROXY env var)")
	f.String("https-proxy", "", "HTTPS proxy URL (overrides HTTPS_PROXY env var)")
	f.Bool("respect-robots", defaults.HTTP.RespectRobots, "honour robots.txt rules and crawl delays")
	f.Bool("cache", defaults.Cache.Enabled, "cache fetched pages (use --cache=false to force fresh fetches)")
	f.Float64("rps", defaults.RateLimiting.RequestsPerSecond, "max requests per second per host (0 = unlimited)")
	return []flagBinding{
		{"ua", "http.user_agent"},
		{"http-timeout", "http.timeout"},
		{"max-bytes", "http.max_body_bytes"},
		{"http-proxy", "http.http_proxy"},
		{"https-proxy", "http.https_proxy"},
		{"respect-robots", "http.respect_robots"},
		{"cache", "cache.enabled"},
		{"rps", "rate_limiting.requests_per_second"},
	}
}

// preRun binds the flags of the command being run
func preRun(bindings []flagBinding) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd, bindings)
	}
}

// setup loads the layered configuration and builds the logger
func setup() (*model.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg.Output.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("create logger: %w", err)
	}
	return cfg, log, nil
}

func tickerSource(cfg *model.Config) string {
	if cfg.Paths.SymbolsFile != "" {
		return cfg.Paths.SymbolsFile
	}
	source := cfg.Paths.Tickers
	if cfg.Filters.Sector != "" {
		source += " (" + cfg.Filters.Sector + ")"
	}
	return source
}

func stderrf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
