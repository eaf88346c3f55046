package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/ppiankov/edgarmine/internal/model"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.SetEnvPrefix("EDGARMINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	if err := registerDefaults(model.DefaultConfig()); err != nil {
		t.Fatalf("registerDefaults: %v", err)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetViper(t)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	want := model.DefaultConfig()
	if cfg.Paths != want.Paths {
		t.Errorf("paths = %+v, want %+v", cfg.Paths, want.Paths)
	}
	if cfg.RateLimiting.DiscoveryDelay != want.RateLimiting.DiscoveryDelay ||
		cfg.RateLimiting.RequestsPerSecond != want.RateLimiting.RequestsPerSecond {
		t.Errorf("rate limiting = %+v, want %+v", cfg.RateLimiting, want.RateLimiting)
	}
	if len(cfg.Keywords.Include) != len(want.Keywords.Include) {
		t.Errorf("include terms = %q", cfg.Keywords.Include)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	resetViper(t)
	t.Setenv("EDGARMINE_PATHS_REPORT_DIR", "/data/10k")
	t.Setenv("EDGARMINE_RATE_LIMITING_DOWNLOAD_DELAY", "500ms")
	t.Setenv("EDGARMINE_CONCURRENCY_WORKERS", "4")
	t.Setenv("TIINGO_TOKEN", "secret")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Paths.ReportDir != "/data/10k" {
		t.Errorf("report dir = %q", cfg.Paths.ReportDir)
	}
	if cfg.RateLimiting.DownloadDelay != 500*time.Millisecond {
		t.Errorf("download delay = %v", cfg.RateLimiting.DownloadDelay)
	}
	if cfg.RateLimiting.DiscoveryDelay != 3*time.Second {
		t.Errorf("discovery delay = %v, want default", cfg.RateLimiting.DiscoveryDelay)
	}
	if cfg.Concurrency.Workers != 4 {
		t.Errorf("workers = %d", cfg.Concurrency.Workers)
	}
	if cfg.Prices.TiingoToken != "secret" {
		t.Errorf("tiingo token not read from environment")
	}
}

func TestTickerSource(t *testing.T) {
	cfg := model.DefaultConfig()
	if got := tickerSource(cfg); got != "SPX_Constituents_2019-01-28.csv (Financials)" {
		t.Errorf("tickerSource = %q", got)
	}
	cfg.Paths.SymbolsFile = "banks.txt"
	if got := tickerSource(cfg); got != "banks.txt" {
		t.Errorf("tickerSource = %q", got)
	}
}
