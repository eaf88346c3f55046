package model

import "time"

// Config is the complete run configuration. It is built once by the CLI
// and passed by pointer into each step; steps never modify it.
type Config struct {
	Paths        PathsConfig        `yaml:"paths" mapstructure:"paths"`
	HTTP         HTTPConfig         `yaml:"http" mapstructure:"http"`
	RateLimiting RateLimitConfig    `yaml:"rate_limiting" mapstructure:"rate_limiting"`
	Cache        CacheConfig        `yaml:"cache" mapstructure:"cache"`
	Concurrency  ConcurrencyConfig  `yaml:"concurrency" mapstructure:"concurrency"`
	Filters      FilterConfig       `yaml:"filters" mapstructure:"filters"`
	Keywords     KeywordConfig      `yaml:"keywords" mapstructure:"keywords"`
	Extract      ExtractConfig      `yaml:"extract" mapstructure:"extract"`
	Prices       PricesConfig       `yaml:"prices" mapstructure:"prices"`
	Output       OutputConfig       `yaml:"output" mapstructure:"output"`
}

// PathsConfig locates every flat file the pipeline reads or writes
type PathsConfig struct {
	Tickers     string `yaml:"tickers" mapstructure:"tickers"`           // constituents CSV with a Symbol column
	SymbolsFile string `yaml:"symbols_file" mapstructure:"symbols_file"` // optional plain list, one ticker per line
	ReportDir   string `yaml:"report_dir" mapstructure:"report_dir"`     // downloaded filings
	ReportURLs  string `yaml:"report_urls" mapstructure:"report_urls"`   // discovered filing list
	Results     string `yaml:"results" mapstructure:"results"`           // candidate sentence table
	PricesDir   string `yaml:"prices_dir" mapstructure:"prices_dir"`
}

// HTTPConfig configures the shared fetcher
type HTTPConfig struct {
	Timeout       time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent     string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes  int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy     string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy    string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy       string        `yaml:"no_proxy" mapstructure:"no_proxy"`
	RespectRobots bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
}

// RateLimitConfig holds the fixed delays between requests
type RateLimitConfig struct {
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	DiscoveryDelay    time.Duration `yaml:"discovery_delay" mapstructure:"discovery_delay"`
	DownloadDelay     time.Duration `yaml:"download_delay" mapstructure:"download_delay"`
	PriceDelay        time.Duration `yaml:"price_delay" mapstructure:"price_delay"`

	// HostRates overrides RequestsPerSecond for individual hosts
	HostRates map[string]float64 `yaml:"host_rates,omitempty" mapstructure:"host_rates"`
}

// CacheConfig configures the response cache used for discovery and price pages
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// ConcurrencyConfig sizes the document worker pool
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// FilterConfig restricts which constituents are processed. Empty fields are ignored.
type FilterConfig struct {
	Sector      string `yaml:"gics_sector" mapstructure:"gics_sector"`
	SubIndustry string `yaml:"gics_sub_industry" mapstructure:"gics_sub_industry"`
	Symbol      string `yaml:"symbol" mapstructure:"symbol"`
	Filename    string `yaml:"filename" mapstructure:"filename"`
}

// KeywordConfig drives the candidate sentence filter
type KeywordConfig struct {
	Include []string `yaml:"include" mapstructure:"include"`
	Exclude []string `yaml:"exclude" mapstructure:"exclude"`
}

// ExtractConfig drives the headcount step
type ExtractConfig struct {
	Reprocess bool `yaml:"reprocess" mapstructure:"reprocess"` // re-run rows that already have a value
}

// PricesConfig drives the price feed step
type PricesConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // tiingo, marketstack, alpaca
	StartDate string `yaml:"start_date" mapstructure:"start_date"`
	EndDate   string `yaml:"end_date" mapstructure:"end_date"`
	Output    string `yaml:"output" mapstructure:"output"`

	// Credentials are normally supplied through the environment
	TiingoToken     string `yaml:"-" mapstructure:"tiingo_token"`
	MarketstackKey  string `yaml:"-" mapstructure:"marketstack_key"`
	AlpacaKeyID     string `yaml:"-" mapstructure:"alpaca_key_id"`
	AlpacaSecretKey string `yaml:"-" mapstructure:"alpaca_secret_key"`
}

// OutputConfig controls console output
type OutputConfig struct {
	Verbose bool `yaml:"verbose" mapstructure:"verbose"`
}

// FormType10K is the annual report form code
const FormType10K = "10-K"

// DefaultConfig returns the configuration of the reference run
func DefaultConfig() *Config {
	return &Config{
		Paths: PathsConfig{
			Tickers:    "SPX_Constituents_2019-01-28.csv",
			ReportDir:  "EDGAR_10K",
			ReportURLs: "Report_URLS_2019-01-28.csv",
			Results:    "Parse_Results_2019-01-28.csv",
			PricesDir:  ".",
		},
		HTTP: HTTPConfig{
			Timeout:      60 * time.Second,
			UserAgent:    "edgarmine/0.1 admin@example.com",
			MaxBodyBytes: 200_000_000,
		},
		RateLimiting: RateLimitConfig{
			RequestsPerSecond: 5,
			BurstSize:         1,
			DiscoveryDelay:    3 * time.Second,
			DownloadDelay:     2 * time.Second,
			PriceDelay:        2 * time.Second,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".edgarmine-cache",
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 1,
		},
		Filters: FilterConfig{
			Sector: "Financials",
		},
		Keywords: KeywordConfig{
			Include: []string{"employ", "employed", "employs", "employee", "employees", "full time", `full\-time`, "fulltime"},
			Exclude: []string{`401\(k\)`, "retire", "retired", "retirement", "tax"},
		},
		Prices: PricesConfig{
			Provider:  "tiingo",
			StartDate: "2012-01-01",
			EndDate:   "2019-01-01",
			Output:    "SPX_Prices_Financials.csv",
		},
	}
}
