package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/edgarmine/internal/model"
)

var (
	cfgFile string
	verbose bool
	timeout time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "edgarmine",
	Short: "edgarmine - employee headcounts from 10-K filings, plus daily price feeds",
	Long: `edgarmine is a batch pipeline over flat files:

  fetch     discover 10-K filings on SEC EDGAR and download them
  parse     keep the sentences of each filing that may state a headcount
  extract   mine the headcount and its reporting year from those sentences
  prices    download daily closes and pivot them into a date by ticker table

Every step reads what the previous one wrote and can be re-run safely.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("edgarmine v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.edgarmine/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 0, "abort the command after this long (0 = no limit)")

	_ = viper.BindPFlag("output.verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in .env, the config file and ENV variables
func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.edgarmine")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// EDGARMINE_PATHS_REPORT_DIR overrides paths.report_dir, and so on
	viper.SetEnvPrefix("EDGARMINE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := registerDefaults(model.DefaultConfig()); err != nil {
		fmt.Fprintf(os.Stderr, "Error registering defaults: %v\n", err)
	}

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// registerDefaults makes every config key known to viper. Unmarshal only
// consults the environment for keys it knows about.
func registerDefaults(cfg *model.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return err
	}
	setDefaults("", tree)
	return nil
}

func setDefaults(prefix string, tree map[string]any) {
	for name, value := range tree {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if sub, ok := value.(map[string]any); ok {
			setDefaults(key, sub)
			continue
		}
		viper.SetDefault(key, value)
	}
}

// loadConfig layers defaults, the config file, EDGARMINE_* variables and
// bound flags. Provider credentials come from their usual variables.
func loadConfig() (*model.Config, error) {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	for _, c := range []struct {
		dst *string
		env string
	}{
		{&cfg.Prices.TiingoToken, "TIINGO_TOKEN"},
		{&cfg.Prices.MarketstackKey, "MARKETSTACK_ACCESS_KEY"},
		{&cfg.Prices.AlpacaKeyID, "APCA_API_KEY_ID"},
		{&cfg.Prices.AlpacaSecretKey, "APCA_API_SECRET_KEY"},
	} {
		if v := os.Getenv(c.env); v != "" && *c.dst == "" {
			*c.dst = v
		}
	}
	return cfg, nil
}

// flagBinding ties a command flag to a config key
type flagBinding struct {
	flag string
	key  string
}

// bindFlags binds the running command's flags. It is called from PreRunE
// because several commands share keys and viper keeps one flag per key.
func bindFlags(cmd *cobra.Command, bindings []flagBinding) error {
	for _, b := range bindings {
		if err := viper.BindPFlag(b.key, cmd.Flags().Lookup(b.flag)); err != nil {
			return fmt.Errorf("bind --%s: %w", b.flag, err)
		}
	}
	return nil
}

// newLogger builds the console logger: warnings by default, everything
// with --verbose
func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = true
	return cfg.Build()
}

// commandContext is cancelled on interrupt or when --timeout expires
func commandContext() (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

func banner(title string) {
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  %s\n", title)
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
}
