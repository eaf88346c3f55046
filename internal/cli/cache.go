package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/edgarmine/internal/cache"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the response cache",
	Long: `Manage the on-disk cache of EDGAR browse pages and price responses.

Filings themselves are never cached; they live in the report directory.`,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, dir, err := openCache()
		if err != nil {
			return err
		}
		removed, err := c.Prune()
		if err != nil {
			return fmt.Errorf("prune cache: %w", err)
		}
		fmt.Printf("✓ Removed %d expired entries from %s\n", removed, dir)
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every cache entry",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, dir, err := openCache()
		if err != nil {
			return err
		}
		if err := c.Clear(); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Printf("✓ Cleared %s\n", dir)
		return nil
	},
}

func openCache() (*cache.LayeredCache, string, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, "", err
	}
	return cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL), cfg.Cache.Dir, nil
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
