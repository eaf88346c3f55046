package edgar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/model"
)

var errNoDownloader = errors.New("edgar client has no downloader")

// DownloadStats counts what a download run did
type DownloadStats struct {
	Downloaded int
	Skipped    int // already on disk
	Failed     int
	Bytes      int64
}

// Download saves each filing's submission as dir/<filename>. Files that
// already exist are left alone. Failures are logged and skipped.
func (c *Client) Download(ctx context.Context, filings []model.Filing, dir string) (DownloadStats, error) {
	var stats DownloadStats
	if c.files == nil {
		return stats, errNoDownloader
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return stats, fmt.Errorf("create report dir: %w", err)
	}

	for i, f := range filings {
		path := filepath.Join(dir, f.Filename())
		if _, err := os.Stat(path); err == nil {
			stats.Skipped++
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			c.log.Warn("cannot stat report file", zap.String("path", path), zap.Error(err))
			stats.Failed++
			continue
		}

		n, err := c.files.Download(ctx, f.Path, path)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return stats, ctxErr
			}
			c.log.Warn("download failed",
				zap.String("ticker", f.Ticker),
				zap.String("accession", f.Accession),
				zap.Error(err))
			stats.Failed++
			continue
		}

		stats.Downloaded++
		stats.Bytes += n
		c.log.Info("downloaded",
			zap.String("file", f.Filename()),
			zap.Int64("bytes", n),
			zap.Int("progress", i+1),
			zap.Int("total", len(filings)))
	}

	return stats, nil
}
