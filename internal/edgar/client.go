// Package edgar discovers annual-report filings on SEC EDGAR and downloads
// their complete submission text files.
package edgar

import (
	"bytes"
	"context"
	"fmt"
	"net/url"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/model"
)

// DefaultBaseURL is the EDGAR host
const DefaultBaseURL = "https://www.sec.gov"

// Getter fetches a page body
type Getter interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Downloader saves a response body to a file
type Downloader interface {
	Download(ctx context.Context, rawURL, path string) (int64, error)
}

// Client talks to EDGAR. Discovery and downloads go through separate
// fetchers so each keeps its own request spacing.
type Client struct {
	pages   Getter
	files   Downloader
	baseURL string
	log     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithBaseURL points the client at another host
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// NewClient creates an EDGAR client
func NewClient(pages Getter, files Downloader, log *zap.Logger, opts ...Option) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Client{pages: pages, files: files, baseURL: DefaultBaseURL, log: log}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BrowseURL is the company browse query for one ticker and form type
func (c *Client) BrowseURL(ticker, formType string) string {
	return fmt.Sprintf("%s/cgi-bin/browse-edgar?action=getcompany&dateb=&owner=exclude&count=100&type=%s&CIK=%s",
		c.baseURL, url.QueryEscape(formType), url.QueryEscape(ticker))
}

// ListFilings queries the browse page of every ticker in order and returns
// the filings found. A ticker whose page cannot be fetched or parsed is
// logged and skipped; only cancellation stops the loop.
func (c *Client) ListFilings(ctx context.Context, tickers []string, formType string) ([]model.Filing, error) {
	var filings []model.Filing

	for i, ticker := range tickers {
		body, err := c.pages.Fetch(ctx, c.BrowseURL(ticker, formType))
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return filings, ctxErr
			}
			c.log.Warn("discovery failed",
				zap.String("ticker", ticker),
				zap.String("form_type", formType),
				zap.Error(err))
			continue
		}

		found, err := ParseResults(bytes.NewReader(body), ticker, c.baseURL)
		if err != nil {
			c.log.Warn("results page unreadable", zap.String("ticker", ticker), zap.Error(err))
			continue
		}

		c.log.Info("discovered filings",
			zap.String("ticker", ticker),
			zap.Int("count", len(found)),
			zap.Int("progress", i+1),
			zap.Int("total", len(tickers)))
		filings = append(filings, found...)
	}

	return filings, nil
}
