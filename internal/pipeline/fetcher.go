package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/ppiankov/edgarmine/internal/cache"
	"github.com/ppiankov/edgarmine/internal/model"
	"github.com/ppiankov/edgarmine/internal/util"
	"github.com/ppiankov/edgarmine/internal/worker"
)

// ErrDisallowed is returned when robots.txt forbids a URL
var ErrDisallowed = errors.New("disallowed by robots.txt")

// StatusError is a non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return "unexpected status: " + e.Status
}

// Fetcher performs every outbound GET of the pipeline
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	cache      cache.Cache
	cacheTTL   time.Duration
	robots     *util.RobotsChecker
	pacer      *worker.Pacer
	log        *zap.Logger
}

// FetcherOption configures a Fetcher
type FetcherOption func(*Fetcher)

// WithCache serves and stores Fetch bodies through c. Downloads bypass it.
func WithCache(c cache.Cache, ttl time.Duration) FetcherOption {
	return func(f *Fetcher) {
		f.cache = c
		f.cacheTTL = ttl
	}
}

// WithRobots refuses URLs that robots.txt disallows for our agent
func WithRobots(enabled bool) FetcherOption {
	return func(f *Fetcher) {
		if enabled {
			f.robots = util.NewRobotsChecker(f.httpClient, f.userAgent)
		}
	}
}

// WithPacer spaces uncached requests
func WithPacer(p *worker.Pacer) FetcherOption {
	return func(f *Fetcher) { f.pacer = p }
}

// WithLogger sets the logger
func WithLogger(log *zap.Logger) FetcherOption {
	return func(f *Fetcher) { f.log = log }
}

// NewFetcher creates a Fetcher from the HTTP settings
func NewFetcher(cfg model.HTTPConfig, opts ...FetcherOption) *Fetcher {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy)

	f := &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Paced returns a copy of f that shares its client, cache and robots data
// but spaces requests with p
func (f *Fetcher) Paced(p *worker.Pacer) *Fetcher {
	clone := *f
	clone.pacer = p
	return &clone
}

// Fetch returns the body of rawURL, from the cache when possible
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	key := cache.Key(rawURL)
	if f.cache != nil {
		if body, ok := f.cache.Get(key); ok {
			f.log.Debug("cache hit", zap.String("url", util.RedactURL(rawURL)))
			return body, nil
		}
	}

	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := f.readLimited(resp.Body)
	if err != nil {
		return nil, err
	}

	if f.cache != nil {
		if err := f.cache.Set(key, body, f.cacheTTL); err != nil {
			f.log.Warn("cache store failed", zap.Error(err))
		}
	}
	return body, nil
}

// Download streams rawURL into path. The file only appears once the body
// has been read completely.
func (f *Fetcher) Download(ctx context.Context, rawURL, path string) (n int64, err error) {
	resp, err := f.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return 0, fmt.Errorf("create download dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("create download file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	n, err = io.Copy(tmp, io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return n, fmt.Errorf("read body: %w", err)
	}
	if n > f.maxBytes {
		return n, fmt.Errorf("response exceeds %d bytes", f.maxBytes)
	}
	if err = tmp.Close(); err != nil {
		return n, fmt.Errorf("close download file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return n, fmt.Errorf("store download: %w", err)
	}
	return n, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (*http.Response, error) {
	var crawlDelay time.Duration
	if f.robots != nil {
		allowed, delay, err := f.robots.CanFetch(ctx, rawURL)
		if err != nil {
			return nil, fmt.Errorf("robots check: %w", err)
		}
		if !allowed {
			return nil, fmt.Errorf("%s: %w", util.RedactURL(rawURL), ErrDisallowed)
		}
		crawlDelay = delay
	}

	if f.pacer != nil {
		if err := f.pacer.Wait(ctx, rawURL, crawlDelay); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	f.log.Debug("GET", zap.String("url", util.RedactURL(rawURL)))
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return resp, nil
}

func (f *Fetcher) readLimited(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("response exceeds %d bytes", f.maxBytes)
	}
	return body, nil
}
