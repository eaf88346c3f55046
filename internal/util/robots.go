package util

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsChecker answers robots.txt questions per host, fetching each
// host's file at most once
type RobotsChecker struct {
	httpClient *http.Client
	userAgent  string
	agent      string // product token matched against robots groups

	mu    sync.RWMutex
	hosts map[string]*robotstxt.RobotsData
}

// NewRobotsChecker creates a checker that fetches robots.txt with client
func NewRobotsChecker(client *http.Client, userAgent string) *RobotsChecker {
	return &RobotsChecker{
		httpClient: client,
		userAgent:  userAgent,
		agent:      NormalizeUserAgent(userAgent),
		hosts:      make(map[string]*robotstxt.RobotsData),
	}
}

// CanFetch reports whether rawURL may be fetched and the crawl delay the
// host asks for. An unreachable robots.txt allows everything.
func (r *RobotsChecker) CanFetch(ctx context.Context, rawURL string) (bool, time.Duration, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, 0, fmt.Errorf("parse URL: %w", err)
	}

	data, err := r.robotsFor(ctx, parsed)
	if err != nil {
		return true, 0, nil
	}

	path := parsed.EscapedPath()
	if parsed.RawQuery != "" {
		path += "?" + parsed.RawQuery
	}
	var crawlDelay time.Duration
	if group := data.FindGroup(r.agent); group != nil {
		crawlDelay = group.CrawlDelay
	}
	return data.TestAgent(path, r.agent), crawlDelay, nil
}

func (r *RobotsChecker) robotsFor(ctx context.Context, target *url.URL) (*robotstxt.RobotsData, error) {
	host := target.Host

	r.mu.RLock()
	data, ok := r.hosts[host]
	r.mu.RUnlock()
	if ok {
		return data, nil
	}

	robotsURL := fmt.Sprintf("%s://%s/robots.txt", target.Scheme, host)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots.txt: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	// FromResponse maps 4xx to allow-all and 5xx to disallow-all
	data, err = robotstxt.FromResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}

	r.mu.Lock()
	r.hosts[host] = data
	r.mu.Unlock()
	return data, nil
}

// NormalizeUserAgent reduces a User-Agent header to its product token,
// e.g. "edgarmine/0.1 admin@example.com" becomes "edgarmine"
func NormalizeUserAgent(ua string) string {
	parts := strings.Fields(ua)
	if len(parts) == 0 {
		return ua
	}
	return strings.Split(parts[0], "/")[0]
}
