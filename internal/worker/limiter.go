package worker

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter enforces a token-bucket rate per host
type Limiter struct {
	mu       sync.Mutex
	hosts    map[string]*rate.Limiter
	rps      rate.Limit
	burst    int
	sleepFor func(ctx context.Context, d time.Duration) error
}

// NewLimiter creates a limiter allowing requestsPerSecond per host. A
// non-positive rate disables the token bucket.
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 1
	}
	rps := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		rps = rate.Inf
	}
	return &Limiter{
		hosts:    make(map[string]*rate.Limiter),
		rps:      rps,
		burst:    burst,
		sleepFor: sleepCtx,
	}
}

// Wait blocks until a request to rawURL's host is allowed
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.forHost(host).Wait(ctx)
}

// Allow reports whether a request may go out now, consuming a token if so
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostOf(rawURL)
	if err != nil {
		return false
	}
	return l.forHost(host).Allow()
}

// SetHostRate overrides the rate for one host
func (l *Limiter) SetHostRate(host string, requestsPerSecond float64, burst int) {
	if burst <= 0 {
		burst = l.burst
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hosts[host] = rate.NewLimiter(rate.Limit(requestsPerSecond), burst)
}

// WaitWithDelay waits for the host limit, then for an additional fixed delay
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, delay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}
	if delay > 0 {
		return l.sleepFor(ctx, delay)
	}
	return nil
}

func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	lim, ok := l.hosts[host]
	if !ok {
		lim = rate.NewLimiter(l.rps, l.burst)
		l.hosts[host] = lim
	}
	return lim
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse URL: %w", err)
	}
	return parsed.Host, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Pacer spaces consecutive requests of one step by a fixed delay on top of
// the shared per-host limit. The first request is not delayed.
type Pacer struct {
	limiter *Limiter
	delay   time.Duration

	mu      sync.Mutex
	started bool
}

// NewPacer creates a pacer over limiter
func NewPacer(limiter *Limiter, delay time.Duration) *Pacer {
	return &Pacer{limiter: limiter, delay: delay}
}

// Wait blocks until the next request to rawURL may go out. extra raises
// the delay for this request, e.g. to honour a robots.txt crawl delay.
func (p *Pacer) Wait(ctx context.Context, rawURL string, extra time.Duration) error {
	p.mu.Lock()
	delay := p.delay
	if extra > delay {
		delay = extra
	}
	if !p.started {
		delay = 0
		p.started = true
	}
	p.mu.Unlock()

	return p.limiter.WaitWithDelay(ctx, rawURL, delay)
}
