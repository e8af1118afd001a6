package worker

import (
	"context"
	"net/url"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiter rate-limits research fetches per origin host so concurrent
// workers never hammer a single site
type Limiter struct {
	hosts map[string]*rate.Limiter
	mu    sync.RWMutex
	limit rate.Limit
	burst int
}

// NewLimiter creates a limiter applying requestsPerSecond with the
// given burst to every host independently
func NewLimiter(requestsPerSecond float64, burst int) *Limiter {
	if burst <= 0 {
		burst = 5
	}

	return &Limiter{
		hosts: make(map[string]*rate.Limiter),
		limit: rate.Limit(requestsPerSecond),
		burst: burst,
	}
}

// Wait blocks until the host of rawURL has capacity
func (l *Limiter) Wait(ctx context.Context, rawURL string) error {
	host, err := hostOf(rawURL)
	if err != nil {
		return err
	}
	return l.forHost(host).Wait(ctx)
}

// WaitWithDelay waits for host capacity and then honors an extra
// delay, typically a robots.txt crawl-delay
func (l *Limiter) WaitWithDelay(ctx context.Context, rawURL string, crawlDelay time.Duration) error {
	if err := l.Wait(ctx, rawURL); err != nil {
		return err
	}

	if crawlDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(crawlDelay):
		}
	}

	return nil
}

// Allow reports whether a fetch may proceed right now, without waiting
func (l *Limiter) Allow(rawURL string) bool {
	host, err := hostOf(rawURL)
	if err != nil {
		return false
	}
	return l.forHost(host).Allow()
}

// forHost returns the limiter for a host, creating it on first use
func (l *Limiter) forHost(host string) *rate.Limiter {
	l.mu.RLock()
	limiter, exists := l.hosts[host]
	l.mu.RUnlock()

	if exists {
		return limiter
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := l.hosts[host]; exists {
		return limiter
	}

	limiter = rate.NewLimiter(l.limit, l.burst)
	l.hosts[host] = limiter

	return limiter
}

func hostOf(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return parsed.Host, nil
}
