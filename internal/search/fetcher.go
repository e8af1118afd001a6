package search

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"

	"github.com/bivenue/copilot/internal/cache"
	"github.com/bivenue/copilot/internal/model"
	"github.com/bivenue/copilot/internal/util"
	"github.com/bivenue/copilot/internal/worker"
)

// PageFetcher retrieves research pages politely: robots.txt checked,
// per-domain rate limited, responses cached and size capped
type PageFetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	robots     *util.RobotsChecker
	limiter    *worker.Limiter
	pageCache  cache.Cache // nil = caching disabled
}

// NewPageFetcher creates a page fetcher from configuration
func NewPageFetcher(httpCfg model.HTTPConfig, searchCfg model.SearchConfig, pageCache cache.Cache) *PageFetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(httpCfg.HTTPProxy, httpCfg.HTTPSProxy, httpCfg.NoProxy),
	}
	if httpCfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &PageFetcher{
		httpClient: &http.Client{
			Timeout:   httpCfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: httpCfg.UserAgent,
		maxBytes:  httpCfg.MaxBodyBytes,
		robots:    util.NewRobotsChecker(httpCfg.UserAgent, httpCfg.Timeout),
		limiter:   worker.NewLimiter(searchCfg.RateLimit, searchCfg.RateBurst),
		pageCache: pageCache,
	}
}

// Fetch retrieves the HTML of a research page. Disallowed and failed
// fetches return an error; the researcher records them as per-finding
// failures rather than aborting the run.
func (f *PageFetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	// Serve from cache first - cached pages skip robots and rate limits
	key := cache.CacheKey(rawURL)
	if f.pageCache != nil {
		if data, found := f.pageCache.Get(key); found {
			return string(data), nil
		}
	}

	allowed, crawlDelay, err := f.robots.CanFetch(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("robots check: %w", err)
	}
	if !allowed {
		return "", fmt.Errorf("disallowed by robots.txt: %s", rawURL)
	}

	if err := f.limiter.WaitWithDelay(ctx, rawURL, crawlDelay); err != nil {
		return "", fmt.Errorf("rate limit: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if f.pageCache != nil {
		// Cache write failures are not fetch failures
		_ = f.pageCache.Set(key, body, 0)
	}

	return string(body), nil
}
