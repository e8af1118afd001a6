package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bivenue/copilot/internal/util"
)

// ErrNotConfigured is returned when ask mode is used without a search
// endpoint configured
var ErrNotConfigured = errors.New("search: endpoint not configured")

// Result is one search hit returned by the search endpoint
type Result struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// Searcher finds candidate source pages for a question
type Searcher interface {
	// Search returns up to maxResults hits for the query
	Search(ctx context.Context, query string, maxResults int) ([]Result, error)
}

// HTTPSearcher queries a JSON search endpoint. The endpoint's own
// schema is externally owned; this client only depends on a query
// parameter and a results array of {url, title} objects.
type HTTPSearcher struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type searchResponse struct {
	Results []Result `json:"results"`
}

type searchError struct {
	Error string `json:"error"`
}

// NewHTTPSearcher creates a searcher for the given endpoint
func NewHTTPSearcher(endpoint, apiKey string, timeout time.Duration, httpProxy, httpsProxy, noProxy string) (*HTTPSearcher, error) {
	if endpoint == "" {
		return nil, ErrNotConfigured
	}
	if timeout == 0 {
		timeout = 15 * time.Second
	}

	return &HTTPSearcher{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(httpProxy, httpsProxy, noProxy),
			},
		},
	}, nil
}

// Search queries the endpoint and returns the hits
func (s *HTTPSearcher) Search(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = 5
	}

	searchURL := fmt.Sprintf("%s/search?q=%s&limit=%d", s.endpoint, url.QueryEscape(query), maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr searchError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("search error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("search error: status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	if len(parsed.Results) > maxResults {
		parsed.Results = parsed.Results[:maxResults]
	}

	return parsed.Results, nil
}
