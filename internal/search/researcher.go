package search

import (
	"context"
	"sync"

	"github.com/bivenue/copilot/internal/model"
)

const maxSnippetsPerPage = 8

// Researcher turns a question into research findings: search for
// candidate pages, fetch them concurrently, and reduce each page to
// snippets. Per-page failures are recorded on the finding, never
// propagated - a partial research set is still useful.
type Researcher struct {
	searcher   Searcher
	fetcher    *PageFetcher
	maxResults int
	maxWorkers int
}

// NewResearcher creates a researcher
func NewResearcher(searcher Searcher, fetcher *PageFetcher, maxResults, maxWorkers int) *Researcher {
	if maxResults <= 0 {
		maxResults = 5
	}
	if maxWorkers <= 0 {
		maxWorkers = 5
	}

	return &Researcher{
		searcher:   searcher,
		fetcher:    fetcher,
		maxResults: maxResults,
		maxWorkers: maxWorkers,
	}
}

// Research runs the full search-fetch-extract sequence for a question
func (r *Researcher) Research(ctx context.Context, question string) ([]model.Finding, error) {
	results, err := r.searcher.Search(ctx, question, r.maxResults)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []model.Finding{}, nil
	}

	findings := make([]model.Finding, len(results))
	var wg sync.WaitGroup

	// Semaphore to limit concurrent fetches
	semaphore := make(chan struct{}, r.maxWorkers)

	for i, res := range results {
		wg.Add(1)
		go func(idx int, res Result) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				findings[idx] = model.Finding{
					URL:   res.URL,
					Title: res.Title,
					Error: "context cancelled",
				}
				return
			case semaphore <- struct{}{}:
			}
			defer func() { <-semaphore }()

			findings[idx] = r.fetchOne(ctx, res)
		}(i, res)
	}

	wg.Wait()

	return findings, nil
}

// fetchOne fetches and reduces a single result page
func (r *Researcher) fetchOne(ctx context.Context, res Result) model.Finding {
	finding := model.Finding{
		URL:   res.URL,
		Title: res.Title,
	}

	htmlContent, err := r.fetcher.Fetch(ctx, res.URL)
	if err != nil {
		finding.Error = err.Error()
		return finding
	}

	title, snippets, err := ExtractSnippets(htmlContent, maxSnippetsPerPage)
	if err != nil {
		finding.Error = "extract: " + err.Error()
		return finding
	}

	if finding.Title == "" {
		finding.Title = title
	}
	finding.Snippets = snippets

	return finding
}
