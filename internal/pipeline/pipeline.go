// Package pipeline wires the classifier, generator, researcher, LLM
// briefer, and history store into the two user-facing operations:
// advise and ask.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/bivenue/copilot/internal/cache"
	"github.com/bivenue/copilot/internal/engine"
	"github.com/bivenue/copilot/internal/history"
	"github.com/bivenue/copilot/internal/llm"
	"github.com/bivenue/copilot/internal/model"
	"github.com/bivenue/copilot/internal/report"
	"github.com/bivenue/copilot/internal/search"
)

// Pipeline orchestrates the complete advisory process
type Pipeline struct {
	classifier *engine.Classifier
	generator  *engine.Generator
	briefer    *llm.Briefer
	researcher *search.Researcher // Optional (nil if no search endpoint)
	store      *history.Store     // Optional (nil if history disabled)
	renderer   *Renderer
	onePager   *report.OnePager
	config     *model.Config
}

// NewPipeline creates a new pipeline with the given configuration.
// Optional collaborators that fail to initialize (LLM provider,
// history store) degrade to disabled with a warning instead of
// failing construction.
func NewPipeline(cfg *model.Config) *Pipeline {
	briefer, err := llm.NewBriefer(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to initialize LLM provider: %v\n", err)
		briefer, _ = llm.NewBriefer(llm.Config{})
	}

	// Research is only wired when a search endpoint is configured
	var researcher *search.Researcher
	if cfg.Search.Endpoint != "" {
		searcher, err := search.NewHTTPSearcher(
			cfg.Search.Endpoint, cfg.Search.APIKey,
			cfg.HTTP.Timeout, cfg.HTTP.HTTPProxy, cfg.HTTP.HTTPSProxy, cfg.HTTP.NoProxy,
		)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to initialize search: %v\n", err)
		} else {
			fetcher := search.NewPageFetcher(cfg.HTTP, cfg.Search, cache.FromConfig(cfg.Cache))
			researcher = search.NewResearcher(searcher, fetcher, cfg.Search.MaxResults, cfg.Concurrency.FetchWorkers)
		}
	}

	var store *history.Store
	if cfg.History.Enabled {
		s, err := history.New(cfg.History.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to open history store: %v\n", err)
		} else {
			store = s
		}
	}

	theme := report.DefaultTheme()
	if cfg.Output.BrandTitle != "" {
		theme.Title = cfg.Output.BrandTitle
	}
	if !cfg.Output.IncludeFooter {
		theme.Footer = ""
	}

	return &Pipeline{
		classifier: engine.NewClassifier(),
		generator:  engine.NewGenerator(),
		briefer:    briefer,
		researcher: researcher,
		store:      store,
		renderer:   NewRenderer(cfg.Output.IncludeFooter),
		onePager:   report.NewOnePager(theme),
		config:     cfg,
	}
}

// Close releases resources held by optional collaborators
func (p *Pipeline) Close() error {
	if p.store != nil {
		return p.store.Close()
	}
	return nil
}

// Advise produces a complete advisory for a problem statement
func (p *Pipeline) Advise(ctx context.Context, problem string, profile *model.CompanyProfile) (*model.Advisory, error) {
	if strings.TrimSpace(problem) == "" {
		return nil, fmt.Errorf("problem statement is empty")
	}

	// 1. Classify the problem into a finance domain
	domain := p.classifier.Classify(problem)

	// 2. Generate the rule-based recommendation
	recommendation := p.generator.Recommend(domain, problem)

	// 3. Build the advisory
	advisory := &model.Advisory{
		ID:             uuid.New().String(),
		Problem:        problem,
		Domain:         domain,
		CreatedAt:      time.Now().UTC(),
		Recommendation: recommendation,
		Profile:        profile,
	}

	// 4. Generate LLM brief if enabled (AFTER the rule-based diagnosis,
	// never affects it)
	brief, err := p.briefer.GenerateBrief(ctx, *advisory)
	if err != nil {
		// Don't fail the entire advisory, just warn
		fmt.Fprintf(os.Stderr, "Warning: LLM brief generation failed: %v\n", err)
	} else if brief != nil {
		advisory.LLM = brief
	}

	// 5. Persist to history if enabled
	if p.store != nil {
		if err := p.store.Save(advisory); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to save advisory to history: %v\n", err)
		}
	}

	return advisory, nil
}

// Ask answers a free-form question grounded in web research. Unlike
// Advise there is no rule-based fallback, so a missing search endpoint
// or LLM provider is an error.
func (p *Pipeline) Ask(ctx context.Context, question string) (*model.LLMBrief, []model.Finding, error) {
	if strings.TrimSpace(question) == "" {
		return nil, nil, fmt.Errorf("question is empty")
	}
	if p.researcher == nil {
		return nil, nil, search.ErrNotConfigured
	}

	findings, err := p.researcher.Research(ctx, question)
	if err != nil {
		return nil, nil, fmt.Errorf("research: %w", err)
	}

	answer, err := p.briefer.Answer(ctx, question, findings)
	if err != nil {
		return nil, findings, err
	}

	return answer, findings, nil
}

// RenderAdvisory renders the advisory to the specified outputs
func (p *Pipeline) RenderAdvisory(advisory *model.Advisory, jsonPath, mdPath, onePagerPath string, verbose bool) error {
	// Render JSON
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(advisory, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	// Render Markdown
	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(advisory, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	// Render branded one-pager
	if onePagerPath != "" {
		if err := p.renderer.WriteFile(p.onePager.Render(advisory), onePagerPath); err != nil {
			return fmt.Errorf("render one-pager: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote One-Pager: %s\n", onePagerPath)
		}
	}

	// Render LLM brief to separate file if present
	if advisory.LLM != nil && advisory.LLM.Enabled && mdPath != "" {
		llmMdPath := strings.TrimSuffix(mdPath, ".md") + ".llm.md"
		llmMarkdown := llm.RenderSeparateMarkdown(advisory.LLM)
		if err := p.renderer.WriteFile(llmMarkdown, llmMdPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to write LLM brief: %v\n", err)
		} else if verbose {
			fmt.Printf("✓ Wrote LLM Brief: %s\n", llmMdPath)
		}
	}

	// Print summary to stdout
	p.renderer.RenderSummary(advisory)

	return nil
}
