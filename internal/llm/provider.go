package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// ErrNotConfigured is returned when a provider is requested but its
// credentials are missing. A missing API key is an expected condition,
// not a failure - callers surface it as "AI analysis unavailable".
var ErrNotConfigured = errors.New("llm: provider not configured")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// GenerateBrief generates a consulting brief for an advisory
	GenerateBrief(ctx context.Context, req BriefRequest) (*BriefResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// BriefRequest contains the input for brief generation
type BriefRequest struct {
	// Problem is the verbatim problem statement from the client
	Problem string

	// Domain is the classifier's label for the problem
	Domain model.DomainLabel

	// Recommendation is the rule-based diagnosis, injected into the
	// prompt as context for the deep dive
	Recommendation model.RecommendationBlock

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// BriefResponse contains the LLM's brief output
type BriefResponse struct {
	// BriefMD is the generated markdown brief
	BriefMD string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// Temperature for response generation
	Temperature float64

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:    "", // Disabled by default
		Model:       "",
		Timeout:     60,
		Temperature: 0.2,
		MaxTokens:   1400,
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig, httpCfg model.HTTPConfig) Config {
	return Config{
		Provider:    modelConfig.Provider,
		Model:       modelConfig.Model,
		APIKey:      modelConfig.APIKey,
		BaseURL:     modelConfig.BaseURL,
		Timeout:     modelConfig.Timeout,
		Temperature: modelConfig.Temperature,
		MaxTokens:   modelConfig.MaxTokens,
		HTTPProxy:   httpCfg.HTTPProxy,
		HTTPSProxy:  httpCfg.HTTPSProxy,
		NoProxy:     httpCfg.NoProxy,
	}
}

// systemPrompt defines the consulting persona for brief generation
const systemPrompt = "You are a senior finance transformation consultant (Big-4 / Gartner style). " +
	"Write concise but high-quality consulting briefs for CFOs and Finance leaders. " +
	"Your tone is practical, structured and non-fluffy. " +
	"Always organize output under clearly numbered headings."

// BuildBriefPrompt constructs the default prompt for consulting-brief
// generation: the verbatim problem, the rule-based diagnosis, and the
// fixed 7-section brief structure
func BuildBriefPrompt(req BriefRequest) string {
	return fmt.Sprintf(`You are helping a CFO diagnose and solve a **%s** challenge.

### Original problem (verbatim from client)
"""%s"""

### Rule-based summary from an internal diagnostic engine
%s

### Task
Write a 1-page consulting brief in markdown with the following structure and headings:

# Consulting Brief: Short, impactful title (max 1 line)

1. Context & Problem Restatement
   - Restate the situation in plain language (2-3 bullet points).
   - Focus on why this is painful for Finance and the business.

2. Likely Root Causes
   - 4-6 bullets grouped around Process, Technology, Data, Organization, Governance.
   - Make them specific and realistic for a global finance organization.

3. Quick Wins (0-3 months)
   - 4-6 very concrete, execution-ready actions.
   - Each bullet should start with a strong verb (e.g., "Standardize...", "Deploy...", "Launch...").

4. Roadmap 3-6 months
   - 3-5 bullets describing medium-term initiatives (process, tech, operating model).

5. Roadmap 6-12 months
   - 3-5 bullets for more advanced / structural changes.

6. Risks & Dependencies
   - 4-6 bullets on execution risks, data/tech dependencies, change management.

7. Success Metrics / KPIs
   - 6-8 metrics a CFO would track (cycle time, close quality, automation %%, IC breaks, etc.).

Make it specific to the problem and domain, not generic.
Avoid repeating the headings inside the bullets (no **Context:** etc inside bullets).
Do NOT include any extra sections outside 1-7.`,
		req.Domain,
		strings.TrimSpace(req.Problem),
		strings.TrimSpace(req.Recommendation.Render()),
	)
}

// BuildAnswerPrompt constructs the prompt for research-augmented Q&A.
// The LLM may only cite URLs from the fetched findings - this keeps
// fabricated references out of the answer.
func BuildAnswerPrompt(question string, findings []model.Finding) string {
	var sb strings.Builder

	sb.WriteString("You are answering a finance transformation question using ONLY the web research below.\n\n")
	sb.WriteString("CRITICAL RULES:\n")
	sb.WriteString("1. You MUST ONLY cite URLs from the listed sources.\n")
	sb.WriteString("2. DO NOT infer, speculate, or cite external sources beyond this list.\n")
	sb.WriteString("3. If the research does not cover the question, state that explicitly.\n\n")

	sb.WriteString("### Question\n")
	sb.WriteString(strings.TrimSpace(question))
	sb.WriteString("\n\n### Research\n")

	for i, f := range findings {
		if f.Error != "" {
			continue
		}
		fmt.Fprintf(&sb, "\nSource %d: %s", i+1, f.URL)
		if f.Title != "" {
			fmt.Fprintf(&sb, " (%s)", f.Title)
		}
		sb.WriteString("\n")
		for _, snippet := range f.Snippets {
			sb.WriteString("- " + snippet + "\n")
		}
	}

	sb.WriteString("\nAnswer in markdown with a short summary followed by cited findings.")

	return sb.String()
}
