package model

import "time"

// Advisory is the complete output of one advise run: the problem
// statement, the rule-based diagnosis, and any optional enrichments
// (LLM brief, web research)
type Advisory struct {
	ID        string      `json:"id"`         // UUID assigned per run
	Problem   string      `json:"problem"`    // Verbatim problem statement
	Domain    DomainLabel `json:"domain"`     // Classifier output
	CreatedAt time.Time   `json:"created_at"` // When the advisory was produced

	Recommendation RecommendationBlock `json:"recommendation"` // Rule-based diagnosis

	Profile *CompanyProfile `json:"profile,omitempty"` // Optional client profile

	Research []Finding `json:"research,omitempty"` // Web research findings (ask mode)

	LLM *LLMBrief `json:"llm,omitempty"` // Optional LLM brief (separate, never affects classification)
}

// CompanyProfile carries optional client metadata rendered into the
// one-pager header card
type CompanyProfile struct {
	Name      string `json:"name"`
	Industry  string `json:"industry,omitempty"`
	Revenue   string `json:"revenue,omitempty"`
	Employees string `json:"employees,omitempty"`
}

// Finding is one researched source: a fetched page reduced to the
// snippets relevant for answering the question
type Finding struct {
	URL      string   `json:"url"`
	Title    string   `json:"title,omitempty"`
	Snippets []string `json:"snippets,omitempty"`
	Error    string   `json:"error,omitempty"` // Fetch/extract failure, reported but non-fatal
}

// LLMBrief contains the optional LLM-generated consulting brief.
// CRITICAL: this never affects classification or the rule-based
// recommendation and is clearly separated in all outputs.
type LLMBrief struct {
	Enabled  bool     `json:"enabled"`
	Provider string   `json:"provider,omitempty"` // openai, anthropic, ollama
	Model    string   `json:"model,omitempty"`    // Model name
	BriefMD  string   `json:"brief_md,omitempty"` // Markdown consulting brief
	Warnings []string `json:"warnings,omitempty"` // e.g. "AI analysis unavailable"
}
