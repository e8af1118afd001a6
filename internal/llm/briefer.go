package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// Briefer wraps an optional Provider and produces model.LLMBrief
// values. A disabled or unavailable provider never fails the advisory
// pipeline - the outcome is a nil brief or a brief carrying warnings.
type Briefer struct {
	provider Provider
	config   Config
}

// NewBriefer creates a briefer from configuration. An empty provider
// name means the LLM layer is disabled.
func NewBriefer(config Config) (*Briefer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) {
			// Missing credentials: expected condition, run with a
			// disabled briefer and report "AI analysis unavailable"
			return &Briefer{provider: nil, config: config}, nil
		}
		return nil, err
	}

	return &Briefer{
		provider: provider,
		config:   config,
	}, nil
}

// IsEnabled reports whether a provider is configured
func (b *Briefer) IsEnabled() bool {
	return b.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (b *Briefer) ProviderName() string {
	if b.provider == nil {
		return ""
	}
	return b.provider.Name()
}

// GenerateBrief produces the LLM consulting brief for an advisory.
// Returns nil when the briefer is disabled. Provider unavailability
// and generation failures are reported inside the brief's Warnings,
// never as pipeline errors.
func (b *Briefer) GenerateBrief(ctx context.Context, advisory model.Advisory) (*model.LLMBrief, error) {
	if b.provider == nil {
		if b.config.Provider != "" {
			// A provider was requested but could not be constructed
			return &model.LLMBrief{
				Enabled:  false,
				Provider: b.config.Provider,
				Warnings: []string{"AI analysis unavailable: provider is not configured (missing API key?)"},
			}, nil
		}
		return nil, nil
	}

	if !b.provider.IsAvailable(ctx) {
		return &model.LLMBrief{
			Enabled:  false,
			Provider: b.provider.Name(),
			Warnings: []string{fmt.Sprintf("AI analysis unavailable: provider %s is not available", b.provider.Name())},
		}, nil
	}

	resp, err := b.provider.GenerateBrief(ctx, BriefRequest{
		Problem:        advisory.Problem,
		Domain:         advisory.Domain,
		Recommendation: advisory.Recommendation,
	})
	if err != nil {
		return &model.LLMBrief{
			Enabled:  false,
			Provider: b.provider.Name(),
			Warnings: []string{fmt.Sprintf("AI analysis unavailable: %v", err)},
		}, nil
	}

	return &model.LLMBrief{
		Enabled:  true,
		Provider: b.provider.Name(),
		Model:    resp.Model,
		BriefMD:  resp.BriefMD,
	}, nil
}

// Answer produces a research-grounded answer for ask mode. Unlike
// GenerateBrief, a failure here is an error: ask mode has no
// rule-based fallback to show instead.
func (b *Briefer) Answer(ctx context.Context, question string, findings []model.Finding) (*model.LLMBrief, error) {
	if b.provider == nil {
		return nil, ErrNotConfigured
	}

	resp, err := b.provider.GenerateBrief(ctx, BriefRequest{
		Prompt: BuildAnswerPrompt(question, findings),
	})
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &model.LLMBrief{
		Enabled:  true,
		Provider: b.provider.Name(),
		Model:    resp.Model,
		BriefMD:  resp.BriefMD,
	}, nil
}

// RenderSeparateMarkdown renders a brief as a standalone markdown
// document, clearly marked as AI-generated
func RenderSeparateMarkdown(brief *model.LLMBrief) string {
	var sb strings.Builder

	sb.WriteString("# AI Consulting Brief\n\n")
	sb.WriteString("> Generated by an LLM. The rule-based diagnosis is produced independently and is not affected by this content.\n\n")

	if brief.Provider != "" {
		fmt.Fprintf(&sb, "Provider: %s", brief.Provider)
		if brief.Model != "" {
			fmt.Fprintf(&sb, " (%s)", brief.Model)
		}
		sb.WriteString("\n\n")
	}

	if len(brief.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range brief.Warnings {
			sb.WriteString("- " + w + "\n")
		}
		sb.WriteString("\n")
	}

	if brief.BriefMD != "" {
		sb.WriteString(brief.BriefMD)
		sb.WriteString("\n")
	}

	return sb.String()
}
