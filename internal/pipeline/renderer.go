package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// Renderer writes advisories to files and the terminal
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new Renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the advisory as indented JSON to a file
func (r *Renderer) RenderJSON(advisory *model.Advisory, path string) error {
	data, err := json.MarshalIndent(advisory, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal advisory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}

// RenderMarkdown writes the advisory as a markdown document to a file
func (r *Renderer) RenderMarkdown(advisory *model.Advisory, path string) error {
	return r.WriteFile(r.Markdown(advisory), path)
}

// Markdown renders the advisory as a markdown document
func (r *Renderer) Markdown(advisory *model.Advisory) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Advisory: %s\n\n", advisory.Domain)

	if advisory.ID != "" {
		fmt.Fprintf(&sb, "ID: %s\n", advisory.ID)
	}
	if !advisory.CreatedAt.IsZero() {
		fmt.Fprintf(&sb, "Created: %s\n", advisory.CreatedAt.Format("2006-01-02 15:04:05 UTC"))
	}
	sb.WriteString("\n")

	sb.WriteString("## Problem\n\n")
	fmt.Fprintf(&sb, "> %s\n\n", strings.TrimSpace(advisory.Problem))

	if advisory.Profile != nil && advisory.Profile.Name != "" {
		sb.WriteString("## Company\n\n")
		fmt.Fprintf(&sb, "- Name: %s\n", advisory.Profile.Name)
		if advisory.Profile.Industry != "" {
			fmt.Fprintf(&sb, "- Industry: %s\n", advisory.Profile.Industry)
		}
		if advisory.Profile.Revenue != "" {
			fmt.Fprintf(&sb, "- Revenue: %s\n", advisory.Profile.Revenue)
		}
		if advisory.Profile.Employees != "" {
			fmt.Fprintf(&sb, "- Employees: %s\n", advisory.Profile.Employees)
		}
		sb.WriteString("\n")
	}

	sb.WriteString(advisory.Recommendation.Render())
	sb.WriteString("\n")

	if advisory.LLM != nil && len(advisory.LLM.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range advisory.LLM.Warnings {
			sb.WriteString("- " + w + "\n")
		}
		sb.WriteString("\n")
	}

	if r.includeFooter {
		sb.WriteString("---\n\n")
		sb.WriteString("*Generated by Bivenue Copilot*\n")
	}

	return sb.String()
}

// WriteFile writes rendered content to a file
func (r *Renderer) WriteFile(content, path string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// RenderSummary prints a terminal summary of the advisory
func (r *Renderer) RenderSummary(advisory *model.Advisory) {
	fmt.Println()
	fmt.Printf("Domain:  %s\n", advisory.Domain)
	fmt.Printf("Problem: %s\n", truncate(advisory.Problem, 100))
	fmt.Println()

	fmt.Printf("%s:\n", model.SectionRootCauses)
	for _, cause := range advisory.Recommendation.RootCauses {
		fmt.Printf("  - %s\n", cause)
	}
	fmt.Println()

	fmt.Printf("%s:\n", model.SectionActions)
	for i, action := range advisory.Recommendation.Actions {
		fmt.Printf("  %d. %s\n", i+1, action)
	}

	if advisory.LLM != nil {
		fmt.Println()
		if advisory.LLM.Enabled {
			fmt.Printf("AI brief: generated by %s", advisory.LLM.Provider)
			if advisory.LLM.Model != "" {
				fmt.Printf(" (%s)", advisory.LLM.Model)
			}
			fmt.Println()
		} else {
			for _, w := range advisory.LLM.Warnings {
				fmt.Printf("Warning: %s\n", w)
			}
		}
	}
}

func truncate(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
