// Package report renders advisories as a branded one-page document.
// A single renderer parameterized by Theme covers every branding
// variant; pixel-level layout belongs to downstream document tooling.
package report

import (
	"fmt"
	"strings"

	"github.com/bivenue/copilot/internal/model"
)

// OnePager renders advisories with a fixed three-column structure:
// the classified priority, the rule-based diagnosis, and the outcome
// (AI brief when present)
type OnePager struct {
	theme Theme
}

// NewOnePager creates a renderer with the given theme
func NewOnePager(theme Theme) *OnePager {
	return &OnePager{theme: theme}
}

// Render produces the one-pager as markdown
func (o *OnePager) Render(advisory *model.Advisory) string {
	var sb strings.Builder

	// Header band
	fmt.Fprintf(&sb, "# %s\n\n", o.theme.Title)
	fmt.Fprintf(&sb, "## %s Consulting Brief\n\n", advisory.Domain)
	if o.theme.Tagline != "" {
		fmt.Fprintf(&sb, "*%s*\n\n", o.theme.Tagline)
	}

	// Company profile card
	if advisory.Profile != nil && advisory.Profile.Name != "" {
		sb.WriteString("### Company Profile\n\n")
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

	sb.WriteString("---\n\n")

	// Column 1: classified priority
	fmt.Fprintf(&sb, "### %s\n\n", o.theme.Columns[0])
	fmt.Fprintf(&sb, "%s\n\n", advisory.Domain)
	if advisory.Problem != "" {
		fmt.Fprintf(&sb, "> %s\n\n", strings.TrimSpace(advisory.Problem))
	}

	// Column 2: rule-based diagnosis
	fmt.Fprintf(&sb, "### %s\n\n", o.theme.Columns[1])
	sb.WriteString(advisory.Recommendation.Render())
	sb.WriteString("\n")

	// Column 3: outcome (AI brief)
	fmt.Fprintf(&sb, "### %s\n\n", o.theme.Columns[2])
	if advisory.LLM != nil && advisory.LLM.Enabled {
		sb.WriteString(stripLeadingHeading(advisory.LLM.BriefMD))
		sb.WriteString("\n")
	} else {
		sb.WriteString("AI deep-dive analysis was not generated for this advisory.\n")
		if advisory.LLM != nil {
			for _, w := range advisory.LLM.Warnings {
				sb.WriteString("- " + w + "\n")
			}
		}
	}

	// Footer note
	if o.theme.Footer != "" {
		sb.WriteString("\n---\n\n")
		fmt.Fprintf(&sb, "*%s*\n", o.theme.Footer)
	}

	return sb.String()
}

// stripLeadingHeading drops the brief's own title line so the page
// heading is not repeated inside the outcome column
func stripLeadingHeading(briefMD string) string {
	cleaned := strings.TrimSpace(briefMD)
	if strings.HasPrefix(cleaned, "#") {
		lines := strings.SplitN(cleaned, "\n", 2)
		if len(lines) == 2 {
			return strings.TrimSpace(lines[1]) + "\n"
		}
		return ""
	}
	return cleaned + "\n"
}
