package report

// Theme parameterizes the one-pager layout. One renderer, many
// brandings - instead of a parallel copy per cosmetic variant.
type Theme struct {
	// Title is the branded header line
	Title string

	// Tagline renders under the title
	Tagline string

	// Columns are the section headings in render order
	Columns [3]string

	// Footer renders at the bottom of the page; empty disables it
	Footer string
}

// DefaultTheme returns the standard Bivenue branding
func DefaultTheme() Theme {
	return Theme{
		Title:   "Bivenue Copilot",
		Tagline: "AI-assisted Finance Transformation Advisor",
		Columns: [3]string{
			"Mission-critical priority",
			"How Bivenue helped",
			"Outcome",
		},
		Footer: "This brief was generated by Bivenue Copilot - AI-assisted Finance Transformation Advisor.",
	}
}
