package search

import (
	"strings"
	"testing"
)

func TestExtractSnippets_Basic(t *testing.T) {
	html := `
	<html>
	<head><title>Finance Close Automation</title></head>
	<body>
		<p>Automating the month-end close reduces cycle time by several days for most teams.</p>
		<p>Reconciliation tooling is the most common first step in a record-to-report program.</p>
		<p>Short.</p>
	</body>
	</html>
	`

	title, snippets, err := ExtractSnippets(html, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if title != "Finance Close Automation" {
		t.Errorf("Expected title extracted, got %q", title)
	}
	if len(snippets) != 2 {
		t.Fatalf("Expected 2 snippets, got %d: %v", len(snippets), snippets)
	}
	if !strings.Contains(snippets[0], "month-end close") {
		t.Errorf("Unexpected first snippet: %s", snippets[0])
	}
}

func TestExtractSnippets_SkipsScriptsAndStyles(t *testing.T) {
	html := `
	<html>
	<head>
		<script>var hidden = "This script sentence is long enough to pass the length filter easily.";</script>
		<style>/* style content that should never appear in extracted snippets at all */</style>
	</head>
	<body>
		<p>Visible body content about procurement approval workflows and vendor governance.</p>
	</body>
	</html>
	`

	_, snippets, err := ExtractSnippets(html, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for _, s := range snippets {
		if strings.Contains(s, "hidden") || strings.Contains(s, "style content") {
			t.Errorf("Extracted invisible content: %s", s)
		}
	}
}

func TestExtractSnippets_MaxSnippets(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 20; i++ {
		sb.WriteString("<p>This paragraph number ")
		sb.WriteString(strings.Repeat("x", i+1))
		sb.WriteString(" is long enough to be kept as a snippet by the filter.</p>")
	}
	sb.WriteString("</body></html>")

	_, snippets, err := ExtractSnippets(sb.String(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snippets) > 3 {
		t.Errorf("Expected at most 3 snippets, got %d", len(snippets))
	}
}

func TestExtractSnippets_DuplicatesDoNotCrowdOutUniques(t *testing.T) {
	dup := "<p>This exact sentence repeats over and over across the whole page body.</p>"

	var sb strings.Builder
	sb.WriteString("<html><body>")
	for i := 0; i < 5; i++ {
		sb.WriteString(dup)
	}
	sb.WriteString("<p>First unique sentence about intercompany reconciliation governance and tooling.</p>")
	sb.WriteString("<p>Second unique sentence about consolidation adjustments during the group close.</p>")
	sb.WriteString("</body></html>")

	_, snippets, err := ExtractSnippets(sb.String(), 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(snippets) != 3 {
		t.Fatalf("Expected 3 snippets, got %d: %v", len(snippets), snippets)
	}

	found := 0
	for _, s := range snippets {
		if strings.Contains(s, "unique sentence") {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Expected both unique sentences to survive the cap, got %d", found)
	}
}

func TestExtractSnippets_EmptyPage(t *testing.T) {
	_, snippets, err := ExtractSnippets("<html><body></body></html>", 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(snippets) != 0 {
		t.Errorf("Expected no snippets from empty page, got %d", len(snippets))
	}
}

func TestSplitSentences_LengthFilter(t *testing.T) {
	short := "Too short."
	good := "This sentence comfortably exceeds the minimum snippet length requirement."
	long := strings.Repeat("Very long sentence segment without a terminator ", 20) + "."

	sentences := splitSentences(short + " " + good + " " + long)

	for _, s := range sentences {
		if len(s) < minSnippetLen || len(s) > maxSnippetLen {
			t.Errorf("Sentence outside length bounds (%d chars): %.50s", len(s), s)
		}
	}

	found := false
	for _, s := range sentences {
		if s == good {
			found = true
		}
	}
	if !found {
		t.Error("Expected the valid sentence to be kept")
	}
}

func TestDedupeSnippets_CaseInsensitive(t *testing.T) {
	snippets := []string{
		"Reconciliation tooling reduces close effort.",
		"RECONCILIATION TOOLING REDUCES CLOSE EFFORT.",
		"A different snippet entirely.",
	}

	unique := dedupeSnippets(snippets)
	if len(unique) != 2 {
		t.Errorf("Expected 2 unique snippets, got %d", len(unique))
	}
}
