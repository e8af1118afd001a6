package search

import (
	"strings"

	"golang.org/x/net/html"
)

const (
	minSnippetLen = 40
	maxSnippetLen = 400
)

// ExtractSnippets reduces an HTML page to its title and the sentences
// worth feeding to the LLM as research context. Extraction is best
// effort: malformed HTML yields whatever text is recoverable.
func ExtractSnippets(htmlContent string, maxSnippets int) (title string, snippets []string, err error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", nil, err
	}

	title = extractTitle(doc)
	text := extractVisibleText(doc)

	// Dedupe before capping so repeated sentences never crowd out
	// unique ones
	snippets = dedupeSnippets(splitSentences(text))
	if maxSnippets > 0 && len(snippets) > maxSnippets {
		snippets = snippets[:maxSnippets]
	}

	return title, snippets, nil
}

// extractTitle returns the content of the first <title> element
func extractTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "title" {
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			return strings.TrimSpace(n.FirstChild.Data)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if title := extractTitle(c); title != "" {
			return title
		}
	}
	return ""
}

// extractVisibleText extracts text nodes from HTML, skipping scripts/styles
func extractVisibleText(n *html.Node) string {
	var buf strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			// Skip script, style, noscript tags
			switch n.Data {
			case "script", "style", "noscript", "iframe":
				return
			}
		}

		if n.Type == html.TextNode {
			text := strings.TrimSpace(n.Data)
			if text != "" {
				buf.WriteString(text)
				buf.WriteString(" ")
			}
		}

		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	return buf.String()
}

// splitSentences splits text into sentences (simple heuristic)
func splitSentences(text string) []string {
	text = strings.ReplaceAll(text, "\n", " ")

	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Look ahead to avoid splitting on abbreviations
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\t') {
				sentence := strings.TrimSpace(current.String())
				if len(sentence) >= minSnippetLen && len(sentence) <= maxSnippetLen {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}

	if current.Len() > 0 {
		sentence := strings.TrimSpace(current.String())
		if len(sentence) >= minSnippetLen && len(sentence) <= maxSnippetLen {
			sentences = append(sentences, sentence)
		}
	}

	return sentences
}

// dedupeSnippets removes duplicate snippets, preserving order
func dedupeSnippets(snippets []string) []string {
	seen := make(map[string]bool)
	var unique []string

	for _, s := range snippets {
		key := strings.ToLower(strings.TrimSpace(s))
		if !seen[key] {
			seen[key] = true
			unique = append(unique, s)
		}
	}

	return unique
}
