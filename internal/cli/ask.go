package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bivenue/copilot/internal/model"
	"github.com/bivenue/copilot/internal/pipeline"
)

var (
	askTimeout    time.Duration
	askMaxResults int
	askOutMD      string
)

// askCmd represents the ask command
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a finance question grounded in web research",
	Long: `Ask searches the web for sources relevant to a question, fetches
them (respecting robots.txt and per-domain rate limits), reduces each
page to snippets, and asks the configured LLM to answer strictly from
those snippets with source citations.

Requires a search endpoint (COPILOT_SEARCH_ENDPOINT) and an LLM
provider (--llm-provider plus its API key).

Example:
  copilot ask "how do large groups automate intercompany netting?"
  copilot ask "typical P2P touchless rate benchmarks" --md answer.md`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)

	askCmd.Flags().DurationVar(&askTimeout, "timeout", 3*time.Minute, "overall ask timeout")
	askCmd.Flags().IntVar(&askMaxResults, "max-results", 5, "maximum search results to research")
	askCmd.Flags().StringVar(&askOutMD, "md", "", "output Markdown path (optional)")

	// LLM flags (ask always needs a provider)
	askCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	askCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), askTimeout)
	defer cancel()

	// Build configuration
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Search.Endpoint = os.Getenv("COPILOT_SEARCH_ENDPOINT")
	cfg.Search.APIKey = os.Getenv("COPILOT_SEARCH_API_KEY")
	cfg.Search.MaxResults = askMaxResults

	if cfg.Search.Endpoint == "" {
		return fmt.Errorf("COPILOT_SEARCH_ENDPOINT environment variable not set")
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel
	if err := loadLLMCredentials(cfg); err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Researching: %s\n", question)
		fmt.Fprintf(os.Stderr, "Search endpoint: %s\n", cfg.Search.Endpoint)
		fmt.Fprintln(os.Stderr)
	}

	p := pipeline.NewPipeline(cfg)
	defer func() { _ = p.Close() }()

	answer, findings, err := p.Ask(ctx, question)
	if err != nil {
		return fmt.Errorf("ask failed: %w", err)
	}

	if verbose {
		for _, f := range findings {
			if f.Error != "" {
				fmt.Fprintf(os.Stderr, "✗ %s: %s\n", f.URL, f.Error)
			} else {
				fmt.Fprintf(os.Stderr, "✓ %s (%d snippets)\n", f.URL, len(f.Snippets))
			}
		}
		fmt.Fprintln(os.Stderr)
	}

	// Print the answer to stdout
	fmt.Println(answer.BriefMD)
	fmt.Println()
	fmt.Println("Sources:")
	for _, f := range findings {
		if f.Error == "" {
			fmt.Printf("  - %s\n", f.URL)
		}
	}

	// Optionally write the answer to a file
	if askOutMD != "" {
		renderer := pipeline.NewRenderer(true)
		if err := renderer.WriteFile(answer.BriefMD+"\n", askOutMD); err != nil {
			return fmt.Errorf("write answer: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote answer: %s\n", askOutMD)
		}
	}

	return nil
}
