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
	outJSON     string
	outMD       string
	outOnePager string
	timeout     time.Duration
	noFooter    bool
	noHistory   bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
	companyName string
	industry    string
	revenue     string
	employees   string
)

// adviseCmd represents the advise command
var adviseCmd = &cobra.Command{
	Use:   "advise <problem>",
	Short: "Diagnose a finance transformation problem",
	Long: `Advise analyzes a finance transformation problem statement:
- Classify it into a finance process domain
- Produce a rule-based diagnosis (root causes and recommended actions)
- Optionally generate an LLM consulting brief (clearly marked as AI)
- Optionally render a branded one-page consulting brief

Example:
  copilot advise "Our intercompany balances never tie out at month-end"
  copilot advise "invoice matching is manual" --json advisory.json --md advisory.md
  copilot advise "close takes 12 days" --llm --llm-provider openai
  copilot advise "DSO keeps climbing" --onepager brief.md --company "Acme Group"`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvise,
}

func init() {
	rootCmd.AddCommand(adviseCmd)

	// Output flags
	adviseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (optional)")
	adviseCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")
	adviseCmd.Flags().StringVar(&outOnePager, "onepager", "", "output one-page consulting brief path (optional)")
	adviseCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown outputs")

	// Behavior flags
	adviseCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall advise timeout")
	adviseCmd.Flags().BoolVar(&noHistory, "no-history", false, "do not save the advisory to local history")

	// LLM flags
	adviseCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable LLM consulting brief generation")
	adviseCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	adviseCmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name (provider default if empty)")

	// Company profile flags
	adviseCmd.Flags().StringVar(&companyName, "company", "", "client company name for the one-pager header")
	adviseCmd.Flags().StringVar(&industry, "industry", "", "client industry")
	adviseCmd.Flags().StringVar(&revenue, "revenue", "", "client revenue, e.g. \"$2B\"")
	adviseCmd.Flags().StringVar(&employees, "employees", "", "client headcount, e.g. \"5000\"")
}

func runAdvise(cmd *cobra.Command, args []string) error {
	problem := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Advising on: %s\n", problem)
		fmt.Fprintf(os.Stderr, "Timeout: %v\n", timeout)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	if noHistory {
		cfg.History.Enabled = false
	}

	// Configure LLM if enabled
	if llmEnabled {
		cfg.LLM.Provider = llmProvider
		cfg.LLM.Model = llmModel

		if err := loadLLMCredentials(cfg); err != nil {
			return err
		}
	}

	// Build the optional company profile
	var profile *model.CompanyProfile
	if companyName != "" {
		profile = &model.CompanyProfile{
			Name:      companyName,
			Industry:  industry,
			Revenue:   revenue,
			Employees: employees,
		}
	}

	// Create pipeline
	p := pipeline.NewPipeline(cfg)
	defer func() { _ = p.Close() }()

	advisory, err := p.Advise(ctx, problem, profile)
	if err != nil {
		return fmt.Errorf("advise failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Classified domain: %s\n", advisory.Domain)
		fmt.Fprintf(os.Stderr, "✓ Generated %d recommended actions\n", len(advisory.Recommendation.Actions))
		if advisory.LLM != nil && advisory.LLM.Enabled {
			fmt.Fprintf(os.Stderr, "✓ Generated LLM brief using %s/%s\n", advisory.LLM.Provider, advisory.LLM.Model)
		}
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	if err := p.RenderAdvisory(advisory, outJSON, outMD, outOnePager, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	return nil
}

// loadLLMCredentials pulls API credentials from the environment for
// the configured provider
func loadLLMCredentials(cfg *model.Config) error {
	switch cfg.LLM.Provider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}
	return nil
}
