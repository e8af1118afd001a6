package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bivenue/copilot/internal/history"
	"github.com/bivenue/copilot/internal/model"
	"github.com/bivenue/copilot/internal/pipeline"
)

var (
	historyLimit  int
	historyDomain string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse past advisories",
	Long: `Browse the local advisory history.

Every advise run is saved to a local SQLite database
(~/.copilot/history.db by default, disable with --no-history).

Example:
  copilot history list
  copilot history list --domain P2P --limit 50
  copilot history show 3f1c9a2e-...
  copilot history delete 3f1c9a2e-...`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent advisories",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		var advisories []model.Advisory
		if historyDomain != "" {
			advisories, err = store.ListByDomain(model.ParseLabel(historyDomain), historyLimit)
		} else {
			advisories, err = store.List(historyLimit, 0)
		}
		if err != nil {
			return fmt.Errorf("list history: %w", err)
		}

		if len(advisories) == 0 {
			fmt.Println("No advisories in history.")
			return nil
		}

		for _, a := range advisories {
			fmt.Printf("%s  %s  %-15s  %s\n",
				a.ID, a.CreatedAt.Format("2006-01-02 15:04"), a.Domain, truncateProblem(a.Problem))
		}

		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a past advisory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		advisory, err := store.Get(args[0])
		if err != nil {
			return fmt.Errorf("show advisory: %w", err)
		}

		fmt.Print(pipeline.NewRenderer(false).Markdown(advisory))
		return nil
	},
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a past advisory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.Delete(args[0]); err != nil {
			return fmt.Errorf("delete advisory: %w", err)
		}

		fmt.Printf("✓ Deleted advisory %s\n", args[0])
		return nil
	},
}

func openHistory() (*history.Store, error) {
	cfg := model.DefaultConfig()

	store, err := history.New(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history store at %s\n", cfg.History.Path)
		return nil, err
	}

	return store, nil
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyDeleteCmd)

	historyListCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum advisories to list")
	historyListCmd.Flags().StringVar(&historyDomain, "domain", "", "filter by domain label (e.g. P2P)")
}
