package cmd

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/internal/services/history"
)

// historyCmd prints recent searches
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long: `Show the most recent searches recorded in the history database.

Example:
  book-search history
  book-search history --limit 50
  book-search history --prune 720h`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().Int("limit", history.DefaultLimit, "number of searches to show")
	historyCmd.Flags().Duration("prune", 0, "delete searches older than this before listing (0 = keep all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	prune, _ := cmd.Flags().GetDuration("prune")

	db, repo, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if db == nil {
		return fmt.Errorf("search history is disabled (database.path is empty)")
	}
	defer db.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	if prune > 0 {
		removed, err := repo.Prune(ctx, time.Now().Add(-prune))
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Pruned %d search(es)\n", removed)
	}

	records, err := repo.Recent(ctx, limit)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "No searches recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSEARCH\tPAGE\tSIZE\tFOUND\tTOOK")
	for _, r := range records {
		found := fmt.Sprintf("%d", r.NumFound)
		if r.Failed {
			found = "error"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%dms\n",
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.SearchText, r.Page, r.PageSize, found, r.DurationMs)
	}
	return w.Flush()
}
