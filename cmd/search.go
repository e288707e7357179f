package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/internal/models"
	"github.com/killallgit/book-search/internal/services/search"
	"github.com/killallgit/book-search/internal/services/searchform"
	"github.com/killallgit/book-search/internal/services/searchstate"
)

// searchCmd runs a single search and prints one page of results
var searchCmd = &cobra.Command{
	Use:   "search [text...]",
	Short: "Search Open Library once and print the results",
	Long: `Run a single search against Open Library and print one page of results.

The search follows the same fetch policy as the server: one attempt, a
timeout, and an empty result with an error message on failure.

Example:
  book-search search the hobbit
  book-search search dune --page 2 --page-size 5`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Int("page", 1, "page number (1-based)")
	searchCmd.Flags().Int("page-size", 0, "results per page (0 = configured default)")
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	if pageSize == 0 {
		pageSize = appConfig.Search.DefaultPageSize
	}

	// The form rules apply here too
	holder := searchstate.NewHolder()
	defer holder.Close()
	holder.Init(pageSize, nil)
	if err := searchform.Submit(holder, strings.Join(args, " ")); err != nil {
		return err
	}
	if err := searchform.ChangePage(holder, page, holder.PageSize()); err != nil {
		return err
	}
	current := *holder.Value()

	db, repo, err := openHistory(appConfig)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	errOut := cmd.ErrOrStderr()
	notifier := search.NotifierFunc(func(_ context.Context, message string) {
		fmt.Fprintln(errOut, message)
	})

	result := newSearchService(appConfig, repo).Fetch(ctx, current, notifier)
	printResult(cmd.OutOrStdout(), current, result)
	return nil
}

// printResult writes one page of results followed by the paginator line.
func printResult(out io.Writer, current models.CurrentSearch, result models.SearchResult) {
	offset := (current.Page - 1) * current.PageSize
	for i, doc := range result.Docs {
		line := fmt.Sprintf("%3d. %s", offset+i+1, doc.Title)
		if len(doc.AuthorName) > 0 {
			line += " by " + strings.Join(doc.AuthorName, ", ")
		}
		fmt.Fprintln(out, line)
	}
	if len(result.Docs) == 0 {
		fmt.Fprintln(out, "No results")
	}

	p := models.NewPaginator(current, result)
	fmt.Fprintf(out, "%s (page %d of %d)\n", p.RangeLabel(), p.PageIndex+1, max(p.TotalPages(), 1))
}
