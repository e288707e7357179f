package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/pkg/config"
	"github.com/killallgit/book-search/pkg/logging"
)

// appConfig is filled by loadConfig for commands that need it
var appConfig *config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "book-search",
	Short: "Book Search server and command line client",
	Long: `Book Search - search the Open Library catalogue as you type

The server keeps one search state per browser session, mirrors it into the
page URL and streams debounced, cancellable results back to the page.

Features:
  • Search-as-you-type form backed by the Open Library search API
  • Shareable URLs carrying searchText, pageSize and page
  • Server-sent events for state, results and alerts
  • Search history stored in SQLite
  • Interactive shell and one-shot search from the terminal`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates a new root command (exported for testing)
func NewRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	// Add persistent flags for logging configuration
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "enable JSON formatted logs")
}

// loadConfig loads the configuration when a command needs it. version and
// help never call it.
func loadConfig() error {
	if err := config.Init(); err != nil {
		return fmt.Errorf("error initializing config: %w", err)
	}

	cfg, err := config.GetConfig()
	if err != nil {
		return err
	}

	// Flags win over the file and the environment when set explicitly
	flags := rootCmd.PersistentFlags()
	if f := flags.Lookup("log-level"); f != nil && f.Changed {
		cfg.Logging.Level = f.Value.String()
	}
	if f := flags.Lookup("json-logs"); f != nil && f.Changed {
		cfg.Logging.JSON = f.Value.String() == "true"
	}

	if err := logging.Setup(cfg.Logging.Level, cfg.Logging.JSON, os.Stderr); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}
