package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/killallgit/book-search/internal/database"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Manage database migrations for the search history database.

The schema is derived from the models and applied with GORM auto
migration, which only ever adds tables and columns.

Available subcommands:
  up      - Create or update every table
  status  - Show which tables exist`,
}

// migrateUpCmd applies the schema
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Long: `Apply all pending database migrations.

This command creates missing tables and columns, bringing the schema
up to date.`,
	RunE: runMigrateUp,
}

// migrateStatusCmd shows migration status
var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long: `Display the current status of database migrations.

This command lists every table the service owns and whether it exists.`,
	RunE: runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	migrateCmd.PersistentFlags().String("db", "", "database path (overrides config)")
	migrateUpCmd.Flags().Bool("dry-run", false, "show what would be done without making changes")
}

func migrationPath(cmd *cobra.Command) (string, error) {
	if err := loadConfig(); err != nil {
		return "", err
	}
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = appConfig.Database.Path
	}
	if path == "" {
		return "", fmt.Errorf("no database configured (set database.path or --db)")
	}
	return path, nil
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	path, err := migrationPath(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if dryRun {
		fmt.Fprintln(out, "Dry run mode - no changes will be made")
		return printStatus(cmd, path)
	}

	db, err := database.Open(path, appConfig.Database.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	fmt.Fprintf(out, "Migrated %d model(s) in %s\n", len(database.Models()), path)
	return nil
}

func runMigrateStatus(cmd *cobra.Command, args []string) error {
	path, err := migrationPath(cmd)
	if err != nil {
		return err
	}
	return printStatus(cmd, path)
}

func printStatus(cmd *cobra.Command, path string) error {
	db, err := database.Initialize(path, appConfig.Database.Verbose)
	if err != nil {
		return err
	}
	defer db.Close()

	tables, err := db.Status()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Database Migration Status")
	fmt.Fprintln(out, strings.Repeat("=", 50))
	fmt.Fprintf(out, "Database: %s\n\n", path)

	pending := 0
	for _, t := range tables {
		state := "applied"
		if !t.Present {
			state = "pending"
			pending++
		}
		fmt.Fprintf(out, "  %-30s %s\n", t.Table, state)
	}
	fmt.Fprintf(out, "\n%d of %d table(s) pending\n", pending, len(tables))
	return nil
}
