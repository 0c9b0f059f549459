package main

import (
	"context"
	"encoding/json"
	"fmt"
	"nutrilog-backend/cmd/config"
	migration "nutrilog-backend/cmd/database/migrate"
	"nutrilog-backend/internal/utils"
	"os"

	"github.com/spf13/cobra"
)

var dryRun bool

func init() {
	migrateWeeksCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report legacy weeks without changing anything")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LoadConfig()

		db, err := config.ConnectDB()
		if err != nil {
			return err
		}
		if err := migration.Migrate(db); err != nil {
			return err
		}

		fmt.Println("Database migration complete")
		return nil
	},
}

var migrateWeeksCmd = &cobra.Command{
	Use:   "migrate-weeks",
	Short: "Move days of legacy weeks under their Sunday-start week",
	Long: `Weeks created before the Sunday convention may start on another weekday.
This command re-parents each of their days under the canonical week
(created if needed) and deletes the emptied legacy week. Running it again
is a no-op.

Examples:
  # See what would change
  nutrilog migrate-weeks --dry-run

  # Apply
  nutrilog migrate-weeks`,
	RunE: runMigrateWeeks,
}

func runMigrateWeeks(cmd *cobra.Command, args []string) error {
	utils.LoadConfig()

	log, err := config.NewLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	db, err := config.ConnectDB()
	if err != nil {
		return err
	}

	report, err := config.NewWeekMigrator(db, log).Run(context.Background(), dryRun)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println("Dry run, nothing was written")
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
