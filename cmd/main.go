package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "nutrilog",
	Short: "Nutrition tracking backend",
	Long: `nutrilog serves the day log, food library, recipes, goals, weight log
and dietitian notes over HTTP, and carries the database maintenance commands.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(migrateWeeksCmd)
	rootCmd.AddCommand(tokenCmd)
}
