package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored reports",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printReportList(db)
}

func printReportList(db *storage.DB) error {
	reports, err := db.ListReports()
	if err != nil {
		return fmt.Errorf("list reports: %w", err)
	}
	if len(reports) == 0 {
		fmt.Fprintln(os.Stdout, "No reports stored yet. Run 'mcreports process --store <report.json>' to add one.")
		return nil
	}
	report.PrintReportList(os.Stdout, reports)
	return nil
}
