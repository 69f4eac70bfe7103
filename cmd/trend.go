package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
)

var trendCmd = &cobra.Command{
	Use:   "trend <name|uuid-prefix>",
	Short: "Chronological per-report results for a player",
	Args:  cobra.ExactArgs(1),
	RunE:  runTrend,
}

func runTrend(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printTrend(db, args[0])
}

func printTrend(db *storage.DB, player string) error {
	rows, err := db.GetPlayerHistory(player)
	if err != nil {
		return fmt.Errorf("query history: %w", err)
	}
	if len(rows) == 0 {
		fmt.Println("no reports found")
		return nil
	}

	entries := make([]model.PlayerTrendEntry, 0, len(rows))
	for _, row := range rows {
		s, err := db.GetReportByPrefix(row.MatchUUID.String())
		if err != nil {
			return fmt.Errorf("query report %s: %w", row.MatchUUID, err)
		}
		if s == nil {
			continue
		}
		entries = append(entries, model.PlayerTrendEntry{Report: *s, Row: row})
	}
	report.PrintPlayerTrend(os.Stdout, entries)
	return nil
}
