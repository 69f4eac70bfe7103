package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
)

var (
	showTimeline bool
	showStats    bool
	showJSON     bool
)

var showCmd = &cobra.Command{
	Use:   "show <slug-or-uuid-prefix>",
	Short: "Show a stored report by slug or match UUID prefix",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&showTimeline, "timeline", false, "print damages, heals and events in time order")
	showCmd.Flags().BoolVar(&showStats, "stats", false, "print global and per-player statistics")
	showCmd.Flags().BoolVar(&showJSON, "json", false, "print the processed report as JSON")
}

func runShow(cmd *cobra.Command, args []string) error {
	prefix := args[0]

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printReport(db, prefix, showTimeline, showStats, showJSON)
}

// printReport prints a stored report. It is shared with the shell.
func printReport(db *storage.DB, prefix string, timeline, stats, asJSON bool) error {
	summary, rep, err := loadReport(db, prefix)
	if err != nil {
		return err
	}
	if rep == nil {
		fmt.Fprintf(os.Stderr, "No report found with prefix %q\n", prefix)
		return nil
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	report.PrintReportSummary(os.Stdout, rep, summary.Slug)
	report.PrintPlayerTable(os.Stdout, rep)
	report.PrintEnvironmentalTable(os.Stdout, rep.Aggregates.EnvironmentalDamages)
	if timeline {
		fmt.Fprintln(os.Stdout)
		report.PrintTimeline(os.Stdout, rep)
	}
	if stats {
		fmt.Fprintln(os.Stdout)
		report.PrintStatisticsTable(os.Stdout, "Global statistics", &rep.Aggregates.DisplayedGlobalStatistics)
		for _, p := range rep.Players {
			report.PrintStatisticsTable(os.Stdout, p.Name, p.DisplayedStatistics)
		}
	}
	return nil
}

// loadReport finds a stored report by prefix and decodes its processed JSON.
// It returns nils when nothing matches.
func loadReport(db *storage.DB, prefix string) (*model.ReportSummary, *model.Report, error) {
	summary, err := db.GetReportByPrefix(prefix)
	if err != nil {
		return nil, nil, fmt.Errorf("query report: %w", err)
	}
	if summary == nil {
		return nil, nil, nil
	}
	data, err := db.GetProcessedReport(summary.MatchUUID)
	if err != nil {
		return nil, nil, fmt.Errorf("load processed report: %w", err)
	}
	var rep model.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, nil, fmt.Errorf("decode processed report %s: %w", summary.Slug, err)
	}
	return summary, &rep, nil
}
