package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
)

// summaryCmd is the cobra command for displaying a high-level database overview.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show a high-level overview of the database",
	Long: `Display aggregate statistics about all reports stored in the database:
total report count, date range, generator breakdown and most active players.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printOverview(db)
}

func printOverview(db *storage.DB) error {
	ov, err := db.GetOverview()
	if err != nil {
		return fmt.Errorf("get overview: %w", err)
	}
	if ov.TotalReports == 0 {
		fmt.Fprintln(os.Stdout, "No reports stored yet. Run 'mcreports process --store <report.json>' to add one.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "\n=== Database Summary ===\n\n")
	fmt.Fprintf(os.Stdout, "  Reports stored : %d\n", ov.TotalReports)
	fmt.Fprintf(os.Stdout, "  Date range     : %s → %s\n",
		ov.EarliestMatch.Local().Format("2006-01-02"), ov.LatestMatch.Local().Format("2006-01-02"))
	fmt.Fprintf(os.Stdout, "  Players seen   : %d\n", ov.UniquePlayers)
	fmt.Fprintf(os.Stdout, "  Total kills    : %d\n", ov.TotalKills)
	fmt.Fprintf(os.Stdout, "  Time played    : %s\n", report.FormatDuration(ov.TotalTime))

	gens, err := db.GetGeneratorCounts()
	if err != nil {
		return fmt.Errorf("get generator counts: %w", err)
	}
	// Only shown when more than one generator is present.
	if len(gens) > 1 {
		fmt.Fprintf(os.Stdout, "\n--- Generators ---\n\n")
		gt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
			Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
			Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
		}))
		gt.Header("GENERATOR", "REPORTS")
		for _, g := range gens {
			name := g.Name
			if name == "" {
				name = "(none)"
			}
			gt.Append(name, fmt.Sprintf("%d", g.Reports))
		}
		gt.Render()
	}

	players, err := db.GetTopPlayersByReports(10)
	if err != nil {
		return fmt.Errorf("get top players: %w", err)
	}
	fmt.Fprintf(os.Stdout, "\n--- Most Active Players ---\n\n")
	pt := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))
	pt.Header("NAME", "UUID", "REPORTS", "WINS", "KILLS", "AVG RANK")
	for _, p := range players {
		pt.Append(
			p.Name,
			p.PlayerUUID[:8],
			fmt.Sprintf("%d", p.Reports),
			fmt.Sprintf("%d", p.Wins),
			fmt.Sprintf("%d", p.Kills),
			fmt.Sprintf("%.1f", p.AvgRank),
		)
	}
	pt.Render()
	return nil
}
