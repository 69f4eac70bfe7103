package cmd

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
)

// playerCmd is the cobra command for cross-report totals of one or more players.
var playerCmd = &cobra.Command{
	Use:   "player <name|uuid-prefix> [<name|uuid-prefix>...]",
	Short: "Cross-report totals for one or more players",
	Long: `Sum kills, deaths, damages, heals and time alive for players across every
stored report. Players are matched by exact name (case-insensitive) or by
UUID prefix; a player who changed names is still grouped by UUID.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlayer,
}

func runPlayer(cmd *cobra.Command, args []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printCareers(db, args)
}

func printCareers(db *storage.DB, args []string) error {
	var careers []model.PlayerCareer
	for _, arg := range args {
		rows, err := db.GetPlayerHistory(arg)
		if err != nil {
			return fmt.Errorf("query history for %q: %w", arg, err)
		}
		if len(rows) == 0 {
			fmt.Fprintf(os.Stderr, "No data found for player %q\n", arg)
			continue
		}
		careers = append(careers, buildCareers(rows)...)
	}
	if len(careers) == 0 {
		return nil
	}

	fmt.Fprintln(os.Stdout)
	report.PrintPlayerCareer(os.Stdout, careers)
	return nil
}

// buildCareers groups rows by player UUID, keeping first-seen order.
func buildCareers(rows []model.ReportPlayerRow) []model.PlayerCareer {
	index := make(map[uuid.UUID]int)
	var out []model.PlayerCareer
	for _, row := range rows {
		i, ok := index[row.PlayerUUID]
		if !ok {
			i = len(out)
			index[row.PlayerUUID] = i
			out = append(out, model.PlayerCareer{})
		}
		out[i].Add(row)
	}
	return out
}
