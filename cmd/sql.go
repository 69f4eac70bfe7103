package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/storage"
)

var sqlCmd = &cobra.Command{
	Use:   "sql <query>",
	Short: "Run a raw SQL query against the report database",
	Long: `Run an arbitrary SQL query against the report database and print results as a table.

Schema overview:
  reports(match_uuid, slug, raw_hash, title, title_plain, match_date,
    minecraft_version, generator_name, generator_link, players_count,
    raw_json, processed_json, processed_at)
  report_players(match_uuid, player_uuid, name, team, color, rank, kills, deaths,
    damages_taken, damages_caused, heals, game_duration_ms, winner)

Damages and heals are stored in half-hearts. Dates are UTC RFC 3339 strings.
Processed reports can be queried with SQLite's JSON functions, e.g.
  SELECT slug, json_extract(processed_json, '$.winners[0].name') FROM reports`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSQL,
}

func runSQL(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()
	return printQuery(db, query)
}

func printQuery(db *storage.DB, query string) error {
	cols, rows, err := db.QueryRaw(query)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		fmt.Println("(no rows)")
		return nil
	}

	table := tablewriter.NewTable(os.Stdout, tablewriter.WithConfig(tablewriter.Config{
		Row:    tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignRight}},
		Header: tw.CellConfig{Alignment: tw.CellAlignment{Global: tw.AlignCenter}},
	}))

	colsAny := make([]any, len(cols))
	for i, c := range cols {
		colsAny[i] = c
	}
	table.Header(colsAny...)

	for _, row := range rows {
		rowAny := make([]any, len(row))
		for i, v := range row {
			rowAny[i] = v
		}
		table.Append(rowAny...)
	}
	table.Render()
	fmt.Fprintf(os.Stdout, "\n(%d rows)\n", len(rows))
	return nil
}

