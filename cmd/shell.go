package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/storage"
)

var (
	cPrompt   = color.New(color.FgCyan, color.Bold)
	cMuted    = color.New(color.Faint)
	cError    = color.New(color.FgRed, color.Bold)
	cWarn     = color.New(color.FgYellow)
	cCmd      = color.New(color.FgYellow, color.Bold)
	cGreeting = color.New(color.Bold)
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive REPL session",
	Long:  "Open a persistent session against the database. Type 'help' for available commands.",
	Args:  cobra.NoArgs,
	RunE:  runShell,
}

func runShell(_ *cobra.Command, _ []string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	cGreeting.Println("mcreports shell")
	cMuted.Println("type 'help' or 'exit'")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		cPrompt.Print("mcreports")
		cMuted.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if quit := shellDispatch(db, line); quit {
			return nil
		}
	}
	return scanner.Err()
}

// shellDispatch runs one shell line and reports whether the session should end.
func shellDispatch(db *storage.DB, line string) bool {
	tokens := strings.Fields(line)
	cmd, args := tokens[0], tokens[1:]

	var err error
	switch cmd {
	case "exit", "quit":
		return true
	case "help":
		shellHelp()
	case "list":
		err = printReportList(db)
	case "summary":
		err = printOverview(db)
	case "show":
		if len(args) == 0 {
			cError.Fprintln(os.Stderr, "usage: show <slug-prefix> [--timeline] [--stats]")
			return false
		}
		var timeline, stats bool
		for _, a := range args[1:] {
			switch a {
			case "--timeline":
				timeline = true
			case "--stats":
				stats = true
			}
		}
		err = printReport(db, args[0], timeline, stats, false)
	case "player":
		if len(args) == 0 {
			cError.Fprintln(os.Stderr, "usage: player <name|uuid-prefix> [...]")
			return false
		}
		err = printCareers(db, args)
	case "trend":
		if len(args) != 1 {
			cError.Fprintln(os.Stderr, "usage: trend <name|uuid-prefix>")
			return false
		}
		err = printTrend(db, args[0])
	case "sql":
		if len(args) == 0 {
			cError.Fprintln(os.Stderr, "usage: sql <query>")
			return false
		}
		err = printQuery(db, strings.TrimSpace(strings.TrimPrefix(line, cmd)))
	default:
		cWarn.Fprintf(os.Stderr, "unknown command %q, type 'help'\n", cmd)
	}
	if err != nil {
		cError.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return false
}

func shellHelp() {
	fmt.Println()
	type entry struct{ cmd, desc string }
	rows := []entry{
		{"list", "list all stored reports"},
		{"summary", "database overview"},
		{"show <slug-prefix>", "show a report's player table"},
		{"show <slug-prefix> --timeline --stats", "same, with timeline and statistics"},
		{"player <name|uuid> [...]", "cross-report totals for one or more players"},
		{"trend <name|uuid>", "per-report results for a player"},
		{"sql <query>", "run a raw SQL query"},
		{"help", "show this message"},
		{"exit / quit", "close the session"},
	}
	for _, r := range rows {
		fmt.Print("  ")
		cCmd.Printf("%-40s", r.cmd)
		fmt.Println(r.desc)
	}
	fmt.Println()
}
