package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dropForce bool

// dropCmd deletes the report database, or a single report.
var dropCmd = &cobra.Command{
	Use:   "drop [slug-or-uuid-prefix]",
	Short: "Delete the report database, or one stored report",
	Long: `Without arguments, permanently delete the SQLite report database. All stored
reports will be lost; process your raw reports again to rebuild.

With a slug or match UUID prefix, delete only that report.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDrop,
}

func init() {
	dropCmd.Flags().BoolVarP(&dropForce, "force", "f", false, "skip confirmation prompt")
}

func runDrop(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		return dropReport(args[0])
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete: %s\n", dbPath)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(os.Stdout, "Database does not exist, nothing to drop.")
			return nil
		}
		return fmt.Errorf("remove database: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Deleted: %s\n", dbPath)
	return nil
}

func dropReport(prefix string) error {
	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.GetReportByPrefix(prefix)
	if err != nil {
		return fmt.Errorf("query report: %w", err)
	}
	if summary == nil {
		fmt.Fprintf(os.Stderr, "No report found with prefix %q\n", prefix)
		return nil
	}
	if !dropForce {
		fmt.Fprintf(os.Stderr, "This will permanently delete report %s (%s).\n", summary.Slug, summary.TitlePlain)
		fmt.Fprintf(os.Stderr, "Re-run with --force to confirm.\n")
		return nil
	}
	deleted, err := db.DeleteReport(summary.MatchUUID)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if deleted {
		fmt.Fprintf(os.Stdout, "Deleted report %s\n", summary.Slug)
	}
	return nil
}
