package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pable/go-mc-reports/internal/aggregator"
	"github.com/pable/go-mc-reports/internal/parser"
	"github.com/pable/go-mc-reports/pkg/logger"
	"github.com/pable/go-mc-reports/pkg/metrics"
)

var reprocessCmd = &cobra.Command{
	Use:   "reprocess",
	Short: "Rebuild every stored processed report from its raw report",
	Long: `Re-run processing on every raw report in the database and replace the
processed reports and player rows. Slugs are kept. Use this after upgrading
mcreports or changing the default team color.`,
	Args: cobra.NoArgs,
	RunE: runReprocess,
}

func runReprocess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.Named("reprocess")

	db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	raws, err := db.GetRawReports()
	if err != nil {
		return fmt.Errorf("load raw reports: %w", err)
	}
	if len(raws) == 0 {
		fmt.Fprintln(os.Stdout, "No reports stored yet. Run 'mcreports process --store <report.json>' to add one.")
		return nil
	}

	m := metrics.NewManager()
	defer flushMetrics(ctx, m)

	color := teamColor()
	ok, failed := 0, 0
	for _, raw := range raws {
		if err := ctx.Err(); err != nil {
			return err
		}
		parsed, err := parser.ParseBytes(raw.Slug, raw.JSON)
		if err != nil {
			failed++
			m.RecordFailure(codeInvalidInput)
			log.Error(ctx, "stored raw report unreadable", logger.String("slug", raw.Slug), logger.Error(err))
			continue
		}
		start := time.Now()
		rep, err := aggregator.Process(parsed.Report, aggregator.WithDefaultColor(color))
		if err != nil {
			failed++
			m.RecordFailure(aggregator.ErrorCode(err))
			log.Error(ctx, "reprocess failed", logger.String("slug", raw.Slug), logger.Error(err))
			continue
		}
		m.RecordProcessed(time.Since(start), len(rep.Players))
		m.RecordDamagesMerged(len(parsed.Report.Damages) - len(rep.Damages))

		if _, err := storeReport(db, parsed.Hash, parsed.JSON, rep); err != nil {
			return err
		}
		ok++
	}

	fmt.Fprintf(os.Stdout, "Reprocessed %d report(s)", ok)
	if failed > 0 {
		fmt.Fprintf(os.Stdout, ", %d failed", failed)
	}
	fmt.Fprintln(os.Stdout)
	return nil
}
