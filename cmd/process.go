package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pable/go-mc-reports/internal/aggregator"
	"github.com/pable/go-mc-reports/internal/model"
	"github.com/pable/go-mc-reports/internal/parser"
	"github.com/pable/go-mc-reports/internal/report"
	"github.com/pable/go-mc-reports/internal/storage"
	"github.com/pable/go-mc-reports/pkg/logger"
	"github.com/pable/go-mc-reports/pkg/metrics"
)

// codeInvalidInput is reported for sources that cannot be read or decoded.
const codeInvalidInput = "InvalidInput"

var (
	processOut   string
	processStore bool
	processJobs  int
	processQuiet bool
	processForce bool
)

var processCmd = &cobra.Command{
	Use:   "process <report.json|url|-> [...]",
	Short: "Process raw match reports",
	Long: `Process one or more raw match reports. Sources may be files (optionally
.gz, .bz2 or .zst), http(s) URLs, or "-" for stdin.

Without --out or --store the processed report is written to stdout as JSON.`,
	Example: `  mcreports process match.json > processed.json
  mcreports process --store reports/*.json.zst
  curl -s https://example.org/raw.json | mcreports process -`,
	Args: cobra.MinimumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processOut, "out", "o", "", "write processed reports to <dir>/<match_uuid>.json")
	processCmd.Flags().BoolVar(&processStore, "store", false, "save raw and processed reports to the database")
	processCmd.Flags().IntVarP(&processJobs, "jobs", "j", 0, "reports processed in parallel (default from config)")
	processCmd.Flags().BoolVarP(&processQuiet, "quiet", "q", false, "do not print report tables when storing")
	processCmd.Flags().BoolVar(&processForce, "force", false, "store reports even when an identical raw report is already stored")
}

// processResult is the outcome of one source.
type processResult struct {
	source   string
	parsed   *parser.Parsed
	report   *model.Report
	duration time.Duration
	code     string
	err      error
}

// processFailure is printed to stderr for each report that fails.
type processFailure struct {
	Source      string `json:"source"`
	ErrorCode   string `json:"error_code"`
	Description string `json:"description"`
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.Named("process")

	if err := checkSources(args); err != nil {
		return err
	}

	jobs := cfg.Jobs
	if processJobs > 0 {
		jobs = processJobs
	}
	outDir := cfg.OutputDir
	if cmd.Flags().Changed("out") {
		outDir = processOut
	}
	if outDir != "" {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	var db *storage.DB
	if processStore {
		var err error
		if db, err = openStore(); err != nil {
			return err
		}
		defer db.Close()
	}

	m := metrics.NewManager()
	defer flushMetrics(ctx, m)

	results := processAll(ctx, args, jobs, teamColor())

	failed := 0
	for _, res := range results {
		if res.err != nil {
			failed++
			m.RecordFailure(res.code)
			log.Error(ctx, "report failed", logger.String("source", res.source),
				logger.String("code", res.code), logger.Error(res.err))
			printFailure(res)
			continue
		}
		m.RecordProcessed(res.duration, len(res.report.Players))
		m.RecordDamagesMerged(len(res.parsed.Report.Damages) - len(res.report.Damages))
		log.Debug(ctx, "report processed", logger.String("source", res.source),
			logger.String("match", res.report.MatchUUID.String()), logger.Duration("took", res.duration))

		if err := emit(ctx, res, outDir, db, m); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d reports failed", failed, len(results))
	}
	return nil
}

// checkSources rejects source lists that read stdin more than once.
func checkSources(sources []string) error {
	stdin := 0
	for _, s := range sources {
		if s == parser.StdinSource {
			stdin++
		}
	}
	if stdin > 1 {
		return fmt.Errorf("%q given %d times: stdin can only be read once", parser.StdinSource, stdin)
	}
	return nil
}

// processAll parses and aggregates every source with at most jobs running
// at once. Results keep the order of sources; a failing source does not
// stop the others.
func processAll(ctx context.Context, sources []string, jobs int, defaultColor model.TeamColor) []processResult {
	results := make([]processResult, len(sources))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, source := range sources {
		g.Go(func() error {
			results[i] = processOne(ctx, source, defaultColor)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func processOne(ctx context.Context, source string, defaultColor model.TeamColor) processResult {
	res := processResult{source: source}
	parsed, err := parser.ParseReport(ctx, source)
	if err != nil {
		res.code, res.err = codeInvalidInput, err
		return res
	}
	res.parsed = parsed

	start := time.Now()
	rep, err := aggregator.Process(parsed.Report, aggregator.WithDefaultColor(defaultColor))
	res.duration = time.Since(start)
	if err != nil {
		res.code, res.err = aggregator.ErrorCode(err), err
		return res
	}
	res.report = rep
	return res
}

func printFailure(res processResult) {
	desc := res.err.Error()
	var missing *aggregator.MissingPlayerReferenceError
	if errors.As(res.err, &missing) {
		desc = missing.Error()
	}
	data, _ := json.Marshal(processFailure{Source: res.source, ErrorCode: res.code, Description: desc})
	fmt.Fprintln(os.Stderr, string(data))
}

// emit writes a processed report where the flags ask for it.
func emit(ctx context.Context, res processResult, outDir string, db *storage.DB, m *metrics.Manager) error {
	if outDir != "" {
		path := filepath.Join(outDir, res.report.MatchUUID.String()+".json")
		data, err := json.MarshalIndent(res.report, "", "  ")
		if err != nil {
			return fmt.Errorf("encode %s: %w", res.source, err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Get().Info(ctx, "processed report written", logger.String("path", path))
	} else if db == nil {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(res.report); err != nil {
			return fmt.Errorf("encode %s: %w", res.source, err)
		}
	}

	if db == nil {
		return nil
	}
	if !processForce {
		exists, err := db.ReportExists(res.parsed.Hash)
		if err != nil {
			return fmt.Errorf("check report: %w", err)
		}
		if exists {
			m.RecordSkipped()
			fmt.Fprintf(os.Stderr, "Report %s already stored, skipping.\n", res.parsed.Hash[:12])
			return nil
		}
	}
	slug, err := storeReport(db, res.parsed.Hash, res.parsed.JSON, res.report)
	if err != nil {
		return err
	}
	if !processQuiet {
		report.PrintReportSummary(os.Stdout, res.report, slug)
		report.PrintPlayerTable(os.Stdout, res.report)
	}
	return nil
}
