package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/inference-sim/memtrace/internal/logfile"
	"github.com/inference-sim/memtrace/internal/metrics"
	"github.com/inference-sim/memtrace/trace"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [trace files...]",
	Short: "Compute per-level hit ratios and AMAT for one or more trace logs",
	Long: "Parse each trace log (plain, .gz or .zst; - for stdin), tally L1/L2/MEM hits and misses, " +
		"and match CPU requests to their L1 completions to compute the average memory access time.",
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := resolveAnalyzeSettings(cmd.Flags())
		if err != nil {
			logrus.Fatalf("Invalid analyze settings: %v", err)
		}
		if err := runAnalyze(cmd.Context(), cmd.OutOrStdout(), args, settings); err != nil {
			logrus.Fatalf("Analysis failed: %v", err)
		}
	},
}

// FileReport is the analysis of one trace file. Summary is in raw
// timestamp units.
type FileReport struct {
	File    string          `yaml:"file" json:"file"`
	Read    trace.ReadStats `yaml:"read" json:"read"`
	Summary trace.Summary   `yaml:"summary" json:"summary"`
}

// Report is the structured output of one analyze invocation.
type Report struct {
	RunID          string       `yaml:"run_id" json:"run_id"`
	Policy         string       `yaml:"policy" json:"policy"`
	Unit           string       `yaml:"unit" json:"unit"`
	LatencyDivisor float64      `yaml:"latency_divisor" json:"latency_divisor"`
	Files          []FileReport `yaml:"files" json:"files"`
}

// runAnalyze analyzes every path concurrently, bounded by s.Jobs, and writes
// the reports in input order.
func runAnalyze(ctx context.Context, w io.Writer, paths []string, s AnalyzeSettings) error {
	policy, err := trace.NewMatchPolicy(s.Policy)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	log := logrus.WithField("run_id", runID)
	log.Infof("Analyzing %d trace file(s) with policy=%s, jobs=%d", len(paths), policyName(s.Policy), s.Jobs)
	startTime := time.Now()

	reports, err := analyzeFiles(ctx, log, paths, policy, s.Jobs)
	if err != nil {
		return err
	}

	if s.MetricsOut != "" {
		runs := make([]metrics.Run, len(reports))
		for i, rep := range reports {
			runs[i] = metrics.Run{File: rep.File, Summary: rep.Summary}
		}
		if err := metrics.WriteTextfile(s.MetricsOut, runs); err != nil {
			return err
		}
		log.Infof("Wrote metrics to %s", s.MetricsOut)
	}

	report := Report{
		RunID:          runID,
		Policy:         policyName(s.Policy),
		Unit:           s.Unit,
		LatencyDivisor: s.LatencyDivisor,
		Files:          reports,
	}
	if err := writeReport(w, s.Format, report); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	log.Infof("Analysis complete in %s", time.Since(startTime))
	return nil
}

// analyzeFiles fans out one goroutine per file. Files share no state;
// results are stored by index.
func analyzeFiles(ctx context.Context, log *logrus.Entry, paths []string, policy trace.MatchPolicy, jobs int) ([]FileReport, error) {
	reports := make([]FileReport, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep, err := analyzeFile(log.WithField("file", path), path, policy)
			if err != nil {
				return err
			}
			reports[i] = rep
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func analyzeFile(log *logrus.Entry, path string, policy trace.MatchPolicy) (FileReport, error) {
	rc, err := logfile.Open(path)
	if err != nil {
		return FileReport{}, err
	}
	defer func() { _ = rc.Close() }()

	events, stats, err := trace.Read(rc)
	if err != nil {
		return FileReport{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Debugf("Read %d lines: %d events, %d dropped, %d unclassified",
		stats.Lines, stats.Records, stats.Dropped, stats.Unclassified)

	result := trace.Interpret(events, policy)
	if result.Unmatched > 0 {
		log.Debugf("%d request(s) had no matching L1 completion", result.Unmatched)
	}
	return FileReport{File: path, Read: stats, Summary: trace.Summarize(result)}, nil
}

func policyName(name string) string {
	if name == "" {
		return trace.PolicySingleSlot
	}
	return name
}

func init() {
	addAnalyzeFlags(analyzeCmd.Flags())
	rootCmd.AddCommand(analyzeCmd)
}
