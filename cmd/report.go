package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memtrace/trace"
)

// writeReport renders report in the given format. AMAT and latency
// statistics are divided by the report's latency divisor.
func writeReport(w io.Writer, format string, report Report) error {
	scaled := report
	scaled.Files = make([]FileReport, len(report.Files))
	for i, f := range report.Files {
		f.Summary = f.Summary.Scaled(report.LatencyDivisor)
		scaled.Files[i] = f
	}

	switch format {
	case "", "text":
		return writeText(w, scaled)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(scaled); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(scaled)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeText prints the summary lines the sweep parser reads back. A header
// line precedes each file only when several files are analyzed.
func writeText(w io.Writer, report Report) error {
	for _, f := range report.Files {
		if len(report.Files) > 1 {
			if _, err := fmt.Fprintf(w, "== %s ==\n", f.File); err != nil {
				return err
			}
		}
		if err := writeSummaryText(w, f.Summary, report.Unit); err != nil {
			return err
		}
	}
	return nil
}

func writeSummaryText(w io.Writer, s trace.Summary, unit string) error {
	for _, lvl := range []struct {
		name string
		sum  trace.LevelSummary
	}{{"L1", s.L1}, {"L2", s.L2}} {
		if _, err := fmt.Fprintf(w, "%s accesses: %d, hits: %d, misses: %d, hit rate: %s\n",
			lvl.name, lvl.sum.Accesses, lvl.sum.Hits, lvl.sum.Misses, formatRate(lvl.sum.HitRate)); err != nil {
			return err
		}
	}
	var err error
	if s.AMAT != nil {
		_, err = fmt.Fprintf(w, "Average Memory Access Time (AMAT): %.2f %s (from timestamps)\n", *s.AMAT, unit)
	} else {
		_, err = fmt.Fprintln(w, "No completed CPU accesses found to compute AMAT.")
	}
	return err
}

func formatRate(rate *float64) string {
	if rate == nil {
		return "n/a"
	}
	return fmt.Sprintf("%.2f%%", *rate*100)
}
