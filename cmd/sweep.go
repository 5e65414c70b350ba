package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/memtrace/internal/logfile"
	"github.com/inference-sim/memtrace/sweep"
)

var sweepFormat string

var sweepCmd = &cobra.Command{
	Use:   "sweep <summary output>",
	Short: "Collect analyze outputs of a parameter sweep into per-test series",
	Long: "Read the concatenated text output of many analyze runs, separated by '=== NUM_WAYS = <n> ===', " +
		"'SEED = <n>' and 'Incremental Addresses' lines, and print AMAT and hit rates per test ordered by NUM_WAYS.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !ValidSweepFormats[sweepFormat] {
			logrus.Fatalf("Unknown sweep format %q", sweepFormat)
		}
		if err := runSweep(cmd.OutOrStdout(), args[0], sweepFormat); err != nil {
			logrus.Fatalf("Sweep failed: %v", err)
		}
	},
}

func runSweep(w io.Writer, path, format string) error {
	rc, err := logfile.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = rc.Close() }()

	records, err := sweep.Parse(rc)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		logrus.Warnf("No AMAT lines found in %s", path)
	}
	series := sweep.GroupByTest(records)
	logrus.Infof("Parsed %d run(s) across %d test(s)", len(records), len(series))

	switch format {
	case "table":
		return sweep.WriteTable(w, series)
	case "csv":
		return sweep.WriteCSV(w, series)
	case "yaml":
		data, err := yaml.Marshal(series)
		if err != nil {
			return fmt.Errorf("YAML marshal failed: %w", err)
		}
		_, err = w.Write(data)
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(series)
	default:
		return fmt.Errorf("unknown sweep format %q", format)
	}
}

func init() {
	sweepCmd.Flags().StringVar(&sweepFormat, "format", "table", "Output format (table, csv, yaml, json)")
	rootCmd.AddCommand(sweepCmd)
}
