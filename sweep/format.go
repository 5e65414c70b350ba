package sweep

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
)

var header = []string{"test", "num_ways", "amat", "l1_hit_rate", "l2_hit_rate"}

func row(rec Record) []string {
	return []string{
		rec.Test,
		strconv.Itoa(rec.NumWays),
		strconv.FormatFloat(rec.AMAT, 'f', 2, 64),
		percent(rec.L1HitRate),
		percent(rec.L2HitRate),
	}
}

func percent(v *float64) string {
	if v == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}

// WriteTable prints series as an aligned table, one block per test.
func WriteTable(w io.Writer, series []Series) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, "TEST\tNUM_WAYS\tAMAT\tL1 HIT %\tL2 HIT %"); err != nil {
		return err
	}
	for _, s := range series {
		for _, rec := range s.Records {
			r := row(rec)
			if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r[0], r[1], r[2], r[3], r[4]); err != nil {
				return err
			}
		}
	}
	return tw.Flush()
}

// WriteCSV prints series as CSV with a header row.
func WriteCSV(w io.Writer, series []Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range series {
		for _, rec := range s.Records {
			if err := cw.Write(row(rec)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
