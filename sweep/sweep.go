// Package sweep collects the summaries of many analysis runs, printed one after
// another and keyed by the sweep parameters echoed between them, into records
// that can be compared or charted.
package sweep

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// TestIncremental names runs that used the incremental address pattern.
const TestIncremental = "incremental"

// Record is one completed run. Hit rates are percentages as printed and are
// nil when the run reported them as unavailable.
type Record struct {
	NumWays   int      `yaml:"num_ways" json:"num_ways"`
	Test      string   `yaml:"test" json:"test"`
	AMAT      float64  `yaml:"amat" json:"amat"`
	Unit      string   `yaml:"unit,omitempty" json:"unit,omitempty"`
	L1HitRate *float64 `yaml:"l1_hit_rate" json:"l1_hit_rate"`
	L2HitRate *float64 `yaml:"l2_hit_rate" json:"l2_hit_rate"`
}

var (
	numWaysRe = regexp.MustCompile(`^=== NUM_WAYS = (\d+) ===`)
	seedRe    = regexp.MustCompile(`^SEED\s*=\s*(\d+)`)
	l1Re      = regexp.MustCompile(`^L1 accesses:.*?hit rate:\s*(?:([\d.]+)%|n/a)`)
	l2Re      = regexp.MustCompile(`^L2 accesses:.*?hit rate:\s*(?:([\d.]+)%|n/a)`)
	amatRe    = regexp.MustCompile(`^Average Memory Access Time(?: \(AMAT\))?:\s*([\d.]+)(?:\s+([A-Za-z]\S*))?`)
)

// parser carries the sweep parameters and hit rates seen so far. Values
// persist until overwritten, so one header may cover several runs.
type parser struct {
	numWays int
	test    string
	l1, l2  *float64
}

// Parse reads concatenated run outputs. Each AMAT line closes a record using
// the most recent NUM_WAYS header, test marker and hit rate lines. Lines that
// match nothing are ignored. Runs without an AMAT line produce no record.
func Parse(r io.Reader) ([]Record, error) {
	var (
		p       parser
		records []Record
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		rec, err := p.feed(line)
		if err != nil {
			return nil, fmt.Errorf("sweep line %d: %w", lineNo, err)
		}
		if rec != nil {
			records = append(records, *rec)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading sweep output: %w", err)
	}
	return records, nil
}

func (p *parser) feed(line string) (*Record, error) {
	if m := numWaysRe.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("NUM_WAYS %q: %w", m[1], err)
		}
		p.numWays = n
		return nil, nil
	}
	if m := seedRe.FindStringSubmatch(line); m != nil {
		p.test = "seed_" + m[1]
		return nil, nil
	}
	if line == "Incremental Addresses" {
		p.test = TestIncremental
		return nil, nil
	}
	if m := l1Re.FindStringSubmatch(line); m != nil {
		rate, err := optionalFloat(m[1])
		if err != nil {
			return nil, fmt.Errorf("L1 hit rate: %w", err)
		}
		p.l1 = rate
		return nil, nil
	}
	if m := l2Re.FindStringSubmatch(line); m != nil {
		rate, err := optionalFloat(m[1])
		if err != nil {
			return nil, fmt.Errorf("L2 hit rate: %w", err)
		}
		p.l2 = rate
		return nil, nil
	}
	if m := amatRe.FindStringSubmatch(line); m != nil {
		amat, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return nil, fmt.Errorf("AMAT %q: %w", m[1], err)
		}
		return &Record{
			NumWays:   p.numWays,
			Test:      p.test,
			AMAT:      amat,
			Unit:      m[2],
			L1HitRate: p.l1,
			L2HitRate: p.l2,
		}, nil
	}
	return nil, nil
}

func optionalFloat(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Series is the records of one test, ordered by NumWays.
type Series struct {
	Test    string   `yaml:"test" json:"test"`
	Records []Record `yaml:"records" json:"records"`
}

// GroupByTest splits records into one series per test, in order of first
// appearance. Records with equal NumWays keep their input order.
func GroupByTest(records []Record) []Series {
	var out []Series
	index := make(map[string]int)
	for _, rec := range records {
		i, ok := index[rec.Test]
		if !ok {
			i = len(out)
			index[rec.Test] = i
			out = append(out, Series{Test: rec.Test})
		}
		out[i].Records = append(out[i].Records, rec)
	}
	for i := range out {
		slices.SortStableFunc(out[i].Records, func(a, b Record) int {
			return a.NumWays - b.NumWays
		})
	}
	return out
}
