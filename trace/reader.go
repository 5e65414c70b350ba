package trace

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineBytes bounds a single trace line.
const maxLineBytes = 1 << 20

// ReadStats describes how the lines of a trace were consumed.
type ReadStats struct {
	Lines        int `yaml:"lines" json:"lines"`               // physical lines read
	Records      int `yaml:"records" json:"records"`           // lines that produced an event
	Dropped      int `yaml:"dropped" json:"dropped"`           // blank or malformed lines
	Unclassified int `yaml:"unclassified" json:"unclassified"` // events with OutcomeNone
}

// Read tokenizes and classifies every line of r, in order. Malformed lines are
// dropped silently; only read errors are returned.
func Read(r io.Reader) ([]Event, ReadStats, error) {
	var (
		events []Event
		stats  ReadStats
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for sc.Scan() {
		stats.Lines++
		line, ok := Tokenize(sc.Text())
		if !ok {
			stats.Dropped++
			continue
		}
		ev := Classify(line)
		ev.Line = stats.Lines
		if ev.Outcome == OutcomeNone {
			stats.Unclassified++
		}
		events = append(events, ev)
	}
	if err := sc.Err(); err != nil {
		return nil, stats, fmt.Errorf("reading trace at line %d: %w", stats.Lines+1, err)
	}
	stats.Records = len(events)
	return events, stats, nil
}
