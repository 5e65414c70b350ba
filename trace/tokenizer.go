package trace

import (
	"strconv"
	"strings"
	"unicode"
)

// LogLine is one timestamped line of a trace, before classification.
type LogLine struct {
	Timestamp int64
	Body      string
}

// Tokenize splits a raw line into its leading integer timestamp and the
// remaining body. It returns false for blank lines, lines without a body, and
// lines whose first token is not a base-10 integer.
func Tokenize(line string) (LogLine, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return LogLine{}, false
	}
	cut := strings.IndexFunc(line, unicode.IsSpace)
	if cut < 0 {
		return LogLine{}, false
	}
	ts, err := strconv.ParseInt(line[:cut], 10, 64)
	if err != nil {
		return LogLine{}, false
	}
	body := strings.TrimLeftFunc(line[cut:], unicode.IsSpace)
	return LogLine{Timestamp: ts, Body: body}, true
}
