package trace

import (
	"regexp"
	"strconv"
	"strings"
)

// Recognized line tags. A tag only counts at the start of the body.
const (
	TagRequest = "[TEST]"
	TagLevel1  = "[L1]"
	TagLevel2  = "[L2]"
	TagBacking = "[MEM]"
)

var (
	requestAddrRe = regexp.MustCompile(`@0[xX]([0-9A-Fa-f]+)`)
	levelAddrRe   = regexp.MustCompile(`addr\s*=\s*0[xX]([0-9A-Fa-f]+)`)
	cacheVerbRe   = regexp.MustCompile(`\bCache\s+(hit|miss|Allocate)\b`)
	memVerbRe     = regexp.MustCompile(`\bMem\s+(hit|miss|Allocate)\b`)
)

var outcomeKeywords = map[string]Outcome{
	"hit":      OutcomeHit,
	"miss":     OutcomeMiss,
	"Allocate": OutcomeAllocate,
}

// Classify assigns a source and outcome to a tokenized line and extracts its
// address. Lines without a recognized tag get SourceUnknown and OutcomeNone.
func Classify(l LogLine) Event {
	ev := Event{Timestamp: l.Timestamp}

	if rest, ok := strings.CutPrefix(l.Body, TagRequest); ok {
		ev.Source = SourceRequest
		if addr, ok := parseHex(requestAddrRe, rest); ok {
			ev.Address, ev.HasAddress = addr, true
			ev.Outcome = OutcomeIssued
		}
		return ev
	}

	var verb *regexp.Regexp
	var rest string
	switch {
	case strings.HasPrefix(l.Body, TagLevel1):
		ev.Source, verb, rest = SourceLevel1, cacheVerbRe, l.Body[len(TagLevel1):]
	case strings.HasPrefix(l.Body, TagLevel2):
		ev.Source, verb, rest = SourceLevel2, cacheVerbRe, l.Body[len(TagLevel2):]
	case strings.HasPrefix(l.Body, TagBacking):
		ev.Source, verb, rest = SourceBacking, memVerbRe, l.Body[len(TagBacking):]
	default:
		return ev
	}

	if m := verb.FindStringSubmatch(rest); m != nil {
		ev.Outcome = outcomeKeywords[m[1]]
	}
	if addr, ok := parseHex(levelAddrRe, rest); ok {
		ev.Address, ev.HasAddress = addr, true
	}
	return ev
}

// parseHex returns the first hex literal captured by re in s. Literals wider
// than 64 bits are treated as absent.
func parseHex(re *regexp.Regexp, s string) (uint64, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseUint(m[1], 16, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
