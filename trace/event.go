package trace

import "fmt"

// Source identifies which stage of the memory hierarchy emitted an event.
type Source int

const (
	// SourceUnknown marks lines with no recognized tag.
	SourceUnknown Source = iota
	SourceRequest
	SourceLevel1
	SourceLevel2
	SourceBacking
)

func (s Source) String() string {
	switch s {
	case SourceRequest:
		return "REQUEST"
	case SourceLevel1:
		return "LEVEL1"
	case SourceLevel2:
		return "LEVEL2"
	case SourceBacking:
		return "BACKING"
	default:
		return "UNKNOWN"
	}
}

// Outcome is the decision an event records.
type Outcome int

const (
	// OutcomeNone is used when the line's outcome cannot be determined. Such
	// events keep their sequence position but are never tallied or matched.
	OutcomeNone Outcome = iota
	OutcomeIssued
	OutcomeHit
	OutcomeMiss
	OutcomeAllocate
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIssued:
		return "ISSUED"
	case OutcomeHit:
		return "HIT"
	case OutcomeMiss:
		return "MISS"
	case OutcomeAllocate:
		return "ALLOCATE"
	default:
		return "NONE"
	}
}

// Event is a classified trace record.
type Event struct {
	Timestamp  int64
	Source     Source
	Outcome    Outcome
	Address    uint64
	HasAddress bool
	Line       int // 1-based physical line number; 0 when built in code
}

// Is reports whether the event has the given source and outcome.
func (e Event) Is(src Source, out Outcome) bool {
	return e.Source == src && e.Outcome == out
}

// SameAddress reports whether the event carries addr.
func (e Event) SameAddress(addr uint64) bool {
	return e.HasAddress && e.Address == addr
}

func (e Event) String() string {
	if e.HasAddress {
		return fmt.Sprintf("%d %s/%s 0x%x", e.Timestamp, e.Source, e.Outcome, e.Address)
	}
	return fmt.Sprintf("%d %s/%s", e.Timestamp, e.Source, e.Outcome)
}
