package trace

// Tally counts the user-visible decisions of one hierarchy level.
type Tally struct {
	Hits   int
	Misses int
}

// Accesses returns hits plus misses.
func (t Tally) Accesses() int {
	return t.Hits + t.Misses
}

// Result is the raw outcome of interpreting one trace. Latencies are raw
// timestamp deltas; any unit scaling is left to the caller.
type Result struct {
	L1      Tally
	L2      Tally
	Backing Tally

	Latencies []int64
	Requests  int // issued requests seen
	Unmatched int // requests with no recovered completion, including ignored ones
	Fills     int // LEVEL1 hits excluded as line-fill confirmations
}

// Interpret tallies per-level decisions and recovers request latencies with
// the given policy. A nil policy selects SingleSlot.
func Interpret(events []Event, policy MatchPolicy) Result {
	if policy == nil {
		policy = SingleSlot{}
	}
	r := tally(events)
	r.Latencies = policy.Match(events)
	r.Unmatched = r.Requests - len(r.Latencies)
	return r
}

func tally(events []Event) Result {
	var r Result
	for i, ev := range events {
		var t *Tally
		switch ev.Source {
		case SourceRequest:
			if ev.Outcome == OutcomeIssued {
				r.Requests++
			}
			continue
		case SourceLevel1:
			t = &r.L1
		case SourceLevel2:
			t = &r.L2
		case SourceBacking:
			t = &r.Backing
		default:
			continue
		}

		switch ev.Outcome {
		case OutcomeHit:
			if ev.Source == SourceLevel1 && isFillConfirmation(events, i) {
				r.Fills++
				continue
			}
			t.Hits++
		case OutcomeMiss:
			t.Misses++
		}
	}
	return r
}

// isFillConfirmation reports whether events[i] directly follows a LEVEL1
// allocation. Only the immediately preceding position is considered.
func isFillConfirmation(events []Event, i int) bool {
	return i > 0 && events[i-1].Is(SourceLevel1, OutcomeAllocate)
}
