package trace

func issued(ts int64, addr uint64) Event {
	return Event{Timestamp: ts, Source: SourceRequest, Outcome: OutcomeIssued, Address: addr, HasAddress: true}
}

func level(src Source, out Outcome, ts int64, addr uint64) Event {
	return Event{Timestamp: ts, Source: src, Outcome: out, Address: addr, HasAddress: true}
}

func l1Hit(ts int64, addr uint64) Event  { return level(SourceLevel1, OutcomeHit, ts, addr) }
func l1Miss(ts int64, addr uint64) Event { return level(SourceLevel1, OutcomeMiss, ts, addr) }
func l2Hit(ts int64, addr uint64) Event  { return level(SourceLevel2, OutcomeHit, ts, addr) }
func l2Miss(ts int64, addr uint64) Event { return level(SourceLevel2, OutcomeMiss, ts, addr) }

func l1Allocate(ts int64) Event {
	return Event{Timestamp: ts, Source: SourceLevel1, Outcome: OutcomeAllocate}
}

func unclassified(ts int64) Event {
	return Event{Timestamp: ts}
}
