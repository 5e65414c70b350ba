package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpret_EmptyTrace_ZeroValues(t *testing.T) {
	// GIVEN no events
	// WHEN interpreted
	r := Interpret(nil, nil)

	// THEN every count is zero and there are no samples
	assert.Equal(t, Result{}, r)
}

func TestInterpret_TalliesPerLevel(t *testing.T) {
	// GIVEN hits and misses at both cache levels and the backing store
	events := []Event{
		l1Miss(1, 0x10),
		l2Miss(2, 0x10),
		level(SourceBacking, OutcomeHit, 3, 0x10),
		l1Hit(4, 0x20),
		l2Hit(5, 0x30),
		l1Miss(6, 0x40),
		level(SourceBacking, OutcomeMiss, 7, 0x40),
	}

	// WHEN interpreted
	r := Interpret(events, nil)

	// THEN each level counts its own decisions
	assert.Equal(t, Tally{Hits: 1, Misses: 2}, r.L1)
	assert.Equal(t, Tally{Hits: 1, Misses: 1}, r.L2)
	assert.Equal(t, Tally{Hits: 1, Misses: 1}, r.Backing)
	assert.Equal(t, 3, r.L1.Accesses())
}

func TestInterpret_AllocateThenHit_ExcludedFromL1(t *testing.T) {
	// GIVEN an L1 allocation immediately followed by an L1 hit
	events := []Event{l1Miss(1, 0x10), l1Allocate(5), l1Hit(6, 0x10)}

	// WHEN interpreted
	r := Interpret(events, nil)

	// THEN the hit is a line-fill confirmation and does not count
	assert.Equal(t, 0, r.L1.Hits)
	assert.Equal(t, 1, r.L1.Accesses())
	assert.Equal(t, 1, r.Fills)
}

func TestInterpret_HitWithoutPrecedingAllocate_Counts(t *testing.T) {
	r := Interpret([]Event{l1Hit(6, 0x10)}, nil)
	assert.Equal(t, 1, r.L1.Hits)
	assert.Equal(t, 0, r.Fills)
}

func TestInterpret_AllocateExclusion_OnlyDirectPredecessor(t *testing.T) {
	tests := []struct {
		name     string
		events   []Event
		wantHits int
	}{
		{
			name:     "unclassified line between allocate and hit",
			events:   []Event{l1Allocate(1), unclassified(2), l1Hit(3, 0x10)},
			wantHits: 1,
		},
		{
			name:     "l2 event between allocate and hit",
			events:   []Event{l1Allocate(1), l2Hit(2, 0x10), l1Hit(3, 0x10)},
			wantHits: 1,
		},
		{
			name:     "second hit after confirmation counts",
			events:   []Event{l1Allocate(1), l1Hit(2, 0x10), l1Hit(3, 0x10)},
			wantHits: 1,
		},
		{
			name:     "l2 allocate does not exclude l1 hit",
			events:   []Event{level(SourceLevel2, OutcomeAllocate, 1, 0), l1Hit(2, 0x10)},
			wantHits: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Interpret(tt.events, nil)
			assert.Equal(t, tt.wantHits, r.L1.Hits)
		})
	}
}

func TestInterpret_L2HitAfterL1Allocate_Counts(t *testing.T) {
	// GIVEN an L2 hit following an L1 allocation
	r := Interpret([]Event{l1Allocate(1), l2Hit(2, 0x10)}, nil)

	// THEN the exclusion does not apply to L2
	assert.Equal(t, 1, r.L2.Hits)
}

func TestInterpret_AllocatesAndUnclassifiedNeverTallied(t *testing.T) {
	events := []Event{
		l1Allocate(1),
		level(SourceLevel2, OutcomeAllocate, 2, 0),
		level(SourceBacking, OutcomeAllocate, 3, 0),
		unclassified(4),
		{Timestamp: 5, Source: SourceLevel1, Outcome: OutcomeNone},
	}
	r := Interpret(events, nil)
	assert.Equal(t, Tally{}, r.L1)
	assert.Equal(t, Tally{}, r.L2)
	assert.Equal(t, Tally{}, r.Backing)
}

func TestInterpret_FillConfirmation_StillCompletesRequest(t *testing.T) {
	// GIVEN a miss whose completion is the line-fill confirmation hit
	events := []Event{
		issued(10, 0x10),
		l1Miss(11, 0x10),
		l2Miss(12, 0x10),
		l1Allocate(30),
		l1Hit(31, 0x10),
	}

	// WHEN interpreted
	r := Interpret(events, nil)

	// THEN the hit is excluded from the tally but completes the request
	assert.Equal(t, 0, r.L1.Hits)
	assert.Equal(t, []int64{21}, r.Latencies)
}

func TestInterpret_CountsIssuedRequests(t *testing.T) {
	events := []Event{
		issued(0, 0xa),
		issued(1, 0xb),
		{Timestamp: 2, Source: SourceRequest, Outcome: OutcomeNone},
	}
	r := Interpret(events, nil)
	assert.Equal(t, 2, r.Requests)
	assert.Equal(t, 2, r.Unmatched)
}

func TestInterpret_IgnoredRequestCountsAsUnmatched(t *testing.T) {
	// GIVEN a request issued while the slot is held, then both hits
	events := []Event{issued(0, 0xa), issued(1, 0xb), l1Hit(3, 0xa), l1Hit(4, 0xb)}

	// WHEN interpreted with single-slot
	r := Interpret(events, SingleSlot{})

	// THEN only the slot holder completes
	assert.Equal(t, []int64{3}, r.Latencies)
	assert.Equal(t, 1, r.Unmatched)

	// AND lookahead completes both
	assert.Equal(t, 0, Interpret(events, Lookahead{}).Unmatched)
}

func TestInterpret_Idempotent(t *testing.T) {
	// GIVEN an interleaved trace
	events := []Event{
		issued(0, 0xa), l1Miss(1, 0xa), l1Allocate(4), l1Hit(5, 0xa),
		issued(6, 0xb), l1Hit(7, 0xc), l1Hit(9, 0xb),
	}

	// WHEN interpreted twice
	first := Interpret(events, SingleSlot{})
	second := Interpret(events, SingleSlot{})

	// THEN both runs are identical
	assert.Equal(t, first, second)
	assert.Equal(t, []int64{5, 3}, first.Latencies)
}
