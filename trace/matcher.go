package trace

import "fmt"

// MatchPolicy recovers per-request latencies by pairing issued requests with
// the LEVEL1 hits that complete them. Implementations must not retain events
// between calls.
type MatchPolicy interface {
	Match(events []Event) []int64
}

// Policy names accepted by NewMatchPolicy.
const (
	PolicySingleSlot = "single-slot"
	PolicyLookahead  = "lookahead"
)

// ValidMatchPolicies is the set of recognized matching policy names.
// Empty selects single-slot.
var ValidMatchPolicies = map[string]bool{"": true, PolicySingleSlot: true, PolicyLookahead: true}

// IsValidMatchPolicy returns true if name is a recognized matching policy.
func IsValidMatchPolicy(name string) bool {
	return ValidMatchPolicies[name]
}

// NewMatchPolicy creates a matching policy by name. An empty string defaults
// to SingleSlot.
func NewMatchPolicy(name string) (MatchPolicy, error) {
	switch name {
	case "", PolicySingleSlot:
		return SingleSlot{}, nil
	case PolicyLookahead:
		return Lookahead{}, nil
	default:
		return nil, fmt.Errorf("unknown match policy %q", name)
	}
}

// SingleSlot models a pipeline with one outstanding access. The first issued
// request occupies the slot; further requests are ignored until a LEVEL1 hit
// for the slot's address clears it. A slot still open at end of trace is
// dropped.
type SingleSlot struct{}

func (SingleSlot) Match(events []Event) []int64 {
	var (
		latencies []int64
		open      bool
		addr      uint64
		issuedAt  int64
	)
	for _, ev := range events {
		switch {
		case !open && ev.Is(SourceRequest, OutcomeIssued):
			open, addr, issuedAt = true, ev.Address, ev.Timestamp
		case open && ev.Is(SourceLevel1, OutcomeHit) && ev.SameAddress(addr):
			latencies = append(latencies, ev.Timestamp-issuedAt)
			open = false
		}
	}
	return latencies
}

// Lookahead matches every issued request to the first later LEVEL1 hit for
// its address, regardless of other requests in flight. One hit may complete
// several requests. Samples are returned in request issue order.
type Lookahead struct{}

func (Lookahead) Match(events []Event) []int64 {
	type request struct {
		issuedAt int64
		latency  int64
		done     bool
	}
	var requests []*request
	pending := make(map[uint64][]*request)

	for _, ev := range events {
		switch {
		case ev.Is(SourceRequest, OutcomeIssued):
			req := &request{issuedAt: ev.Timestamp}
			requests = append(requests, req)
			pending[ev.Address] = append(pending[ev.Address], req)
		case ev.Is(SourceLevel1, OutcomeHit) && ev.HasAddress:
			for _, req := range pending[ev.Address] {
				req.latency, req.done = ev.Timestamp-req.issuedAt, true
			}
			delete(pending, ev.Address)
		}
	}

	var latencies []int64
	for _, req := range requests {
		if req.done {
			latencies = append(latencies, req.latency)
		}
	}
	return latencies
}
