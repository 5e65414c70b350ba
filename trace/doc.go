// Package trace interprets memory-hierarchy logs produced by an external cache
// simulator.
//
// # Reading Guide
//
//   - tokenizer.go: raw line -> LogLine (timestamp + body), malformed lines dropped
//   - classifier.go: LogLine -> Event (source x outcome, optional address)
//   - interpreter.go: []Event -> Result (per-level tallies, latency samples)
//   - matcher.go: request/completion matching policies (single-slot, lookahead)
//   - summary.go: Result -> Summary (accesses, hit rates, AMAT, latency stats)
//
// The package does not log and holds no global state. Interpret is a pure
// function of its event slice: running it twice yields identical results.
//
// Timestamps are assumed non-decreasing in line order. This is a precondition
// on the input and is not checked.
package trace
