package trace

// LevelSummary reports the accesses of one hierarchy level. HitRate is nil
// when the level saw no accesses.
type LevelSummary struct {
	Accesses int      `yaml:"accesses" json:"accesses"`
	Hits     int      `yaml:"hits" json:"hits"`
	Misses   int      `yaml:"misses" json:"misses"`
	HitRate  *float64 `yaml:"hit_rate,omitempty" json:"hit_rate,omitempty"`
}

// Summary aggregates a Result into reportable metrics. AMAT and Latency are
// nil when no request completion was recovered.
type Summary struct {
	L1      LevelSummary  `yaml:"l1" json:"l1"`
	L2      LevelSummary  `yaml:"l2" json:"l2"`
	Backing LevelSummary  `yaml:"backing" json:"backing"`
	AMAT    *float64      `yaml:"amat,omitempty" json:"amat,omitempty"`
	Latency *LatencyStats `yaml:"latency,omitempty" json:"latency,omitempty"`

	Requests  int `yaml:"requests" json:"requests"`
	Completed int `yaml:"completed" json:"completed"`
	Unmatched int `yaml:"unmatched" json:"unmatched"`
	Fills     int `yaml:"fills" json:"fills"`
}

// Summarize derives hit rates and the average memory access time from r.
// Values are in raw timestamp units.
func Summarize(r Result) Summary {
	s := Summary{
		L1:        summarizeLevel(r.L1),
		L2:        summarizeLevel(r.L2),
		Backing:   summarizeLevel(r.Backing),
		Latency:   NewLatencyStats(r.Latencies),
		Requests:  r.Requests,
		Completed: len(r.Latencies),
		Unmatched: r.Unmatched,
		Fills:     r.Fills,
	}
	if s.Latency != nil {
		amat := s.Latency.Mean
		s.AMAT = &amat
	}
	return s
}

func summarizeLevel(t Tally) LevelSummary {
	ls := LevelSummary{
		Accesses: t.Accesses(),
		Hits:     t.Hits,
		Misses:   t.Misses,
	}
	if ls.Accesses > 0 {
		rate := float64(t.Hits) / float64(ls.Accesses)
		ls.HitRate = &rate
	}
	return ls
}

// Scaled returns a copy of s with AMAT and latency statistics divided by
// divisor. Counts and hit rates are unchanged. A non-positive divisor
// returns s as is.
func (s Summary) Scaled(divisor float64) Summary {
	if divisor <= 0 || divisor == 1 {
		return s
	}
	out := s
	if s.AMAT != nil {
		amat := *s.AMAT / divisor
		out.AMAT = &amat
	}
	out.Latency = s.Latency.Scaled(divisor)
	return out
}
