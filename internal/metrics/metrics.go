// Package metrics exports trace summaries in the Prometheus text format, for
// the node exporter textfile collector or any scraper reading .prom files.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/inference-sim/memtrace/trace"
)

// Run pairs a trace file with its summary. Summaries are exported in raw
// timestamp units.
type Run struct {
	File    string
	Summary trace.Summary
}

// Gauges holds the exported metric families, registered on one registry.
type Gauges struct {
	LevelAccesses *prometheus.GaugeVec
	LevelHits     *prometheus.GaugeVec
	LevelMisses   *prometheus.GaugeVec
	LevelHitRatio *prometheus.GaugeVec

	AMAT              *prometheus.GaugeVec
	LatencySamples    *prometheus.GaugeVec
	RequestsIssued    *prometheus.GaugeVec
	RequestsUnmatched *prometheus.GaugeVec
	FillConfirmations *prometheus.GaugeVec
}

// NewGauges registers the memtrace metric families on reg.
func NewGauges(reg prometheus.Registerer) *Gauges {
	factory := promauto.With(reg)
	levelLabels := []string{"file", "level"}
	fileLabels := []string{"file"}
	return &Gauges{
		LevelAccesses: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_level_accesses",
			Help: "User-visible accesses (hits + misses) at a hierarchy level",
		}, levelLabels),
		LevelHits: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_level_hits",
			Help: "Hits at a hierarchy level",
		}, levelLabels),
		LevelMisses: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_level_misses",
			Help: "Misses at a hierarchy level",
		}, levelLabels),
		LevelHitRatio: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_level_hit_ratio",
			Help: "Hits divided by accesses; absent when a level saw no accesses",
		}, levelLabels),
		AMAT: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_amat",
			Help: "Average memory access time in trace timestamp units; absent without samples",
		}, fileLabels),
		LatencySamples: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_latency_samples",
			Help: "Requests with a recovered completion",
		}, fileLabels),
		RequestsIssued: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_requests_issued",
			Help: "Request-issued events in the trace",
		}, fileLabels),
		RequestsUnmatched: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_requests_unmatched",
			Help: "Requests with no recovered completion",
		}, fileLabels),
		FillConfirmations: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "memtrace_l1_fill_confirmations",
			Help: "L1 hits excluded because they confirm a line fill",
		}, fileLabels),
	}
}

// Observe sets every gauge for one run.
func (g *Gauges) Observe(run Run) {
	s := run.Summary
	for _, lvl := range []struct {
		name string
		sum  trace.LevelSummary
	}{
		{"l1", s.L1},
		{"l2", s.L2},
		{"backing", s.Backing},
	} {
		g.LevelAccesses.WithLabelValues(run.File, lvl.name).Set(float64(lvl.sum.Accesses))
		g.LevelHits.WithLabelValues(run.File, lvl.name).Set(float64(lvl.sum.Hits))
		g.LevelMisses.WithLabelValues(run.File, lvl.name).Set(float64(lvl.sum.Misses))
		if lvl.sum.HitRate != nil {
			g.LevelHitRatio.WithLabelValues(run.File, lvl.name).Set(*lvl.sum.HitRate)
		}
	}
	if s.AMAT != nil {
		g.AMAT.WithLabelValues(run.File).Set(*s.AMAT)
	}
	g.LatencySamples.WithLabelValues(run.File).Set(float64(s.Completed))
	g.RequestsIssued.WithLabelValues(run.File).Set(float64(s.Requests))
	g.RequestsUnmatched.WithLabelValues(run.File).Set(float64(s.Unmatched))
	g.FillConfirmations.WithLabelValues(run.File).Set(float64(s.Fills))
}

// WriteTextfile writes the metrics of runs to path atomically.
func WriteTextfile(path string, runs []Run) error {
	reg := prometheus.NewRegistry()
	g := NewGauges(reg)
	for _, run := range runs {
		g.Observe(run)
	}
	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
