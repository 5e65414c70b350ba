package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/memtrace/sweep"
)

func TestRunSweep_ReadsAnalyzeOutput(t *testing.T) {
	// GIVEN analyze text output for two associativities, with sweep headers
	var log bytes.Buffer
	for _, ways := range []string{"8", "2"} {
		log.WriteString("=== NUM_WAYS = " + ways + " ===\n")
		log.WriteString("SEED = 42\n")
		path := writeTrace(t, "run.log", overlappingTrace)
		require.NoError(t, runAnalyze(context.Background(), &log, []string{path}, defaultSettings()))
	}
	summaryPath := writeTrace(t, "sweep.txt", log.String())

	// WHEN the combined output is swept to JSON
	var out bytes.Buffer
	require.NoError(t, runSweep(&out, summaryPath, "json"))

	// THEN one series holds both runs ordered by NUM_WAYS
	var series []sweep.Series
	require.NoError(t, json.Unmarshal(out.Bytes(), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "seed_42", series[0].Test)
	require.Len(t, series[0].Records, 2)
	assert.Equal(t, 2, series[0].Records[0].NumWays)
	assert.Equal(t, 8, series[0].Records[1].NumWays)
	assert.Equal(t, 10.0, series[0].Records[0].AMAT)
	require.NotNil(t, series[0].Records[0].L1HitRate)
	assert.Equal(t, 50.0, *series[0].Records[0].L1HitRate)
}

func TestRunSweep_Formats(t *testing.T) {
	path := writeTrace(t, "sweep.txt", "=== NUM_WAYS = 4 ===\nIncremental Addresses\n"+
		"L1 accesses: 2, hits: 1, misses: 1, hit rate: 50.00%\n"+
		"Average Memory Access Time (AMAT): 3.00 cycles (from timestamps)\n")

	tests := []struct {
		format string
		want   string
	}{
		{"table", "incremental"},
		{"csv", "incremental,4,3.00,50.00,n/a"},
		{"yaml", "test: incremental"},
		{"json", `"test": "incremental"`},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, runSweep(&out, path, tt.format))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestRunSweep_UnknownFormat_Errors(t *testing.T) {
	path := writeTrace(t, "sweep.txt", "")
	err := runSweep(&bytes.Buffer{}, path, "xml")
	assert.ErrorContains(t, err, `unknown sweep format "xml"`)
	assert.False(t, ValidSweepFormats["xml"])
}
