package sweep

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sweepOutput = `
=== NUM_WAYS = 4 ===
SEED = 7
L1 accesses: 100, hits: 80, misses: 20, hit rate: 80.00%
L2 accesses: 20, hits: 5, misses: 15, hit rate: 25.00%
Average Memory Access Time (AMAT): 12.50 cycles (from timestamps)
Incremental Addresses
L1 accesses: 100, hits: 90, misses: 10, hit rate: 90.00%
L2 accesses: 0, hits: 0, misses: 0, hit rate: n/a
Average Memory Access Time: 3.25 cycles
=== NUM_WAYS = 2 ===
SEED=7
L1 accesses: 100, hits: 60, misses: 40, hit rate: 60.00%
L2 accesses: 40, hits: 10, misses: 30, hit rate: 25.00%
Average Memory Access Time (AMAT): 20.00 cycles (from timestamps)
Incremental Addresses
L1 accesses: 0, hits: 0, misses: 0, hit rate: n/a
No completed CPU accesses found to compute AMAT.
`

func TestParse_RecordsPerAMATLine(t *testing.T) {
	// GIVEN the concatenated output of a NUM_WAYS sweep
	// WHEN parsed
	records, err := Parse(strings.NewReader(sweepOutput))
	require.NoError(t, err)

	// THEN one record per AMAT line, keyed by the latest headers
	require.Len(t, records, 3)

	assert.Equal(t, 4, records[0].NumWays)
	assert.Equal(t, "seed_7", records[0].Test)
	assert.Equal(t, 12.5, records[0].AMAT)
	assert.Equal(t, "cycles", records[0].Unit)
	require.NotNil(t, records[0].L1HitRate)
	assert.Equal(t, 80.0, *records[0].L1HitRate)
	assert.Equal(t, 25.0, *records[0].L2HitRate)

	assert.Equal(t, TestIncremental, records[1].Test)
	assert.Equal(t, 3.25, records[1].AMAT)
	assert.Nil(t, records[1].L2HitRate, "n/a hit rate stays absent")

	assert.Equal(t, 2, records[2].NumWays)
	assert.Equal(t, "seed_7", records[2].Test)
}

func TestParse_HeadersCarryOverAcrossRuns(t *testing.T) {
	out := "=== NUM_WAYS = 8 ===\nSEED = 1\n" +
		"Average Memory Access Time: 1.00 cycles\n" +
		"Average Memory Access Time: 2.00 cycles\n"
	records, err := Parse(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, records[0].NumWays, records[1].NumWays)
	assert.Equal(t, "seed_1", records[1].Test)
	assert.Nil(t, records[1].L1HitRate)
}

func TestParse_NoRuns_Empty(t *testing.T) {
	records, err := Parse(strings.NewReader("nothing to see\n"))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGroupByTest_OrdersByWays(t *testing.T) {
	// GIVEN records from a sweep run largest-first
	records, err := Parse(strings.NewReader(sweepOutput))
	require.NoError(t, err)

	// WHEN grouped
	series := GroupByTest(records)

	// THEN tests keep first-appearance order and points ascend by NUM_WAYS
	require.Len(t, series, 2)
	assert.Equal(t, "seed_7", series[0].Test)
	require.Len(t, series[0].Records, 2)
	assert.Equal(t, 2, series[0].Records[0].NumWays)
	assert.Equal(t, 4, series[0].Records[1].NumWays)
	assert.Equal(t, TestIncremental, series[1].Test)
	assert.Len(t, series[1].Records, 1)
}

func TestWriteCSV(t *testing.T) {
	records, err := Parse(strings.NewReader(sweepOutput))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, GroupByTest(records)))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "test,num_ways,amat,l1_hit_rate,l2_hit_rate", lines[0])
	assert.Equal(t, "seed_7,2,20.00,60.00,25.00", lines[1])
	assert.Equal(t, "incremental,4,3.25,90.00,n/a", lines[3])
}

func TestWriteTable(t *testing.T) {
	records, err := Parse(strings.NewReader(sweepOutput))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, GroupByTest(records)))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "TEST"))
	assert.Contains(t, out, "incremental")
	assert.Equal(t, 4, strings.Count(out, "\n"))
}
