package projects

import (
	"strings"
	"testing"

	"worldbank-ingest/lib/runstats"

	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	tagged := TagAll([]Project{
		{Id: "P1", TotalCommAmt: "5,000,000"},
		{Id: "P2", TotalCommAmt: "6,000,000"},
		{Id: "P3", TotalCommAmt: "7,000,000"},
		{Id: "P4", TotalCommAmt: "600,000,000"},
		{Id: "P5"},
	})

	stats := &runstats.Stats{}
	stats.AddFetched(5)
	stats.AddStored(4)

	summary := Summarize(tagged, stats)

	require.Len(t, summary.Buckets, 3)
	require.Equal(t, SizeSmall, summary.Buckets[0].Category)
	require.Equal(t, 3, summary.Buckets[0].Count)
	// tie between NoFinancing and Mega breaks by bucket rank
	require.Equal(t, SizeNoFinancing, summary.Buckets[1].Category)
	require.Equal(t, SizeMega, summary.Buckets[2].Category)

	// 5+6+7+600 million = 0.618 billion
	require.InDelta(t, 0.618, summary.TotalCommitmentBillions, 0.0001)
	require.InDelta(t, 80.0, summary.SuccessRatePercent, 0.0001)
}

func TestSummarizeEmptyRun(t *testing.T) {
	stats := &runstats.Stats{}
	summary := Summarize(nil, stats)

	require.Empty(t, summary.Buckets)
	require.Equal(t, 0.0, summary.TotalCommitmentBillions)
	// no fetches must report 0%, not a division error
	require.Equal(t, 0.0, summary.SuccessRatePercent)
}

func TestSummaryRender(t *testing.T) {
	tagged := TagAll([]Project{
		{Id: "P1", TotalCommAmt: "15,000,000"},
	})
	stats := &runstats.Stats{}
	stats.AddFetched(1)
	stats.AddStored(1)

	var out strings.Builder
	Summarize(tagged, stats).Render(&out)

	rendered := out.String()
	require.Contains(t, rendered, "Medium ($10-50M)")
	require.Contains(t, rendered, "Total commitment: $0.0B")
	require.Contains(t, rendered, "Success rate: 100.0%")
}
