package projects

import (
	"fmt"
	"io"
	"sort"

	"worldbank-ingest/lib/runstats"

	"github.com/jedib0t/go-pretty/v6/table"
)

type BucketCount struct {
	Category SizeCategory
	Count    int
}

// Summary is the run report: how many projects landed in each size
// bucket, the total commitment across the run and the store success
// rate. It is computed from its inputs without mutating them.
type Summary struct {
	// sorted by count descending, bucket rank breaks ties
	Buckets []BucketCount
	// total commitment across all tagged records, in billions
	TotalCommitmentBillions float64
	SuccessRatePercent      float64
}

func Summarize(tagged []Tagged, stats *runstats.Stats) Summary {
	counts := map[SizeCategory]int{}
	var totalMillions float64
	for _, t := range tagged {
		counts[t.Size]++
		totalMillions += t.CommitmentMillions
	}

	buckets := make([]BucketCount, 0, len(counts))
	for category, count := range counts {
		buckets = append(buckets, BucketCount{Category: category, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Category < buckets[j].Category
	})

	return Summary{
		Buckets:                 buckets,
		TotalCommitmentBillions: totalMillions / 1000,
		SuccessRatePercent:      stats.SuccessRate(),
	}
}

// Render prints the summary as a table followed by the run totals.
func (s Summary) Render(w io.Writer) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Size", "Projects"})
	for _, b := range s.Buckets {
		t.AppendRow(table.Row{b.Category.String(), b.Count})
	}
	t.Render()

	fmt.Fprintf(w, "Total commitment: $%.1fB\n", s.TotalCommitmentBillions)
	fmt.Fprintf(w, "Success rate: %.1f%%\n", s.SuccessRatePercent)
}
