package projects

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultWorkers  = 10
	DefaultPageSize = 100

	// progress is reported every this many completed pages
	progressInterval = 10
)

type CollectOptions struct {
	// number of pages to fetch, pages 1 through Pages inclusive
	Pages    int
	PageSize int
	// max pages in flight at once, defaults to DefaultWorkers
	Workers int
	// called every few completions with (pages done, pages total,
	// records so far). optional.
	OnProgress func(done, total, records int)
}

// CollectResult is the merged output of a collection run. Records are
// appended in completion order, which is not page order; consumers that
// need a stable order must sort on a record field themselves.
type CollectResult struct {
	Records []Project
	// pages whose fetch failed and degraded to zero records
	FailedPages int
}

// Collect fans one FetchPage call per page out over a bounded worker
// pool and merges everything into a single slice. A failed page never
// fails the run, it only shrinks the yield; Collect returns once every
// scheduled page has completed one way or the other.
func Collect(ctx context.Context, fetcher Fetcher, opts CollectOptions) CollectResult {
	ctx, span := tracer.Start(ctx, "Collect")
	defer span.End()

	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	pageSize := opts.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	jobs := make(chan int)

	var mu sync.Mutex
	var result CollectResult
	done := 0

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for page := range jobs {
				records, err := fetcher.FetchPage(ctx, page, pageSize)
				if err != nil {
					slog.WarnContext(ctx, "page fetch failed", "page", page, "err", err)
				}

				mu.Lock()
				result.Records = append(result.Records, records...)
				if err != nil {
					result.FailedPages++
				}
				done++
				completed := done
				total := len(result.Records)
				mu.Unlock()

				if opts.OnProgress != nil && completed%progressInterval == 0 {
					opts.OnProgress(completed, opts.Pages, total)
				}
			}
		}()
	}

	// a cancelled context stops the scheduling of new pages, in-flight
	// pages finish or time out on their own
schedule:
	for page := 1; page <= opts.Pages; page++ {
		select {
		case jobs <- page:
		case <-ctx.Done():
			break schedule
		}
	}
	close(jobs)
	wg.Wait()

	span.SetAttributes(
		attribute.Int("records", len(result.Records)),
		attribute.Int("failed_pages", result.FailedPages),
	)
	return result
}
