package projects

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// serves a deterministic record per (page, index) so tests can verify
// the merged multiset regardless of completion order
func pagedServer(t *testing.T, pages, pageSize, recordsPerPage int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, err := strconv.Atoi(r.URL.Query().Get("os"))
		require.NoError(t, err)
		page := offset/pageSize + 1
		if page > pages {
			fmt.Fprint(w, `{"total": 0}`)
			return
		}

		fmt.Fprint(w, `{"projects": {`)
		for i := 0; i < recordsPerPage; i++ {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			id := fmt.Sprintf("P%d-%d", page, i)
			fmt.Fprintf(w, `"%s": {"id": "%s"}`, id, id)
		}
		fmt.Fprint(w, `}}`)
	}))
}

func TestCollectMergesAllPages(t *testing.T) {
	const pages = 7
	const recordsPerPage = 3

	server := pagedServer(t, pages, 10, recordsPerPage)
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{BaseUrl: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	result := Collect(ctx, fetcher, CollectOptions{
		Pages:    pages,
		PageSize: 10,
		Workers:  3,
	})
	require.Equal(t, 0, result.FailedPages)
	require.Len(t, result.Records, pages*recordsPerPage)

	// every page-level record shows up exactly once
	seen := map[string]int{}
	for _, r := range result.Records {
		seen[r.Id]++
	}
	for page := 1; page <= pages; page++ {
		for i := 0; i < recordsPerPage; i++ {
			require.Equal(t, 1, seen[fmt.Sprintf("P%d-%d", page, i)])
		}
	}
}

func TestCollectAllPagesFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{BaseUrl: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	result := Collect(ctx, fetcher, CollectOptions{Pages: 5, PageSize: 10, Workers: 2})
	require.Empty(t, result.Records)
	require.Equal(t, 5, result.FailedPages)
}

func TestCollectPartialFailure(t *testing.T) {
	var calls atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		offset, _ := strconv.Atoi(r.URL.Query().Get("os"))
		page := offset/10 + 1
		calls.Add(1)
		if page == 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `{"projects": {"P%d": {"id": "P%d"}}}`, page, page)
	}))
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{BaseUrl: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	result := Collect(ctx, fetcher, CollectOptions{Pages: 4, PageSize: 10, Workers: 4})
	require.Equal(t, 1, result.FailedPages)
	require.Len(t, result.Records, 3)
	// every scheduled page was attempted exactly once
	require.Equal(t, int64(4), calls.Load())
}

func TestCollectProgress(t *testing.T) {
	server := pagedServer(t, 20, 10, 1)
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{BaseUrl: server.URL})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	var reports atomic.Int64
	Collect(ctx, fetcher, CollectOptions{
		Pages:    20,
		PageSize: 10,
		Workers:  5,
		OnProgress: func(done, total, records int) {
			reports.Add(1)
			require.Equal(t, 20, total)
		},
	})
	// 20 pages at one report per 10 completions
	require.Equal(t, int64(2), reports.Load())
}
