package projects

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "json", r.URL.Query().Get("format"))
		require.Equal(t, "2023,2024", r.URL.Query().Get("appr_yr"))
		require.Equal(t, "100", r.URL.Query().Get("rows"))
		// page 3 at 100 records per page starts at offset 200
		require.Equal(t, "200", r.URL.Query().Get("os"))

		fmt.Fprint(w, `{
			"total": 2,
			"projects": {
				"P100": {"id": "P100", "totalcommamt": "10,000,000"},
				"P101": {"id": "P101", "countrycode": ["KE"]}
			}
		}`)
	}))
	defer server.Close()

	fetcher := NewFetcher(FetcherOptions{
		BaseUrl:     server.URL,
		FiscalYears: []int{2023, 2024},
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	records, err := fetcher.FetchPage(ctx, 3, 100)
	require.NoError(t, err)
	require.Len(t, records, 2)

	ids := map[string]bool{}
	for _, r := range records {
		ids[r.Id] = true
	}
	require.True(t, ids["P100"])
	require.True(t, ids["P101"])
}

func TestFetchPageFailures(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	{
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		records, err := NewFetcher(FetcherOptions{BaseUrl: server.URL}).FetchPage(ctx, 1, 100)
		require.Error(t, err)
		require.Empty(t, records)
	}
	{
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `this is not json`)
		}))
		defer server.Close()

		records, err := NewFetcher(FetcherOptions{BaseUrl: server.URL}).FetchPage(ctx, 1, 100)
		require.Error(t, err)
		require.Empty(t, records)
	}
	{
		// a body without the payload key is zero results, not an error
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, `{"total": 0}`)
		}))
		defer server.Close()

		records, err := NewFetcher(FetcherOptions{BaseUrl: server.URL}).FetchPage(ctx, 1, 100)
		require.NoError(t, err)
		require.Empty(t, records)
	}
}
