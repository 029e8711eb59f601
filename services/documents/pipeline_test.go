package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"worldbank-ingest/lib/runstats"
	"worldbank-ingest/lib/testutil"
	"worldbank-ingest/services/documents/db"

	"github.com/stretchr/testify/require"
)

const sampleText = `The World Bank Group works in every major area of development.
We provide a wide array of financial products and technical assistance,
and we help countries share and apply innovative knowledge and solutions
to the challenges they face across many regions and sectors worldwide.`

func TestProcess(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/documents",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewSqliteStore(setup.DB)
	qry := db.New(setup.DB)

	pdfs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "missing") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprint(w, sampleText)
	}))
	defer pdfs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	dl, err := NewDownloader(DownloaderOptions{
		Dir:           t.TempDir(),
		RatePerSecond: 1000,
	})
	require.NoError(t, err)

	docs := []Document{
		{Id: "D1", DocName: "Annual Report", PdfUrl: pdfs.URL + "/D1.pdf", DocDate: "2024-03-01", DocType: "Report", ReportNo: "RPT-1"},
		{Id: "D2"}, // no pdf url, skipped
		{Id: "D3", PdfUrl: pdfs.URL + "/missing.pdf"},
	}

	stats := &runstats.Stats{}
	Process(ctx, docs, dl, store, ProcessOptions{}, stats)

	require.Equal(t, int64(3), stats.Fetched())
	require.Equal(t, int64(1), stats.Downloaded())
	require.Equal(t, int64(1), stats.Extracted())
	require.Equal(t, int64(1), stats.Stored())
	require.Equal(t, int64(1), stats.Errors())

	count, err := qry.CountDocuments(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)

	stored, err := qry.GetDocument(ctx, "wb-pdf-D1")
	require.NoError(t, err)
	require.Equal(t, "Annual Report", stored.Title)
	require.Equal(t, "2024-03-01", stored.Date)
	require.Equal(t, "Report", stored.Type)
	require.Contains(t, stored.Content, "World Bank Group")

	var metadata Metadata
	err = json.Unmarshal([]byte(stored.Metadata), &metadata)
	require.NoError(t, err)
	require.Equal(t, "RPT-1", metadata.ReportNumber)
	require.Equal(t, "English", metadata.Language)
	require.Equal(t, 1, metadata.ReadingTime)
	require.Greater(t, metadata.WordCount, 0)
}

func TestProcessIdempotent(t *testing.T) {
	setup, cleanup := testutil.SetupService(t, testutil.ServiceParams{
		Name:     "services/documents",
		DbSchema: db.Schema,
	})
	defer cleanup()
	store := NewSqliteStore(setup.DB)
	qry := db.New(setup.DB)

	pdfs := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleText)
	}))
	defer pdfs.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	dir := t.TempDir()
	dl, err := NewDownloader(DownloaderOptions{Dir: dir, RatePerSecond: 1000})
	require.NoError(t, err)

	docs := []Document{{Id: "D1", DocName: "Report", PdfUrl: pdfs.URL + "/D1.pdf"}}

	stats := &runstats.Stats{}
	Process(ctx, docs, dl, store, ProcessOptions{}, stats)
	Process(ctx, docs, dl, store, ProcessOptions{}, stats)

	// the second run reuses the downloaded file and overwrites the
	// same row
	require.Equal(t, int64(1), stats.Downloaded())
	require.Equal(t, int64(2), stats.Stored())

	count, err := qry.CountDocuments(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestSearchMissingPayloadKey(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "infrastructure", r.URL.Query().Get("qterm"))
		require.Equal(t, "docdt", r.URL.Query().Get("srt"))
		fmt.Fprint(w, `{"total": 0}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	docs, err := NewSearcher(SearcherOptions{BaseUrl: server.URL}).Search(ctx, "infrastructure", 20)
	require.NoError(t, err)
	require.Empty(t, docs)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"documents": {"docs": [
			{"id": "D1", "docna": "Speech", "pdfurl": "http://example.com/d1.pdf"},
			{"id": "D2", "repnme": "Strategy Paper"}
		]}}`)
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	docs, err := NewSearcher(SearcherOptions{BaseUrl: server.URL}).Search(ctx, "anything", 20)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	require.Equal(t, "Speech", docs[0].Title())
	require.Equal(t, "Strategy Paper", docs[1].Title())
}
