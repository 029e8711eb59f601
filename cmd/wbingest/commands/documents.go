package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"worldbank-ingest/lib/runstats"
	"worldbank-ingest/lib/serviceutil"
	"worldbank-ingest/lib/sqliteutil"
	"worldbank-ingest/lib/supabase"
	"worldbank-ingest/services/documents"
	documentsdb "worldbank-ingest/services/documents/db"

	"github.com/spf13/cobra"
)

var (
	documentsMax  *int
	documentsDir  *string
	documentsDb   *string
	documentsRate *float64
)

func init() {
	documentsMax = documentsCmd.Flags().Int("max", 20, "Max documents to fetch.")
	documentsDir = documentsCmd.Flags().String("dir", "data/worldbank_pdfs", "Directory pdfs are downloaded into.")
	documentsDb = documentsCmd.Flags().String("db", "", "Write to a local sqlite database at this path instead of supabase.")
	documentsRate = documentsCmd.Flags().Float64("rate", 1, "Max pdf downloads per second.")
	rootCmd.AddCommand(documentsCmd)
}

func openDocumentStore(cmd *cobra.Command, cfg Config) documents.Store {
	if cfg.hasSupabase() {
		client, err := supabase.NewClient(cfg.Supabase)
		if err != nil {
			serviceutil.Fatal("failed to initialize supabase client", err)
		}
		store := documents.NewSupabaseStore(client)
		err = client.Table(documents.SupabaseTable).Ping(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to reach the supabase table", err)
		}
		slog.Info("writing to supabase", "table", documents.SupabaseTable)
		return store
	}

	if *documentsDb != "" {
		database, err := sqliteutil.OpenDB(documentsdb.Schema, *documentsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		slog.Info("writing to local sqlite", "path", *documentsDb)
		return documents.NewSqliteStore(database)
	}

	serviceutil.Fatal(
		"no destination store configured",
		errors.New("set supabase credentials in config.json5 (or env) or pass --db"),
	)
	return nil
}

var documentsCmd = &cobra.Command{
	Use:   "documents [query] [--max <n>] [--db <path/to/output.db>]",
	Short: "Searches documents, downloads their pdfs, extracts text and upserts the results.",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		query := "Ajay Banga"
		if len(args) > 0 {
			query = args[0]
		}

		cfg := readConfig()
		store := openDocumentStore(cmd, cfg)

		searcher := documents.NewSearcher(documents.SearcherOptions{})

		slog.Info("searching documents", "query", query, "max", *documentsMax)
		docs, err := searcher.Search(cmd.Context(), query, *documentsMax)
		if err != nil {
			serviceutil.Fatal("document search failed", err)
		}
		if len(docs) == 0 {
			slog.Info("no documents found")
			return
		}
		slog.Info("found documents", "count", len(docs))

		dl, err := documents.NewDownloader(documents.DownloaderOptions{
			Dir:           *documentsDir,
			RatePerSecond: *documentsRate,
		})
		if err != nil {
			serviceutil.Fatal("failed to initialize downloader", err)
		}

		stats := &runstats.Stats{}
		documents.Process(cmd.Context(), docs, dl, store, documents.ProcessOptions{}, stats)

		slog.Info("run complete", "stats", stats)
		fmt.Printf("Success rate: %.1f%%\n", stats.SuccessRate())
	},
}
