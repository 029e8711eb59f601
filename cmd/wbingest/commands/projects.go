package commands

import (
	"errors"
	"log/slog"
	"os"

	"worldbank-ingest/lib/runstats"
	"worldbank-ingest/lib/serviceutil"
	"worldbank-ingest/lib/sqliteutil"
	"worldbank-ingest/lib/supabase"
	"worldbank-ingest/services/projects"
	projectsdb "worldbank-ingest/services/projects/db"

	"github.com/spf13/cobra"
)

var (
	projectsPages    *int
	projectsPageSize *int
	projectsWorkers  *int
	projectsDb       *string
	projectsJson     *string
	projectsSql      *string
	projectsSample   *int
)

func init() {
	projectsPages = projectsCmd.Flags().Int("pages", 50, "Number of pages to fetch.")
	projectsPageSize = projectsCmd.Flags().Int("page-size", 100, "Records per page.")
	projectsWorkers = projectsCmd.Flags().Int("workers", 10, "Max pages fetched concurrently.")
	projectsDb = projectsCmd.Flags().String("db", "", "Write to a local sqlite database at this path instead of supabase.")
	projectsJson = projectsCmd.Flags().String("json", "", "Also write all tagged records to this JSON file.")
	projectsSql = projectsCmd.Flags().String("sql", "", "Also write a sample SQL insert script to this file.")
	projectsSample = projectsCmd.Flags().Int("sample", 10, "How many records the sample SQL script includes.")
	rootCmd.AddCommand(projectsCmd)
}

// openProjectStore picks the destination store: supabase when
// credentials are configured, otherwise a local sqlite file. Having
// neither is a fatal configuration error.
func openProjectStore(cmd *cobra.Command, cfg Config) projects.Store {
	if cfg.hasSupabase() {
		client, err := supabase.NewClient(cfg.Supabase)
		if err != nil {
			serviceutil.Fatal("failed to initialize supabase client", err)
		}
		store := projects.NewSupabaseStore(client)
		err = client.Table(projects.SupabaseTable).Ping(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to reach the supabase table", err)
		}
		slog.Info("writing to supabase", "table", projects.SupabaseTable)
		return store
	}

	if *projectsDb != "" {
		database, err := sqliteutil.OpenDB(projectsdb.Schema, *projectsDb)
		if err != nil {
			serviceutil.Fatal("failed to open db", err)
		}
		slog.Info("writing to local sqlite", "path", *projectsDb)
		return projects.NewSqliteStore(database)
	}

	serviceutil.Fatal(
		"no destination store configured",
		errors.New("set supabase credentials in config.json5 (or env) or pass --db"),
	)
	return nil
}

var projectsCmd = &cobra.Command{
	Use:   "projects [--pages <n>] [--db <path/to/output.db>]",
	Short: "Fetches projects in parallel, tags them by size and upserts them into the store.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		store := openProjectStore(cmd, cfg)

		fetcher := projects.NewFetcher(projects.FetcherOptions{
			FiscalYears: cfg.FiscalYears,
		})

		slog.Info("fetching projects", "pages", *projectsPages, "workers", *projectsWorkers)
		result := projects.Collect(cmd.Context(), fetcher, projects.CollectOptions{
			Pages:    *projectsPages,
			PageSize: *projectsPageSize,
			Workers:  *projectsWorkers,
			OnProgress: func(done, total, records int) {
				slog.Info("progress", "pages", done, "of", total, "records", records)
			},
		})
		slog.Info("fetch complete", "records", len(result.Records), "failed_pages", result.FailedPages)

		stats := &runstats.Stats{}
		stats.AddFetched(int64(len(result.Records)))

		tagged := projects.TagAll(result.Records)

		if *projectsJson != "" {
			err := projects.WriteJSON(*projectsJson, tagged)
			if err != nil {
				serviceutil.Fatal("failed to write JSON export", err)
			}
			slog.Info("wrote JSON export", "path", *projectsJson)
		}
		if *projectsSql != "" {
			err := projects.WriteSampleSQL(*projectsSql, tagged, *projectsSample)
			if err != nil {
				serviceutil.Fatal("failed to write sample SQL", err)
			}
			slog.Info("wrote sample SQL", "path", *projectsSql)
		}

		projects.PersistAll(cmd.Context(), store, tagged, stats)

		slog.Info("run complete", "stats", stats)
		projects.Summarize(tagged, stats).Render(os.Stdout)
	},
}
