package documents

import (
	"context"
	"log/slog"
	"os"
	"time"

	"worldbank-ingest/lib/runstats"

	"go.opentelemetry.io/otel/attribute"
)

// documents with less extracted text than this are assumed to be
// scanned images and skipped
const minTextLength = 100

type ProcessOptions struct {
	// defaults to PlainTextExtractor
	Extractor Extractor
}

// Process runs every document through download, extraction and
// storage. Each document is handled independently: a failure is
// counted against the run and the loop moves on, the batch never
// aborts.
func Process(ctx context.Context, docs []Document, dl Downloader, store Store, opts ProcessOptions, stats *runstats.Stats) {
	ctx, span := tracer.Start(ctx, "Process")
	defer span.End()

	extractor := opts.Extractor
	if extractor == nil {
		extractor = PlainTextExtractor{}
	}

	for i, doc := range docs {
		stats.AddFetched(1)
		slog.InfoContext(ctx, "processing document", "index", i+1, "total", len(docs), "id", doc.Id, "title", doc.Title())

		if doc.PdfUrl == "" {
			slog.WarnContext(ctx, "no pdf url, skipping", "id", doc.Id)
			continue
		}

		path, fresh, err := dl.Download(ctx, doc)
		if err != nil {
			slog.ErrorContext(ctx, "download failed", "id", doc.Id, "err", err)
			stats.AddErrors(1)
			continue
		}
		if fresh {
			stats.AddDownloaded(1)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			slog.ErrorContext(ctx, "failed to read downloaded pdf", "id", doc.Id, "err", err)
			stats.AddErrors(1)
			continue
		}

		fullText, err := extractor.Extract(raw)
		if err != nil {
			slog.ErrorContext(ctx, "extraction failed", "id", doc.Id, "err", err)
			stats.AddErrors(1)
			continue
		}
		if len(fullText) < minTextLength {
			slog.WarnContext(ctx, "no usable text extracted, skipping", "id", doc.Id, "chars", len(fullText))
			continue
		}
		stats.AddExtracted(1)

		err = store.Upsert(ctx, RowFromDocument(doc, fullText, time.Now()))
		if err != nil {
			slog.ErrorContext(ctx, "store failed", "id", doc.Id, "err", err)
			stats.AddErrors(1)
			continue
		}
		stats.AddStored(1)
	}

	span.SetAttributes(
		attribute.Int64("stored", stats.Stored()),
		attribute.Int64("errors", stats.Errors()),
	)
}
