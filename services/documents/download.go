package documents

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"worldbank-ingest/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"
)

type DownloaderOptions struct {
	// directory pdfs get saved into, created if missing
	Dir string
	// downloads per second against the document servers, defaults to 1
	RatePerSecond float64
	// defaults to 60 seconds
	Timeout time.Duration
}

// Downloader saves document pdfs to a local directory, skipping files
// that a previous run already fetched.
type Downloader struct {
	http *resty.Client
	dir  string
}

func NewDownloader(opts DownloaderOptions) (Downloader, error) {
	err := os.MkdirAll(opts.Dir, 0755)
	if err != nil {
		return Downloader{}, err
	}

	ratePerSecond := opts.RatePerSecond
	if ratePerSecond == 0 {
		ratePerSecond = 1
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 60
	}

	client := resty.New()
	client.SetTimeout(timeout)
	limiter := rate.NewLimiter(rate.Limit(ratePerSecond), 1)
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		return limiter.Wait(req.Context())
	})
	telemetry.InstrumentResty(client, tracer)

	return Downloader{http: client, dir: opts.Dir}, nil
}

// Download fetches the document's pdf into the download directory and
// returns the local path. `fresh` is false when the file was already
// on disk from an earlier run and no request was made.
func (d Downloader) Download(ctx context.Context, doc Document) (path string, fresh bool, err error) {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()
	span.SetAttributes(attribute.String("id", doc.Id))

	if doc.PdfUrl == "" {
		return "", false, fmt.Errorf("document %s has no pdf url", doc.Id)
	}

	path = filepath.Join(d.dir, fmt.Sprintf("%s.pdf", doc.Id))
	_, statErr := os.Stat(path)
	if statErr == nil {
		return path, false, nil
	}

	res, err := d.http.R().
		SetContext(ctx).
		Get(doc.PdfUrl)
	if err != nil {
		return "", false, fmt.Errorf("download %s: %w", doc.Id, err)
	}
	if res.IsError() {
		return "", false, fmt.Errorf("download %s: %s", doc.Id, res.Status())
	}

	err = os.WriteFile(path, res.Body(), 0644)
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}
