package projects

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"worldbank-ingest/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/projects")

const DefaultBaseUrl = "https://search.worldbank.org/api/v2/projects"

type FetcherOptions struct {
	// defaults to DefaultBaseUrl
	BaseUrl string
	// approval fiscal years to filter on, e.g. 2023, 2024, 2025
	FiscalYears []int
	// defaults to 30 seconds
	Timeout time.Duration
}

// Fetcher requests single pages of the paginated project search api.
// It holds no mutable state and is safe to use from multiple workers.
type Fetcher struct {
	http        *resty.Client
	fiscalYears string
}

func NewFetcher(opts FetcherOptions) Fetcher {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultBaseUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	years := make([]string, len(opts.FiscalYears))
	for i, y := range opts.FiscalYears {
		years[i] = strconv.Itoa(y)
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, tracer)

	return Fetcher{
		http:        client,
		fiscalYears: strings.Join(years, ","),
	}
}

// FetchPage requests one page of records. `page` is 1-based; the api
// takes a zero-based record offset instead, derived from the page size.
// A body without the expected payload key means zero results and is not
// an error. Network failures, non-2xx statuses and malformed bodies are
// returned for the caller to count, there are no retries.
func (f Fetcher) FetchPage(ctx context.Context, page, pageSize int) ([]Project, error) {
	ctx, span := tracer.Start(ctx, "FetchPage")
	defer span.End()
	span.SetAttributes(attribute.Int("page", page))

	offset := (page - 1) * pageSize

	req := f.http.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetQueryParam("rows", strconv.Itoa(pageSize)).
		SetQueryParam("os", strconv.Itoa(offset))
	if f.fiscalYears != "" {
		req.SetQueryParam("appr_yr", f.fiscalYears)
	}

	res, err := req.Get("")
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: %w", page, err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("fetch page %d: %s", page, res.Status())
	}

	var body searchResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d: decode body: %w", page, err)
	}
	if len(body.Projects) == 0 {
		return nil, nil
	}

	records := make([]Project, 0, len(body.Projects))
	for _, p := range body.Projects {
		records = append(records, p)
	}
	return records, nil
}
