package documents

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"worldbank-ingest/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
)

var tracer = otel.Tracer("services/documents")

const DefaultSearchUrl = "https://search.worldbank.org/api/v2/wds"

// fields requested from the search api
const searchFields = "id,docty,repnme,docdt,url,pdfurl,txturl,repnb,docna,count,subtitl,lang_exact"

type SearcherOptions struct {
	// defaults to DefaultSearchUrl
	BaseUrl string
	// defaults to 30 seconds
	Timeout time.Duration
}

// Searcher queries the document search api by free-text term.
type Searcher struct {
	http *resty.Client
}

func NewSearcher(opts SearcherOptions) Searcher {
	baseUrl := opts.BaseUrl
	if baseUrl == "" {
		baseUrl = DefaultSearchUrl
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.SetBaseURL(baseUrl)
	client.SetTimeout(timeout)
	telemetry.InstrumentResty(client, tracer)

	return Searcher{http: client}
}

// Search returns up to maxDocs documents matching the query, most
// recent first. A body without the expected payload key means zero
// results, not an error.
func (s Searcher) Search(ctx context.Context, query string, maxDocs int) ([]Document, error) {
	ctx, span := tracer.Start(ctx, "Search")
	defer span.End()
	span.SetAttributes(attribute.String("query", query))

	res, err := s.http.R().
		SetContext(ctx).
		SetQueryParam("format", "json").
		SetQueryParam("qterm", query).
		SetQueryParam("rows", strconv.Itoa(maxDocs)).
		SetQueryParam("fl", searchFields).
		SetQueryParam("srt", "docdt").
		SetQueryParam("order", "desc").
		Get("")
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}
	if res.IsError() {
		return nil, fmt.Errorf("search documents: %s", res.Status())
	}

	var body searchResponse
	err = json.Unmarshal(res.Body(), &body)
	if err != nil {
		return nil, fmt.Errorf("search documents: decode body: %w", err)
	}

	return body.Documents.Docs, nil
}
