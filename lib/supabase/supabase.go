package supabase

import (
	"context"
	"fmt"
	"time"

	"worldbank-ingest/lib/telemetry"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("lib/supabase")

type Config struct {
	Url        string `json:"url"`
	ServiceKey string `json:"service_key"`
}

// Client talks to a supabase project over the PostgREST api.
type Client struct {
	http *resty.Client
}

func NewClient(config Config) (Client, error) {
	if config.Url == "" {
		return Client{}, fmt.Errorf("supabase url is not set")
	}
	if config.ServiceKey == "" {
		return Client{}, fmt.Errorf("supabase service key is not set")
	}

	client := resty.New()
	client.SetBaseURL(config.Url)
	client.SetTimeout(time.Second * 30)
	client.SetHeader("apikey", config.ServiceKey)
	client.SetHeader("Authorization", fmt.Sprintf("Bearer %s", config.ServiceKey))
	client.SetHeader("Content-Type", "application/json")
	telemetry.InstrumentResty(client, tracer)

	return Client{http: client}, nil
}

func (c Client) Table(name string) Table {
	return Table{http: c.http, name: name}
}

// Table addresses one table of the project over PostgREST.
type Table struct {
	http *resty.Client
	name string
}

func (t Table) Name() string {
	return t.name
}

// Upsert inserts the row, overwriting an existing row with the same
// primary key. Repeated application with the same row is a no-op.
func (t Table) Upsert(ctx context.Context, row any) error {
	res, err := t.http.R().
		SetContext(ctx).
		SetHeader("Prefer", "resolution=merge-duplicates,return=minimal").
		SetBody(row).
		Post(fmt.Sprintf("/rest/v1/%s", t.name))
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("upsert into %s: %s: %s", t.name, res.Status(), truncate(string(res.Body()), 100))
	}
	return nil
}

// Ping verifies that the table is reachable with the configured credentials.
func (t Table) Ping(ctx context.Context) error {
	res, err := t.http.R().
		SetContext(ctx).
		SetQueryParam("select", "id").
		SetQueryParam("limit", "1").
		Get(fmt.Sprintf("/rest/v1/%s", t.name))
	if err != nil {
		return err
	}
	if res.IsError() {
		return fmt.Errorf("ping %s: %s: %s", t.name, res.Status(), truncate(string(res.Body()), 100))
	}
	return nil
}

// truncate caps the string at max runes, never splitting a multibyte
// character.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
