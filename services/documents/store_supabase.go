package documents

import (
	"context"

	"worldbank-ingest/lib/supabase"
)

const SupabaseTable = "worldbank_documents"

// SupabaseStore persists document rows into the hosted database over
// PostgREST.
type SupabaseStore struct {
	table supabase.Table
}

func NewSupabaseStore(client supabase.Client) SupabaseStore {
	return SupabaseStore{table: client.Table(SupabaseTable)}
}

func (s SupabaseStore) Upsert(ctx context.Context, row Row) error {
	return s.table.Upsert(ctx, row)
}
