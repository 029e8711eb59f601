package projects

import (
	"context"

	"worldbank-ingest/lib/supabase"
)

const SupabaseTable = "worldbank_projects"

// SupabaseStore persists project rows into the hosted database over
// PostgREST. The destination's own conflict resolution on the primary
// key makes concurrent upserts of the same id converge.
type SupabaseStore struct {
	table supabase.Table
}

func NewSupabaseStore(client supabase.Client) SupabaseStore {
	return SupabaseStore{table: client.Table(SupabaseTable)}
}

func (s SupabaseStore) Upsert(ctx context.Context, row Row) error {
	return s.table.Upsert(ctx, row)
}
