package documents

import (
	"context"
	"database/sql"
	"encoding/json"

	"worldbank-ingest/services/documents/db"
)

// SqliteStore persists document rows into a local sqlite database.
// Keywords and metadata are stored as json text columns.
type SqliteStore struct {
	qry *db.Queries
}

func NewSqliteStore(database *sql.DB) SqliteStore {
	return SqliteStore{qry: db.New(database)}
}

func (s SqliteStore) Upsert(ctx context.Context, row Row) error {
	keywords, err := json.Marshal(row.Keywords)
	if err != nil {
		return err
	}
	metadata, err := json.Marshal(row.Metadata)
	if err != nil {
		return err
	}

	return s.qry.UpsertDocument(ctx, db.UpsertDocumentParams{
		Id:       row.Id,
		Title:    row.Title,
		Content:  row.Content,
		Summary:  row.Summary,
		Url:      row.Url,
		Date:     row.Date,
		Type:     row.Type,
		FileType: row.FileType,
		Keywords: string(keywords),
		Metadata: string(metadata),
	})
}
