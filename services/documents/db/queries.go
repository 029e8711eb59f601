package db

import (
	"context"
	"database/sql"
)

type DBTX interface {
	ExecContext(context.Context, string, ...interface{}) (sql.Result, error)
	QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...interface{}) *sql.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

const upsertDocument = `
INSERT INTO worldbank_documents (
    id, title, content, summary, url, date, type, file_type, keywords, metadata
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    title = excluded.title,
    content = excluded.content,
    summary = excluded.summary,
    url = excluded.url,
    date = excluded.date,
    type = excluded.type,
    file_type = excluded.file_type,
    keywords = excluded.keywords,
    metadata = excluded.metadata
`

type UpsertDocumentParams struct {
	Id       string
	Title    string
	Content  string
	Summary  string
	Url      string
	Date     string
	Type     string
	FileType string
	// json-encoded list of strings
	Keywords string
	// json-encoded object
	Metadata string
}

func (q *Queries) UpsertDocument(ctx context.Context, arg UpsertDocumentParams) error {
	_, err := q.db.ExecContext(ctx, upsertDocument,
		arg.Id,
		arg.Title,
		arg.Content,
		arg.Summary,
		arg.Url,
		arg.Date,
		arg.Type,
		arg.FileType,
		arg.Keywords,
		arg.Metadata,
	)
	return err
}

const getDocument = `
SELECT id, title, content, summary, url, date, type, file_type, keywords, metadata
FROM worldbank_documents WHERE id = ?
`

type WorldbankDocument struct {
	Id       string
	Title    string
	Content  string
	Summary  string
	Url      string
	Date     string
	Type     string
	FileType string
	Keywords string
	Metadata string
}

func (q *Queries) GetDocument(ctx context.Context, id string) (WorldbankDocument, error) {
	row := q.db.QueryRowContext(ctx, getDocument, id)
	var d WorldbankDocument
	err := row.Scan(
		&d.Id,
		&d.Title,
		&d.Content,
		&d.Summary,
		&d.Url,
		&d.Date,
		&d.Type,
		&d.FileType,
		&d.Keywords,
		&d.Metadata,
	)
	return d, err
}

const countDocuments = `SELECT COUNT(*) FROM worldbank_documents`

func (q *Queries) CountDocuments(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countDocuments)
	var count int64
	err := row.Scan(&count)
	return count, err
}
