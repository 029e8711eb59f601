package projects

import (
	"context"
	"database/sql"

	"worldbank-ingest/services/projects/db"
)

// SqliteStore persists project rows into a local sqlite database.
type SqliteStore struct {
	qry *db.Queries
}

func NewSqliteStore(database *sql.DB) SqliteStore {
	return SqliteStore{qry: db.New(database)}
}

func (s SqliteStore) Upsert(ctx context.Context, row Row) error {
	return s.qry.UpsertProject(ctx, db.UpsertProjectParams{
		Id:                   row.Id,
		ProjectName:          row.ProjectName,
		Url:                  row.Url,
		CountryCode:          row.CountryCode,
		CountryName:          row.CountryName,
		RegionName:           row.RegionName,
		TotalCommitment:      row.TotalCommitment,
		IbrdCommitment:       row.IbrdCommitment,
		IdaCommitment:        row.IdaCommitment,
		TotalAmountFormatted: row.TotalAmountFormatted,
		Status:               row.Status,
		LendingInstrument:    row.LendingInstrument,
		ProductLine:          row.ProductLine,
		TeamLead:             row.TeamLead,
		BoardApprovalDate:    row.BoardApprovalDate,
		ApprovalMonth:        row.ApprovalMonth,
		ClosingDate:          row.ClosingDate,
		ApprovalFy:           row.ApprovalFy,
		TaggedSizeCategory:   row.TaggedSizeCategory,
		DataVerified:         row.DataVerified,
	})
}
