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

const upsertProject = `
INSERT INTO worldbank_projects (
    id, project_name, url, country_code, country_name, region_name,
    total_commitment, ibrd_commitment, ida_commitment, total_amount_formatted,
    status, lending_instrument, product_line, team_lead,
    board_approval_date, approval_month, closing_date, approval_fy,
    tagged_size_category, data_verified
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    project_name = excluded.project_name,
    url = excluded.url,
    country_code = excluded.country_code,
    country_name = excluded.country_name,
    region_name = excluded.region_name,
    total_commitment = excluded.total_commitment,
    ibrd_commitment = excluded.ibrd_commitment,
    ida_commitment = excluded.ida_commitment,
    total_amount_formatted = excluded.total_amount_formatted,
    status = excluded.status,
    lending_instrument = excluded.lending_instrument,
    product_line = excluded.product_line,
    team_lead = excluded.team_lead,
    board_approval_date = excluded.board_approval_date,
    approval_month = excluded.approval_month,
    closing_date = excluded.closing_date,
    approval_fy = excluded.approval_fy,
    tagged_size_category = excluded.tagged_size_category,
    data_verified = excluded.data_verified
`

type UpsertProjectParams struct {
	Id                   string
	ProjectName          string
	Url                  string
	CountryCode          string
	CountryName          string
	RegionName           string
	TotalCommitment      float64
	IbrdCommitment       float64
	IdaCommitment        float64
	TotalAmountFormatted string
	Status               string
	LendingInstrument    string
	ProductLine          string
	TeamLead             string
	BoardApprovalDate    string
	ApprovalMonth        string
	ClosingDate          string
	ApprovalFy           int64
	TaggedSizeCategory   string
	DataVerified         bool
}

func (q *Queries) UpsertProject(ctx context.Context, arg UpsertProjectParams) error {
	_, err := q.db.ExecContext(ctx, upsertProject,
		arg.Id,
		arg.ProjectName,
		arg.Url,
		arg.CountryCode,
		arg.CountryName,
		arg.RegionName,
		arg.TotalCommitment,
		arg.IbrdCommitment,
		arg.IdaCommitment,
		arg.TotalAmountFormatted,
		arg.Status,
		arg.LendingInstrument,
		arg.ProductLine,
		arg.TeamLead,
		arg.BoardApprovalDate,
		arg.ApprovalMonth,
		arg.ClosingDate,
		arg.ApprovalFy,
		arg.TaggedSizeCategory,
		arg.DataVerified,
	)
	return err
}

const getProject = `
SELECT id, project_name, url, country_code, country_name, region_name,
    total_commitment, ibrd_commitment, ida_commitment, total_amount_formatted,
    status, lending_instrument, product_line, team_lead,
    board_approval_date, approval_month, closing_date, approval_fy,
    tagged_size_category, data_verified
FROM worldbank_projects WHERE id = ?
`

type WorldbankProject struct {
	Id                   string
	ProjectName          string
	Url                  string
	CountryCode          string
	CountryName          string
	RegionName           string
	TotalCommitment      float64
	IbrdCommitment       float64
	IdaCommitment        float64
	TotalAmountFormatted string
	Status               string
	LendingInstrument    string
	ProductLine          string
	TeamLead             string
	BoardApprovalDate    string
	ApprovalMonth        string
	ClosingDate          string
	ApprovalFy           int64
	TaggedSizeCategory   string
	DataVerified         bool
}

func (q *Queries) GetProject(ctx context.Context, id string) (WorldbankProject, error) {
	row := q.db.QueryRowContext(ctx, getProject, id)
	var p WorldbankProject
	err := row.Scan(
		&p.Id,
		&p.ProjectName,
		&p.Url,
		&p.CountryCode,
		&p.CountryName,
		&p.RegionName,
		&p.TotalCommitment,
		&p.IbrdCommitment,
		&p.IdaCommitment,
		&p.TotalAmountFormatted,
		&p.Status,
		&p.LendingInstrument,
		&p.ProductLine,
		&p.TeamLead,
		&p.BoardApprovalDate,
		&p.ApprovalMonth,
		&p.ClosingDate,
		&p.ApprovalFy,
		&p.TaggedSizeCategory,
		&p.DataVerified,
	)
	return p, err
}

const countProjects = `SELECT COUNT(*) FROM worldbank_projects`

func (q *Queries) CountProjects(ctx context.Context) (int64, error) {
	row := q.db.QueryRowContext(ctx, countProjects)
	var count int64
	err := row.Scan(&count)
	return count, err
}
