package projects

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"worldbank-ingest/lib/runstats"

	"go.opentelemetry.io/otel/attribute"
)

// how many per-record store errors get logged before going quiet
const maxLoggedErrors = 3

// Row is the destination table schema for one project.
type Row struct {
	Id                   string  `json:"id"`
	ProjectName          string  `json:"project_name"`
	Url                  string  `json:"url"`
	CountryCode          string  `json:"country_code"`
	CountryName          string  `json:"country_name"`
	RegionName           string  `json:"region_name"`
	TotalCommitment      float64 `json:"total_commitment"`
	IbrdCommitment       float64 `json:"ibrd_commitment"`
	IdaCommitment        float64 `json:"ida_commitment"`
	TotalAmountFormatted string  `json:"total_amount_formatted"`
	Status               string  `json:"status"`
	LendingInstrument    string  `json:"lending_instrument"`
	ProductLine          string  `json:"product_line"`
	TeamLead             string  `json:"team_lead"`
	BoardApprovalDate    string  `json:"board_approval_date"`
	ApprovalMonth        string  `json:"approval_month"`
	ClosingDate          string  `json:"closing_date"`
	ApprovalFy           int64   `json:"approval_fy"`
	TaggedSizeCategory   string  `json:"tagged_size_category"`
	DataVerified         bool    `json:"data_verified"`
}

// RowFromTagged maps a tagged record onto the destination schema,
// filling the documented defaults for missing fields.
func RowFromTagged(t Tagged) Row {
	status := t.Status
	if status == "" {
		status = t.ProjectStatusDisplay
	}
	if status == "" {
		status = "Active"
	}

	approvalFy, err := strconv.ParseInt(string(t.ApprovalFy), 10, 64)
	if err != nil {
		approvalFy = 2024
	}

	return Row{
		Id:                   t.Id,
		ProjectName:          t.ProjectName,
		Url:                  t.Url,
		CountryCode:          t.TaggedCountryCode,
		CountryName:          t.CountryShortName,
		RegionName:           t.RegionName,
		TotalCommitment:      t.CommitmentMillions,
		IbrdCommitment:       t.IbrdMillions,
		IdaCommitment:        t.IdaMillions,
		TotalAmountFormatted: fmt.Sprintf("$%.0fM", t.CommitmentMillions),
		Status:               status,
		LendingInstrument:    t.LendingInstr,
		ProductLine:          t.ProdLineText,
		TeamLead:             t.TeamLeadName,
		BoardApprovalDate:    t.BoardApprovalDate,
		ApprovalMonth:        t.BoardApprovalMonth,
		ClosingDate:          t.ClosingDate,
		ApprovalFy:           approvalFy,
		TaggedSizeCategory:   t.SizeLabel,
		DataVerified:         true,
	}
}

// Store is an upsert-capable sink for project rows. Upsert must be
// idempotent keyed on Row.Id: applying the same row twice leaves a
// single stored row with the same values.
type Store interface {
	Upsert(ctx context.Context, row Row) error
}

// PersistAll writes every tagged record through the store, one
// independent upsert per record. A failed record is counted and
// processing moves on, the batch never aborts. Only the first few
// errors are logged, truncated, to keep the output readable.
func PersistAll(ctx context.Context, store Store, tagged []Tagged, stats *runstats.Stats) {
	ctx, span := tracer.Start(ctx, "PersistAll")
	defer span.End()

	for _, t := range tagged {
		err := store.Upsert(ctx, RowFromTagged(t))
		if err != nil {
			stats.AddErrors(1)
			if stats.Errors() <= maxLoggedErrors {
				slog.ErrorContext(ctx, "upsert failed", "id", t.Id, "err", truncateErr(err, 100))
			}
			continue
		}
		stats.AddStored(1)
	}

	span.SetAttributes(
		attribute.Int64("stored", stats.Stored()),
		attribute.Int64("errors", stats.Errors()),
	)
}

// truncateErr caps the message at max runes, never splitting a
// multibyte character.
func truncateErr(err error, max int) string {
	msg := err.Error()
	if len(msg) <= max {
		return msg
	}
	runes := []rune(msg)
	if len(runes) <= max {
		return msg
	}
	return string(runes[:max])
}
