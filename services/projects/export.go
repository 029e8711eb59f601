package projects

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// WriteJSON saves all tagged records to a single JSON array on disk,
// raw fields plus the tagged_* derivations.
func WriteJSON(path string, tagged []Tagged) error {
	data, err := json.MarshalIndent(tagged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// WriteSampleSQL generates insert statements for up to `limit` records,
// meant for pasting into a SQL editor. The statements use
// ON CONFLICT (id) DO NOTHING so rerunning the script is harmless.
func WriteSampleSQL(path string, tagged []Tagged, limit int) error {
	if limit > len(tagged) {
		limit = len(tagged)
	}

	var b strings.Builder
	b.WriteString("-- Sample project INSERT statements\n")
	b.WriteString(fmt.Sprintf("-- %d of %d records\n\n", limit, len(tagged)))

	for _, t := range tagged[:limit] {
		row := RowFromTagged(t)
		b.WriteString(fmt.Sprintf(
			`INSERT INTO worldbank_projects (
  id, project_name, url, country_code, country_name,
  status, total_commitment, approval_fy,
  tagged_size_category, board_approval_date
) VALUES (
  %s, %s, %s, %s, %s,
  %s, %g, %d,
  %s, %s
) ON CONFLICT (id) DO NOTHING;

`,
			quoteSQL(row.Id),
			quoteSQL(row.ProjectName),
			quoteSQL(row.Url),
			quoteSQL(row.CountryCode),
			quoteSQL(row.CountryName),
			quoteSQL(row.Status),
			row.TotalCommitment,
			row.ApprovalFy,
			quoteSQL(row.TaggedSizeCategory),
			quoteSQL(row.BoardApprovalDate),
		))
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

func quoteSQL(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
