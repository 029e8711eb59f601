package projects

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	tagged := TagAll([]Project{
		{Id: "P1", TotalCommAmt: "1,500,000", CountryCode: StringOrList{"KE"}},
		{Id: "P2"},
	})

	err := WriteJSON(path, tagged)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded []map[string]any
	err = json.Unmarshal(data, &decoded)
	require.NoError(t, err)
	require.Len(t, decoded, 2)
	require.Equal(t, "P1", decoded[0]["id"])
	require.Equal(t, 1.5, decoded[0]["tagged_commitment"])
	require.Equal(t, "Small (< $10M)", decoded[0]["tagged_size"])
}

func TestWriteSampleSQL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.sql")
	tagged := TagAll([]Project{
		{Id: "P1", ProjectName: "Water Supply in D'Iberville"},
		{Id: "P2"},
		{Id: "P3"},
	})

	err := WriteSampleSQL(path, tagged, 2)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	script := string(data)

	// bounded to the sample limit
	require.Equal(t, 2, strings.Count(script, "INSERT INTO worldbank_projects"))
	require.Contains(t, script, "ON CONFLICT (id) DO NOTHING")
	// single quotes in values must be escaped
	require.Contains(t, script, "D''Iberville")
	require.NotContains(t, script, "P3")
}
