package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{Url: "http://localhost"})
	require.Error(t, err)

	_, err = NewClient(Config{ServiceKey: "key"})
	require.Error(t, err)

	_, err = NewClient(Config{Url: "http://localhost", ServiceKey: "key"})
	require.NoError(t, err)
}

func TestUpsert(t *testing.T) {
	var gotPath, gotPrefer, gotApikey string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPrefer = r.Header.Get("Prefer")
		gotApikey = r.Header.Get("apikey")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewClient(Config{Url: server.URL, ServiceKey: "service-key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err = client.Table("worldbank_projects").Upsert(ctx, map[string]any{"id": "P1"})
	require.NoError(t, err)

	require.Equal(t, "/rest/v1/worldbank_projects", gotPath)
	require.Equal(t, "resolution=merge-duplicates,return=minimal", gotPrefer)
	require.Equal(t, "service-key", gotApikey)
	require.Equal(t, "P1", gotBody["id"])
}

func TestUpsertErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message": "invalid api key"}`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Url: server.URL, ServiceKey: "bad-key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err = client.Table("worldbank_projects").Upsert(ctx, map[string]any{"id": "P1"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid api key")
}

func TestTruncateKeepsRunesWhole(t *testing.T) {
	require.Equal(t, "héllo", truncate("héllo", 100))

	long := strings.Repeat("é", 120)
	cut := truncate(long, 100)
	require.True(t, utf8.ValidString(cut))
	require.Len(t, []rune(cut), 100)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "id", r.URL.Query().Get("select"))
		require.Equal(t, "1", r.URL.Query().Get("limit"))
		_, _ = w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client, err := NewClient(Config{Url: server.URL, ServiceKey: "key"})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	err = client.Table("worldbank_documents").Ping(ctx)
	require.NoError(t, err)
}
