package kev

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/config"
)

func newTestClient(url string) *Client {
	cfg := config.Defaults()
	cfg.KEVURL = url
	return NewClient(cfg, zap.NewNop().Sugar())
}

func TestFetchIndexesCatalog(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"title": "CISA Catalog of Known Exploited Vulnerabilities",
			"count": 2,
			"vulnerabilities": [
				{"cveID": "CVE-2026-0001", "dateAdded": "2026-08-01", "dueDate": "2026-08-22"},
				{"cveID": "CVE-2026-0002", "dateAdded": "2026-08-05", "dueDate": "2026-08-26"},
				{"cveID": "", "dateAdded": "2026-08-05", "dueDate": "2026-08-26"}
			]
		}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Fetch(context.Background())

	assert.NoError(t, result.Cause)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "2026-08-01", result.Entries["CVE-2026-0001"].DateAdded)
	assert.Equal(t, "2026-08-22", result.Entries["CVE-2026-0001"].DueDate)
}

func TestFetchHTTPErrorDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := newTestClient(server.URL).Fetch(context.Background())

	assert.Error(t, result.Cause)
	assert.NotNil(t, result.Entries)
	assert.Empty(t, result.Entries)
}

func TestFetchMalformedBodyDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Fetch(context.Background())

	assert.Error(t, result.Cause)
	assert.Empty(t, result.Entries)
}

func TestFetchUnreachableServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	result := newTestClient(server.URL).Fetch(context.Background())

	assert.Error(t, result.Cause)
	assert.Empty(t, result.Entries)
}
