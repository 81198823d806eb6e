package nvd

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/config"
)

func newTestClient(baseURL string, pageSize int) *Client {
	cfg := config.Defaults()
	cfg.NVDBaseURL = baseURL
	cfg.NVDPageSize = pageSize
	cfg.NVDPageDelay = 0
	return NewClient(cfg, zap.NewNop().Sugar())
}

func pageResponse(startIndex, pageSize, total int) Response {
	resp := Response{
		ResultsPerPage: pageSize,
		StartIndex:     startIndex,
		TotalResults:   total,
	}
	for i := startIndex; i < startIndex+pageSize && i < total; i++ {
		resp.Vulnerabilities = append(resp.Vulnerabilities, Vulnerability{
			CVE: CVEItem{ID: fmt.Sprintf("CVE-2026-%04d", i)},
		})
	}
	return resp
}

func TestFetchWindowPaginates(t *testing.T) {
	var requests []int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		startIndex, _ := strconv.Atoi(r.URL.Query().Get("startIndex"))
		requests = append(requests, startIndex)

		assert.Equal(t, "2", r.URL.Query().Get("resultsPerPage"))
		assert.NotEmpty(t, r.URL.Query().Get("lastModStartDate"))
		assert.NotEmpty(t, r.URL.Query().Get("lastModEndDate"))

		json.NewEncoder(w).Encode(pageResponse(startIndex, 2, 5))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(context.Background())

	assert.False(t, result.Partial)
	assert.NoError(t, result.Cause)
	assert.Equal(t, []int{0, 2, 4}, requests)
	require.Len(t, result.Vulnerabilities, 5)
	assert.Equal(t, "CVE-2026-0000", result.Vulnerabilities[0].CVE.ID)
	assert.Equal(t, "CVE-2026-0004", result.Vulnerabilities[4].CVE.ID)
}

func TestFetchWindowEmptyWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(pageResponse(0, 2, 0))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(context.Background())

	assert.False(t, result.Partial)
	assert.Empty(t, result.Vulnerabilities)
}

func TestFetchWindowKeepsPagesBeforeFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls > 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		startIndex, _ := strconv.Atoi(r.URL.Query().Get("startIndex"))
		json.NewEncoder(w).Encode(pageResponse(startIndex, 2, 6))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(context.Background())

	assert.True(t, result.Partial)
	assert.Error(t, result.Cause)
	assert.Len(t, result.Vulnerabilities, 2)
}

func TestFetchWindowServerDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(context.Background())

	assert.True(t, result.Partial)
	assert.Error(t, result.Cause)
	assert.Empty(t, result.Vulnerabilities)
}

func TestFetchWindowMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(context.Background())

	assert.True(t, result.Partial)
	assert.Error(t, result.Cause)
}

func TestFetchWindowHonorsContext(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(pageResponse(0, 2, 0))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	client := newTestClient(server.URL, 2)
	result := client.FetchWindow(ctx)

	assert.True(t, result.Partial)
	assert.Error(t, result.Cause)
}
