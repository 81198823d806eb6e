// Package kev fetches the CISA known-exploited-vulnerabilities catalog as
// a single bulk document.
package kev

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/config"
	"github.com/sentinelvuln/sentinel-backend/model"
)

const maxResponseSize = 50 * 1024 * 1024 // 50 MB

// Client fetches the KEV catalog.
type Client struct {
	url        string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

// FetchResult carries the lookup keyed by CVE ID. On any failure Entries is
// empty and Cause records why; ingestion then proceeds with every record
// marked not-exploited.
type FetchResult struct {
	Entries map[string]model.KEVEntry
	Cause   error
}

type catalog struct {
	Vulnerabilities []struct {
		CVEID     string `json:"cveID"`
		DateAdded string `json:"dateAdded"`
		DueDate   string `json:"dueDate"`
	} `json:"vulnerabilities"`
}

// NewClient builds a KEV client from config.
func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	return &Client{
		url: cfg.KEVURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		log: log,
	}
}

// Fetch downloads and indexes the catalog. Never returns a hard error.
func (c *Client) Fetch(ctx context.Context) FetchResult {
	entries := make(map[string]model.KEVEntry)

	data, err := c.download(ctx)
	if err != nil {
		c.log.Errorf("Failed to fetch KEV: %v", err)
		return FetchResult{Entries: entries, Cause: err}
	}

	var cat catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		c.log.Errorf("Failed to parse KEV catalog: %v", err)
		return FetchResult{Entries: entries, Cause: err}
	}

	for _, vuln := range cat.Vulnerabilities {
		if vuln.CVEID == "" {
			continue
		}
		entries[vuln.CVEID] = model.KEVEntry{
			DateAdded: vuln.DateAdded,
			DueDate:   vuln.DueDate,
		}
	}

	return FetchResult{Entries: entries}
}

func (c *Client) download(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, c.url)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
}
