// Package epss fetches exploitation-probability scores from the FIRST EPSS
// API in fixed-size batches.
package epss

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/config"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// Client batches identifier lookups against the EPSS API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	batchSize  int
	batchDelay time.Duration
	log        *zap.SugaredLogger
}

// FetchResult carries the best-effort lookup. A failed batch is skipped,
// not fatal; Cause records the last batch failure so callers and tests can
// observe the degradation.
type FetchResult struct {
	Entries map[string]model.EPSSEntry
	Cause   error
}

// The API renders scores as JSON strings ("epss": "0.97095").
type response struct {
	Data []struct {
		CVE        string `json:"cve"`
		EPSS       string `json:"epss"`
		Percentile string `json:"percentile"`
	} `json:"data"`
}

// NewClient builds an EPSS client from config.
func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.EPSSBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		batchSize:  cfg.EPSSBatchSize,
		batchDelay: cfg.EPSSBatchDelay,
		log:        log,
	}
}

// FetchScores looks up scores for the given identifiers, batching requests
// and pausing between batches to respect the shared rate budget. Missing
// entries simply stay absent from the lookup.
func (c *Client) FetchScores(ctx context.Context, cveIDs []string) FetchResult {
	result := FetchResult{Entries: make(map[string]model.EPSSEntry)}

	for i := 0; i < len(cveIDs); i += c.batchSize {
		end := i + c.batchSize
		if end > len(cveIDs) {
			end = len(cveIDs)
		}

		if err := c.fetchBatch(ctx, cveIDs[i:end], result.Entries); err != nil {
			c.log.Errorf("EPSS API error for batch starting at %d: %v", i, err)
			result.Cause = err
		}

		if end < len(cveIDs) {
			time.Sleep(c.batchDelay)
		}
	}

	return result
}

func (c *Client) fetchBatch(ctx context.Context, batch []string, entries map[string]model.EPSSEntry) error {
	params := url.Values{}
	params.Set("cve", strings.Join(batch, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("HTTP %d from EPSS API", resp.StatusCode)
	}

	var body response
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("decoding EPSS response: %w", err)
	}

	for _, entry := range body.Data {
		if entry.CVE == "" {
			continue
		}
		entries[entry.CVE] = model.EPSSEntry{
			Score:      parseFloat(entry.EPSS),
			Percentile: parseFloat(entry.Percentile),
		}
	}

	return nil
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
