package nvd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sentinelvuln/sentinel-backend/internal/config"
)

const timestampLayout = "2006-01-02T15:04:05.000"

// Client pages through the catalog window. One instance per ingestion run
// is fine; it holds no per-run state.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
	pageDelay  time.Duration
	window     time.Duration
	log        *zap.SugaredLogger
}

// FetchResult carries whatever pages were collected plus the recorded
// degradation cause when pagination was cut short.
type FetchResult struct {
	Vulnerabilities []Vulnerability
	Partial         bool
	Cause           error
}

// NewClient builds a catalog client from config.
func NewClient(cfg *config.Config, log *zap.SugaredLogger) *Client {
	return &Client{
		baseURL: cfg.NVDBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		pageSize:  cfg.NVDPageSize,
		pageDelay: cfg.NVDPageDelay,
		window:    cfg.CatalogWindow,
		log:       log,
	}
}

// FetchWindow collects every CVE modified inside the trailing window.
// Pages are requested sequentially with the configured delay between them
// to stay under the feed's rate limit. A page failure stops pagination but
// keeps the pages already collected; it is never surfaced as a hard error.
func (c *Client) FetchWindow(ctx context.Context) FetchResult {
	now := time.Now().UTC()
	lastModStart := now.Add(-c.window).Format(timestampLayout)
	lastModEnd := now.Format(timestampLayout)

	var result FetchResult
	startIndex := 0

	for {
		page, err := c.fetchPage(ctx, lastModStart, lastModEnd, startIndex)
		if err != nil {
			c.log.Errorf("NVD API error at index %d: %v", startIndex, err)
			result.Partial = true
			result.Cause = err
			break
		}

		result.Vulnerabilities = append(result.Vulnerabilities, page.Vulnerabilities...)
		startIndex += c.pageSize

		c.log.Infof("NVD page fetched: %d CVEs (total: %d)", len(page.Vulnerabilities), page.TotalResults)

		if startIndex >= page.TotalResults {
			break
		}

		// Rate limiting: 5 requests per 30 seconds
		time.Sleep(c.pageDelay)
	}

	return result
}

func (c *Client) fetchPage(ctx context.Context, lastModStart, lastModEnd string, startIndex int) (*Response, error) {
	params := url.Values{}
	params.Set("lastModStartDate", lastModStart)
	params.Set("lastModEndDate", lastModEnd)
	params.Set("startIndex", strconv.Itoa(startIndex))
	params.Set("resultsPerPage", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d from NVD API", resp.StatusCode)
	}

	var page Response
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decoding NVD response: %w", err)
	}

	return &page, nil
}
