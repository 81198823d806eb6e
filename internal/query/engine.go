package query

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sentinelvuln/sentinel-backend/database"
	"github.com/sentinelvuln/sentinel-backend/model"
	"github.com/sentinelvuln/sentinel-backend/util"
)

const (
	defaultLimit = 20
	maxLimit     = 100

	// Search inspects at most this many raw records before filtering; a
	// deliberate best-effort bound, not exhaustive over large datasets.
	searchScanWindow = 100

	// Top10 considers the first 50 records of the score ordering.
	top10ScanWindow = 50

	// Internal page size for the full-table aggregation scans.
	scanPageSize = 500
)

// Engine answers the six read operations against an injected store.
type Engine struct {
	store database.VulnStore
	now   func() time.Time
}

// NewEngine builds a query engine over the given store.
func NewEngine(store database.VulnStore) *Engine {
	return &Engine{store: store, now: time.Now}
}

// ListParams are the caller-supplied list query parameters.
type ListParams struct {
	Sort     string
	Limit    int
	Cursor   string
	Vendor   string
	CWE      string
	Severity string
	KEVOnly  bool
}

// List pages one of the two orderings and applies the equality filters to
// the fetched page. Filters run after the page fetch, so a page may hold
// fewer than limit matches while a cursor still points at more; callers
// follow the cursor to continue exactly where filtering left off.
func (e *Engine) List(ctx context.Context, params ListParams) (*model.ListResult, error) {
	sortOrder := database.SortByScore
	if params.Sort == "date" {
		sortOrder = database.SortByDate
	}

	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	after := DecodeCursor(params.Cursor, sortOrder)

	records, next, err := e.store.QueryIndex(ctx, sortOrder, after, limit)
	if err != nil {
		return nil, err
	}

	items := make([]model.VulnerabilityRecord, 0, len(records))
	for _, rec := range records {
		if matchesFilters(rec, params) {
			items = append(items, rec)
		}
	}

	result := &model.ListResult{Items: items, Count: len(items)}
	if next != nil {
		result.Cursor = EncodeCursor(sortOrder, *next)
	}

	return result, nil
}

func matchesFilters(rec model.VulnerabilityRecord, params ListParams) bool {
	if params.Vendor != "" && rec.AffectedVendor != params.Vendor {
		return false
	}
	if params.CWE != "" && rec.CweID != params.CWE {
		return false
	}
	if params.Severity != "" && rec.CvssSeverity != strings.ToUpper(params.Severity) {
		return false
	}
	if params.KEVOnly && !rec.IsKEV {
		return false
	}
	return true
}

// Detail looks up one record, normalizing bare identifiers to the CVE
// scheme. A nil record means not found.
func (e *Engine) Detail(ctx context.Context, cveID string) (*model.VulnerabilityRecord, error) {
	return e.store.Get(ctx, util.NormalizeCVEID(cveID))
}

// Search substring-matches the identifier (case-normalized to upper) or the
// description (case-sensitive) over the first scan-window records, then
// orders matches by composite score descending.
func (e *Engine) Search(ctx context.Context, q string) (*model.ListResult, error) {
	records, _, err := e.store.Scan(ctx, "", searchScanWindow, false)
	if err != nil {
		return nil, err
	}

	qUpper := strings.ToUpper(q)
	items := make([]model.VulnerabilityRecord, 0)
	for _, rec := range records {
		if strings.Contains(rec.CveID, qUpper) || strings.Contains(rec.Description, q) {
			items = append(items, rec)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CompositeScore > items[j].CompositeScore
	})

	return &model.ListResult{Items: items, Count: len(items)}, nil
}

// Top10 takes the first 50 score-ordered records and keeps up to ten that
// were published in the trailing 7 days. Legitimately returns fewer than
// ten when the window is thin.
func (e *Engine) Top10(ctx context.Context) (*model.ListResult, error) {
	records, _, err := e.store.QueryIndex(ctx, database.SortByScore, nil, top10ScanWindow)
	if err != nil {
		return nil, err
	}

	sevenDaysAgo := e.now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)

	items := make([]model.VulnerabilityRecord, 0, 10)
	for _, rec := range records {
		if rec.PublishedDate >= sevenDaysAgo {
			items = append(items, rec)
		}
		if len(items) >= 10 {
			break
		}
	}

	return &model.ListResult{Items: items, Count: len(items)}, nil
}

// Stats accumulates the dashboard counters over a full table scan,
// paginated internally.
func (e *Engine) Stats(ctx context.Context) (*model.Stats, error) {
	sevenDaysAgo := e.now().UTC().AddDate(0, 0, -7).Format(time.RFC3339)

	total := 0
	kevCount := 0
	epssSum := 0.0
	thisWeek := 0

	afterID := ""
	for {
		records, nextID, err := e.store.Scan(ctx, afterID, scanPageSize, false)
		if err != nil {
			return nil, err
		}

		for _, rec := range records {
			total++
			if rec.IsKEV {
				kevCount++
			}
			epssSum += float64(rec.EpssScore)
			if rec.PublishedDate >= sevenDaysAgo {
				thisWeek++
			}
		}

		if nextID == "" {
			break
		}
		afterID = nextID
	}

	avgEPSS := 0.0
	if total > 0 {
		avgEPSS = util.Round5(epssSum / float64(total))
	}

	return &model.Stats{
		TotalCVEs:    total,
		KevCount:     kevCount,
		AvgEPSS:      model.Decimal(avgEPSS),
		CvesThisWeek: thisWeek,
	}, nil
}

// Trends buckets KEV additions by year-month for the trailing twelve
// buckets, oldest first, zero-filled. Bucket months are computed as now
// minus 30-day multiples rather than true calendar months; that drift is
// the defined behavior, kept for continuity with the stored dashboards.
func (e *Engine) Trends(ctx context.Context) (*model.TrendsResult, error) {
	now := e.now().UTC()
	twelveMonthsAgo := now.AddDate(0, 0, -365).Format("2006-01")

	monthlyCounts := make(map[string]int)

	afterID := ""
	for {
		records, nextID, err := e.store.Scan(ctx, afterID, scanPageSize, true)
		if err != nil {
			return nil, err
		}

		for _, rec := range records {
			if len(rec.KevDateAdded) < 7 {
				continue
			}
			month := rec.KevDateAdded[:7]
			if month >= twelveMonthsAgo {
				monthlyCounts[month]++
			}
		}

		if nextID == "" {
			break
		}
		afterID = nextID
	}

	trends := make([]model.TrendBucket, 0, 12)
	for i := 0; i < 12; i++ {
		month := now.AddDate(0, 0, -30*(11-i)).Format("2006-01")
		trends = append(trends, model.TrendBucket{Month: month, Count: monthlyCounts[month]})
	}

	return &model.TrendsResult{Trends: trends}, nil
}
