package ingest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sentinelvuln/sentinel-backend/internal/feeds/nvd"
	"github.com/sentinelvuln/sentinel-backend/model"
)

var buildTime = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func catalogEntry(id string) nvd.Vulnerability {
	return nvd.Vulnerability{CVE: nvd.CVEItem{
		ID:           id,
		Published:    "2026-08-10T08:15:00.000",
		LastModified: "2026-08-12T10:00:00.000",
		Descriptions: []nvd.LangString{
			{Lang: "es", Value: "descripción"},
			{Lang: "en", Value: "Remote code execution in the request parser."},
		},
		Metrics: nvd.Metrics{
			CvssMetricV31: []nvd.CvssMetricV3{
				{CvssData: nvd.CvssDataV3{BaseScore: 9.8, BaseSeverity: "CRITICAL"}},
			},
		},
		Weaknesses: []nvd.Weakness{
			{Description: []nvd.LangString{{Lang: "en", Value: "NVD-CWE-noinfo"}}},
			{Description: []nvd.LangString{{Lang: "en", Value: "CWE-787"}}},
		},
		Configurations: []nvd.Configuration{
			{Nodes: []nvd.Node{
				{CpeMatch: []nvd.CpeMatch{
					{Criteria: "cpe:2.3:a:apache:http_server:2.4.57:*:*:*:*:*:*:*"},
				}},
			}},
		},
		References: []nvd.Reference{
			{URL: "https://example.com/advisory"},
		},
	}}
}

func TestBuildRecordMergesAllFeeds(t *testing.T) {
	epss := map[string]model.EPSSEntry{
		"CVE-2026-0001": {Score: 0.5, Percentile: 0.972339},
	}
	kev := map[string]model.KEVEntry{
		"CVE-2026-0001": {DateAdded: "2026-08-11", DueDate: "2026-09-01"},
	}

	rec := BuildRecord(catalogEntry("CVE-2026-0001"), kev, epss, buildTime)
	require.NotNil(t, rec)

	assert.Equal(t, "CVE-2026-0001", rec.CveID)
	assert.Equal(t, "Remote code execution in the request parser.", rec.Description)
	assert.Equal(t, model.Decimal(9.8), rec.CvssScore)
	assert.Equal(t, "CRITICAL", rec.CvssSeverity)
	assert.Equal(t, model.Decimal(0.5), rec.EpssScore)
	assert.Equal(t, model.Decimal(0.97234), rec.EpssPercentile)
	assert.True(t, rec.IsKEV)
	assert.Equal(t, "2026-08-11", rec.KevDateAdded)
	assert.Equal(t, "2026-09-01", rec.KevDueDate)

	// 0.35 * 98 + 0.40 * 50 + 25, rounded to 2 decimals.
	assert.Equal(t, model.Decimal(79.3), rec.CompositeScore)

	assert.Equal(t, "Apache", rec.AffectedVendor)
	assert.Equal(t, "Http Server", rec.AffectedProduct)
	assert.Equal(t, "VENDOR#Apache", rec.VendorKey)
	assert.Equal(t, "CWE-787", rec.CweID)
	assert.Equal(t, []string{"https://example.com/advisory"}, rec.References)
	assert.Equal(t, "2026-08-10T08:15:00.000", rec.PublishedDate)
	assert.Equal(t, model.StatusActive, rec.Status)
	assert.Equal(t, "2026-08-15T12:00:00Z", rec.UpdatedAt)
}

func TestBuildRecordWithoutKEV(t *testing.T) {
	epss := map[string]model.EPSSEntry{"CVE-2026-0001": {Score: 0.5, Percentile: 0.9}}

	rec := BuildRecord(catalogEntry("CVE-2026-0001"), nil, epss, buildTime)
	require.NotNil(t, rec)

	assert.False(t, rec.IsKEV)
	assert.Empty(t, rec.KevDateAdded)
	assert.Empty(t, rec.KevDueDate)
	assert.Equal(t, model.Decimal(54.3), rec.CompositeScore)
}

func TestBuildRecordMissingFeeds(t *testing.T) {
	rec := BuildRecord(catalogEntry("CVE-2026-0001"), nil, nil, buildTime)
	require.NotNil(t, rec)

	assert.Equal(t, model.Decimal(0), rec.EpssScore)
	assert.Equal(t, model.Decimal(0), rec.EpssPercentile)
	assert.Equal(t, model.Decimal(34.3), rec.CompositeScore)
}

func TestBuildRecordSkipsEntriesWithoutID(t *testing.T) {
	assert.Nil(t, BuildRecord(nvd.Vulnerability{}, nil, nil, buildTime))
}

func TestBuildRecordV2Fallback(t *testing.T) {
	entry := catalogEntry("CVE-2010-0001")
	entry.CVE.Metrics = nvd.Metrics{
		CvssMetricV2: []nvd.CvssMetricV2{
			{CvssData: nvd.CvssDataV2{BaseScore: 7.5}},
		},
	}

	rec := BuildRecord(entry, nil, nil, buildTime)
	require.NotNil(t, rec)
	assert.Equal(t, model.Decimal(7.5), rec.CvssScore)
	assert.Equal(t, "HIGH", rec.CvssSeverity)
}

func TestBuildRecordNoMetrics(t *testing.T) {
	entry := catalogEntry("CVE-2026-0002")
	entry.CVE.Metrics = nvd.Metrics{}

	rec := BuildRecord(entry, nil, nil, buildTime)
	require.NotNil(t, rec)
	assert.Equal(t, model.Decimal(0), rec.CvssScore)
	assert.Equal(t, "LOW", rec.CvssSeverity)
}

func TestBuildRecordBlankV3Severity(t *testing.T) {
	entry := catalogEntry("CVE-2026-0003")
	entry.CVE.Metrics.CvssMetricV31[0].CvssData.BaseSeverity = ""

	rec := BuildRecord(entry, nil, nil, buildTime)
	require.NotNil(t, rec)
	assert.Equal(t, "LOW", rec.CvssSeverity)
}

func TestBuildRecordDefaults(t *testing.T) {
	entry := nvd.Vulnerability{CVE: nvd.CVEItem{ID: "CVE-2026-0004"}}

	rec := BuildRecord(entry, nil, nil, buildTime)
	require.NotNil(t, rec)
	assert.Equal(t, "", rec.Description)
	assert.Equal(t, "Unknown", rec.AffectedVendor)
	assert.Equal(t, "Unknown", rec.AffectedProduct)
	assert.Equal(t, "VENDOR#Unknown", rec.VendorKey)
	assert.Equal(t, "", rec.CweID)
	assert.Empty(t, rec.References)
}

func TestBuildRecordCapsReferences(t *testing.T) {
	entry := catalogEntry("CVE-2026-0005")
	entry.CVE.References = nil
	for i := 0; i < 15; i++ {
		entry.CVE.References = append(entry.CVE.References, nvd.Reference{
			URL: fmt.Sprintf("https://example.com/ref/%d", i),
		})
	}

	rec := BuildRecord(entry, nil, nil, buildTime)
	require.NotNil(t, rec)
	require.Len(t, rec.References, 10)
	assert.Equal(t, "https://example.com/ref/0", rec.References[0])
	assert.Equal(t, "https://example.com/ref/9", rec.References[9])
}
