// Package ingest correlates the three external feeds into merged
// vulnerability records and writes them to the store.
package ingest

import (
	"time"

	"github.com/sentinelvuln/sentinel-backend/internal/feeds/nvd"
	"github.com/sentinelvuln/sentinel-backend/model"
	"github.com/sentinelvuln/sentinel-backend/util"
)

const maxReferences = 10

// BuildRecord merges one catalog entry with the KEV and EPSS lookups into a
// storable record. Returns nil when the entry carries no identifier; such
// entries are skipped, not errors. Rounding happens here, once, so stored
// scores are already at their defined precision.
func BuildRecord(vuln nvd.Vulnerability, kevLookup map[string]model.KEVEntry, epssLookup map[string]model.EPSSEntry, now time.Time) *model.VulnerabilityRecord {
	cve := vuln.CVE
	if cve.ID == "" {
		return nil
	}

	cvssScore, cvssSeverity := severityMetrics(cve.Metrics)

	epssData := epssLookup[cve.ID]
	kevData, isKEV := kevLookup[cve.ID]

	composite := util.CompositeScore(cvssScore, epssData.Score, isKEV)
	vendor, product := extractVendorProduct(cve.Configurations)

	rec := &model.VulnerabilityRecord{
		CveID:           cve.ID,
		Description:     englishDescription(cve.Descriptions),
		CvssScore:       model.Decimal(util.Round1(cvssScore)),
		CvssSeverity:    cvssSeverity,
		EpssScore:       model.Decimal(util.Round5(epssData.Score)),
		EpssPercentile:  model.Decimal(util.Round5(epssData.Percentile)),
		IsKEV:           isKEV,
		CompositeScore:  model.Decimal(util.Round2(composite)),
		AffectedVendor:  vendor,
		AffectedProduct: product,
		CweID:           extractCWE(cve.Weaknesses),
		References:      extractReferences(cve.References),
		PublishedDate:   cve.Published,
		LastModified:    cve.LastModified,
		UpdatedAt:       now.UTC().Format(time.RFC3339),
		Status:          model.StatusActive,
		VendorKey:       "VENDOR#" + vendor,
	}

	if isKEV {
		rec.KevDateAdded = kevData.DateAdded
		rec.KevDueDate = kevData.DueDate
	}

	return rec
}

// englishDescription returns the first entry tagged "en", or "".
func englishDescription(descriptions []nvd.LangString) string {
	for _, desc := range descriptions {
		if desc.Lang == "en" {
			return desc.Value
		}
	}
	return ""
}

// severityMetrics prefers the v3.1 metric and its feed-supplied band,
// falling back to the legacy v2 score with a locally derived band.
func severityMetrics(metrics nvd.Metrics) (float64, string) {
	if len(metrics.CvssMetricV31) > 0 {
		data := metrics.CvssMetricV31[0].CvssData
		severity := data.BaseSeverity
		if severity == "" {
			severity = "LOW"
		}
		return data.BaseScore, severity
	}
	if len(metrics.CvssMetricV2) > 0 {
		score := metrics.CvssMetricV2[0].CvssData.BaseScore
		return score, util.SeverityRating(score)
	}
	return 0, "LOW"
}

// extractVendorProduct resolves vendor and product from the first CPE
// criteria with enough segments; default "Unknown"/"Unknown".
func extractVendorProduct(configurations []nvd.Configuration) (string, string) {
	for _, cfg := range configurations {
		for _, node := range cfg.Nodes {
			for _, match := range node.CpeMatch {
				vendor, product := util.VendorProduct(match.Criteria)
				if vendor != util.UnknownVendor {
					return vendor, product
				}
			}
		}
	}
	return util.UnknownVendor, util.UnknownVendor
}

// extractCWE returns the first weakness value with the CWE- prefix, or "".
func extractCWE(weaknesses []nvd.Weakness) string {
	for _, weakness := range weaknesses {
		values := make([]string, 0, len(weakness.Description))
		for _, desc := range weakness.Description {
			values = append(values, desc.Value)
		}
		if cwe := util.FirstCWE(values); cwe != "" {
			return cwe
		}
	}
	return ""
}

// extractReferences keeps feed order, capped at maxReferences.
func extractReferences(refs []nvd.Reference) []string {
	urls := make([]string, 0, len(refs))
	for _, ref := range refs {
		urls = append(urls, ref.URL)
	}
	return util.TruncateRefs(urls, maxReferences)
}
