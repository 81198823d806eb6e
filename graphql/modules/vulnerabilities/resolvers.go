// Package vulnerabilities implements the resolvers for vulnerability data.
package vulnerabilities

import (
	"context"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
	"github.com/sentinelvuln/sentinel-backend/model"
)

// ResolveVulnerabilities returns up to limit records in the chosen ordering.
func ResolveVulnerabilities(ctx context.Context, engine *query.Engine, sort string, limit int) ([]map[string]interface{}, error) {
	result, err := engine.List(ctx, query.ListParams{Sort: sort, Limit: limit})
	if err != nil {
		return nil, err
	}

	items := make([]map[string]interface{}, 0, len(result.Items))
	for _, rec := range result.Items {
		items = append(items, recordToMap(rec))
	}
	return items, nil
}

// ResolveVulnerability returns one record, or nil when absent.
func ResolveVulnerability(ctx context.Context, engine *query.Engine, cveID string) (map[string]interface{}, error) {
	rec, err := engine.Detail(ctx, cveID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return recordToMap(*rec), nil
}

func recordToMap(rec model.VulnerabilityRecord) map[string]interface{} {
	return map[string]interface{}{
		"cveId":           rec.CveID,
		"description":     rec.Description,
		"cvssScore":       float64(rec.CvssScore),
		"cvssSeverity":    rec.CvssSeverity,
		"epssScore":       float64(rec.EpssScore),
		"epssPercentile":  float64(rec.EpssPercentile),
		"isKEV":           rec.IsKEV,
		"kevDateAdded":    rec.KevDateAdded,
		"kevDueDate":      rec.KevDueDate,
		"compositeScore":  float64(rec.CompositeScore),
		"affectedVendor":  rec.AffectedVendor,
		"affectedProduct": rec.AffectedProduct,
		"cweId":           rec.CweID,
		"references":      rec.References,
		"publishedDate":   rec.PublishedDate,
		"lastModified":    rec.LastModified,
		"updatedAt":       rec.UpdatedAt,
	}
}
