// Package dashboard implements the resolvers for dashboard metrics.
package dashboard

import (
	"context"

	"github.com/sentinelvuln/sentinel-backend/internal/query"
)

// ResolveStats handles fetching the aggregate counters.
func ResolveStats(ctx context.Context, engine *query.Engine) (map[string]interface{}, error) {
	stats, err := engine.Stats(ctx)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"totalCVEs":    stats.TotalCVEs,
		"kevCount":     stats.KevCount,
		"avgEPSS":      float64(stats.AvgEPSS),
		"cvesThisWeek": stats.CvesThisWeek,
	}, nil
}

// ResolveKEVTrend returns the twelve monthly KEV-addition buckets.
func ResolveKEVTrend(ctx context.Context, engine *query.Engine) ([]map[string]interface{}, error) {
	result, err := engine.Trends(ctx)
	if err != nil {
		return nil, err
	}

	buckets := make([]map[string]interface{}, 0, len(result.Trends))
	for _, bucket := range result.Trends {
		buckets = append(buckets, map[string]interface{}{
			"month": bucket.Month,
			"count": bucket.Count,
		})
	}
	return buckets, nil
}
