// Package model - API types for read endpoint responses
package model

// ListResult is the common envelope for list, search and top10 responses.
type ListResult struct {
	Items  []VulnerabilityRecord `json:"items"`
	Count  int                   `json:"count"`
	Cursor string                `json:"cursor,omitempty"`
}

// Stats holds the dashboard aggregate counters.
type Stats struct {
	TotalCVEs    int     `json:"totalCVEs"`
	KevCount     int     `json:"kevCount"`
	AvgEPSS      Decimal `json:"avgEPSS"`
	CvesThisWeek int     `json:"cvesThisWeek"`
}

// TrendBucket is one month of KEV additions.
type TrendBucket struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// TrendsResult wraps the twelve monthly buckets.
type TrendsResult struct {
	Trends []TrendBucket `json:"trends"`
}

// IngestResult reports the outcome of one ingestion run.
type IngestResult struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Processed int    `json:"processed"`
}
