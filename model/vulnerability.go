// Package model - core data types for the sentinel vulnerability backend
package model

import (
	"math"
	"strconv"
)

// StatusActive partitions the secondary orderings; every stored record
// carries it.
const StatusActive = "ACTIVE"

// Decimal is a float64 that marshals whole values as integers, matching the
// wire format the dashboard frontend consumes.
type Decimal float64

// MarshalJSON renders 54 instead of 54.0 and 54.3 as-is.
func (d Decimal) MarshalJSON() ([]byte, error) {
	f := float64(d)
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return []byte(strconv.FormatInt(int64(f), 10)), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// VulnerabilityRecord is the merged snapshot for one CVE, fully overwritten
// on every ingestion run that sees the CVE in the catalog window.
type VulnerabilityRecord struct {
	Key             string   `json:"_key,omitempty"`
	CveID           string   `json:"cveId"`
	Description     string   `json:"description"`
	CvssScore       Decimal  `json:"cvssScore"`
	CvssSeverity    string   `json:"cvssSeverity"`
	EpssScore       Decimal  `json:"epssScore"`
	EpssPercentile  Decimal  `json:"epssPercentile"`
	IsKEV           bool     `json:"isKEV"`
	KevDateAdded    string   `json:"kevDateAdded,omitempty"`
	KevDueDate      string   `json:"kevDueDate,omitempty"`
	CompositeScore  Decimal  `json:"compositeScore"`
	AffectedVendor  string   `json:"affectedVendor"`
	AffectedProduct string   `json:"affectedProduct"`
	CweID           string   `json:"cweId"`
	References      []string `json:"references"`
	PublishedDate   string   `json:"publishedDate"`
	LastModified    string   `json:"lastModified"`
	UpdatedAt       string   `json:"updatedAt"`
	Status          string   `json:"status"`
	VendorKey       string   `json:"vendorKey"`
}

// KEVEntry is one row of the known-exploited-vulnerabilities lookup.
type KEVEntry struct {
	DateAdded string `json:"dateAdded"`
	DueDate   string `json:"dueDate"`
}

// EPSSEntry is one row of the exploitation-probability lookup.
type EPSSEntry struct {
	Score      float64 `json:"score"`
	Percentile float64 `json:"percentile"`
}

// IndexKey marks a resume position inside one of the two secondary
// orderings. Only the fields relevant to the chosen ordering are set.
type IndexKey struct {
	CveID     string  `json:"cveId"`
	Score     float64 `json:"score,omitempty"`
	Published string  `json:"published,omitempty"`
}
