// Package util provides scoring and extraction helpers for the backend.
package util

import "math"

// Composite score weights. CVSS and EPSS are both normalized to a 0-100
// scale before weighting; a KEV listing adds a flat bonus.
const (
	CVSSWeight = 0.35
	EPSSWeight = 0.40
	KEVBonus   = 25.0

	maxCompositeScore = 100.0
)

// CompositeScore combines a CVSS base score (0-10), an EPSS probability
// (0-1) and the KEV flag into a 0-100 risk score. Deterministic: the same
// inputs always reproduce the same score.
func CompositeScore(cvssScore, epssScore float64, isKEV bool) float64 {
	composite := CVSSWeight*(cvssScore*10) + EPSSWeight*(epssScore*100)
	if isKEV {
		composite += KEVBonus
	}
	return math.Min(composite, maxCompositeScore)
}

// SeverityRating maps a CVSS v2 base score to a severity band. Only used
// when the feed supplies no v3.1 metric; v3.1 metrics carry their own band.
func SeverityRating(score float64) string {
	switch {
	case score >= 9.0:
		return "CRITICAL"
	case score >= 7.0:
		return "HIGH"
	case score >= 4.0:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

// Round1 rounds to 1 decimal place (CVSS scores).
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Round2 rounds to 2 decimal places (composite scores).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round5 rounds to 5 decimal places (EPSS scores and percentiles).
func Round5(v float64) float64 {
	return math.Round(v*100000) / 100000
}
