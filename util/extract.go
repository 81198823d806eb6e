package util

import "strings"

// UnknownVendor is the fallback when no CPE criteria resolves.
const UnknownVendor = "Unknown"

// VendorProduct extracts title-cased vendor and product names from a CPE
// criteria string (cpe:2.3:a:vendor:product:...). Criteria with fewer than
// five colon-delimited segments resolve to "Unknown"/"Unknown".
func VendorProduct(criteria string) (string, string) {
	parts := strings.Split(criteria, ":")
	if len(parts) <= 4 {
		return UnknownVendor, UnknownVendor
	}
	vendor := TitleCase(strings.ReplaceAll(parts[3], "_", " "))
	product := TitleCase(strings.ReplaceAll(parts[4], "_", " "))
	return vendor, product
}

// TitleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

// FirstCWE returns the first value carrying the CWE- prefix, or "".
func FirstCWE(values []string) string {
	for _, v := range values {
		if strings.HasPrefix(v, "CWE-") {
			return v
		}
	}
	return ""
}

// NormalizeCVEID prefixes a bare identifier (2024-1234) with the CVE
// scheme. Already-prefixed identifiers pass through unchanged.
func NormalizeCVEID(id string) string {
	if !strings.HasPrefix(id, "CVE-") {
		return "CVE-" + id
	}
	return id
}

// TruncateRefs caps a reference URL list at max, preserving feed order.
func TruncateRefs(refs []string, max int) []string {
	if len(refs) > max {
		return refs[:max]
	}
	return refs
}
