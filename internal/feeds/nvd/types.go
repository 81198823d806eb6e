// Package nvd fetches the NVD 2.0 CVE catalog over its windowed,
// offset-paginated REST feed.
package nvd

// Response is one page of the NVD 2.0 API.
type Response struct {
	ResultsPerPage  int             `json:"resultsPerPage"`
	StartIndex      int             `json:"startIndex"`
	TotalResults    int             `json:"totalResults"`
	Vulnerabilities []Vulnerability `json:"vulnerabilities"`
}

// Vulnerability wraps one catalog entry.
type Vulnerability struct {
	CVE CVEItem `json:"cve"`
}

// CVEItem is the normalized intermediate structure the correlator reads.
type CVEItem struct {
	ID             string          `json:"id"`
	Published      string          `json:"published"`
	LastModified   string          `json:"lastModified"`
	VulnStatus     string          `json:"vulnStatus"`
	Descriptions   []LangString    `json:"descriptions"`
	Metrics        Metrics         `json:"metrics"`
	Weaknesses     []Weakness      `json:"weaknesses"`
	Configurations []Configuration `json:"configurations"`
	References     []Reference     `json:"references"`
}

// LangString is a language-tagged text value.
type LangString struct {
	Lang  string `json:"lang"`
	Value string `json:"value"`
}

// Metrics carries the CVSS metric lists; v3.1 is preferred, v2 is the
// legacy fallback.
type Metrics struct {
	CvssMetricV31 []CvssMetricV3 `json:"cvssMetricV31"`
	CvssMetricV2  []CvssMetricV2 `json:"cvssMetricV2"`
}

// CvssMetricV3 is one v3.1 metric entry.
type CvssMetricV3 struct {
	CvssData CvssDataV3 `json:"cvssData"`
}

// CvssDataV3 carries the v3.1 base score and its feed-supplied band.
type CvssDataV3 struct {
	BaseScore    float64 `json:"baseScore"`
	BaseSeverity string  `json:"baseSeverity"`
}

// CvssMetricV2 is one legacy v2 metric entry; the band is derived locally.
type CvssMetricV2 struct {
	CvssData CvssDataV2 `json:"cvssData"`
}

// CvssDataV2 carries the legacy base score.
type CvssDataV2 struct {
	BaseScore float64 `json:"baseScore"`
}

// Weakness holds the CWE classification descriptions.
type Weakness struct {
	Description []LangString `json:"description"`
}

// Configuration nests the CPE applicability statements.
type Configuration struct {
	Nodes []Node `json:"nodes"`
}

// Node is one CPE match group.
type Node struct {
	CpeMatch []CpeMatch `json:"cpeMatch"`
}

// CpeMatch carries a single CPE criteria string.
type CpeMatch struct {
	Criteria string `json:"criteria"`
}

// Reference is one advisory or patch link.
type Reference struct {
	URL string `json:"url"`
}
